package filter

import (
	"slices"
	"strings"
	"time"

	"smorg/backend/internal/domain"
)

// IDSet is a set of event ids excluded from results.
type IDSet map[string]struct{}

func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Engine turns a raw event pool into the visible, ordered list.
type Engine struct {
	now func() time.Time
}

func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Now is the instant used for the future-events cutoff.
func (e *Engine) Now() time.Time {
	return e.now()
}

// ComputeVisibleEvents applies every filter stage in order and returns new
// Event values with Distance set. Input events are never modified.
// searchQuery overrides filters.SearchQuery when non-empty.
func (e *Engine) ComputeVisibleEvents(
	events []domain.Event,
	filters domain.FilterConfig,
	location domain.UserLocation,
	dismissed IDSet,
	searchQuery string,
) []domain.Event {
	pushdown := PushdownFor(filters, e.now())

	query := strings.TrimSpace(searchQuery)
	if query == "" {
		query = strings.TrimSpace(filters.SearchQuery)
	}
	query = strings.ToLower(query)

	seen := make(map[string]struct{}, len(events))
	visible := make([]domain.Event, 0, len(events))

	for _, ev := range events {
		if _, dup := seen[ev.Id]; dup {
			continue
		}
		if !pushdown.Matches(ev) {
			continue
		}

		miles := Distance(location.Latitude, location.Longitude, ev.Latitude, ev.Longitude)
		if miles > filters.DistanceMiles {
			continue
		}
		if !intersects(ev.EventTypes, filters.Interests) {
			continue
		}
		if !intersects(ev.Vibes, filters.Vibes) {
			continue
		}
		if dismissed.Contains(ev.Id) {
			continue
		}
		if query != "" && !matchesSearch(ev, query) {
			continue
		}

		// Only a copy that survives every stage claims the id.
		seen[ev.Id] = struct{}{}
		visible = append(visible, ev.WithDistance(miles))
	}

	slices.SortStableFunc(visible, func(a, b domain.Event) int {
		return a.Date.Compare(b.Date)
	})
	return visible
}

// intersects is true when selected is empty or shares a tag with tags.
func intersects(tags, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, t := range tags {
		if slices.Contains(selected, t) {
			return true
		}
	}
	return false
}

// matchesSearch checks title, city and venue name only; the synthesized
// "city, state" venue fallback is not searched.
func matchesSearch(ev domain.Event, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(ev.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(ev.City), lowerQuery) ||
		strings.Contains(strings.ToLower(ev.VenueName), lowerQuery)
}
