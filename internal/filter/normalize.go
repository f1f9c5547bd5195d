package filter

import (
	"fmt"
	"slices"
	"strings"

	"smorg/backend/internal/domain"
)

// AvailableRange is the observed [Min, Max] cost across a loaded event pool.
type AvailableRange struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Empty bool    `json:"empty"`
}

// AllFree reports whether every loaded event costs nothing. The price axis
// is disabled in that case.
func (a AvailableRange) AllFree() bool {
	return !a.Empty && a.Min == 0 && a.Max == 0
}

func AvailablePriceRange(events []domain.Event) AvailableRange {
	if len(events) == 0 {
		return AvailableRange{Empty: true}
	}
	r := AvailableRange{Min: events[0].Cost, Max: events[0].Cost}
	for _, ev := range events[1:] {
		r.Min = min(r.Min, ev.Cost)
		r.Max = max(r.Max, ev.Cost)
	}
	return r
}

// ClampPriceRange fits the selected range into a new available range.
// Each bound is clamped independently; a range that still ends up inverted
// collapses onto whichever available bound is nearer its midpoint.
// A nil selection means "everything" and stays nil.
func ClampPriceRange(current *domain.PriceRange, avail AvailableRange) *domain.PriceRange {
	if avail.AllFree() {
		return nil
	}
	if current == nil || avail.Empty {
		return current
	}

	lo := clamp(current.Min, avail.Min, avail.Max)
	hi := clamp(current.Max, avail.Min, avail.Max)
	if lo > hi {
		mid := (current.Min + current.Max) / 2
		if mid-avail.Min <= avail.Max-mid {
			lo, hi = avail.Min, avail.Min
		} else {
			lo, hi = avail.Max, avail.Max
		}
	}
	return &domain.PriceRange{Min: lo, Max: hi}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

// NormalizeFilters validates a filter configuration and returns a cleaned
// copy: default distance applied, tags trimmed and deduplicated, energy
// levels checked against the configured domain.
func NormalizeFilters(f domain.FilterConfig, levels domain.LevelDomain) (domain.FilterConfig, error) {
	out := domain.FilterConfig{
		DistanceMiles: f.DistanceMiles,
		SearchQuery:   strings.TrimSpace(f.SearchQuery),
		Interests:     dedupe(f.Interests),
		Vibes:         dedupe(f.Vibes),
		EnergyLevels:  []int{},
	}

	if out.DistanceMiles == 0 {
		out.DistanceMiles = domain.DefaultDistanceMiles
	}
	if out.DistanceMiles < 0 {
		return out, domain.ErrValidation("distance must be positive")
	}

	if f.PriceRange != nil {
		if f.PriceRange.Min < 0 || f.PriceRange.Max < 0 {
			return out, domain.ErrValidation("price range cannot be negative")
		}
		pr := *f.PriceRange
		out.PriceRange = &pr
	}

	for _, lvl := range f.EnergyLevels {
		if !levels.Contains(lvl) {
			return out, domain.ErrValidation(fmt.Sprintf("unknown energy level %d", lvl))
		}
		if !slices.Contains(out.EnergyLevels, lvl) {
			out.EnergyLevels = append(out.EnergyLevels, lvl)
		}
	}
	return out, nil
}

func dedupe(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
