package filter_test

import (
	"math"
	"reflect"
	"testing"
	"time"

	"smorg/backend/internal/domain"
	"smorg/backend/internal/filter"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

var seattle = domain.UserLocation{City: "Seattle", State: "WA", Latitude: 47.61, Longitude: -122.34, Status: domain.StatusDetected}

func intPtr(v int) *int { return &v }

func newEngine() *filter.Engine {
	return filter.NewEngine(func() time.Time { return testNow })
}

func event(id string, mutate ...func(*domain.Event)) domain.Event {
	e := domain.Event{
		Id:         id,
		Title:      "Event " + id,
		Date:       testNow.Add(24 * time.Hour),
		City:       "Seattle",
		State:      "WA",
		Latitude:   47.60,
		Longitude:  -122.33,
		EventTypes: []string{"music"},
		Vibes:      []string{},
	}
	for _, m := range mutate {
		m(&e)
	}
	return e
}

func ids(events []domain.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Id)
	}
	return out
}

func TestCompute_ScenarioA_DefaultsFreeEventNearby(t *testing.T) {
	events := []domain.Event{event("1", func(e *domain.Event) { e.EnergyLevel = intPtr(1) })}
	filters := domain.FilterConfig{DistanceMiles: 25, PriceRange: &domain.PriceRange{Min: 0, Max: 0}}

	got := newEngine().ComputeVisibleEvents(events, filters, seattle, nil, "")

	if len(got) != 1 || got[0].Id != "1" {
		t.Fatalf("Expected [1], got %v", ids(got))
	}
	if got[0].Distance == nil {
		t.Fatal("Expected distance to be populated")
	}
	if math.Abs(*got[0].Distance-0.8) > 0.1 {
		t.Errorf("Expected distance ~0.8 miles, got %v", *got[0].Distance)
	}
}

func TestCompute_ScenarioB_PriceRangeExcludesFree(t *testing.T) {
	events := []domain.Event{event("1")}
	filters := domain.FilterConfig{DistanceMiles: 25, PriceRange: &domain.PriceRange{Min: 10, Max: 50}}

	got := newEngine().ComputeVisibleEvents(events, filters, seattle, nil, "")
	if len(got) != 0 {
		t.Errorf("Expected no events, got %v", ids(got))
	}
}

func TestCompute_ScenarioC_DismissedExcluded(t *testing.T) {
	events := []domain.Event{event("1"), event("2")}
	dismissed := filter.NewIDSet("1")

	configs := map[string]domain.FilterConfig{
		"Defaults":  domain.DefaultFilterConfig(),
		"Interests": {DistanceMiles: 25, Interests: []string{"music"}},
		"Search":    {DistanceMiles: 25, SearchQuery: "event"},
	}
	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			got := newEngine().ComputeVisibleEvents(events, cfg, seattle, dismissed, "")
			if !reflect.DeepEqual(ids(got), []string{"2"}) {
				t.Errorf("Expected [2], got %v", ids(got))
			}
		})
	}
}

func TestCompute_ScenarioD_PastEventNeverShown(t *testing.T) {
	events := []domain.Event{event("old", func(e *domain.Event) { e.Date = testNow.Add(-24 * time.Hour) })}

	got := newEngine().ComputeVisibleEvents(events, domain.DefaultFilterConfig(), seattle, nil, "")
	if len(got) != 0 {
		t.Errorf("Expected past event to be excluded, got %v", ids(got))
	}
}

func TestCompute_IdentityConfigKeepsEverythingInRadius(t *testing.T) {
	events := []domain.Event{
		event("b", func(e *domain.Event) {
			e.Date = testNow.Add(48 * time.Hour)
			e.Cost = 40
		}),
		event("a", func(e *domain.Event) {
			e.Cost = 0
			e.EventTypes = nil
		}),
		event("c", func(e *domain.Event) {
			e.Date = testNow.Add(72 * time.Hour)
			e.EnergyLevel = intPtr(5)
		}),
	}

	got := newEngine().ComputeVisibleEvents(events, domain.DefaultFilterConfig(), seattle, nil, "")
	if !reflect.DeepEqual(ids(got), []string{"a", "b", "c"}) {
		t.Errorf("Expected [a b c] ordered by date, got %v", ids(got))
	}
}

func TestCompute_DistanceBound(t *testing.T) {
	events := []domain.Event{
		event("near"),
		event("portland", func(e *domain.Event) { e.Latitude, e.Longitude = 45.5152, -122.6784 }),
	}

	got := newEngine().ComputeVisibleEvents(events, domain.FilterConfig{DistanceMiles: 25}, seattle, nil, "")
	if !reflect.DeepEqual(ids(got), []string{"near"}) {
		t.Errorf("Expected only nearby event, got %v", ids(got))
	}

	got = newEngine().ComputeVisibleEvents(events, domain.FilterConfig{DistanceMiles: 200}, seattle, nil, "")
	if len(got) != 2 {
		t.Errorf("Expected both events within 200 miles, got %v", ids(got))
	}
}

func TestCompute_PriceRangeEdgeCases(t *testing.T) {
	events := []domain.Event{
		event("free"),
		event("ten", func(e *domain.Event) { e.Cost = 10 }),
		event("fifty", func(e *domain.Event) { e.Cost = 50 }),
	}
	cases := []struct {
		name  string
		rng   domain.PriceRange
		wants []string
	}{
		{"Inclusive", domain.PriceRange{Min: 10, Max: 50}, []string{"ten", "fifty"}},
		{"Degenerate", domain.PriceRange{Min: 10, Max: 10}, []string{"ten"}},
		{"InvertedMatchesMin", domain.PriceRange{Min: 50, Max: 10}, []string{"fifty"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rng := tc.rng
			got := newEngine().ComputeVisibleEvents(events, domain.FilterConfig{DistanceMiles: 25, PriceRange: &rng}, seattle, nil, "")
			if !reflect.DeepEqual(ids(got), tc.wants) {
				t.Errorf("Expected %v, got %v", tc.wants, ids(got))
			}
		})
	}
}

func TestCompute_EnergyLevels(t *testing.T) {
	events := []domain.Event{
		event("unrated"),
		event("chill", func(e *domain.Event) { e.EnergyLevel = intPtr(1) }),
		event("intense", func(e *domain.Event) { e.EnergyLevel = intPtr(5) }),
	}

	got := newEngine().ComputeVisibleEvents(events, domain.FilterConfig{DistanceMiles: 25, EnergyLevels: []int{1, 2}}, seattle, nil, "")
	if !reflect.DeepEqual(ids(got), []string{"chill"}) {
		t.Errorf("Expected [chill], got %v", ids(got))
	}
}

func TestCompute_InterestAndVibeIntersection(t *testing.T) {
	events := []domain.Event{
		event("jazz", func(e *domain.Event) {
			e.EventTypes = []string{"Music & Concerts"}
			e.Vibes = []string{"date-night"}
		}),
		event("hike", func(e *domain.Event) {
			e.EventTypes = []string{"Outdoor & Adventure"}
			e.Vibes = []string{"solo-adventure"}
		}),
		event("untagged", func(e *domain.Event) {
			e.EventTypes = nil
			e.Vibes = nil
		}),
	}

	cfg := domain.FilterConfig{DistanceMiles: 25, Interests: []string{"Music & Concerts", "Sports"}}
	if got := ids(newEngine().ComputeVisibleEvents(events, cfg, seattle, nil, "")); !reflect.DeepEqual(got, []string{"jazz"}) {
		t.Errorf("Interest filter: expected [jazz], got %v", got)
	}

	cfg = domain.FilterConfig{DistanceMiles: 25, Vibes: []string{"solo-adventure"}}
	if got := ids(newEngine().ComputeVisibleEvents(events, cfg, seattle, nil, "")); !reflect.DeepEqual(got, []string{"hike"}) {
		t.Errorf("Vibe filter: expected [hike], got %v", got)
	}
}

func TestCompute_Search(t *testing.T) {
	events := []domain.Event{
		event("title", func(e *domain.Event) { e.Title = "Summer JAZZ Night" }),
		event("venue", func(e *domain.Event) { e.VenueName = "The Jazz Alley" }),
		event("city", func(e *domain.Event) {
			e.City = "Jazzville"
			e.Latitude, e.Longitude = 47.61, -122.34
		}),
		event("state-only", func(e *domain.Event) { e.State = "JAZZ" }),
		event("none"),
	}

	got := newEngine().ComputeVisibleEvents(events, domain.FilterConfig{DistanceMiles: 25}, seattle, nil, "  jazz ")
	if !reflect.DeepEqual(ids(got), []string{"title", "venue", "city"}) {
		t.Errorf("Expected [title venue city], got %v", ids(got))
	}
}

func TestCompute_SearchArgumentOverridesConfig(t *testing.T) {
	events := []domain.Event{
		event("a", func(e *domain.Event) { e.Title = "Alpha" }),
		event("b", func(e *domain.Event) { e.Title = "Beta" }),
	}
	cfg := domain.FilterConfig{DistanceMiles: 25, SearchQuery: "alpha"}

	if got := ids(newEngine().ComputeVisibleEvents(events, cfg, seattle, nil, "")); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("Expected config query to apply, got %v", got)
	}
	if got := ids(newEngine().ComputeVisibleEvents(events, cfg, seattle, nil, "beta")); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("Expected argument query to win, got %v", got)
	}
}

func TestCompute_StableOrderAndDedup(t *testing.T) {
	same := testNow.Add(5 * time.Hour)
	events := []domain.Event{
		event("late", func(e *domain.Event) { e.Date = testNow.Add(9 * time.Hour) }),
		event("x", func(e *domain.Event) { e.Date = same }),
		event("y", func(e *domain.Event) { e.Date = same }),
		event("x", func(e *domain.Event) { e.Date = same }),
		event("early", func(e *domain.Event) { e.Date = testNow.Add(1 * time.Hour) }),
	}

	got := newEngine().ComputeVisibleEvents(events, domain.DefaultFilterConfig(), seattle, nil, "")
	if !reflect.DeepEqual(ids(got), []string{"early", "x", "y", "late"}) {
		t.Errorf("Expected [early x y late], got %v", ids(got))
	}
}

func TestCompute_DedupKeepsFirstVisibleCopy(t *testing.T) {
	events := []domain.Event{
		event("x", func(e *domain.Event) { e.Date = testNow.Add(-2 * time.Hour) }),
		event("x", func(e *domain.Event) {
			e.Date = testNow.Add(3 * time.Hour)
			e.Title = "Rescheduled"
		}),
		event("x", func(e *domain.Event) { e.Date = testNow.Add(4 * time.Hour) }),
	}

	got := newEngine().ComputeVisibleEvents(events, domain.DefaultFilterConfig(), seattle, nil, "")
	if len(got) != 1 || got[0].Title != "Rescheduled" {
		t.Fatalf("Expected the rescheduled copy of x, got %+v", got)
	}
}

func TestCompute_IdempotentAndDoesNotMutateInput(t *testing.T) {
	events := []domain.Event{event("1"), event("2", func(e *domain.Event) { e.Date = testNow.Add(2 * time.Hour) })}
	engine := newEngine()

	first := engine.ComputeVisibleEvents(events, domain.DefaultFilterConfig(), seattle, nil, "")
	second := engine.ComputeVisibleEvents(events, domain.DefaultFilterConfig(), seattle, nil, "")

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical output for identical input")
	}
	for _, e := range events {
		if e.Distance != nil {
			t.Errorf("Input event %s was mutated with a distance", e.Id)
		}
	}
	if ids(events)[0] != "1" {
		t.Error("Input order was modified")
	}
}
