package service_test

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"smorg/backend/internal/domain"
	"smorg/backend/internal/filter"
	"smorg/backend/internal/service"
	"smorg/backend/internal/state"
)

var discoverNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type fixedLocation domain.UserLocation

func (l fixedLocation) Current(ctx context.Context, session string) domain.UserLocation {
	return domain.UserLocation(l)
}

var seattle = fixedLocation{City: "Seattle", State: "WA", Latitude: 47.6062, Longitude: -122.3321, Status: domain.StatusDetected}

func poolEvent(id string, cost float64, hours int) domain.Event {
	return domain.Event{
		Id:         id,
		Title:      "Event " + id,
		Date:       discoverNow.Add(time.Duration(hours) * time.Hour),
		City:       "Seattle",
		State:      "WA",
		Latitude:   47.61,
		Longitude:  -122.33,
		Cost:       cost,
		EventTypes: []string{"Music"},
		Vibes:      []string{"chill"},
	}
}

type discoveryFixture struct {
	svc       service.DiscoveryService
	dismissed *state.DismissedSet
	views     *state.ViewPreference
	pushdowns []filter.Pushdown
}

func newDiscovery(t *testing.T, pool []domain.Event, queryErr error) *discoveryFixture {
	t.Helper()
	kv := state.NewMemoryKV()
	f := &discoveryFixture{
		dismissed: state.NewDismissedSet(kv),
		views:     state.NewViewPreference(kv),
	}
	repo := &MockRepository{
		QueryFunc: func(ctx context.Context, p filter.Pushdown) ([]domain.Event, error) {
			f.pushdowns = append(f.pushdowns, p)
			return pool, queryErr
		},
	}
	levels, _ := domain.ParseLevelDomain("1,2,3,4,5")
	engine := filter.NewEngine(func() time.Time { return discoverNow })
	f.svc = service.NewDiscoveryService(repo, engine, levels, seattle, f.dismissed, f.views)
	return f
}

func eventIDs(events []domain.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Id)
	}
	return out
}

func TestDiscover_Results(t *testing.T) {
	f := newDiscovery(t, []domain.Event{poolEvent("b", 10, 48), poolEvent("a", 0, 24)}, nil)

	res, err := f.svc.Discover(context.Background(), service.DiscoveryRequest{Session: "s1"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.State != service.StateResults {
		t.Errorf("Expected results state, got %s", res.State)
	}
	if got := eventIDs(res.Events); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Expected date order [a b], got %v", got)
	}
	if res.Events[0].Distance == nil {
		t.Error("Expected distance to be set")
	}
	if res.Filters.DistanceMiles != domain.DefaultDistanceMiles {
		t.Errorf("Expected default distance, got %v", res.Filters.DistanceMiles)
	}
	if res.View != domain.ViewGrid || res.Days != nil {
		t.Errorf("Expected grid view without days, got %s %v", res.View, res.Days)
	}
	if len(f.pushdowns) != 1 || !f.pushdowns[0].MinDate.Equal(discoverNow) || f.pushdowns[0].PriceMin != nil {
		t.Errorf("Expected date-only pushdown, got %+v", f.pushdowns)
	}
}

func TestDiscover_EmptyAndError(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		f := newDiscovery(t, nil, nil)
		res, _ := f.svc.Discover(context.Background(), service.DiscoveryRequest{Session: "s1"})
		if res.State != service.StateEmpty || res.Retryable {
			t.Errorf("Expected empty, non-retryable, got %+v", res)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		f := newDiscovery(t, nil, errors.New("firestore unavailable"))
		res, err := f.svc.Discover(context.Background(), service.DiscoveryRequest{Session: "s1"})
		if err != nil {
			t.Fatalf("Expected store failure to be reported in state, got %v", err)
		}
		if res.State != service.StateError || !res.Retryable || len(res.Events) != 0 {
			t.Errorf("Expected retryable error state, got %+v", res)
		}
	})
}

func TestDiscover_ExcludesDismissed(t *testing.T) {
	f := newDiscovery(t, []domain.Event{poolEvent("a", 0, 1), poolEvent("b", 0, 2)}, nil)
	_, _ = f.dismissed.Dismiss(context.Background(), "s1", "a")

	res, _ := f.svc.Discover(context.Background(), service.DiscoveryRequest{Session: "s1"})
	if got := eventIDs(res.Events); !slices.Equal(got, []string{"b"}) {
		t.Errorf("Expected [b], got %v", got)
	}

	other, _ := f.svc.Discover(context.Background(), service.DiscoveryRequest{Session: "s2"})
	if len(other.Events) != 2 {
		t.Errorf("Expected other session to see both, got %v", eventIDs(other.Events))
	}
}

func TestDiscover_ClampsPriceIntoAvailableRange(t *testing.T) {
	f := newDiscovery(t, []domain.Event{poolEvent("a", 5, 1), poolEvent("b", 40, 2)}, nil)

	res, _ := f.svc.Discover(context.Background(), service.DiscoveryRequest{
		Session: "s1",
		Filters: domain.FilterConfig{PriceRange: &domain.PriceRange{Min: 0, Max: 500}},
	})
	if pr := res.Filters.PriceRange; pr == nil || pr.Min != 5 || pr.Max != 40 {
		t.Errorf("Expected range clamped to [5,40], got %+v", pr)
	}
	if res.Available.Min != 5 || res.Available.Max != 40 {
		t.Errorf("Unexpected available range %+v", res.Available)
	}
}

func TestDiscover_AllFreeDisablesPrice(t *testing.T) {
	f := newDiscovery(t, []domain.Event{poolEvent("a", 0, 1)}, nil)

	res, _ := f.svc.Discover(context.Background(), service.DiscoveryRequest{
		Session: "s1",
		Filters: domain.FilterConfig{PriceRange: &domain.PriceRange{Min: 10, Max: 20}},
	})
	if res.Filters.PriceRange != nil {
		t.Errorf("Expected price axis disabled, got %+v", res.Filters.PriceRange)
	}
	if len(res.Events) != 1 {
		t.Errorf("Expected the free event, got %v", eventIDs(res.Events))
	}
}

func TestDiscover_RejectsUnknownEnergyLevel(t *testing.T) {
	f := newDiscovery(t, nil, nil)
	_, err := f.svc.Discover(context.Background(), service.DiscoveryRequest{
		Session: "s1",
		Filters: domain.FilterConfig{EnergyLevels: []int{9}},
	})
	if !domain.IsValidation(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestDiscover_CalendarView(t *testing.T) {
	f := newDiscovery(t, []domain.Event{poolEvent("a", 0, 1), poolEvent("b", 0, 2), poolEvent("c", 0, 30)}, nil)
	_ = f.views.Set(context.Background(), "s1", domain.ViewCalendar)

	res, _ := f.svc.Discover(context.Background(), service.DiscoveryRequest{Session: "s1"})
	if res.View != domain.ViewCalendar {
		t.Fatalf("Expected stored calendar view, got %s", res.View)
	}
	if len(res.Days) != 2 || res.Days[0].Count != 2 || res.Days[1].Count != 1 {
		t.Errorf("Unexpected day buckets %+v", res.Days)
	}

	grid, _ := f.svc.Discover(context.Background(), service.DiscoveryRequest{Session: "s1", View: domain.ViewGrid})
	if grid.View != domain.ViewGrid || grid.Days != nil {
		t.Errorf("Expected explicit view to override preference, got %s", grid.View)
	}
}

func TestDiscover_StaleRequestRejected(t *testing.T) {
	f := newDiscovery(t, []domain.Event{poolEvent("a", 0, 1)}, nil)
	ctx := context.Background()

	if _, err := f.svc.Discover(ctx, service.DiscoveryRequest{Session: "s1", Seq: 2}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := f.svc.Discover(ctx, service.DiscoveryRequest{Session: "s1", Seq: 1}); !errors.Is(err, service.ErrStale) {
		t.Errorf("Expected ErrStale for older seq, got %v", err)
	}
	if _, err := f.svc.Discover(ctx, service.DiscoveryRequest{Session: "s2", Seq: 1}); err != nil {
		t.Errorf("Expected other session unaffected, got %v", err)
	}
}

func TestGate(t *testing.T) {
	g := service.NewGate()
	if !g.Begin("s", 1) || !g.Begin("s", 2) {
		t.Fatal("Expected increasing seqs to begin")
	}
	if g.IsLatest("s", 1) {
		t.Error("Expected seq 1 superseded by 2")
	}
	if !g.IsLatest("s", 2) {
		t.Error("Expected seq 2 latest")
	}
	if g.Begin("s", 1) {
		t.Error("Expected older seq rejected")
	}
	if !g.Begin("s", 0) || !g.IsLatest("s", 0) {
		t.Error("Expected seq 0 ungated")
	}
}

func TestOptions(t *testing.T) {
	f := newDiscovery(t, []domain.Event{poolEvent("a", 0, 1), poolEvent("b", 25, 2)}, nil)

	opts, err := f.svc.Options(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(opts.EnergyLevels) != 5 || opts.EnergyLevels[0].Value != 1 {
		t.Errorf("Unexpected energy levels %+v", opts.EnergyLevels)
	}
	if opts.Price.Min != 0 || opts.Price.Max != 25 || opts.AllFree {
		t.Errorf("Unexpected price options %+v", opts.Price)
	}
	if opts.MinDistance != 1 || opts.MaxDistance != 100 || len(opts.Interests) == 0 || len(opts.Vibes) == 0 {
		t.Errorf("Unexpected options %+v", opts)
	}
}
