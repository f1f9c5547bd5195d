package service

import (
	"context"
	"errors"
	"log"
	"time"

	"smorg/backend/internal/domain"
	"smorg/backend/internal/filter"
	"smorg/backend/internal/repository"
)

// ErrStale is returned when a newer discovery request for the same session
// started while this one was running.
var ErrStale = errors.New("superseded by a newer request")

const (
	StateResults = "results"
	StateEmpty   = "empty"
	StateError   = "error"
)

type DiscoveryRequest struct {
	Session     string
	Filters     domain.FilterConfig
	SearchQuery string
	// View overrides the stored preference when set.
	View domain.ViewMode
	Seq  uint64
	// TZ is the zone calendar days are cut in. Nil means UTC.
	TZ *time.Location
}

type DiscoveryResult struct {
	Events    []domain.Event        `json:"events"`
	Days      []filter.DayBucket    `json:"days,omitempty"`
	View      domain.ViewMode       `json:"view"`
	Location  domain.UserLocation   `json:"location"`
	Filters   domain.FilterConfig   `json:"filters"`
	Available filter.AvailableRange `json:"available_price"`
	State     string                `json:"state"`
	Retryable bool                  `json:"retryable,omitempty"`
}

type FilterOptions struct {
	Interests       []string              `json:"interests"`
	Vibes           []domain.Vibe         `json:"vibes"`
	EnergyLevels    []domain.EnergyLevel  `json:"energy_levels"`
	MinDistance     int                   `json:"min_distance"`
	MaxDistance     int                   `json:"max_distance"`
	DefaultDistance int                   `json:"default_distance"`
	Price           filter.AvailableRange `json:"price"`
	AllFree         bool                  `json:"all_free"`
}

// LocationSource yields the location discovery filters against.
type LocationSource interface {
	Current(ctx context.Context, session string) domain.UserLocation
}

type DismissedSource interface {
	List(ctx context.Context, session string) ([]string, error)
}

type ViewSource interface {
	Get(ctx context.Context, session string) (domain.ViewMode, error)
}

type DiscoveryService interface {
	Discover(ctx context.Context, req DiscoveryRequest) (*DiscoveryResult, error)
	Options(ctx context.Context) (*FilterOptions, error)
}

type discoveryService struct {
	repo      repository.EventRepository
	engine    *filter.Engine
	levels    domain.LevelDomain
	locations LocationSource
	dismissed DismissedSource
	views     ViewSource
	gate      *Gate
}

func NewDiscoveryService(
	repo repository.EventRepository,
	engine *filter.Engine,
	levels domain.LevelDomain,
	locations LocationSource,
	dismissed DismissedSource,
	views ViewSource,
) DiscoveryService {
	return &discoveryService{
		repo:      repo,
		engine:    engine,
		levels:    levels,
		locations: locations,
		dismissed: dismissed,
		views:     views,
		gate:      NewGate(),
	}
}

// Discover loads the future event pool and runs it through the filter
// engine. Store failures are reported in the result state, not as errors.
// Price is not pushed down: the pool also determines the available range
// the selected range is clamped into.
func (s *discoveryService) Discover(ctx context.Context, req DiscoveryRequest) (*DiscoveryResult, error) {
	if !s.gate.Begin(req.Session, req.Seq) {
		return nil, ErrStale
	}

	filters, err := filter.NormalizeFilters(req.Filters, s.levels)
	if err != nil {
		return nil, err
	}

	res := &DiscoveryResult{
		Events:   []domain.Event{},
		View:     s.view(ctx, req),
		Location: s.locations.Current(ctx, req.Session),
		State:    StateResults,
	}

	pool, err := s.repo.Query(ctx, filter.Pushdown{
		MinDate:      s.engine.Now(),
		EnergyLevels: filters.EnergyLevels,
	})
	if err != nil {
		log.Printf("[discovery] event query failed: %v", err)
		res.Filters = filters
		res.Available = filter.AvailableRange{Empty: true}
		res.State = StateError
		res.Retryable = true
		return s.finish(req, res)
	}

	res.Available = filter.AvailablePriceRange(pool)
	filters.PriceRange = filter.ClampPriceRange(filters.PriceRange, res.Available)
	res.Filters = filters

	res.Events = s.engine.ComputeVisibleEvents(pool, filters, res.Location, s.dismissedSet(ctx, req.Session), req.SearchQuery)
	if len(res.Events) == 0 {
		res.State = StateEmpty
	}
	if res.View == domain.ViewCalendar {
		res.Days = filter.GroupByDay(res.Events, req.TZ)
	}
	return s.finish(req, res)
}

func (s *discoveryService) finish(req DiscoveryRequest, res *DiscoveryResult) (*DiscoveryResult, error) {
	if !s.gate.IsLatest(req.Session, req.Seq) {
		return nil, ErrStale
	}
	return res, nil
}

func (s *discoveryService) Options(ctx context.Context) (*FilterOptions, error) {
	pool, err := s.repo.Query(ctx, filter.Pushdown{MinDate: s.engine.Now()})
	if err != nil {
		return nil, err
	}
	avail := filter.AvailablePriceRange(pool)
	return &FilterOptions{
		Interests:       domain.Interests,
		Vibes:           domain.Vibes,
		EnergyLevels:    s.levels.Levels(),
		MinDistance:     domain.MinDistanceMiles,
		MaxDistance:     domain.MaxDistanceMiles,
		DefaultDistance: domain.DefaultDistanceMiles,
		Price:           avail,
		AllFree:         avail.AllFree(),
	}, nil
}

func (s *discoveryService) view(ctx context.Context, req DiscoveryRequest) domain.ViewMode {
	if req.View != "" {
		return req.View
	}
	if s.views == nil {
		return domain.ViewGrid
	}
	mode, err := s.views.Get(ctx, req.Session)
	if err != nil {
		log.Printf("[discovery] view preference for %s: %v", req.Session, err)
	}
	return mode
}

func (s *discoveryService) dismissedSet(ctx context.Context, session string) filter.IDSet {
	if s.dismissed == nil {
		return nil
	}
	ids, err := s.dismissed.List(ctx, session)
	if err != nil {
		log.Printf("[discovery] dismissed set for %s: %v", session, err)
		return nil
	}
	return filter.NewIDSet(ids...)
}
