package domain

import (
	"fmt"
	"math"
	"time"
)

// Event represents the database entity and the API payload.
// Distance is request-scoped and never written back to the store.
type Event struct {
	Id          string     `json:"id" firestore:"id"`
	Title       string     `json:"title" firestore:"title"`
	Description string     `json:"description,omitempty" firestore:"description"`
	Date        time.Time  `json:"date" firestore:"date"`
	EndDate     *time.Time `json:"end_date,omitempty" firestore:"end_date"`
	VenueName   string     `json:"venue_name,omitempty" firestore:"venue_name"`
	Address     string     `json:"address,omitempty" firestore:"address"`
	City        string     `json:"city" firestore:"city"`
	State       string     `json:"state" firestore:"state"`
	Latitude    float64    `json:"latitude" firestore:"latitude"`
	Longitude   float64    `json:"longitude" firestore:"longitude"`
	Cost        float64    `json:"cost" firestore:"cost"`
	CostDisplay string     `json:"cost_display" firestore:"cost_display"`
	ImageURL    string     `json:"image_url,omitempty" firestore:"image_url"`
	SourceURL   string     `json:"source_url,omitempty" firestore:"source_url"`
	EnergyLevel *int       `json:"energy_level" firestore:"energy_level"`
	EventTypes  []string   `json:"event_types" firestore:"event_types"`
	Vibes       []string   `json:"vibes" firestore:"vibes"`
	CreatedAt   time.Time  `json:"created_at" firestore:"created_at"`
	Distance    *float64   `json:"distance,omitempty" firestore:"-"`
}

// VenueDisplay returns the venue name, or "city, state" when the event has none.
func (e Event) VenueDisplay() string {
	if e.VenueName != "" {
		return e.VenueName
	}
	return fmt.Sprintf("%s, %s", e.City, e.State)
}

// CostLabel returns the stored display string, falling back to a label derived from Cost.
func (e Event) CostLabel() string {
	if e.CostDisplay != "" {
		return e.CostDisplay
	}
	if e.Cost == 0 {
		return "Free"
	}
	if e.Cost == math.Trunc(e.Cost) {
		return fmt.Sprintf("$%.0f", e.Cost)
	}
	return fmt.Sprintf("$%.2f", e.Cost)
}

// WithDistance returns a copy of the event carrying the given distance.
func (e Event) WithDistance(miles float64) Event {
	e.Distance = &miles
	return e
}

type LocationStatus string

const (
	StatusDetecting  LocationStatus = "detecting"
	StatusDetected   LocationStatus = "detected"
	StatusDefault    LocationStatus = "default"
	StatusIPFallback LocationStatus = "ip-fallback"
)

// UserLocation is the resolved geographic context used for filtering.
type UserLocation struct {
	City      string         `json:"city"`
	State     string         `json:"state"`
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	Status    LocationStatus `json:"status"`
	Message   string         `json:"message,omitempty"`
}

// Label renders the location the way the location badge shows it.
func (l UserLocation) Label() string {
	return fmt.Sprintf("%s, %s", l.City, l.State)
}

// PriceRange is an inclusive [Min, Max] cost bound.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether cost falls inside the range. Inverted and
// degenerate ranges match only cost == Min.
func (p PriceRange) Contains(cost float64) bool {
	if p.Min >= p.Max {
		return cost == p.Min
	}
	return cost >= p.Min && cost <= p.Max
}

const (
	DefaultDistanceMiles = 25
	MinDistanceMiles     = 1
	MaxDistanceMiles     = 100
)

// FilterConfig is the user's current filter intent. A nil PriceRange and
// empty sets leave their axis unfiltered.
type FilterConfig struct {
	DistanceMiles float64     `json:"distance"`
	PriceRange    *PriceRange `json:"price_range,omitempty"`
	Interests     []string    `json:"interests"`
	EnergyLevels  []int       `json:"energy_levels"`
	Vibes         []string    `json:"vibes"`
	SearchQuery   string      `json:"search_query,omitempty"`
}

// DefaultFilterConfig is the "clear all filters" configuration.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		DistanceMiles: DefaultDistanceMiles,
		Interests:     []string{},
		EnergyLevels:  []int{},
		Vibes:         []string{},
	}
}

func (f FilterConfig) HasActiveFilters() bool {
	return f.PriceRange != nil || f.ActiveCount() > 0
}

// ActiveCount is the number of selected tags shown on the filter button.
func (f FilterConfig) ActiveCount() int {
	return len(f.Interests) + len(f.EnergyLevels) + len(f.Vibes)
}

type ViewMode string

const (
	ViewGrid     ViewMode = "grid"
	ViewCalendar ViewMode = "calendar"
)

func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case ViewGrid, ViewCalendar:
		return ViewMode(s), nil
	}
	return "", ErrValidation(fmt.Sprintf("view must be one of grid, calendar; got %q", s))
}

// APIResponse is a standard wrapper for responses
type APIResponse struct {
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
	Meta  interface{} `json:"meta,omitempty"`
}
