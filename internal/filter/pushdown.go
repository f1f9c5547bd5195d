package filter

import (
	"slices"
	"time"

	"smorg/backend/internal/domain"
)

// Pushdown holds the predicates an EventStore can apply before returning
// data. Stores may apply any subset of them; Matches re-applies all of them
// in memory with identical results.
type Pushdown struct {
	MinDate      time.Time
	PriceMin     *float64
	PriceMax     *float64
	EnergyLevels []int
}

// PushdownFor derives the store predicates from the filter configuration.
// An inverted or degenerate price range collapses to an exact match on Min.
func PushdownFor(f domain.FilterConfig, now time.Time) Pushdown {
	p := Pushdown{MinDate: now}
	if f.PriceRange != nil {
		lo, hi := f.PriceRange.Min, f.PriceRange.Max
		if lo >= hi {
			hi = lo
		}
		p.PriceMin = &lo
		p.PriceMax = &hi
	}
	if len(f.EnergyLevels) > 0 {
		p.EnergyLevels = slices.Clone(f.EnergyLevels)
	}
	return p
}

func (p Pushdown) Matches(e domain.Event) bool {
	if e.Date.Before(p.MinDate) {
		return false
	}
	switch {
	case p.PriceMin != nil && p.PriceMax != nil:
		if !(domain.PriceRange{Min: *p.PriceMin, Max: *p.PriceMax}).Contains(e.Cost) {
			return false
		}
	case p.PriceMin != nil:
		if e.Cost < *p.PriceMin {
			return false
		}
	case p.PriceMax != nil:
		if e.Cost > *p.PriceMax {
			return false
		}
	}
	if len(p.EnergyLevels) > 0 {
		if e.EnergyLevel == nil || !slices.Contains(p.EnergyLevels, *e.EnergyLevel) {
			return false
		}
	}
	return true
}
