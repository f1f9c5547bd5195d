package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
)

var Validate = validator.New()

// EventDTO is used for API input when ingesting events.
type EventDTO struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Date        string   `json:"date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndDate     string   `json:"end_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	VenueName   string   `json:"venue_name"`
	Address     string   `json:"address"`
	City        string   `json:"city" validate:"required"`
	State       string   `json:"state" validate:"required"`
	Latitude    *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Cost        float64  `json:"cost" validate:"gte=0"`
	CostDisplay string   `json:"cost_display"`
	ImageURL    string   `json:"image_url" validate:"omitempty,url"`
	SourceURL   string   `json:"source_url" validate:"omitempty,url"`
	EnergyLevel *int     `json:"energy_level" validate:"omitempty,gte=1"`
	EventTypes  []string `json:"event_types" validate:"dive,required"`
	Vibes       []string `json:"vibes" validate:"dive,required"`
}

type BatchEventRequest struct {
	Events []EventDTO `json:"events" validate:"required,min=1,max=500,dive"`
}

// EventDTOToModel converts a validated DTO into the stored entity.
func EventDTOToModel(dto *EventDTO) (*Event, error) {
	start, err := time.Parse(time.RFC3339, dto.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}
	event := &Event{
		Title:       dto.Title,
		Description: dto.Description,
		Date:        start.UTC(),
		VenueName:   dto.VenueName,
		Address:     dto.Address,
		City:        dto.City,
		State:       dto.State,
		Latitude:    *dto.Latitude,
		Longitude:   *dto.Longitude,
		Cost:        dto.Cost,
		CostDisplay: dto.CostDisplay,
		ImageURL:    dto.ImageURL,
		SourceURL:   dto.SourceURL,
		EnergyLevel: dto.EnergyLevel,
		EventTypes:  dto.EventTypes,
		Vibes:       dto.Vibes,
	}
	if dto.EndDate != "" {
		end, err := time.Parse(time.RFC3339, dto.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date: %w", err)
		}
		if end.Before(start) {
			return nil, fmt.Errorf("end_date cannot be before date")
		}
		end = end.UTC()
		event.EndDate = &end
	}
	if event.CostDisplay == "" {
		event.CostDisplay = event.CostLabel()
	}
	if event.EventTypes == nil {
		event.EventTypes = []string{}
	}
	if event.Vibes == nil {
		event.Vibes = []string{}
	}
	return event, nil
}

// DiscoverDTO holds the raw query parameters of a discovery request.
type DiscoverDTO struct {
	Distance     float64  `validate:"omitempty,gte=1,lte=100"`
	PriceMin     *float64 `validate:"omitempty,gte=0"`
	PriceMax     *float64 `validate:"omitempty,gte=0"`
	Interests    []string `validate:"dive,required"`
	EnergyLevels []int    `validate:"dive,gte=1"`
	Vibes        []string `validate:"dive,required"`
	Query        string   `validate:"max=200"`
	View         string   `validate:"omitempty,oneof=grid calendar"`
	Seq          uint64
}

// FilterConfig converts the query into the filter intent. When only one
// price bound is given the other is open.
func (d DiscoverDTO) FilterConfig() FilterConfig {
	f := FilterConfig{
		DistanceMiles: d.Distance,
		Interests:     d.Interests,
		EnergyLevels:  d.EnergyLevels,
		Vibes:         d.Vibes,
		SearchQuery:   d.Query,
	}
	if d.PriceMin != nil || d.PriceMax != nil {
		pr := PriceRange{Min: 0, Max: math.MaxFloat64}
		if d.PriceMin != nil {
			pr.Min = *d.PriceMin
		}
		if d.PriceMax != nil {
			pr.Max = *d.PriceMax
		}
		f.PriceRange = &pr
	}
	return f
}

// LocationDTO is a fully specified location set by the user.
type LocationDTO struct {
	City      string   `json:"city" validate:"required"`
	State     string   `json:"state" validate:"required"`
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

// DetectDTO carries what the device reported for its position, if anything.
// Latitude and Longitude must be sent together.
type DetectDTO struct {
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Error     string   `json:"error" validate:"omitempty,oneof=denied unavailable timeout unsupported"`
}

type AddressDTO struct {
	Query string `json:"query" validate:"required,max=200"`
}

type ViewDTO struct {
	View string `json:"view" validate:"required,oneof=grid calendar"`
}
