package location

import (
	"context"
	"errors"

	"smorg/backend/internal/domain"
)

var (
	ErrPermissionDenied    = errors.New("geolocation permission denied")
	ErrPositionUnavailable = errors.New("geolocation unavailable")
	ErrNoResult            = errors.New("no matching location")
)

type Position struct {
	Latitude  float64
	Longitude float64
}

// Place is a geocoded city/state with coordinates.
type Place struct {
	City      string
	State     string
	Latitude  float64
	Longitude float64
}

type Geolocator interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (Place, error)
}

type Geocoder interface {
	Geocode(ctx context.Context, query string) (Place, error)
}

type IPLocator interface {
	LookupByIP(ctx context.Context, ip string) (Place, error)
}

// Store persists the resolved location per session. Load returns nil when
// nothing has been stored.
type Store interface {
	Load(ctx context.Context, session string) (*domain.UserLocation, error)
	Save(ctx context.Context, session string, loc domain.UserLocation) error
	Clear(ctx context.Context, session string) error
}

// GeolocatorFunc adapts a function to the Geolocator interface.
type GeolocatorFunc func(ctx context.Context) (Position, error)

func (f GeolocatorFunc) CurrentPosition(ctx context.Context) (Position, error) {
	return f(ctx)
}

// FromReport turns what the client device reported into a Geolocator.
// A report without coordinates behaves like a refused or failed request.
func FromReport(dto domain.DetectDTO) Geolocator {
	return GeolocatorFunc(func(ctx context.Context) (Position, error) {
		switch {
		case dto.Error == "denied":
			return Position{}, ErrPermissionDenied
		case dto.Error != "":
			return Position{}, ErrPositionUnavailable
		case dto.Latitude == nil || dto.Longitude == nil:
			return Position{}, ErrPositionUnavailable
		}
		return Position{Latitude: *dto.Latitude, Longitude: *dto.Longitude}, nil
	})
}
