package location

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	NominatimBaseURL = "https://nominatim.openstreetmap.org"
	userAgent        = "smorg-events/1.0"
	httpTimeout      = 10 * time.Second
)

// Nominatim implements forward and reverse geocoding against an
// OpenStreetMap Nominatim server.
type Nominatim struct {
	BaseURL     string
	CountryCode string // restricts forward search, e.g. "us"
	client      *http.Client
}

func NewNominatim(baseURL string) *Nominatim {
	if baseURL == "" {
		baseURL = NominatimBaseURL
	}
	return &Nominatim{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		CountryCode: "us",
		client:      &http.Client{Timeout: httpTimeout},
	}
}

type nominatimAddress struct {
	City    string `json:"city"`
	Town    string `json:"town"`
	Village string `json:"village"`
	State   string `json:"state"`
}

func (a nominatimAddress) locality() string {
	switch {
	case a.City != "":
		return a.City
	case a.Town != "":
		return a.Town
	}
	return a.Village
}

type nominatimPlace struct {
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	DisplayName string           `json:"display_name"`
	Address     nominatimAddress `json:"address"`
}

func (n *Nominatim) ReverseGeocode(ctx context.Context, lat, lon float64) (Place, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("format", "json")

	var place nominatimPlace
	if err := n.get(ctx, "/reverse", params, &place); err != nil {
		return Place{}, err
	}
	city := place.Address.locality()
	if city == "" {
		return Place{}, fmt.Errorf("reverse geocode: %w", ErrNoResult)
	}
	return Place{City: city, State: place.Address.State, Latitude: lat, Longitude: lon}, nil
}

func (n *Nominatim) Geocode(ctx context.Context, query string) (Place, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("addressdetails", "1")
	if n.CountryCode != "" {
		params.Set("countrycodes", n.CountryCode)
	}

	var results []nominatimPlace
	if err := n.get(ctx, "/search", params, &results); err != nil {
		return Place{}, err
	}
	if len(results) == 0 {
		return Place{}, fmt.Errorf("geocode %q: %w", query, ErrNoResult)
	}

	r := results[0]
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return Place{}, fmt.Errorf("geocode lat %q: %w", r.Lat, err)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return Place{}, fmt.Errorf("geocode lon %q: %w", r.Lon, err)
	}

	city := r.Address.locality()
	if city == "" {
		city = strings.TrimSpace(strings.Split(r.DisplayName, ",")[0])
	}
	state := r.Address.State
	if state == "" {
		state = "Unknown"
	}
	return Place{City: city, State: state, Latitude: lat, Longitude: lon}, nil
}

func (n *Nominatim) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := n.BaseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("http GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nominatim returned %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	return nil
}
