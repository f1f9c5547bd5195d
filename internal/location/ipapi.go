package location

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const IPAPIBaseURL = "https://ipapi.co"

// IPAPI resolves an approximate location from a network address.
type IPAPI struct {
	BaseURL string
	client  *http.Client
}

func NewIPAPI(baseURL string) *IPAPI {
	if baseURL == "" {
		baseURL = IPAPIBaseURL
	}
	return &IPAPI{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: httpTimeout},
	}
}

type ipapiResponse struct {
	City       string  `json:"city"`
	Region     string  `json:"region"`
	RegionCode string  `json:"region_code"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Error      bool    `json:"error"`
	Reason     string  `json:"reason"`
}

// LookupByIP looks up ip, or the caller's own address when ip is empty.
func (c *IPAPI) LookupByIP(ctx context.Context, ip string) (Place, error) {
	endpoint := c.BaseURL + "/json/"
	if ip != "" {
		endpoint = fmt.Sprintf("%s/%s/json/", c.BaseURL, ip)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Place{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return Place{}, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Place{}, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Place{}, fmt.Errorf("ipapi returned %d: %s", resp.StatusCode, string(body))
	}

	var r ipapiResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return Place{}, fmt.Errorf("json unmarshal: %w", err)
	}
	if r.Error {
		return Place{}, fmt.Errorf("ipapi: %s", r.Reason)
	}
	if r.City == "" {
		return Place{}, fmt.Errorf("ip lookup: %w", ErrNoResult)
	}

	state := r.RegionCode
	if state == "" {
		state = r.Region
	}
	return Place{City: r.City, State: state, Latitude: r.Latitude, Longitude: r.Longitude}, nil
}
