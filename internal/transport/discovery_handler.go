package transport

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"smorg/backend/internal/domain"
	"smorg/backend/internal/filter"
	"smorg/backend/internal/service"
)

type DiscoveryHandler struct {
	service service.DiscoveryService
	mux     *http.ServeMux
}

func NewDiscoveryHandler(svc service.DiscoveryService) *DiscoveryHandler {
	h := &DiscoveryHandler{
		service: svc,
		mux:     http.NewServeMux(),
	}
	h.routes()
	return h
}

func (h *DiscoveryHandler) routes() {
	h.mux.HandleFunc("GET /discover", h.handleDiscover)
	h.mux.HandleFunc("GET /filters/options", h.handleOptions)
}

func (h *DiscoveryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.mux.ServeHTTP(w, r)
}

// DiscoverMeta describes how the visible list was produced.
type DiscoverMeta struct {
	State          string                `json:"state"`
	Retryable      bool                  `json:"retryable,omitempty"`
	Count          int                   `json:"count"`
	View           domain.ViewMode       `json:"view"`
	Location       domain.UserLocation   `json:"location"`
	Filters        domain.FilterConfig   `json:"filters"`
	ActiveFilters  int                   `json:"active_filters"`
	HasActive      bool                  `json:"has_active_filters"`
	AvailablePrice filter.AvailableRange `json:"available_price"`
	Seq            uint64                `json:"seq,omitempty"`
}

// handleDiscover returns the visible events for the session
// @Summary Discover Events
// @Description Future events near the session's location, filtered, deduplicated and sorted by date. In calendar view the data is grouped by day.
// @Tags discovery
// @Produce json
// @Param X-Session-ID header string false "Guest session id"
// @Param distance query number false "Radius in miles (1-100, default 25)"
// @Param price_min query number false "Minimum cost"
// @Param price_max query number false "Maximum cost"
// @Param interests query string false "Comma separated interests"
// @Param energy query string false "Comma separated energy levels"
// @Param vibes query string false "Comma separated vibe ids"
// @Param q query string false "Search text (title, city, venue)"
// @Param view query string false "grid or calendar (default: stored preference)"
// @Param tz query string false "IANA zone for calendar days (default UTC)"
// @Param seq query int false "Client request sequence; older requests get 409"
// @Success 200 {object} domain.APIResponse{data=[]domain.Event,meta=DiscoverMeta}
// @Failure 400 {object} domain.APIResponse{error=string}
// @Failure 409 {object} domain.APIResponse{error=string}
// @Router /discover [get]
func (h *DiscoveryHandler) handleDiscover(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	dto, err := parseDiscoverQuery(q)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := domain.Validate.Struct(dto); err != nil {
		respondError(w, domain.ErrValidation(err.Error()))
		return
	}

	var tz *time.Location
	if name := q.Get("tz"); name != "" {
		if tz, err = time.LoadLocation(name); err != nil {
			respondError(w, domain.ErrValidation("tz must be an IANA time zone"))
			return
		}
	}

	req := service.DiscoveryRequest{
		Session:     SessionFrom(r.Context()),
		Filters:     dto.FilterConfig(),
		SearchQuery: dto.Query,
		View:        domain.ViewMode(dto.View),
		Seq:         dto.Seq,
		TZ:          tz,
	}

	res, err := h.service.Discover(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}

	meta := DiscoverMeta{
		State:          res.State,
		Retryable:      res.Retryable,
		Count:          len(res.Events),
		View:           res.View,
		Location:       res.Location,
		Filters:        res.Filters,
		ActiveFilters:  res.Filters.ActiveCount(),
		HasActive:      res.Filters.HasActiveFilters(),
		AvailablePrice: res.Available,
		Seq:            dto.Seq,
	}
	var data interface{} = res.Events
	if res.View == domain.ViewCalendar {
		data = res.Days
		if res.Days == nil {
			data = []filter.DayBucket{}
		}
	}
	respondJSON(w, http.StatusOK, domain.APIResponse{Data: data, Meta: meta})
}

// handleOptions lists the selectable filter values
// @Summary Filter Options
// @Description Interests, vibes, energy levels, distance bounds and the price range of upcoming events
// @Tags discovery
// @Produce json
// @Success 200 {object} domain.APIResponse{data=service.FilterOptions}
// @Router /filters/options [get]
func (h *DiscoveryHandler) handleOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.Options(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.APIResponse{Data: opts})
}

func parseDiscoverQuery(q url.Values) (domain.DiscoverDTO, error) {
	dto := domain.DiscoverDTO{
		Interests: listParam(q, "interests"),
		Vibes:     listParam(q, "vibes"),
		Query:     q.Get("q"),
		View:      q.Get("view"),
	}

	var err error
	if v := q.Get("distance"); v != "" {
		if dto.Distance, err = strconv.ParseFloat(v, 64); err != nil {
			return dto, domain.ErrValidation("distance must be a valid number")
		}
	}
	if dto.PriceMin, err = floatParam(q, "price_min"); err != nil {
		return dto, err
	}
	if dto.PriceMax, err = floatParam(q, "price_max"); err != nil {
		return dto, err
	}
	for _, v := range listParam(q, "energy") {
		level, err := strconv.Atoi(v)
		if err != nil {
			return dto, domain.ErrValidation("energy must be a list of integers")
		}
		dto.EnergyLevels = append(dto.EnergyLevels, level)
	}
	if v := q.Get("seq"); v != "" {
		if dto.Seq, err = strconv.ParseUint(v, 10, 64); err != nil {
			return dto, domain.ErrValidation("seq must be a non-negative integer")
		}
	}
	return dto, nil
}

func floatParam(q url.Values, key string) (*float64, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, domain.ErrValidation(key + " must be a valid number")
	}
	return &f, nil
}

// listParam accepts both repeated keys and comma separated values.
func listParam(q url.Values, key string) []string {
	var out []string
	for _, raw := range q[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
