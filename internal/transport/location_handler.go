package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"

	"smorg/backend/internal/domain"
	"smorg/backend/internal/location"
)

// LocationService is satisfied by *location.Resolver.
type LocationService interface {
	Current(ctx context.Context, session string) domain.UserLocation
	Detect(ctx context.Context, req location.DetectRequest) domain.UserLocation
	Update(ctx context.Context, session string, loc domain.UserLocation) (domain.UserLocation, error)
	Search(ctx context.Context, session, query string) (domain.UserLocation, error)
	Reset(ctx context.Context, req location.DetectRequest) domain.UserLocation
}

type LocationHandler struct {
	service LocationService
	mux     *http.ServeMux
}

func NewLocationHandler(svc LocationService) *LocationHandler {
	h := &LocationHandler{
		service: svc,
		mux:     http.NewServeMux(),
	}
	h.routes()
	return h
}

func (h *LocationHandler) routes() {
	h.mux.HandleFunc("GET /location", h.handleGet)
	h.mux.HandleFunc("PUT /location", h.handleUpdate)
	h.mux.HandleFunc("DELETE /location", h.handleReset)
	h.mux.HandleFunc("POST /location/detect", h.handleDetect)
	h.mux.HandleFunc("POST /location/search", h.handleSearch)
}

func (h *LocationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.mux.ServeHTTP(w, r)
}

// handleGet returns the session's location
// @Summary Get Location
// @Description The stored location, or the default location when none is stored
// @Tags location
// @Produce json
// @Param X-Session-ID header string false "Guest session id"
// @Success 200 {object} domain.APIResponse{data=domain.UserLocation}
// @Router /location [get]
func (h *LocationHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	loc := h.service.Current(r.Context(), SessionFrom(r.Context()))
	respondJSON(w, http.StatusOK, domain.APIResponse{Data: loc})
}

// handleDetect resolves the session's location
// @Summary Detect Location
// @Description A stored location wins. Otherwise the reported device position is reverse geocoded, falling back to an IP lookup and then the default.
// @Tags location
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Guest session id"
// @Param report body domain.DetectDTO false "Device position or position error"
// @Success 200 {object} domain.APIResponse{data=domain.UserLocation}
// @Failure 400 {object} domain.APIResponse{error=string}
// @Router /location/detect [post]
func (h *LocationHandler) handleDetect(w http.ResponseWriter, r *http.Request) {
	req, err := detectRequest(r)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.APIResponse{Data: h.service.Detect(r.Context(), req)})
}

// handleReset clears the stored location and detects again
// @Summary Reset Location
// @Tags location
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Guest session id"
// @Param report body domain.DetectDTO false "Device position or position error"
// @Success 200 {object} domain.APIResponse{data=domain.UserLocation}
// @Router /location [delete]
func (h *LocationHandler) handleReset(w http.ResponseWriter, r *http.Request) {
	req, err := detectRequest(r)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.APIResponse{Data: h.service.Reset(r.Context(), req)})
}

// handleUpdate stores a fully specified location
// @Summary Set Location
// @Tags location
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Guest session id"
// @Param location body domain.LocationDTO true "Location"
// @Success 200 {object} domain.APIResponse{data=domain.UserLocation}
// @Failure 400 {object} domain.APIResponse{error=string}
// @Router /location [put]
func (h *LocationHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var dto domain.LocationDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		respondError(w, err)
		return
	}
	loc, err := h.service.Update(r.Context(), SessionFrom(r.Context()), domain.UserLocation{
		City:      dto.City,
		State:     dto.State,
		Latitude:  *dto.Latitude,
		Longitude: *dto.Longitude,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.APIResponse{Data: loc})
}

// handleSearch sets the location from a typed address
// @Summary Search Location
// @Description Geocodes a free-text address. "City, State" is accepted when geocoding finds nothing.
// @Tags location
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Guest session id"
// @Param address body domain.AddressDTO true "Address"
// @Success 200 {object} domain.APIResponse{data=domain.UserLocation}
// @Failure 400 {object} domain.APIResponse{error=string}
// @Router /location/search [post]
func (h *LocationHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	var dto domain.AddressDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		respondError(w, err)
		return
	}
	loc, err := h.service.Search(r.Context(), SessionFrom(r.Context()), dto.Query)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.APIResponse{Data: loc})
}

// detectRequest reads the optional device report. An empty body means the
// client has no device position to offer.
func detectRequest(r *http.Request) (location.DetectRequest, error) {
	req := location.DetectRequest{
		Session:  SessionFrom(r.Context()),
		ClientIP: clientIP(r),
	}

	var dto domain.DetectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		if errors.Is(err, io.EOF) {
			return req, nil
		}
		return req, domain.ErrValidation("Invalid JSON body")
	}
	if err := domain.Validate.Struct(dto); err != nil {
		return req, domain.ErrValidation(err.Error())
	}
	if (dto.Latitude == nil) != (dto.Longitude == nil) {
		return req, domain.ErrValidation("latitude and longitude must be sent together")
	}
	if dto.Latitude != nil || dto.Error != "" {
		req.Device = location.FromReport(dto)
	}
	return req, nil
}

// clientIP returns the caller's public address, or "" when it is local and
// the lookup should use the server's own address.
func clientIP(r *http.Request) string {
	raw := r.RemoteAddr
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		raw = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if host, _, err := net.SplitHostPort(raw); err == nil {
		raw = host
	}
	ip := net.ParseIP(raw)
	if ip == nil || ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
