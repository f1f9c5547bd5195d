package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"

	"smorg/backend/internal/domain"
	"smorg/backend/internal/service"
)

// Dependencies are the services the router exposes.
type Dependencies struct {
	Events     service.EventService
	Discovery  service.DiscoveryService
	Locations  LocationService
	Dismissed  DismissedStore
	Views      ViewStore
	Share      ShareBuilder
	PublicRead bool
}

// NewRouter initializes the main HTTP handler using Go 1.22+ ServeMux
func NewRouter(deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	// Ingest is admin only; guests may read when PublicRead is set.
	// Requests to /events (no slash) will be redirected to /events/ by ServeMux
	eventHandler := NewEventHandler(deps.Events, deps.Share)
	mux.Handle("/events/", WithAuthProtection(http.StripPrefix("/events", eventHandler), deps.PublicRead))

	discoveryHandler := NewDiscoveryHandler(deps.Discovery)
	mux.Handle("/discover", discoveryHandler)
	mux.Handle("/filters/", discoveryHandler)

	locationHandler := NewLocationHandler(deps.Locations)
	mux.Handle("/location", locationHandler)
	mux.Handle("/location/", locationHandler)

	stateHandler := NewStateHandler(deps.Dismissed, deps.Views)
	mux.Handle("/dismissed", stateHandler)
	mux.Handle("/dismissed/", stateHandler)
	mux.Handle("/preferences/", stateHandler)

	return mux
}

func respondJSON(w http.ResponseWriter, status int, resp domain.APIResponse) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		w.WriteHeader(http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, service.ErrStale):
		w.WriteHeader(http.StatusConflict)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
	_ = json.NewEncoder(w).Encode(domain.APIResponse{Error: err.Error()})
}

// decodeAndValidate reads a JSON body into dst and runs struct validation.
// All failures are validation errors.
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.ErrValidation("Invalid JSON body")
	}
	if err := domain.Validate.Struct(dst); err != nil {
		return domain.ErrValidation(err.Error())
	}
	return nil
}

func WithCompression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "br") {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Encoding", "br")
		w.Header().Add("Vary", "Accept-Encoding")
		br := brotli.NewWriter(w)
		defer func(br *brotli.Writer) {
			_ = br.Close()
		}(br)
		cw := &compressedWriter{w: w, cw: br}
		next.ServeHTTP(cw, r)
	})
}

type compressedWriter struct {
	w  http.ResponseWriter
	cw *brotli.Writer
}

func (cw *compressedWriter) Header() http.Header         { return cw.w.Header() }
func (cw *compressedWriter) Write(b []byte) (int, error) { return cw.cw.Write(b) }
func (cw *compressedWriter) WriteHeader(statusCode int)  { cw.w.WriteHeader(statusCode) }
