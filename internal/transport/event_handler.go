package transport

import (
	"fmt"
	"net/http"
	"time"

	"smorg/backend/internal/domain"
	"smorg/backend/internal/service"
	"smorg/backend/internal/share"
)

type ShareBuilder interface {
	Build(e domain.Event) share.Links
}

type EventHandler struct {
	service service.EventService
	share   ShareBuilder
	mux     *http.ServeMux
}

func NewEventHandler(svc service.EventService, sb ShareBuilder) *EventHandler {
	h := &EventHandler{
		service: svc,
		share:   sb,
		mux:     http.NewServeMux(),
	}
	h.routes()
	return h
}

func (h *EventHandler) routes() {
	// Collection routes (matched at root of stripped prefix)
	h.mux.HandleFunc("POST /{$}", h.handleCreate)
	h.mux.HandleFunc("POST /batch", h.handleBatchCreate)
	h.mux.HandleFunc("POST /prune", h.handlePrune)

	// Item routes (matched with path value)
	h.mux.HandleFunc("GET /{id}", h.handleGet)
	h.mux.HandleFunc("PUT /{id}", h.handleUpdate)
	h.mux.HandleFunc("DELETE /{id}", h.handleDelete)
	h.mux.HandleFunc("GET /{id}/share", h.handleShare)
}

func (h *EventHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.mux.ServeHTTP(w, r)
}

// handleCreate creates a new event
// @Summary Create Event
// @Description Ingest a single event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body domain.EventDTO true "Event Data"
// @Success 201 {object} domain.APIResponse{data=string} "Returns Event Id"
// @Failure 400 {object} domain.APIResponse{error=string}
// @Router /events [post]
func (h *EventHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var eventDTO domain.EventDTO
	if err := decodeAndValidate(r, &eventDTO); err != nil {
		respondError(w, err)
		return
	}
	event, err := domain.EventDTOToModel(&eventDTO)
	if err != nil {
		respondError(w, domain.ErrValidation(err.Error()))
		return
	}
	if err := h.service.CreateEvent(r.Context(), event); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, domain.APIResponse{Data: event.Id})
}

// handleBatchCreate creates multiple events
// @Summary Batch Create Events
// @Description Ingest up to 500 events in one go
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param batch body domain.BatchEventRequest true "Batch Data"
// @Success 201 {object} domain.APIResponse{data=string}
// @Failure 400 {object} domain.APIResponse{error=string}
// @Router /events/batch [post]
func (h *EventHandler) handleBatchCreate(w http.ResponseWriter, r *http.Request) {
	var req domain.BatchEventRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err)
		return
	}

	events := make([]*domain.Event, 0, len(req.Events))
	for i := range req.Events {
		model, err := domain.EventDTOToModel(&req.Events[i])
		if err != nil {
			respondError(w, domain.ErrValidation(fmt.Sprintf("Item %d: %v", i, err)))
			return
		}
		events = append(events, model)
	}

	if err := h.service.BatchCreateEvents(r.Context(), events); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, domain.APIResponse{Data: fmt.Sprintf("Successfully created %d events", len(events))})
}

// handlePrune deletes past events
// @Summary Prune Events
// @Description Delete events that started before the given time (default: now)
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param before query string false "Cutoff (RFC3339)"
// @Success 200 {object} domain.APIResponse{data=int} "Number of deleted events"
// @Failure 400 {object} domain.APIResponse{error=string}
// @Router /events/prune [post]
func (h *EventHandler) handlePrune(w http.ResponseWriter, r *http.Request) {
	before := time.Now().UTC()
	if v := r.URL.Query().Get("before"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondError(w, domain.ErrValidation("before must be an RFC3339 timestamp"))
			return
		}
		before = t
	}

	n, err := h.service.PruneEvents(r.Context(), before)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.APIResponse{Data: n})
}

// handleUpdate replaces an existing event
// @Summary Update Event
// @Description Replace the fields of an event; id and created_at are kept
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event Id"
// @Param event body domain.EventDTO true "Event Data"
// @Success 200 {object} domain.APIResponse{data=string}
// @Failure 400 {object} domain.APIResponse{error=string}
// @Failure 404 {object} domain.APIResponse{error=string}
// @Router /events/{id} [put]
func (h *EventHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var eventDTO domain.EventDTO
	if err := decodeAndValidate(r, &eventDTO); err != nil {
		respondError(w, err)
		return
	}
	event, err := domain.EventDTOToModel(&eventDTO)
	if err != nil {
		respondError(w, domain.ErrValidation(err.Error()))
		return
	}
	if err := h.service.UpdateEvent(r.Context(), id, event); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.APIResponse{Data: "Updated successfully"})
}

// handleGet retrieves a single event
// @Summary Get Event
// @Description Get details of a specific event by Id
// @Tags events
// @Produce json
// @Param id path string true "Event Id"
// @Success 200 {object} domain.APIResponse{data=domain.Event}
// @Failure 404 {object} domain.APIResponse{error=string}
// @Router /events/{id} [get]
func (h *EventHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	event, err := h.service.GetEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.APIResponse{Data: event})
}

// handleShare returns the share links of an event
// @Summary Share Event
// @Description Link, text and share intents (email, Twitter, Facebook, WhatsApp)
// @Tags events
// @Produce json
// @Param id path string true "Event Id"
// @Success 200 {object} domain.APIResponse{data=share.Links}
// @Failure 404 {object} domain.APIResponse{error=string}
// @Router /events/{id}/share [get]
func (h *EventHandler) handleShare(w http.ResponseWriter, r *http.Request) {
	event, err := h.service.GetEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.APIResponse{Data: h.share.Build(*event)})
}

// handleDelete deletes an event
// @Summary Delete Event
// @Description Remove an event by Id
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event Id"
// @Success 200 {object} domain.APIResponse{data=string}
// @Failure 404 {object} domain.APIResponse{error=string}
// @Router /events/{id} [delete]
func (h *EventHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteEvent(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.APIResponse{Data: "Deleted successfully"})
}
