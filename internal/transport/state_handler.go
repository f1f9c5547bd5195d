package transport

import (
	"context"
	"net/http"

	"smorg/backend/internal/domain"
)

// DismissedStore is satisfied by *state.DismissedSet.
type DismissedStore interface {
	List(ctx context.Context, session string) ([]string, error)
	Dismiss(ctx context.Context, session, id string) ([]string, error)
	Undo(ctx context.Context, session, id string) ([]string, error)
	Clear(ctx context.Context, session string) error
}

// ViewStore is satisfied by *state.ViewPreference.
type ViewStore interface {
	Get(ctx context.Context, session string) (domain.ViewMode, error)
	Set(ctx context.Context, session string, mode domain.ViewMode) error
}

// StateHandler exposes the per-session dismissed set and view preference.
type StateHandler struct {
	dismissed DismissedStore
	views     ViewStore
	mux       *http.ServeMux
}

func NewStateHandler(dismissed DismissedStore, views ViewStore) *StateHandler {
	h := &StateHandler{
		dismissed: dismissed,
		views:     views,
		mux:       http.NewServeMux(),
	}
	h.routes()
	return h
}

func (h *StateHandler) routes() {
	h.mux.HandleFunc("GET /dismissed", h.handleListDismissed)
	h.mux.HandleFunc("DELETE /dismissed", h.handleClearDismissed)
	h.mux.HandleFunc("POST /dismissed/{id}", h.handleDismiss)
	h.mux.HandleFunc("DELETE /dismissed/{id}", h.handleUndo)

	h.mux.HandleFunc("GET /preferences/view", h.handleGetView)
	h.mux.HandleFunc("PUT /preferences/view", h.handleSetView)
}

func (h *StateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.mux.ServeHTTP(w, r)
}

// handleListDismissed
// @Summary List Dismissed Events
// @Tags dismissed
// @Produce json
// @Param X-Session-ID header string false "Guest session id"
// @Success 200 {object} domain.APIResponse{data=[]string}
// @Router /dismissed [get]
func (h *StateHandler) handleListDismissed(w http.ResponseWriter, r *http.Request) {
	ids, err := h.dismissed.List(r.Context(), SessionFrom(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.APIResponse{Data: ids})
}

// handleDismiss hides an event from discovery
// @Summary Dismiss Event
// @Tags dismissed
// @Produce json
// @Param X-Session-ID header string false "Guest session id"
// @Param id path string true "Event Id"
// @Success 200 {object} domain.APIResponse{data=[]string} "The dismissed set"
// @Router /dismissed/{id} [post]
func (h *StateHandler) handleDismiss(w http.ResponseWriter, r *http.Request) {
	ids, err := h.dismissed.Dismiss(r.Context(), SessionFrom(r.Context()), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.APIResponse{Data: ids})
}

// handleUndo restores a dismissed event
// @Summary Undo Dismiss
// @Tags dismissed
// @Produce json
// @Param X-Session-ID header string false "Guest session id"
// @Param id path string true "Event Id"
// @Success 200 {object} domain.APIResponse{data=[]string} "The dismissed set"
// @Router /dismissed/{id} [delete]
func (h *StateHandler) handleUndo(w http.ResponseWriter, r *http.Request) {
	ids, err := h.dismissed.Undo(r.Context(), SessionFrom(r.Context()), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.APIResponse{Data: ids})
}

// handleClearDismissed
// @Summary Clear Dismissed Events
// @Tags dismissed
// @Produce json
// @Param X-Session-ID header string false "Guest session id"
// @Success 200 {object} domain.APIResponse{data=[]string}
// @Router /dismissed [delete]
func (h *StateHandler) handleClearDismissed(w http.ResponseWriter, r *http.Request) {
	if err := h.dismissed.Clear(r.Context(), SessionFrom(r.Context())); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.APIResponse{Data: []string{}})
}

// handleGetView
// @Summary Get View Preference
// @Tags preferences
// @Produce json
// @Param X-Session-ID header string false "Guest session id"
// @Success 200 {object} domain.APIResponse{data=string} "grid or calendar"
// @Router /preferences/view [get]
func (h *StateHandler) handleGetView(w http.ResponseWriter, r *http.Request) {
	mode, err := h.views.Get(r.Context(), SessionFrom(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.APIResponse{Data: mode})
}

// handleSetView
// @Summary Set View Preference
// @Tags preferences
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Guest session id"
// @Param view body domain.ViewDTO true "View"
// @Success 200 {object} domain.APIResponse{data=string}
// @Failure 400 {object} domain.APIResponse{error=string}
// @Router /preferences/view [put]
func (h *StateHandler) handleSetView(w http.ResponseWriter, r *http.Request) {
	var dto domain.ViewDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		respondError(w, err)
		return
	}
	mode := domain.ViewMode(dto.View)
	if err := h.views.Set(r.Context(), SessionFrom(r.Context()), mode); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, domain.APIResponse{Data: mode})
}
