package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers exposes the published view and the four write commands over HTTP.
type Handlers struct {
	recon    *Reconciler
	commands *Commands
}

func NewHandlers(recon *Reconciler, commands *Commands) *Handlers {
	return &Handlers{recon: recon, commands: commands}
}

func (h *Handlers) ViewHandler(w http.ResponseWriter, r *http.Request) {
	view := h.recon.View()

	w.Header().Set("Content-Type", "application/json")
	if view.StaleSince != nil {
		w.Header().Set("X-Data-Status", "stale since "+view.StaleSince.Format("15:04:05"))
	}
	if err := json.NewEncoder(w).Encode(view); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (h *Handlers) CreateAlertHandler(w http.ResponseWriter, r *http.Request) {
	var input AlertInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.commands.CreateAlert(r.Context(), input); err != nil {
		writeCommandError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handlers) ResolveAlertHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "Missing alert id", http.StatusBadRequest)
		return
	}

	if err := h.commands.ResolveAlert(r.Context(), id); err != nil {
		writeCommandError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handlers) UpdateZoneHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "Missing zone id", http.StatusBadRequest)
		return
	}

	var update ZoneUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.commands.UpdateZone(r.Context(), id, update); err != nil {
		writeCommandError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handlers) UpdateDeviceHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "Missing device id", http.StatusBadRequest)
		return
	}

	var update DeviceUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.commands.UpdateDevice(r.Context(), id, update); err != nil {
		writeCommandError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func writeCommandError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
	case errors.Is(err, ErrWriteFailed):
		http.Error(w, "Write rejected by store", http.StatusBadGateway)
	default:
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}
