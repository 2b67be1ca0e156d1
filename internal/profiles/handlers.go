package profiles

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/fdg312/fittrack/internal/activity"
	"github.com/fdg312/fittrack/internal/storage"
	"github.com/fdg312/fittrack/internal/userctx"
)

// Handlers — HTTP-обработчики профиля.
type Handlers struct {
	service *Service
}

func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleGetProfile обрабатывает GET /v1/profile
func (h *Handlers) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.Profile(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, Response{
		OK:      true,
		Message: "User profile fetched successfully",
		Data:    profile,
	})
}

// HandleUpdateProfile обрабатывает PUT /v1/profile
func (h *Handlers) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.Update(r.Context(), userID(r), req); err != nil {
		writeServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, Response{OK: true, Message: "Profile updated successfully"})
}

func userID(r *http.Request) string {
	if id, ok := userctx.GetUserID(r.Context()); ok {
		return id
	}
	return "default"
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, activity.ErrInvalidDate):
		sendError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrUserNotFound):
		sendError(w, http.StatusNotFound, "User not found")
	default:
		sendError(w, http.StatusInternalServerError, err.Error())
	}
}

func sendJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("profiles: failed to encode response: %v", err)
	}
}

func sendError(w http.ResponseWriter, status int, message string) {
	sendJSON(w, status, Response{OK: false, Message: message})
}
