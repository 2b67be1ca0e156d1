package workouts

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/fdg312/fittrack/internal/activity"
	"github.com/fdg312/fittrack/internal/storage"
	"github.com/fdg312/fittrack/internal/userctx"
)

// Handlers — HTTP-обработчики журнала тренировок.
type Handlers struct {
	service *Service
}

func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleAdd обрабатывает POST /v1/workouts
func (h *Handlers) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.Add(r.Context(), userID(r), req); err != nil {
		writeServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, Response{OK: true, Message: "Workout added successfully"})
}

// HandleByDate обрабатывает POST /v1/workouts/bydate
func (h *Handlers) HandleByDate(w http.ResponseWriter, r *http.Request) {
	var req ByDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entries, today, err := h.service.ByDate(r.Context(), userID(r), req.Date)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	message := "Workouts for the date"
	if today {
		message = "Workouts for today"
	}
	sendJSON(w, http.StatusOK, Response{OK: true, Message: message, Data: entries})
}

// HandleByLimit обрабатывает POST /v1/workouts/bylimit
func (h *Handlers) HandleByLimit(w http.ResponseWriter, r *http.Request) {
	var req ByLimitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entries, err := h.service.ByLimit(r.Context(), userID(r), req.Limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	message := "Workouts"
	if req.Limit != "all" {
		message = fmt.Sprintf("Workouts for the last %s days", req.Limit)
	}
	sendJSON(w, http.StatusOK, Response{OK: true, Message: message, Data: entries})
}

// HandleDelete обрабатывает DELETE /v1/workouts
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.Delete(r.Context(), userID(r), req); err != nil {
		writeServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, Response{OK: true, Message: "Workout deleted successfully"})
}

func userID(r *http.Request) string {
	if id, ok := userctx.GetUserID(r.Context()); ok {
		return id
	}
	return "default"
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrMissingLimit),
		errors.Is(err, ErrInvalidLimit),
		errors.Is(err, activity.ErrInvalidDate):
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
		log.Printf("workouts: failed to encode response: %v", err)
	}
}

func sendError(w http.ResponseWriter, status int, message string) {
	sendJSON(w, status, Response{OK: false, Message: message})
}
