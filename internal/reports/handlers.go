package reports

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/fdg312/fittrack/internal/storage"
	"github.com/fdg312/fittrack/internal/userctx"
)

// Handlers — HTTP-обработчики отчётов.
type Handlers struct {
	service *Service
}

func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleCalorieReport обрабатывает GET /v1/reports/calories?from=&to=&format=
func (h *Handlers) HandleCalorieReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from := query.Get("from")
	to := query.Get("to")
	format := query.Get("format")
	if format == "" {
		format = FormatPDF
	}

	data, contentType, err := h.service.BuildCalorieReport(r.Context(), userID(r), from, to, format)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	filename := fmt.Sprintf("calorie-report-%s-%s.%s", from, to, format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("reports: failed to write report body: %v", err)
	}
}

func userID(r *http.Request) string {
	if id, ok := userctx.GetUserID(r.Context()); ok {
		return id
	}
	return "default"
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidFormat),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrInvalidDateRange),
		errors.Is(err, ErrRangeTooLarge):
		sendError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrUserNotFound):
		sendError(w, http.StatusNotFound, "User not found")
	default:
		sendError(w, http.StatusInternalServerError, err.Error())
	}
}

func sendError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Response{OK: false, Message: message}); err != nil {
		log.Printf("reports: failed to encode response: %v", err)
	}
}
