package auth

import (
	"encoding/json"
	"net/http"
)

// Handlers содержит HTTP обработчики авторизации
type Handlers struct {
	service *Service
}

func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleDevAuth обрабатывает POST /v1/auth/dev — локальный токен без
// внешнего identity-провайдера
func (h *Handlers) HandleDevAuth(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.SignInDev(r.Context())
	if err != nil {
		h.sendJSON(w, http.StatusInternalServerError, Response{OK: false, Message: "Failed to issue dev token"})
		return
	}

	h.sendJSON(w, http.StatusOK, Response{OK: true, Message: "Dev token issued", Data: resp})
}

func (h *Handlers) sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
