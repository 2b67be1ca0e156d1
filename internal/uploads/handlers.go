// Package uploads принимает изображения от клиента и складывает их в
// объектное хранилище.
package uploads

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/fdg312/fittrack/internal/blob"
	"github.com/fdg312/fittrack/internal/config"
)

const uploadPrefix = "fitness-app"

// uploadResponse повторяет форму ответа эндпоинта загрузки: отдельное поле
// error вместо общего message в конверте.
type uploadResponse struct {
	OK       bool   `json:"ok"`
	ImageURL string `json:"imageUrl,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Handlers — HTTP-обработчик загрузки изображений.
type Handlers struct {
	config *config.Config
	store  blob.Store
}

func NewHandlers(cfg *config.Config, store blob.Store) *Handlers {
	return &Handlers{config: cfg, store: store}
}

// HandleUploadImage обрабатывает POST /v1/uploadimage (multipart, поле myimage)
func (h *Handlers) HandleUploadImage(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		sendUploadError(w, http.StatusServiceUnavailable, "image storage is not configured")
		return
	}

	maxBytes := int64(h.config.UploadMaxMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		sendUploadError(w, http.StatusBadRequest, "No image file provided")
		return
	}

	file, header, err := r.FormFile("myimage")
	if err != nil {
		sendUploadError(w, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		sendUploadError(w, http.StatusBadRequest, "Error uploading image: "+err.Error())
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if !h.mimeAllowed(contentType) {
		sendUploadError(w, http.StatusBadRequest, "Unsupported image type: "+contentType)
		return
	}

	key := uploadPrefix + "/" + uuid.NewString() + extensionFor(header.Filename, contentType)

	if _, err := h.store.PutObject(r.Context(), key, data, contentType); err != nil {
		log.Printf("uploads: put object failed: %v", err)
		sendUploadError(w, http.StatusInternalServerError, "Error uploading image: "+err.Error())
		return
	}

	imageURL, err := h.resolveURL(r, key)
	if err != nil {
		log.Printf("uploads: presign failed: %v", err)
		sendUploadError(w, http.StatusInternalServerError, "Error uploading image: "+err.Error())
		return
	}

	sendUploadJSON(w, http.StatusOK, uploadResponse{
		OK:       true,
		ImageURL: imageURL,
		Message:  "Image uploaded successfully",
	})
}

// resolveURL отдаёт публичную ссылку, если настроен публичный базовый URL,
// иначе подписанную.
func (h *Handlers) resolveURL(r *http.Request, key string) (string, error) {
	s3cfg := h.config.Blob.S3
	if s3cfg.PreferPublicURL && s3cfg.PublicBaseURL != "" {
		return strings.TrimRight(s3cfg.PublicBaseURL, "/") + "/" + key, nil
	}
	return h.store.PresignGet(r.Context(), key, s3cfg.PresignTTLSeconds)
}

func (h *Handlers) mimeAllowed(contentType string) bool {
	for _, allowed := range strings.Split(h.config.UploadAllowedMime, ",") {
		if strings.EqualFold(strings.TrimSpace(allowed), contentType) {
			return true
		}
	}
	return false
}

func extensionFor(filename, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		return ext
	}
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/heic":
		return ".heic"
	default:
		return ""
	}
}

func sendUploadJSON(w http.ResponseWriter, status int, payload uploadResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("uploads: failed to encode response: %v", err)
	}
}

func sendUploadError(w http.ResponseWriter, status int, message string) {
	sendUploadJSON(w, status, uploadResponse{OK: false, Error: message})
}
