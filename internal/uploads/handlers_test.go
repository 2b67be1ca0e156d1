package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/fdg312/fittrack/internal/config"
)

// stubStore запоминает последний загруженный объект.
type stubStore struct {
	lastKey         string
	lastContentType string
	putErr          error
}

func (s *stubStore) PutObject(ctx context.Context, key string, data []byte, contentType string) (int64, error) {
	if s.putErr != nil {
		return 0, s.putErr
	}
	s.lastKey = key
	s.lastContentType = contentType
	return int64(len(data)), nil
}

func (s *stubStore) PresignGet(ctx context.Context, key string, ttlSeconds int) (string, error) {
	return "https://storage.example.com/signed/" + key, nil
}

func (s *stubStore) DeleteObject(ctx context.Context, key string) error {
	return nil
}

func uploadsConfig() *config.Config {
	return &config.Config{
		UploadMaxMB:       10,
		UploadAllowedMime: "image/jpeg,image/png,image/heic",
		Blob: config.BlobConfig{
			S3: config.S3Config{PresignTTLSeconds: 900},
		},
	}
}

func multipartImage(t *testing.T, field, filename, contentType string, body []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create part: %v", err)
	}
	if _, err := part.Write(body); err != nil {
		t.Fatalf("failed to write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	return buf, w.FormDataContentType()
}

func decodeUpload(t *testing.T, rec *httptest.ResponseRecorder) uploadResponse {
	t.Helper()
	var resp uploadResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestUploadImageSuccess(t *testing.T) {
	store := &stubStore{}
	handlers := NewHandlers(uploadsConfig(), store)

	body, contentType := multipartImage(t, "myimage", "photo.jpg", "image/jpeg", []byte("fake-jpeg-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/v1/uploadimage", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handlers.HandleUploadImage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeUpload(t, rec)
	if !resp.OK || resp.Message != "Image uploaded successfully" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if !strings.HasPrefix(store.lastKey, "fitness-app/") || !strings.HasSuffix(store.lastKey, ".jpg") {
		t.Errorf("unexpected object key: %q", store.lastKey)
	}
	if !strings.Contains(resp.ImageURL, store.lastKey) {
		t.Errorf("image url must reference the stored key: %q", resp.ImageURL)
	}
}

func TestUploadImageNoStore(t *testing.T) {
	handlers := NewHandlers(uploadsConfig(), nil)

	body, contentType := multipartImage(t, "myimage", "photo.jpg", "image/jpeg", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/v1/uploadimage", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handlers.HandleUploadImage(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if resp := decodeUpload(t, rec); resp.Error != "image storage is not configured" {
		t.Errorf("unexpected error: %q", resp.Error)
	}
}

func TestUploadImageMissingFile(t *testing.T) {
	handlers := NewHandlers(uploadsConfig(), &stubStore{})

	body, contentType := multipartImage(t, "wrongfield", "photo.jpg", "image/jpeg", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/v1/uploadimage", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handlers.HandleUploadImage(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeUpload(t, rec); resp.Error != "No image file provided" {
		t.Errorf("unexpected error: %q", resp.Error)
	}
}

func TestUploadImageDisallowedMime(t *testing.T) {
	handlers := NewHandlers(uploadsConfig(), &stubStore{})

	body, contentType := multipartImage(t, "myimage", "archive.zip", "application/zip", []byte("PK"))
	req := httptest.NewRequest(http.MethodPost, "/v1/uploadimage", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handlers.HandleUploadImage(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeUpload(t, rec); !strings.HasPrefix(resp.Error, "Unsupported image type") {
		t.Errorf("unexpected error: %q", resp.Error)
	}
}

func TestUploadImagePublicURLPreferred(t *testing.T) {
	cfg := uploadsConfig()
	cfg.Blob.S3.PreferPublicURL = true
	cfg.Blob.S3.PublicBaseURL = "https://cdn.example.com/"
	handlers := NewHandlers(cfg, &stubStore{})

	body, contentType := multipartImage(t, "myimage", "photo.png", "image/png", []byte("fake-png"))
	req := httptest.NewRequest(http.MethodPost, "/v1/uploadimage", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handlers.HandleUploadImage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeUpload(t, rec)
	if !strings.HasPrefix(resp.ImageURL, "https://cdn.example.com/fitness-app/") {
		t.Errorf("expected public url, got %q", resp.ImageURL)
	}
}
