package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fdg312/fittrack/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:               "local",
		Port:              8080,
		NutritionMode:     "mock",
		JWTSecret:         "test_secret",
		JWTIssuer:         "fittrack",
		JWTTTLMinutes:     60,
		UploadMaxMB:       10,
		UploadAllowedMime: "image/jpeg,image/png",
		Blob:              config.BlobConfig{Mode: config.BlobModeLocal},
	}
}

func TestHealthz(t *testing.T) {
	server := New(testConfig())
	defer server.Close()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestAuthGateRejectsWithoutToken(t *testing.T) {
	cfg := testConfig()
	cfg.AuthRequired = true
	server := New(cfg)
	defer server.Close()

	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthGateDevTokenFlow(t *testing.T) {
	cfg := testConfig()
	cfg.AuthRequired = true
	server := New(cfg)
	defer server.Close()

	// /v1/auth/dev открыт без токена
	authReq := httptest.NewRequest(http.MethodPost, "/v1/auth/dev", nil)
	authRec := httptest.NewRecorder()
	server.Handler().ServeHTTP(authRec, authReq)

	if authRec.Code != http.StatusOK {
		t.Fatalf("expected 200 from dev auth, got %d: %s", authRec.Code, authRec.Body.String())
	}

	var envelope struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(authRec.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode auth response: %v", err)
	}
	if envelope.Data.AccessToken == "" {
		t.Fatal("expected non-empty access token")
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer "+envelope.Data.AccessToken)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCalorieIntakeEndToEnd(t *testing.T) {
	server := New(testConfig())
	defer server.Close()

	body := `{"item":"apple","date":"2026-08-28","quantity":250,"quantitytype":"g"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/calorieintake", strings.NewReader(body))
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		OK   bool `json:"ok"`
		Data struct {
			CalorieIntake int `json:"calorieIntake"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// mock oracle: apple = 52 per 100g, 250g -> 130
	if !envelope.OK || envelope.Data.CalorieIntake != 130 {
		t.Errorf("unexpected response: %+v", envelope)
	}
}

func TestUploadsDisabledInLocalMode(t *testing.T) {
	server := New(testConfig())
	defer server.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/uploadimage", nil)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	cfg := testConfig()
	cfg.CORSAllowedOrigins = []string{"http://localhost:3000"}
	server := New(cfg)
	defer server.Close()

	req := httptest.NewRequest(http.MethodOptions, "/v1/profile", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Errorf("missing allow-origin header: %v", rec.Header())
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 1
	cfg.RateLimitBurst = 1
	server := New(cfg)
	defer server.Close()

	handler := server.Handler()

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200 for first request, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for burst overflow, got %d", second.Code)
	}
}
