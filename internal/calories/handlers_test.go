package calories

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fdg312/fittrack/internal/storage/memory"
)

func newTestHandlers(oracle *stubOracle) (*Handlers, *memory.MemoryStorage) {
	store := memory.New()
	return NewHandlers(NewService(store, oracle)), store
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestHandleAddSuccess(t *testing.T) {
	handlers, _ := newTestHandlers(&stubOracle{caloriesPer100g: 52})

	body := `{"item":"apple","date":"2026-08-28","quantity":250,"quantitytype":"g"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/calorieintake", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handlers.HandleAdd(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if !resp.OK || resp.Message != "Calorie intake added successfully" {
		t.Errorf("unexpected envelope: %+v", resp)
	}

	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %T", resp.Data)
	}
	if data["calorieIntake"] != float64(130) {
		t.Errorf("expected 130 kcal, got %v", data["calorieIntake"])
	}
}

func TestHandleAddMissingFields(t *testing.T) {
	handlers, _ := newTestHandlers(&stubOracle{caloriesPer100g: 52})

	req := httptest.NewRequest(http.MethodPost, "/v1/calorieintake", strings.NewReader(`{"item":"apple"}`))
	rec := httptest.NewRecorder()

	handlers.HandleAdd(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.OK || resp.Message != "Please provide all the details" {
		t.Errorf("unexpected envelope: %+v", resp)
	}
}

func TestHandleAddInvalidQuantityType(t *testing.T) {
	handlers, _ := newTestHandlers(&stubOracle{caloriesPer100g: 52})

	body := `{"item":"apple","date":"2026-08-28","quantity":2,"quantitytype":"pieces"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/calorieintake", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handlers.HandleAdd(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Message != "Invalid quantity type" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestHandleAddOracleError(t *testing.T) {
	handlers, _ := newTestHandlers(&stubOracle{err: errors.New("Gemini API Error: Quota exceeded")})

	body := `{"item":"apple","date":"2026-08-28","quantity":100,"quantitytype":"g"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/calorieintake", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handlers.HandleAdd(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Message != "Gemini API Error: Quota exceeded" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestHandleByLimitRequiresLimit(t *testing.T) {
	handlers, _ := newTestHandlers(&stubOracle{})

	req := httptest.NewRequest(http.MethodPost, "/v1/calorieintake/bylimit", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	handlers.HandleByLimit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Message != "Please provide limit" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestHandleByLimitAll(t *testing.T) {
	handlers, _ := newTestHandlers(&stubOracle{})

	req := httptest.NewRequest(http.MethodPost, "/v1/calorieintake/bylimit", strings.NewReader(`{"limit":"all"}`))
	rec := httptest.NewRecorder()

	handlers.HandleByLimit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Message != "Calorie intake" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestHandleDelete(t *testing.T) {
	handlers, store := newTestHandlers(&stubOracle{caloriesPer100g: 52})

	addBody := `{"item":"apple","date":"2026-08-28","quantity":100,"quantitytype":"g"}`
	addReq := httptest.NewRequest(http.MethodPost, "/v1/calorieintake", strings.NewReader(addBody))
	handlers.HandleAdd(httptest.NewRecorder(), addReq)

	req := httptest.NewRequest(http.MethodDelete, "/v1/calorieintake", strings.NewReader(`{"item":"apple","date":"2026-08-28"}`))
	rec := httptest.NewRecorder()

	handlers.HandleDelete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Message != "Calorie intake deleted successfully" {
		t.Errorf("unexpected message: %q", resp.Message)
	}

	user, _ := store.GetUser(context.Background(), "default")
	if len(user.CalorieIntake) != 0 {
		t.Errorf("expected empty ledger after delete, got %d entries", len(user.CalorieIntake))
	}
}

func TestHandleGoalMissingMetrics(t *testing.T) {
	handlers, _ := newTestHandlers(&stubOracle{})

	req := httptest.NewRequest(http.MethodGet, "/v1/calorieintake/goal", nil)
	rec := httptest.NewRecorder()

	handlers.HandleGoal(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
