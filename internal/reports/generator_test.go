package reports

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fdg312/fittrack/internal/config"
	"github.com/fdg312/fittrack/internal/storage"
	"github.com/fdg312/fittrack/internal/storage/memory"
)

func testService(t *testing.T, entries ...storage.CalorieIntakeEntry) *Service {
	t.Helper()
	store := memory.New()
	user, err := store.GetUser(context.Background(), "default")
	if err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	user.CalorieIntake = entries
	if err := store.SaveUser(context.Background(), user); err != nil {
		t.Fatalf("failed to save user: %v", err)
	}
	return NewService(&config.Config{ReportsMaxRangeDays: 90}, store)
}

func TestBuildCalorieReportCSV(t *testing.T) {
	service := testService(t,
		storage.CalorieIntakeEntry{Item: "apple", Quantity: 250, QuantityType: "g", CalorieIntake: 130, Date: time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)},
		storage.CalorieIntakeEntry{Item: "rice", Quantity: 200, QuantityType: "g", CalorieIntake: 260, Date: time.Date(2026, 8, 28, 13, 0, 0, 0, time.UTC)},
		storage.CalorieIntakeEntry{Item: "bread", Quantity: 50, QuantityType: "g", CalorieIntake: 132, Date: time.Date(2026, 9, 5, 8, 0, 0, 0, time.UTC)},
	)

	data, contentType, err := service.BuildCalorieReport(context.Background(), "default", "2026-08-01", "2026-08-31", FormatCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contentType != "text/csv" {
		t.Errorf("expected text/csv, got %s", contentType)
	}

	body := string(data)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	// header + 2 entries in range + total
	if len(lines) != 4 {
		t.Fatalf("expected 4 csv lines, got %d: %q", len(lines), body)
	}
	if lines[0] != "date,item,quantity,quantitytype,calories" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "apple") || !strings.Contains(lines[2], "rice") {
		t.Errorf("entries out of order or missing: %q", body)
	}
	if !strings.HasPrefix(lines[3], "total") || !strings.HasSuffix(lines[3], "390") {
		t.Errorf("unexpected total row: %q", lines[3])
	}
}

func TestBuildCalorieReportPDF(t *testing.T) {
	service := testService(t,
		storage.CalorieIntakeEntry{Item: "apple", Quantity: 100, QuantityType: "g", CalorieIntake: 52, Date: time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)},
	)

	data, contentType, err := service.BuildCalorieReport(context.Background(), "default", "2026-08-01", "2026-08-31", FormatPDF)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contentType != "application/pdf" {
		t.Errorf("expected application/pdf, got %s", contentType)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("expected PDF magic header")
	}
}

func TestBuildCalorieReportValidation(t *testing.T) {
	service := testService(t)

	if _, _, err := service.BuildCalorieReport(context.Background(), "default", "2026-08-01", "2026-08-31", "xlsx"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
	if _, _, err := service.BuildCalorieReport(context.Background(), "default", "01.08.2026", "2026-08-31", FormatCSV); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
	if _, _, err := service.BuildCalorieReport(context.Background(), "default", "2026-08-31", "2026-08-01", FormatCSV); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}
	if _, _, err := service.BuildCalorieReport(context.Background(), "default", "2025-01-01", "2026-08-31", FormatCSV); !errors.Is(err, ErrRangeTooLarge) {
		t.Errorf("expected ErrRangeTooLarge, got %v", err)
	}
}
