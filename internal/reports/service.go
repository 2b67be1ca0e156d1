package reports

import (
	"context"
	"sort"
	"time"

	"github.com/fdg312/fittrack/internal/config"
	"github.com/fdg312/fittrack/internal/storage"
)

const dateLayout = "2006-01-02"

// Service builds downloadable calorie intake reports.
type Service struct {
	config  *config.Config
	storage storage.UserStorage
}

func NewService(cfg *config.Config, store storage.UserStorage) *Service {
	return &Service{config: cfg, storage: store}
}

// BuildCalorieReport renders the calorie ledger for [from, to] as PDF or CSV.
// Returns the document bytes and its content type.
func (s *Service) BuildCalorieReport(ctx context.Context, userID, from, to, format string) ([]byte, string, error) {
	if format != FormatPDF && format != FormatCSV {
		return nil, "", ErrInvalidFormat
	}

	fromDate, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, "", ErrInvalidDate
	}
	toDate, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, "", ErrInvalidDate
	}
	if toDate.Before(fromDate) {
		return nil, "", ErrInvalidDateRange
	}

	maxRange := s.config.ReportsMaxRangeDays
	if maxRange > 0 && int(toDate.Sub(fromDate).Hours()/24) > maxRange {
		return nil, "", ErrRangeTooLarge
	}

	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	entries := make([]storage.CalorieIntakeEntry, 0)
	for _, entry := range user.CalorieIntake {
		day := entry.Date.Format(dateLayout)
		if day >= from && day <= to {
			entries = append(entries, entry)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	switch format {
	case FormatCSV:
		data, err := generateCSV(entries)
		return data, "text/csv", err
	default:
		data, err := generatePDF(from, to, entries)
		return data, "application/pdf", err
	}
}
