package reports

import "errors"

// Report formats
const (
	FormatPDF = "pdf"
	FormatCSV = "csv"
)

var (
	// ErrInvalidFormat is returned for formats other than pdf/csv
	ErrInvalidFormat = errors.New("Invalid report format")

	// ErrInvalidDate is returned when from/to cannot be parsed
	ErrInvalidDate = errors.New("Invalid date")

	// ErrInvalidDateRange is returned when from is after to
	ErrInvalidDateRange = errors.New("Invalid date range")

	// ErrRangeTooLarge is returned when the range exceeds the configured cap
	ErrRangeTooLarge = errors.New("Date range is too large")
)

// Response — единый конверт ответа API.
type Response struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
