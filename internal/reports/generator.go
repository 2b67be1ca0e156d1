package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/fdg312/fittrack/internal/storage"
	"github.com/jung-kurt/gofpdf"
)

// generateCSV renders the ledger as CSV with a trailing total row.
func generateCSV(entries []storage.CalorieIntakeEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "item", "quantity", "quantitytype", "calories"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	total := 0
	for _, entry := range entries {
		total += entry.CalorieIntake
		row := []string{
			entry.Date.Format(dateLayout),
			entry.Item,
			strconv.FormatFloat(entry.Quantity, 'f', -1, 64),
			entry.QuantityType,
			strconv.Itoa(entry.CalorieIntake),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	if err := w.Write([]string{"total", "", "", "", strconv.Itoa(total)}); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// generatePDF renders the ledger as a single page A4 table. Core Helvetica
// covers the ASCII-only content, no font embedding needed.
func generatePDF(from, to string, entries []storage.CalorieIntakeEntry) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Calorie Intake Report")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s - %s", from, to))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(30, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 6, "Item", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Quantity", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Unit", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Calories", "1", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	total := 0
	for _, entry := range entries {
		total += entry.CalorieIntake
		pdf.CellFormat(30, 6, entry.Date.Format(dateLayout), "1", 0, "C", false, 0, "")
		pdf.CellFormat(60, 6, entry.Item, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, strconv.FormatFloat(entry.Quantity, 'f', -1, 64), "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 6, entry.QuantityType, "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, strconv.Itoa(entry.CalorieIntake), "1", 1, "C", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(135, 6, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 6, strconv.Itoa(total), "1", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
