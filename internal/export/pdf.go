// Package export renders the loaded inventory into a downloadable PDF and,
// when object storage is configured, archives a copy of each export.
package export

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"stockview/internal/models"
)

// Filename is the fixed name the exported document is saved under.
const Filename = "inventory.pdf"

// BuildInventoryPDF renders one row per record, in list order, with the
// columns Item Name / Category / Quantity. The search filter is deliberately
// not applied: the export always covers the full loaded list.
func BuildInventoryPDF(records []models.InventoryRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	marginX := 20.0
	marginY := 20.0
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(true, marginY)

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41)
	pdf.SetXY(marginX, marginY)
	pdf.Cell(0, 10, "INVENTORY REPORT")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", time.Now().Format("02-Jan-2006 15:04")))
	pdf.Ln(10)

	// Header row
	colWidths := []float64{75, 60, 35}
	headers := []string{"Item Name", "Category", "Quantity"}
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(240, 240, 240)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, r := range records {
		pdf.CellFormat(colWidths[0], 7, r.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 7, r.Category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[2], 7, strconv.Itoa(r.Quantity), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	if len(records) == 0 {
		pdf.CellFormat(colWidths[0]+colWidths[1]+colWidths[2], 7, "No items found.", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
