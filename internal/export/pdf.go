// Package export renders a room's document into a downloadable PDF. It is a
// pure transform over the final section map and holds no session state.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"duoreport/internal/models"
	"duoreport/internal/utils"
)

// RenderPDF produces the report PDF: a title page followed by one block per
// section in the fixed order. Section markup is stripped to plain text;
// empty sections render a placeholder.
func RenderPDF(roomID string, sections map[string]string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle("DuoReport "+roomID, false)

	// Title page
	pdf.AddPage()
	pdf.SetY(80)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 12, "DuoReport", "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, "Room ID: "+roomID, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, "Generated: "+time.Now().Format("2006-01-02 15:04:05"), "", 1, "C", false, 0, "")

	pdf.AddPage()
	for _, key := range models.SectionKeys {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.SetTextColor(37, 99, 235)
		pdf.CellFormat(0, 10, models.SectionTitles[key], "", 1, "L", false, 0, "")
		pdf.Ln(1)

		content := utils.StripTags(sections[key])
		if content == "" {
			pdf.SetFont("Helvetica", "I", 11)
			pdf.SetTextColor(55, 65, 81)
			pdf.MultiCell(0, 6, "No content", "", "L", false)
		} else {
			pdf.SetFont("Helvetica", "", 11)
			pdf.SetTextColor(55, 65, 81)
			pdf.MultiCell(0, 6, content, "", "L", false)
		}
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf for room %s: %w", roomID, err)
	}
	return buf.Bytes(), nil
}
