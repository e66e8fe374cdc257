// Package printout renders printable PDF versions of site content.
package printout

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"finitefield.org/taniti-web/internal/dataset"
)

// Itinerary writes a one-page PDF of it to w.
func Itinerary(w io.Writer, it dataset.Itinerary, generated time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	name := strings.TrimSpace(it.Name)
	if name == "" {
		name = "Itinerary"
	}
	pdf.SetTitle(name, true)
	pdf.SetAuthor("Taniti Tourism Board", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr(name))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("%d stops · printed %s", len(it.Steps), generated.Format("Jan 2, 2006"))))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	for i, step := range it.Steps {
		pdf.MultiCell(0, 7, tr(fmt.Sprintf("Day %d: %s", i+1, step)), "", "", false)
		pdf.Ln(1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, tr("Taniti Tourism Board · hello@visit-taniti.example"), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return fmt.Errorf("printout: render itinerary %s: %w", it.ID, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Filename returns a download name for it.
func Filename(it dataset.Itinerary) string {
	var b strings.Builder
	for _, r := range strings.ToLower(it.ID) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	id := strings.Trim(b.String(), "-")
	if id == "" {
		id = "itinerary"
	}
	return "taniti-" + id + ".pdf"
}
