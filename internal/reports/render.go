package reports

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// A4 portrait layout in millimetres.
const (
	pageWidth    = 210.0
	pageMargin   = 20.0
	topOfPage    = 20.0
	breakTrigger = 250.0
	bulletIndent = 5.0
)

type styleSpec struct {
	size     float64
	bold     bool
	centered bool
	indent   float64
}

var styleSpecs = map[LineStyle]styleSpec{
	StyleHeader:        {size: 14, bold: true, centered: true},
	StyleTitle:         {size: 16, bold: true, centered: true},
	StyleCenteredSmall: {size: 10, centered: true},
	StyleSection:       {size: 14, bold: true},
	StyleField:         {size: 12, bold: true},
	StyleBody:          {size: 12},
	StyleSmall:         {size: 10},
	StyleSmallBold:     {size: 11, bold: true},
	StyleBullet:        {size: 12, indent: bulletIndent},
}

// Render lays the document out as a PDF. The cursor walks down the page and
// any section that would start past the break threshold opens on a fresh
// page instead.
func Render(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	y := topOfPage
	for _, section := range doc.Sections {
		if y > breakTrigger {
			pdf.AddPage()
			y = topOfPage
		}
		y += section.LeadGap
		for _, line := range section.Lines {
			spec, ok := styleSpecs[line.Style]
			if !ok {
				return nil, fmt.Errorf("unknown line style %d", line.Style)
			}
			drawLine(pdf, translate, line.Text, spec, y)
			y += line.Gap
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawLine(pdf *fpdf.Fpdf, translate func(string) string, text string, spec styleSpec, y float64) {
	style := ""
	if spec.bold {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, spec.size)

	encoded := translate(text)
	x := pageMargin + spec.indent
	if spec.centered {
		x = (pageWidth - pdf.GetStringWidth(encoded)) / 2
	}
	pdf.Text(x, y, encoded)
}
