package reports

import "strings"

// LineStyle selects font size, weight and placement for one printed line.
type LineStyle int

const (
	// StyleHeader is the centered 14pt bold page header.
	StyleHeader LineStyle = iota
	// StyleTitle is the centered 16pt bold report title.
	StyleTitle
	// StyleCenteredSmall is centered 10pt text.
	StyleCenteredSmall
	// StyleSection is a 14pt bold section heading.
	StyleSection
	// StyleField is a 12pt bold field label line.
	StyleField
	// StyleBody is plain 12pt text.
	StyleBody
	// StyleSmall is plain 10pt text.
	StyleSmall
	// StyleSmallBold is 11pt bold text.
	StyleSmallBold
	// StyleBullet is indented 12pt text with a bullet prefix.
	StyleBullet
)

// Line is one printed row: its text, style and the vertical advance (mm)
// applied after drawing it.
type Line struct {
	Text  string
	Style LineStyle
	Gap   float64
}

// Section groups lines under a logical report block. Page-break checkpoints
// apply at section boundaries.
type Section struct {
	Name string
	// LeadGap is extra vertical space before the section's first line.
	LeadGap float64
	Lines   []Line
}

// Document is the fully resolved report: every line of text in print order.
// Building it is pure, so two builds of the same inspection are
// byte-identical.
type Document struct {
	TemplateVersion string
	Sections        []Section
}

// PlainText flattens the document to newline-joined text, used for
// determinism checks and previews in logs.
func (d Document) PlainText() string {
	var b strings.Builder
	for _, section := range d.Sections {
		for _, line := range section.Lines {
			b.WriteString(line.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

type sectionBuilder struct {
	section Section
}

func newSection(name string) *sectionBuilder {
	return &sectionBuilder{section: Section{Name: name}}
}

func (b *sectionBuilder) lead(gap float64) *sectionBuilder {
	b.section.LeadGap = gap
	return b
}

func (b *sectionBuilder) line(text string, style LineStyle, gap float64) *sectionBuilder {
	b.section.Lines = append(b.section.Lines, Line{Text: text, Style: style, Gap: gap})
	return b
}

// pad adds extra advance after the most recent line, folding block spacing
// into it.
func (b *sectionBuilder) pad(extra float64) *sectionBuilder {
	if n := len(b.section.Lines); n > 0 {
		b.section.Lines[n-1].Gap += extra
	} else {
		b.section.LeadGap += extra
	}
	return b
}

func (b *sectionBuilder) build() Section {
	return b.section
}
