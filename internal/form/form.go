// Package form renders and fills the Lebanon visa application form. The
// blank form is drawn from the layout description (labels, checkbox squares,
// the pre-printed duration dates), then the applicant's values are written at
// the mapped coordinates, the stale template dates are redacted, and the
// Arabic accompaniment line is inserted through the font fallback chain.
package form

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/sbeydoun/visafill/internal/applicant"
	"github.com/sbeydoun/visafill/internal/fonts"
	"github.com/sbeydoun/visafill/internal/layout"
)

// Filler fills the visa form for one applicant at a time. The zero value is
// not usable; Layout must be set. Candidates defaults to the standard font
// fallback list. Reference, when set, is encoded as a QR code stamped near
// the signature area so the filled form can be tied back to an application.
type Filler struct {
	Layout     *layout.Layout
	Candidates []fonts.Candidate
	Reference  string
}

// Result is the outcome of one fill.
type Result struct {
	PDF      []byte
	FullName string

	// Fields and Checkboxes list the coordinate keys that received content,
	// in sorted order.
	Fields     []string
	Checkboxes []string

	// Arabic reports how the accompaniment line was inserted, including
	// every font candidate that failed before one succeeded.
	Arabic InsertionResult
}

// Generate renders the form, fills it from the record and returns the PDF
// bytes. The only fatal paths are a broken layout and total exhaustion of the
// font fallback chain; per-candidate font failures are reported in the
// result, not as errors.
func (f *Filler) Generate(rec applicant.Record) (*Result, error) {
	l := f.Layout
	if l == nil {
		return nil, fmt.Errorf("no layout configured")
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}

	p := fpdf.New("P", "pt", "Letter", "")
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	renderTemplate(p, l)

	// White out the pre-printed duration dates before writing new ones.
	p.SetFillColor(255, 255, 255)
	for _, r := range l.Redactions {
		p.Rect(r.X, r.Y, r.W, r.H, "F")
	}

	res := &Result{FullName: rec.FullName()}
	p.SetTextColor(0, 0, 0)

	f.fillCheckboxes(p, rec, res)
	f.fillTextFields(p, rec, res)

	if err := f.stampReference(p); err != nil {
		return nil, err
	}

	// The accompaniment line, bottom right, in Arabic.
	coord := l.Coordinates["accompanied_by_arabic"]
	res.Arabic = InsertArabic(p, ArabicInsertion{
		Text:       rec.GetString("accompanied_by_arabic"),
		Prefix:     l.ArabicPrefix,
		X:          coord.X(),
		Y:          coord.Y(),
		Size:       l.BottomLabelFontSize,
		Candidates: f.Candidates,
	})
	if res.Arabic.Status == Failed {
		return nil, fmt.Errorf("inserting accompaniment line: %w", res.Arabic.Err)
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	res.PDF = buf.Bytes()

	sort.Strings(res.Fields)
	sort.Strings(res.Checkboxes)
	return res, nil
}

// renderTemplate draws the blank form: static labels and the checkbox
// squares. Labels are sorted for reproducible output.
func renderTemplate(p *fpdf.Fpdf, l *layout.Layout) {
	p.SetTextColor(0, 0, 0)
	for _, lb := range l.Labels {
		size := lb.Size
		if size == 0 {
			size = 8
		}
		style := ""
		if lb.Bold {
			style = "B"
		}
		p.SetFont("Helvetica", style, size)
		p.Text(lb.X, lb.Y, lb.Text)
	}

	p.SetDrawColor(0, 0, 0)
	p.SetLineWidth(0.5)
	keys := make([]string, 0, len(l.Coordinates))
	for key := range l.Coordinates {
		if strings.HasPrefix(key, "checkbox_") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		c := l.Coordinates[key]
		p.Rect(c.X()-2, c.Y()-8, 9, 9, "D")
	}
}

// fillCheckboxes marks visa type and the duration derived from it. Sex,
// marital status and purpose of trip are intentionally left unmarked per
// form requirements, even though the layout knows their coordinates.
func (f *Filler) fillCheckboxes(p *fpdf.Fpdf, rec applicant.Record, res *Result) {
	l := f.Layout
	visaType := strings.ToLower(rec.GetString("visa_info.type"))

	if key, ok := l.CheckboxMappings["visa_type"][visaType]; ok {
		f.mark(p, key, res)
	}

	// Single and two entry visas run three months, multiple entry six.
	duration := "three_months"
	if visaType == "multiple_entry" || visaType == "multiple" {
		duration = "six_months"
	}
	if key, ok := l.CheckboxMappings["visa_duration"][duration]; ok {
		f.mark(p, key, res)
	}
}

func (f *Filler) mark(p *fpdf.Fpdf, key string, res *Result) {
	l := f.Layout
	c, ok := l.Coordinates[key]
	if !ok {
		return
	}
	p.SetFont("Helvetica", "", l.CheckboxFontSize)
	p.Text(c.X(), c.Y(), l.CheckboxChar)
	res.Checkboxes = append(res.Checkboxes, key)
}

func (f *Filler) fillTextFields(p *fpdf.Fpdf, rec applicant.Record, res *Result) {
	l := f.Layout

	paths := make([]string, 0, len(l.TextFields))
	for path := range l.TextFields {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		value := rec.GetString(path)
		if value == "" {
			continue
		}
		f.write(p, l.TextFields[path], value, l.FontSize, res)
	}

	// Trip dates are duplicated into the duration line and the
	// arrival/departure questions.
	for path, keys := range l.DateAliases {
		value := rec.GetString(path)
		if value == "" {
			continue
		}
		for _, key := range keys {
			f.write(p, key, value, l.FontSize, res)
		}
	}

	// Pricing label for the chosen visa type, bottom left.
	visaType := strings.ToLower(rec.GetString("visa_info.type"))
	if label, ok := l.VisaTypeLabels[visaType]; ok {
		f.write(p, "visa_type_label", label, l.BottomLabelFontSize, res)
	}
}

func (f *Filler) write(p *fpdf.Fpdf, key, value string, size float64, res *Result) {
	c, ok := f.Layout.Coordinates[key]
	if !ok {
		return
	}
	p.SetFont("Helvetica", "", size)
	p.Text(c.X(), c.Y(), value)
	res.Fields = append(res.Fields, key)
}

// QR stamp geometry: small square to the right of the signature block.
const (
	qrX    = 520.0
	qrY    = 676.0
	qrSize = 56.0
)

func (f *Filler) stampReference(p *fpdf.Fpdf) error {
	if f.Reference == "" {
		return nil
	}
	png, err := qrcode.Encode(f.Reference, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generating reference QR: %w", err)
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("reference-qr", opts, bytes.NewReader(png))
	p.ImageOptions("reference-qr", qrX, qrY, qrSize, qrSize, false, opts, 0, "")
	if err := p.Error(); err != nil {
		return fmt.Errorf("stamping reference QR: %w", err)
	}
	return nil
}
