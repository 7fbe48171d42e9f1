package form

import (
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/unicode/norm"

	"github.com/sbeydoun/visafill/internal/arabic"
	"github.com/sbeydoun/visafill/internal/fonts"
)

// Status is the terminal outcome of one Arabic insertion.
type Status int

const (
	// Skipped: the input was empty or whitespace, nothing was drawn.
	Skipped Status = iota
	// Inserted: a candidate font loaded and the shaped text was drawn.
	Inserted
	// InsertedWithFallback: every candidate failed; the text was drawn with
	// the Latin core font and will not render Arabic correctly.
	InsertedWithFallback
	// Failed: even the guaranteed fallback could not draw. Indicates a PDF
	// writer failure rather than a font availability problem.
	Failed
)

func (s Status) String() string {
	switch s {
	case Skipped:
		return "skipped"
	case Inserted:
		return "inserted"
	case InsertedWithFallback:
		return "inserted-with-fallback"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Attempt records one failed candidate, for logging.
type Attempt struct {
	Candidate fonts.Candidate
	Err       error
}

// InsertionResult reports what happened to one Arabic insertion: the terminal
// status, the font that ended up drawing the text, and every candidate that
// failed along the way. Failures never surface as errors to the caller; only
// a Failed status carries Err.
type InsertionResult struct {
	Status   Status
	Font     string
	Attempts []Attempt
	Err      error
}

// ArabicInsertion describes one right-to-left text write at a fixed page
// position. Prefix is prepended to Text in logical order before shaping so
// the two are joined and reordered as a single run. Candidates defaults to
// fonts.DefaultCandidates when nil.
type ArabicInsertion struct {
	Text       string
	Prefix     string
	X, Y       float64
	Size       float64
	Candidates []fonts.Candidate
}

// InsertArabic shapes req.Prefix+req.Text for right-to-left display and draws
// it onto the document's current page with the first usable candidate font.
// Candidate failures are absorbed into the result; the text is drawn with the
// Latin core font if the whole list fails. Text is never silently dropped.
func InsertArabic(doc *fpdf.Fpdf, req ArabicInsertion) InsertionResult {
	if strings.TrimSpace(req.Text) == "" {
		return InsertionResult{Status: Skipped}
	}

	display := arabic.Display(norm.NFC.String(req.Prefix + req.Text))

	candidates := req.Candidates
	if candidates == nil {
		candidates = fonts.DefaultCandidates()
	}

	var attempts []Attempt
	for _, c := range candidates {
		data, err := c.Load()
		if err != nil {
			attempts = append(attempts, Attempt{Candidate: c, Err: err})
			continue
		}
		if err := drawWithFont(doc, c.Name, data, display, req.X, req.Y, req.Size); err != nil {
			attempts = append(attempts, Attempt{Candidate: c, Err: err})
			continue
		}
		return InsertionResult{Status: Inserted, Font: c.Name, Attempts: attempts}
	}

	// Guaranteed Latin fallback. Arabic glyphs will not join or render
	// correctly, but a visibly wrong field beats a blank one.
	doc.SetFont(fonts.Generic.Name, "", req.Size)
	doc.Text(req.X, req.Y, display)
	if err := doc.Error(); err != nil {
		doc.ClearError()
		return InsertionResult{
			Status:   Failed,
			Attempts: attempts,
			Err:      fmt.Errorf("drawing with fallback %s: %w", fonts.Generic.Name, err),
		}
	}
	return InsertionResult{Status: InsertedWithFallback, Font: fonts.Generic.Name, Attempts: attempts}
}

// drawWithFont registers the font bytes under the candidate name and draws
// the text. fpdf reports problems through its sticky error state, which is
// cleared here so a bad candidate does not poison later writes.
func drawWithFont(doc *fpdf.Fpdf, name string, data []byte, text string, x, y, size float64) error {
	doc.AddUTF8FontFromBytes(name, "", data)
	if err := doc.Error(); err != nil {
		doc.ClearError()
		return fmt.Errorf("registering font %s: %w", name, err)
	}

	doc.SetFont(name, "", size)
	doc.Text(x, y, text)
	if err := doc.Error(); err != nil {
		doc.ClearError()
		return fmt.Errorf("drawing with font %s: %w", name, err)
	}
	return nil
}
