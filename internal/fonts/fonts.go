// Package fonts resolves an Arabic-capable TrueType font from an ordered list
// of candidates. Local development machines and production containers carry
// different fonts, so instead of branching on the environment the list itself
// encodes it: platform fonts first, then the embedded builtin which is always
// available. Resolution is a linear scan; the first candidate that parses and
// covers Arabic wins.
package fonts

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-text/typesetting/font"
)

// DejaVu Sans (Bitstream Vera license - see fonts/LICENSE-DejaVu.txt).
// Broad Unicode coverage including the Arabic presentation forms, embedded so
// the resolver always has a working last candidate before the Latin fallback.

//go:embed fonts/DejaVuSans.ttf
var builtinSans []byte

// Hint classifies where a candidate's font resource comes from.
type Hint string

const (
	HintMacOS   Hint = "macos"
	HintLinux   Hint = "linux"
	HintBuiltin Hint = "builtin"
	HintGeneric Hint = "generic_fallback"
)

// Candidate is one entry in the ordered fallback list. Path is an absolute
// file path for macOS candidates, a bare file name searched in the system
// font directories for Linux candidates, and empty for the builtin.
type Candidate struct {
	Name string
	Path string
	Hint Hint
}

// Generic is the guaranteed Latin fallback. It is not part of the candidate
// scan: it is a PDF core font that needs no loading, used only when every
// candidate has failed.
var Generic = Candidate{Name: "Helvetica", Hint: HintGeneric}

// DefaultCandidates returns the ordered fallback list: macOS system fonts for
// local development, common Linux font packages for production images, then
// the embedded builtin.
func DefaultCandidates() []Candidate {
	return []Candidate{
		{Name: "GeezaPro", Path: "/System/Library/Fonts/GeezaPro.ttc", Hint: HintMacOS},
		{Name: "SFArabic", Path: "/System/Library/Fonts/SFArabic.ttf", Hint: HintMacOS},
		{Name: "DejaVuSans", Path: "DejaVuSans.ttf", Hint: HintLinux},
		{Name: "LiberationSans", Path: "LiberationSans-Regular.ttf", Hint: HintLinux},
		{Name: "NotoSansArabic", Path: "NotoSansArabic-Regular.ttf", Hint: HintLinux},
		{Name: "FreeSans", Path: "FreeSans.ttf", Hint: HintLinux},
		{Name: "figo", Hint: HintBuiltin},
	}
}

// systemFontDirs are the roots searched for Linux candidates, in order.
var systemFontDirs = []string{
	"/usr/share/fonts",
	"/usr/local/share/fonts",
}

func userFontDirs() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".local", "share", "fonts"),
		filepath.Join(home, ".fonts"),
	}
}

// findFont walks the system and user font directories looking for a file with
// the given base name. Returns the first match in directory order.
func findFont(name string) (string, error) {
	dirs := append(append([]string{}, systemFontDirs...), userFontDirs()...)
	for _, dir := range dirs {
		var found string
		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil // unreadable subtree, keep walking
			}
			if !d.IsDir() && d.Name() == name {
				found = path
				return filepath.SkipAll
			}
			return nil
		})
		if err == nil && found != "" {
			return found, nil
		}
	}
	return "", fmt.Errorf("font %s not found under %v", name, dirs)
}

// Probe runes for Arabic coverage: beh, meem and alef in their
// presentation forms, which is what the reshaped text is made of.
var arabicProbe = []rune{'ﺑ', 'ﻡ', 'ﺍ'}

// coversArabic reports whether the face maps the probe presentation forms.
func coversArabic(face *font.Face) bool {
	for _, r := range arabicProbe {
		if _, ok := face.NominalGlyph(r); !ok {
			return false
		}
	}
	return true
}

// Load resolves the candidate to TrueType bytes ready for registration with
// the PDF writer. The bytes are parsed and checked for Arabic glyph coverage
// first, so a candidate that exists on disk but cannot render the text (a
// collection file, or a Latin-only font) fails here instead of producing
// tofu on the page.
func (c Candidate) Load() ([]byte, error) {
	var data []byte
	switch c.Hint {
	case HintBuiltin:
		data = builtinSans
	case HintLinux:
		path := c.Path
		if !filepath.IsAbs(path) {
			var err error
			path, err = findFont(path)
			if err != nil {
				return nil, err
			}
		}
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	default:
		var err error
		data, err = os.ReadFile(c.Path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", c.Path, err)
		}
	}

	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", c.Name, err)
	}
	if !coversArabic(face) {
		return nil, fmt.Errorf("font %s has no Arabic coverage", c.Name)
	}
	return data, nil
}
