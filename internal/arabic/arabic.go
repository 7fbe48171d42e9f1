// Package arabic prepares Arabic strings for rendering engines that have no
// complex-script support of their own. Shape converts logical-order text into
// Unicode presentation forms (Arabic Presentation Forms-B) so adjacent letters
// render with their correct joined glyphs, and Display additionally reorders
// the result with the bidirectional algorithm so a right-to-left run can be
// drawn left-to-right at a fixed page position.
package arabic

import (
	"strings"

	"golang.org/x/text/unicode/bidi"
)

// Contextual forms for each Arabic letter, indexed as
// isolated, final, initial, medial. A zero means the letter has no such form:
// right-joining letters (alef, dal, reh, waw, ...) only carry isolated and
// final forms, and hamza stands alone entirely.
var forms = map[rune][4]rune{
	'ء': {'ﺀ', 0, 0, 0},                // hamza
	'آ': {'ﺁ', 'ﺂ', 0, 0},         // alef with madda
	'أ': {'ﺃ', 'ﺄ', 0, 0},         // alef with hamza above
	'ؤ': {'ﺅ', 'ﺆ', 0, 0},         // waw with hamza
	'إ': {'ﺇ', 'ﺈ', 0, 0},         // alef with hamza below
	'ئ': {'ﺉ', 'ﺊ', 'ﺋ', 'ﺌ'}, // yeh with hamza
	'ا': {'ﺍ', 'ﺎ', 0, 0},         // alef
	'ب': {'ﺏ', 'ﺐ', 'ﺑ', 'ﺒ'}, // beh
	'ة': {'ﺓ', 'ﺔ', 0, 0},         // teh marbuta
	'ت': {'ﺕ', 'ﺖ', 'ﺗ', 'ﺘ'}, // teh
	'ث': {'ﺙ', 'ﺚ', 'ﺛ', 'ﺜ'}, // theh
	'ج': {'ﺝ', 'ﺞ', 'ﺟ', 'ﺠ'}, // jeem
	'ح': {'ﺡ', 'ﺢ', 'ﺣ', 'ﺤ'}, // hah
	'خ': {'ﺥ', 'ﺦ', 'ﺧ', 'ﺨ'}, // khah
	'د': {'ﺩ', 'ﺪ', 0, 0},         // dal
	'ذ': {'ﺫ', 'ﺬ', 0, 0},         // thal
	'ر': {'ﺭ', 'ﺮ', 0, 0},         // reh
	'ز': {'ﺯ', 'ﺰ', 0, 0},         // zain
	'س': {'ﺱ', 'ﺲ', 'ﺳ', 'ﺴ'}, // seen
	'ش': {'ﺵ', 'ﺶ', 'ﺷ', 'ﺸ'}, // sheen
	'ص': {'ﺹ', 'ﺺ', 'ﺻ', 'ﺼ'}, // sad
	'ض': {'ﺽ', 'ﺾ', 'ﺿ', 'ﻀ'}, // dad
	'ط': {'ﻁ', 'ﻂ', 'ﻃ', 'ﻄ'}, // tah
	'ظ': {'ﻅ', 'ﻆ', 'ﻇ', 'ﻈ'}, // zah
	'ع': {'ﻉ', 'ﻊ', 'ﻋ', 'ﻌ'}, // ain
	'غ': {'ﻍ', 'ﻎ', 'ﻏ', 'ﻐ'}, // ghain
	'ف': {'ﻑ', 'ﻒ', 'ﻓ', 'ﻔ'}, // feh
	'ق': {'ﻕ', 'ﻖ', 'ﻗ', 'ﻘ'}, // qaf
	'ك': {'ﻙ', 'ﻚ', 'ﻛ', 'ﻜ'}, // kaf
	'ل': {'ﻝ', 'ﻞ', 'ﻟ', 'ﻠ'}, // lam
	'م': {'ﻡ', 'ﻢ', 'ﻣ', 'ﻤ'}, // meem
	'ن': {'ﻥ', 'ﻦ', 'ﻧ', 'ﻨ'}, // noon
	'ه': {'ﻩ', 'ﻪ', 'ﻫ', 'ﻬ'}, // heh
	'و': {'ﻭ', 'ﻮ', 0, 0},         // waw
	'ى': {'ﻯ', 'ﻰ', 0, 0},         // alef maksura
	'ي': {'ﻱ', 'ﻲ', 'ﻳ', 'ﻴ'}, // yeh
}

const lam = 'ل'

// Mandatory lam-alef ligatures, indexed as isolated, final.
var lamAlef = map[rune][2]rune{
	'آ': {'ﻵ', 'ﻶ'},
	'أ': {'ﻷ', 'ﻸ'},
	'إ': {'ﻹ', 'ﻺ'},
	'ا': {'ﻻ', 'ﻼ'},
}

// isTransparent reports whether r is a combining mark that does not
// participate in cursive joining (harakat and the superscript alef).
func isTransparent(r rune) bool {
	return (r >= 'ً' && r <= 'ٟ') || r == 'ٰ'
}

// isolated/final/initial/medial indices into a forms entry.
const (
	isoForm = iota
	finForm
	iniForm
	medForm
)

// Shape rewrites s into Arabic Presentation Forms-B so that letters appear in
// their contextually joined forms. Non-Arabic runes pass through unchanged,
// as do combining marks. The output is still in logical order; pair with
// Display (or a bidi pass) before drawing.
func Shape(s string) string {
	runes := []rune(s)
	out := make([]rune, 0, len(runes))
	prevJoins := false

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		f, ok := forms[r]
		if !ok {
			if !isTransparent(r) {
				prevJoins = false
			}
			out = append(out, r)
			continue
		}

		// Lam followed by an alef variant collapses into the mandatory ligature.
		if r == lam && i+1 < len(runes) {
			if lig, isAlef := lamAlef[runes[i+1]]; isAlef {
				if prevJoins {
					out = append(out, lig[1])
				} else {
					out = append(out, lig[0])
				}
				prevJoins = false
				i++
				continue
			}
		}

		nextJoins := false
		for j := i + 1; j < len(runes); j++ {
			if isTransparent(runes[j]) {
				continue
			}
			nf, isLetter := forms[runes[j]]
			nextJoins = isLetter && nf[finForm] != 0
			break
		}

		dual := f[iniForm] != 0
		connBefore := prevJoins && f[finForm] != 0
		connAfter := dual && nextJoins

		switch {
		case connBefore && connAfter:
			out = append(out, f[medForm])
		case connBefore:
			out = append(out, f[finForm])
		case connAfter:
			out = append(out, f[iniForm])
		default:
			out = append(out, f[isoForm])
		}

		prevJoins = dual
	}

	return string(out)
}

// Reorder applies the Unicode bidirectional algorithm and returns the text in
// visual order, left to right, so it can be drawn by an engine that only
// understands LTR runs. On a bidi resolution error the input is returned
// unchanged; un-reordered text is still preferable to no text.
func Reorder(s string) string {
	p := &bidi.Paragraph{}
	if _, err := p.SetString(s); err != nil {
		return s
	}
	ordering, err := p.Order()
	if err != nil {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		if run.Direction() == bidi.RightToLeft {
			b.WriteString(reverse(run.String()))
		} else {
			b.WriteString(run.String())
		}
	}
	return b.String()
}

// Display shapes s and reorders it for left-to-right drawing. This is the
// one-call form used when writing Arabic into a fixed page position.
func Display(s string) string {
	return Reorder(Shape(s))
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
