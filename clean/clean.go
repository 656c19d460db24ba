// Package clean normalizes raw cell text extracted from lab report tables.
// PDF text layers fragment and re-space content freely: units arrive as
// "m g / d L", values as "1 2 , 5", and abnormality markers glued onto the
// number. These helpers undo that damage without guessing at semantics.
package clean

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/laborator/rezulta/model"
)

// namePunct is the punctuation trimmed from both ends of a test name.
const namePunct = " \t.,:;*-–—"

var (
	numericGap    = regexp.MustCompile(`([0-9.,])\s+([0-9.,])`)
	trailingAlpha = regexp.MustCompile(`(?i)^(.*\d)\s*(HIGH|LOW|H|L)$`)
	trailingStar  = regexp.MustCompile(`^(.*?)\s*\*+$`)
)

// Unit collapses all embedded whitespace in a unit string and folds
// micro-sign variants to a plain ASCII "u", so "µg/dL", "μ g / d L" and
// "ug/dL" all normalize to "ug/dL".
func Unit(raw string) string {
	// NFKC maps the legacy micro sign (U+00B5) onto Greek mu.
	s := norm.NFKC.String(raw)
	s = strings.ReplaceAll(s, "μ", "u")
	return strings.Join(strings.Fields(s), "")
}

// Value repairs a numeric result string: gaps inside digit sequences are
// closed first (so unrelated tokens keep their separating space), the comma
// decimal separator becomes a dot, and a bare leading dot gains a zero.
func Value(raw string) string {
	s := strings.TrimSpace(raw)

	// Close digit-space-digit gaps repeatedly; a value like "1 2 . 5" needs
	// several passes because matches cannot overlap.
	for {
		collapsed := numericGap.ReplaceAllString(s, "$1$2")
		if collapsed == s {
			break
		}
		s = collapsed
	}

	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	return s
}

// Name trims the fixed set of leading and trailing punctuation that header
// rules and bullet markers leave on test names.
func Name(raw string) string {
	return strings.Trim(raw, namePunct)
}

// SplitValueFlag extracts an embedded abnormality marker from a raw result
// string. Several providers print the flag directly appended to the value
// ("14.5 H", "230*") instead of in a separate column. The returned value has
// the marker stripped and is repaired with Value; the flag is FlagUnknown
// when no marker is present.
//
// Letter markers are only recognized after a digit, so qualitative results
// ending in "L" ("NORMAL") are left alone.
func SplitValueFlag(raw string) (string, model.Flag) {
	s := strings.TrimSpace(raw)
	flag := model.FlagUnknown

	if m := trailingStar.FindStringSubmatch(s); m != nil {
		s = m[1]
		flag = model.FlagHigh
	}
	if m := trailingAlpha.FindStringSubmatch(s); m != nil {
		marker := strings.ToUpper(m[2])
		s = m[1]
		if marker == "L" || marker == "LOW" {
			flag = model.FlagLow
		} else {
			flag = model.FlagHigh
		}
	}

	return Value(s), flag
}
