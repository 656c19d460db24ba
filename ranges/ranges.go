// Package ranges classifies a result value against its printed reference
// range. The evaluator is deliberately forgiving: it never returns an error
// and never panics, mapping anything it cannot interpret to FlagUnknown so a
// record is still produced for the row.
package ranges

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/laborator/rezulta/internal/romanian"
	"github.com/laborator/rezulta/model"
)

var (
	firstNumber = regexp.MustCompile(`[-+]?(?:\d*\.\d+|\d+)`)
	interval    = regexp.MustCompile(`[\[(]?\s*([-+]?\d+(?:\.\d+)?)\s*-\s*([-+]?\d+(?:\.\d+)?)`)
)

// Evaluate classifies value against reference. Checks run in order and the
// first applicable one wins:
//
//  1. Qualitative: a reference containing a status keyword ("Negativ",
//     "Pozitiv", ...) expects the value to be a status word too.
//  2. Bounded interval "min - max" (brackets optional).
//  3. Upper bound "< max" ("<=" is inclusive).
//  4. Lower bound "> min" (">=" is inclusive).
//
// Anything else, including an unparseable value, is FlagUnknown.
func Evaluate(value, reference string) model.Flag {
	value = strings.TrimSpace(value)
	reference = strings.TrimSpace(reference)
	if value == "" || reference == "" {
		return model.FlagUnknown
	}

	if flag, ok := evaluateQualitative(value, reference); ok {
		return flag
	}
	return evaluateQuantitative(value, reference)
}

// evaluateQualitative handles references that state an expected status
// rather than a numeric interval. A value matching the expected status is
// NORMAL; a positive finding where a negative one was expected is HIGH
// (clinically notable). This branch never yields LOW.
//
// The second return is false when the reference is not qualitative or the
// value matches no status word, in which case numeric evaluation still gets
// a chance (e.g. reference "Negativ (<1.0)" with a titer value).
func evaluateQualitative(value, reference string) (model.Flag, bool) {
	expectsNegative := romanian.ContainsAny(reference, romanian.NegativeStatus)
	expectsPositive := !expectsNegative && romanian.ContainsAny(reference, romanian.PositiveStatus)
	if !expectsNegative && !expectsPositive {
		return model.FlagUnknown, false
	}

	switch {
	case expectsNegative && romanian.MatchesAny(value, romanian.NegativeStatus):
		return model.FlagNormal, true
	case expectsNegative && romanian.MatchesAny(value, romanian.PositiveStatus):
		return model.FlagHigh, true
	case expectsPositive && romanian.MatchesAny(value, romanian.PositiveStatus):
		return model.FlagNormal, true
	}
	return model.FlagUnknown, false
}

func evaluateQuantitative(value, reference string) model.Flag {
	v, ok := extractNumber(value)
	if !ok {
		return model.FlagUnknown
	}

	// Normalize the comma decimal separator the same way values are.
	reference = strings.ReplaceAll(reference, ",", ".")

	if m := interval.FindStringSubmatch(reference); m != nil {
		min, err1 := strconv.ParseFloat(m[1], 64)
		max, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil {
			return model.FlagUnknown
		}
		switch {
		case v < min:
			return model.FlagLow
		case v > max:
			return model.FlagHigh
		default:
			return model.FlagNormal
		}
	}

	switch {
	case strings.HasPrefix(reference, "<"):
		bound, ok := extractNumber(reference)
		if !ok {
			return model.FlagUnknown
		}
		inclusive := strings.HasPrefix(reference, "<=")
		if v > bound || (!inclusive && v == bound) {
			return model.FlagHigh
		}
		return model.FlagNormal

	case strings.HasPrefix(reference, ">"):
		bound, ok := extractNumber(reference)
		if !ok {
			return model.FlagUnknown
		}
		inclusive := strings.HasPrefix(reference, ">=")
		if v < bound || (!inclusive && v == bound) {
			return model.FlagLow
		}
		return model.FlagNormal
	}

	return model.FlagUnknown
}

// extractNumber returns the first decimal or integer number in s. When a
// string carries several numbers only the first is meaningful.
func extractNumber(s string) (float64, bool) {
	match := firstNumber.FindString(strings.ReplaceAll(s, ",", "."))
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
