// Package romanian holds the mixed Romanian/English vocabulary shared by the
// cleanup, range evaluation, and validation stages. Lab reports from
// Romanian providers print headers, qualitative statuses, and boilerplate in
// either language, frequently without diacritics.
package romanian

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NegativeStatus are the qualitative result words that express an absent or
// negative finding. A reference range containing one of these expects the
// result to match one of them.
var NegativeStatus = []string{
	"negativ", "negative",
	"absent",
	"nedetectabil", "undetectable",
	"nonreactiv", "non-reactiv", "nonreactive", "non-reactive",
}

// PositiveStatus are the qualitative result words that express a present or
// positive finding.
var PositiveStatus = []string{
	"pozitiv", "positive",
	"prezent", "present",
	"reactiv", "reactive",
	"detectat", "detected",
}

// ResultHeaders are the header keywords that identify a result column across
// the known providers. Used both for header voting and for the last-resort
// single-anchor search.
var ResultHeaders = []string{"rezultat", "result", "valoare"}

// NameHeaders identify the test name column.
var NameHeaders = []string{"denumire", "analiza", "analize", "test", "nume", "investigatie"}

// UnitHeaders identify the measurement unit column.
var UnitHeaders = []string{"um", "u.m", "unitate", "unit"}

// ReferenceHeaders identify the reference interval column.
var ReferenceHeaders = []string{"interval", "referinta", "valori de referinta", "reference", "biologic"}

// FooterKeywords mark the end of the data region on a page. Text below the
// first match is signatures, addresses, and page furniture.
var FooterKeywords = []string{
	"medic", "pagina", "page",
	"semnatura", "validat",
	"informatiile", "rezultatele se interpreteaza",
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases s and strips combining marks, so "Hemoglobină" and
// "hemoglobina" compare equal. Providers are inconsistent about diacritics
// even within a single report.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}

// ContainsAny reports whether the folded form of s contains any of the
// given keywords.
func ContainsAny(s string, keywords []string) bool {
	folded := Fold(s)
	for _, kw := range keywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

// MatchesAny reports whether the folded, trimmed form of s equals or starts
// with any of the given keywords. A value cell may carry trailing noise
// ("Negativ *") and still match its status word.
func MatchesAny(s string, keywords []string) bool {
	folded := strings.TrimSpace(Fold(s))
	for _, kw := range keywords {
		if folded == kw || strings.HasPrefix(folded, kw+" ") {
			return true
		}
	}
	return false
}
