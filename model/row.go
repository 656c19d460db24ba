package model

import "strings"

// Row is a candidate result row assembled from the words that fall into one
// vertical band of the content region. Cell text is the words of each column
// joined left to right with single spaces, before any cleanup.
type Row struct {
	Name      string
	Result    string
	Unit      string
	Reference string
}

// IsEmpty reports whether the row carries neither a name nor a result.
// Such rows are pure whitespace or visual noise and are discarded.
func (r Row) IsEmpty() bool {
	return strings.TrimSpace(r.Name) == "" && strings.TrimSpace(r.Result) == ""
}

// IsHeading reports whether the row looks like an inline section heading:
// a name with no result, unit, or reference. Lab reports print category
// headings ("HEMATOLOGIE", "BIOCHIMIE") as body rows of this shape.
func (r Row) IsHeading() bool {
	return strings.TrimSpace(r.Name) != "" &&
		strings.TrimSpace(r.Result) == "" &&
		strings.TrimSpace(r.Unit) == "" &&
		strings.TrimSpace(r.Reference) == ""
}
