package model

import "fmt"

// WarningCode identifies a class of non-fatal extraction issue.
type WarningCode string

const (
	// WarnEmptyPage means a page yielded no words at all.
	WarnEmptyPage WarningCode = "empty-page"

	// WarnNoTable means neither header voting nor the fallback anchor
	// search found a table on the page.
	WarnNoTable WarningCode = "no-table"

	// WarnHeaderFallback means the single-anchor fallback was used because
	// header voting found no columns.
	WarnHeaderFallback WarningCode = "header-fallback"

	// WarnRowRejected means a row was dropped by biomarker validation.
	WarnRowRejected WarningCode = "row-rejected"

	// WarnStoreError means the alias store failed during validation and
	// the row was accepted with its raw name instead.
	WarnStoreError WarningCode = "store-error"
)

// Warning describes a contained, non-fatal issue encountered while
// extracting a document. Warnings accompany results instead of aborting
// extraction: a page with problems degrades to fewer records, not an error.
type Warning struct {
	Page    int
	Code    WarningCode
	Message string
}

// String formats the warning for display.
func (w Warning) String() string {
	return fmt.Sprintf("page %d [%s]: %s", w.Page, w.Code, w.Message)
}
