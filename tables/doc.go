// Package tables reconstructs result tables from positioned words on a lab
// report page. Lab providers share no layout: column order, header wording,
// and language all vary, and the PDF text layer adds vertical jitter and
// splits header cells across tokens. The extractor therefore locates columns
// by voting over header keywords rather than assuming fixed positions, and
// degrades through two anchor-derivation fallbacks before giving up.
//
// Failure is never an error: a page where no table can be found yields an
// empty row list, which callers treat as "no extractable data".
package tables
