package tables

import "github.com/laborator/rezulta/internal/romanian"

// Column is a logical table column key.
type Column string

const (
	ColumnName      Column = "name"
	ColumnResult    Column = "result"
	ColumnUnit      Column = "unit"
	ColumnReference Column = "reference"
)

// Config holds extractor configuration for one provider layout. All offsets
// and tolerances are empirically tuned against real reports and kept
// configurable rather than hard-coded, pending recalibration against a
// broader corpus.
type Config struct {
	// Headers maps each column to the keywords that identify its header
	// cell (case- and diacritic-insensitive substring match).
	Headers map[Column][]string `yaml:"headers"`

	// RowTolerance is the maximum distance between a word's vertical
	// center and a row's running center for the word to join that row.
	// Useful values are 4-10 units.
	RowTolerance float64 `yaml:"row_tolerance"`

	// HeaderYTolerance clusters header candidates that sit on the same
	// approximate horizontal line despite extraction jitter.
	HeaderYTolerance float64 `yaml:"header_y_tolerance"`

	// ContentGap is how far below the header line the content region
	// starts.
	ContentGap float64 `yaml:"content_gap"`

	// FooterKeywords mark the end of the data region. The first word below
	// the header whose text contains one of these bounds the region;
	// without a match the region is unbounded downward.
	FooterKeywords []string `yaml:"footer_keywords"`

	// ResultOffset and UnitOffset derive the result and unit anchors left
	// of the reference anchor when a report prints "Interval"/"Referinta"
	// but no result header.
	ResultOffset float64 `yaml:"result_offset"`
	UnitOffset   float64 `yaml:"unit_offset"`

	// FallbackKeywords drive the last-resort single-anchor search, and the
	// Fallback* offsets derive all anchors from the matched word's x.
	FallbackKeywords        []string `yaml:"fallback_keywords"`
	FallbackResultOffset    float64  `yaml:"fallback_result_offset"`
	FallbackUnitOffset      float64  `yaml:"fallback_unit_offset"`
	FallbackReferenceOffset float64  `yaml:"fallback_reference_offset"`
}

// DefaultConfig returns the configuration shared by the known Romanian lab
// layouts. Provider profiles override individual fields.
func DefaultConfig() Config {
	return Config{
		Headers: map[Column][]string{
			ColumnName:      append([]string(nil), romanian.NameHeaders...),
			ColumnResult:    append([]string(nil), romanian.ResultHeaders...),
			ColumnUnit:      append([]string(nil), romanian.UnitHeaders...),
			ColumnReference: append([]string(nil), romanian.ReferenceHeaders...),
		},
		RowTolerance:            6.0,
		HeaderYTolerance:        10.0,
		ContentGap:              10.0,
		FooterKeywords:          append([]string(nil), romanian.FooterKeywords...),
		ResultOffset:            180.0,
		UnitOffset:              80.0,
		FallbackKeywords:        append([]string(nil), romanian.ResultHeaders...),
		FallbackResultOffset:    60.0,
		FallbackUnitOffset:      200.0,
		FallbackReferenceOffset: 280.0,
	}
}
