package model

import "github.com/google/uuid"

// Flag is the clinical abnormality classification derived from comparing a
// result value to its reference range.
type Flag int

const (
	FlagUnknown Flag = iota
	FlagNormal
	FlagLow
	FlagHigh
)

// String returns the flag's wire representation.
func (f Flag) String() string {
	switch f {
	case FlagNormal:
		return "NORMAL"
	case FlagLow:
		return "LOW"
	case FlagHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// TestResultRecord is the terminal artifact of the extraction pipeline,
// consumed by the surrounding ingestion/storage layer. Every record has a
// non-empty TestName and Value; rows that cannot satisfy that invariant are
// dropped before a record is created.
type TestResultRecord struct {
	ID             string
	TestName       string
	Value          string
	Unit           string
	ReferenceRange string
	Flag           Flag
	Category       string
}

// NewTestResultRecord creates a record with a fresh identifier.
func NewTestResultRecord(name, value, unit, reference string) TestResultRecord {
	return TestResultRecord{
		ID:             uuid.NewString(),
		TestName:       name,
		Value:          value,
		Unit:           unit,
		ReferenceRange: reference,
	}
}

// CanonicalAlias maps a raw test name as printed by some provider to the
// single de-duplicated biomarker identity it stands for. StandardizedName
// is nil while the alias awaits curation. Aliases are created on first
// sighting and persist across all future documents; they are updated but
// never removed by this module.
type CanonicalAlias struct {
	Alias            string  `json:"alias"`
	StandardizedName *string `json:"standardized_name"`
	IsIgnored        bool    `json:"is_ignored"`
}
