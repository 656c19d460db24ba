// Package biomarker decides whether a candidate row's name is a real
// biomarker, resolves it to a canonical name, and persists aliasing
// decisions so future documents benefit from past sightings.
//
// The policy fails open: unknown names are accepted as-is and recorded for
// later curation rather than silently discarded, because losing clinical
// data is worse than deferring disambiguation. Only names matching the
// administrative-text blocklist or aliases explicitly marked ignored are
// dropped.
package biomarker
