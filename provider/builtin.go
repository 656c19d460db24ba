package provider

import "github.com/laborator/rezulta/tables"

// builtinProfiles returns the layouts shipped with the module. The keyword
// sets reflect the header vocabulary each provider actually prints; the
// tolerances were tuned against real reports and stay configurable.
func builtinProfiles() []Profile {
	return []Profile{
		{
			// Generic Romanian layout; works for most providers that print
			// a four-column table with printed headers.
			Name:             "generic",
			DetectCategories: true,
		},
		{
			// Dense layout with tight baselines and the reference column
			// headed "Interval biologic de referinta". The result header
			// is frequently omitted, so the derived-anchor fallback
			// matters here.
			Name: "synevo",
			Table: tables.Config{
				Headers: map[tables.Column][]string{
					tables.ColumnName:      {"analize", "denumire"},
					tables.ColumnResult:    {"rezultat"},
					tables.ColumnUnit:      {"um", "u.m"},
					tables.ColumnReference: {"interval biologic", "interval", "referinta"},
				},
				RowTolerance: 4.0,
			},
			DetectCategories: true,
		},
		{
			// Wider row spacing, bilingual headers.
			Name: "regina-maria",
			Table: tables.Config{
				Headers: map[tables.Column][]string{
					tables.ColumnName:      {"denumire", "investigatie", "test"},
					tables.ColumnResult:    {"rezultat", "result"},
					tables.ColumnUnit:      {"um", "unit"},
					tables.ColumnReference: {"valori de referinta", "referinta", "reference"},
				},
				RowTolerance: 8.0,
			},
			DetectCategories: true,
		},
		{
			// Single unlabeled header line; relies on the fallback search
			// for a "Rezultat"-like token.
			Name: "medlife",
			Table: tables.Config{
				RowTolerance: 6.0,
			},
			DetectCategories: false,
		},
	}
}
