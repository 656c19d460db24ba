package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/laborator/rezulta/biomarker"
	"github.com/laborator/rezulta/clean"
	"github.com/laborator/rezulta/model"
	"github.com/laborator/rezulta/ranges"
	"github.com/laborator/rezulta/tables"
)

// Parser turns one page's words into finalized test result records by
// driving the extraction engine with a provider profile and running each
// candidate row through cleanup, validation, and range evaluation.
type Parser struct {
	profile   Profile
	extractor *tables.Extractor
	validator *biomarker.Validator
}

// NewParser creates a parser for the given profile. The validator is
// injected so documents processed by different parsers share one alias
// table.
func NewParser(profile Profile, validator *biomarker.Validator) *Parser {
	profile = profile.withDefaults()
	return &Parser{
		profile:   profile,
		extractor: tables.NewWithConfig(profile.Table),
		validator: validator,
	}
}

// Profile returns the parser's profile.
func (p *Parser) Profile() Profile {
	return p.profile
}

// ParsePage extracts records from one page. pageNum is used only for
// warnings. Row-level problems are contained: a row that cannot become a
// record is skipped, optionally with a warning, and never fails the page.
func (p *Parser) ParsePage(ctx context.Context, pageNum int, words []model.Word) ([]model.TestResultRecord, []model.Warning, error) {
	if len(words) == 0 {
		return nil, []model.Warning{{
			Page: pageNum, Code: model.WarnEmptyPage,
			Message: "page yielded no words",
		}}, nil
	}

	result := p.extractor.Extract(words)

	var warnings []model.Warning
	if result.UsedFallback {
		warnings = append(warnings, model.Warning{
			Page: pageNum, Code: model.WarnHeaderFallback,
			Message: "header voting failed, anchors derived from result keyword",
		})
	}
	if len(result.Rows) == 0 {
		warnings = append(warnings, model.Warning{
			Page: pageNum, Code: model.WarnNoTable,
			Message: "no extractable table on page",
		})
		return nil, warnings, nil
	}

	var records []model.TestResultRecord
	category := ""
	for _, row := range result.Rows {
		name := clean.Name(row.Name)

		if p.profile.DetectCategories && row.IsHeading() {
			category = name
			continue
		}

		value, embedded := clean.SplitValueFlag(row.Result)
		if name == "" || value == "" {
			// Rows without both a name and a value never become records.
			continue
		}

		validation, err := p.validator.Validate(ctx, name)
		if err != nil {
			warnings = append(warnings, model.Warning{
				Page: pageNum, Code: model.WarnStoreError,
				Message: fmt.Sprintf("validating %q: %v", name, err),
			})
		}
		if !validation.Valid {
			warnings = append(warnings, model.Warning{
				Page: pageNum, Code: model.WarnRowRejected,
				Message: fmt.Sprintf("%q rejected (%s)", name, validation.Outcome),
			})
			continue
		}

		record := model.NewTestResultRecord(validation.Name, value, clean.Unit(row.Unit), strings.TrimSpace(row.Reference))
		record.Category = category

		record.Flag = ranges.Evaluate(value, row.Reference)
		if record.Flag == model.FlagUnknown && embedded != model.FlagUnknown {
			// The printed reference was unusable but the provider flagged
			// the value inline.
			record.Flag = embedded
		}

		records = append(records, record)
	}

	return records, warnings, nil
}
