// Package rezulta extracts structured clinical test results from the
// positioned-word text layer of PDF laboratory reports. Different lab
// providers print incompatible layouts, column orders, and mixed
// Romanian/English vocabulary; the pipeline reconstructs the result table
// geometrically, cleans cell text, validates biomarker names against a
// knowledge base with alias learning, and classifies each value against its
// printed reference range.
//
// Basic usage:
//
//	src, err := pages.OpenPDF("report.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer src.Close()
//
//	records, warnings, err := rezulta.Provider("synevo").
//	    WithStore(biomarker.NewMemoryStore()).
//	    Records(ctx, src)
//
// Warnings describe contained per-page issues; an error is returned only
// when the document itself is unusable.
package rezulta

import (
	"context"
	"errors"
	"fmt"

	"github.com/laborator/rezulta/biomarker"
	"github.com/laborator/rezulta/model"
	"github.com/laborator/rezulta/pages"
	"github.com/laborator/rezulta/provider"
)

// ErrUnknownProvider is returned by terminal operations when the requested
// provider profile is not registered.
var ErrUnknownProvider = errors.New("unknown provider profile")

// defaultRegistry holds the built-in provider profiles.
var defaultRegistry = provider.NewRegistry()

// RegisterProfile adds a provider profile to the default registry.
func RegisterProfile(p provider.Profile) {
	defaultRegistry.Register(p)
}

// LoadProfiles registers profiles from a YAML file into the default
// registry.
func LoadProfiles(path string) error {
	return defaultRegistry.LoadFile(path)
}

// Pipeline extracts records for one provider layout. Construction never
// fails; configuration problems surface at the terminal operation.
type Pipeline struct {
	profile   provider.Profile
	store     biomarker.Store
	validator *biomarker.Validator
	options   Options
	err       error
}

// Provider creates a pipeline for a registered provider profile.
func Provider(name string) *Pipeline {
	profile, ok := defaultRegistry.Get(name)
	if !ok {
		return &Pipeline{
			options: defaultOptions(),
			err:     fmt.Errorf("%w: %q", ErrUnknownProvider, name),
		}
	}
	return FromProfile(profile)
}

// FromProfile creates a pipeline from an explicit profile, bypassing the
// registry.
func FromProfile(profile provider.Profile) *Pipeline {
	return &Pipeline{profile: profile, options: defaultOptions()}
}

// WithStore sets the alias store backing biomarker validation. Without one,
// validation runs against a fresh in-memory store and learned aliases do
// not outlive the pipeline.
func (p *Pipeline) WithStore(store biomarker.Store) *Pipeline {
	p.store = store
	return p
}

// WithValidator sets a fully constructed validator, overriding WithStore.
// Use this to share one validator (and its alias table) across pipelines
// for different providers.
func (p *Pipeline) WithValidator(v *biomarker.Validator) *Pipeline {
	p.validator = v
	return p
}

// Pages restricts extraction to the given 1-indexed pages.
func (p *Pipeline) Pages(nums ...int) *Pipeline {
	p.options.pages = append([]int(nil), nums...)
	return p
}

// Records runs the pipeline over every selected page of src and returns the
// finalized records together with any contained warnings. Page-level
// failures degrade to warnings; an error means the source could not deliver
// any usable pages at all.
func (p *Pipeline) Records(ctx context.Context, src pages.Source) ([]model.TestResultRecord, []model.Warning, error) {
	if p.err != nil {
		return nil, nil, p.err
	}

	parser := provider.NewParser(p.profile, p.resolveValidator())

	selected := p.options.pages
	if selected == nil {
		selected = make([]int, src.PageCount())
		for i := range selected {
			selected[i] = i + 1
		}
	}
	if len(selected) == 0 {
		return nil, nil, errors.New("document has no pages")
	}

	var (
		records  []model.TestResultRecord
		warnings []model.Warning
		failures int
	)
	for _, pageNum := range selected {
		words, err := src.Words(ctx, pageNum)
		if err != nil {
			failures++
			warnings = append(warnings, model.Warning{
				Page: pageNum, Code: model.WarnEmptyPage,
				Message: fmt.Sprintf("reading words: %v", err),
			})
			continue
		}

		pageRecords, pageWarnings, err := parser.ParsePage(ctx, pageNum, words)
		if err != nil {
			return records, warnings, fmt.Errorf("page %d: %w", pageNum, err)
		}
		records = append(records, pageRecords...)
		warnings = append(warnings, pageWarnings...)
	}

	if failures == len(selected) {
		return nil, warnings, errors.New("no page yielded any words; document may be corrupt or unsupported")
	}
	return records, warnings, nil
}

// RecordsFromWords is a convenience over Records for callers holding word
// lists in memory.
func (p *Pipeline) RecordsFromWords(ctx context.Context, wordsByPage [][]model.Word) ([]model.TestResultRecord, []model.Warning, error) {
	return p.Records(ctx, pages.SliceSource(wordsByPage))
}

func (p *Pipeline) resolveValidator() *biomarker.Validator {
	if p.validator != nil {
		return p.validator
	}
	store := p.store
	if store == nil {
		store = biomarker.NewMemoryStore()
	}
	return biomarker.NewValidator(store)
}
