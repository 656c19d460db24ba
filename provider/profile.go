package provider

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/laborator/rezulta/tables"
)

// Profile describes one provider's report layout.
type Profile struct {
	// Name identifies the provider in the registry.
	Name string `yaml:"name"`

	// Table is the extraction configuration for the provider's layout.
	// Zero-valued fields fall back to tables.DefaultConfig.
	Table tables.Config `yaml:"table"`

	// DetectCategories enables inline section-heading detection: a body
	// row carrying only a name becomes the category of the rows below it.
	DetectCategories bool `yaml:"detect_categories"`
}

// withDefaults fills unset table fields from the default configuration.
func (p Profile) withDefaults() Profile {
	def := tables.DefaultConfig()
	if p.Table.Headers == nil {
		p.Table.Headers = def.Headers
	}
	if p.Table.RowTolerance == 0 {
		p.Table.RowTolerance = def.RowTolerance
	}
	if p.Table.HeaderYTolerance == 0 {
		p.Table.HeaderYTolerance = def.HeaderYTolerance
	}
	if p.Table.ContentGap == 0 {
		p.Table.ContentGap = def.ContentGap
	}
	if p.Table.FooterKeywords == nil {
		p.Table.FooterKeywords = def.FooterKeywords
	}
	if p.Table.ResultOffset == 0 {
		p.Table.ResultOffset = def.ResultOffset
	}
	if p.Table.UnitOffset == 0 {
		p.Table.UnitOffset = def.UnitOffset
	}
	if p.Table.FallbackKeywords == nil {
		p.Table.FallbackKeywords = def.FallbackKeywords
	}
	if p.Table.FallbackResultOffset == 0 {
		p.Table.FallbackResultOffset = def.FallbackResultOffset
	}
	if p.Table.FallbackUnitOffset == 0 {
		p.Table.FallbackUnitOffset = def.FallbackUnitOffset
	}
	if p.Table.FallbackReferenceOffset == 0 {
		p.Table.FallbackReferenceOffset = def.FallbackReferenceOffset
	}
	return p
}

// Registry holds the known provider profiles.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewRegistry creates a registry seeded with the built-in profiles.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]Profile)}
	for _, p := range builtinProfiles() {
		r.Register(p)
	}
	return r
}

// Register adds or replaces a profile.
func (r *Registry) Register(p Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.Name] = p.withDefaults()
}

// Get returns a profile by name.
func (r *Registry) Get(name string) (Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[name]
	return p, ok
}

// Names returns the registered profile names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadYAML reads profile definitions from r and registers them. The format
// is a document with a top-level "providers" list of Profile entries.
func (r *Registry) LoadYAML(reader io.Reader) error {
	var doc struct {
		Providers []Profile `yaml:"providers"`
	}
	dec := yaml.NewDecoder(reader)
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decode provider profiles: %w", err)
	}
	for _, p := range doc.Providers {
		if p.Name == "" {
			return fmt.Errorf("provider profile without a name")
		}
		r.Register(p)
	}
	return nil
}

// LoadFile reads profile definitions from a YAML file.
func (r *Registry) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open profiles %s: %w", path, err)
	}
	defer f.Close()
	return r.LoadYAML(f)
}
