package biomarker

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/sync/singleflight"

	"github.com/laborator/rezulta/internal/romanian"
	"github.com/laborator/rezulta/model"
)

// Outcome is the terminal branch a candidate name reached.
type Outcome int

const (
	// OutcomeBlocked means the name matched the administrative-text
	// blocklist. Terminal: the alias is persisted as ignored and never
	// retried.
	OutcomeBlocked Outcome = iota

	// OutcomeIgnoredAlias means a persisted alias is marked ignored.
	OutcomeIgnoredAlias

	// OutcomeAliasFound means a persisted alias resolves to a canonical
	// name.
	OutcomeAliasFound

	// OutcomePendingReview means the alias was seen before but is not yet
	// resolved; the raw name is accepted as-is.
	OutcomePendingReview

	// OutcomeExactMatch means the name matched the knowledge base exactly
	// (case- and diacritic-insensitive).
	OutcomeExactMatch

	// OutcomePrefixMatch means the name matched a knowledge base entry by
	// prefix.
	OutcomePrefixMatch

	// OutcomeFuzzyMatch means the closest knowledge base entry cleared the
	// similarity threshold.
	OutcomeFuzzyMatch

	// OutcomeNewPending means nothing matched; a pending alias was created
	// and the raw name accepted.
	OutcomeNewPending
)

// String returns the outcome's name.
func (o Outcome) String() string {
	switch o {
	case OutcomeBlocked:
		return "blocked"
	case OutcomeIgnoredAlias:
		return "ignored-alias"
	case OutcomeAliasFound:
		return "alias-found"
	case OutcomePendingReview:
		return "pending-review"
	case OutcomeExactMatch:
		return "exact-match"
	case OutcomePrefixMatch:
		return "prefix-match"
	case OutcomeFuzzyMatch:
		return "fuzzy-match"
	case OutcomeNewPending:
		return "new-pending"
	default:
		return "unknown"
	}
}

// Validation is the result of validating one candidate name.
type Validation struct {
	// Valid reports whether the row should become a record.
	Valid bool

	// Name is the resolved name to record: the canonical name when one is
	// known, otherwise the raw name.
	Name string

	// Outcome is the branch that decided.
	Outcome Outcome
}

// blocklist matches address, contact, and administrative text that table
// extraction sometimes sweeps into the name column.
var blocklist = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bstr(\.|ada)?\b`),
	regexp.MustCompile(`(?i)\b(bld|b-?dul|bulevardul?|soseaua|sos\.|calea|aleea)\b`),
	regexp.MustCompile(`(?i)\bet(aj)?\.? ?\d`),
	regexp.MustCompile(`(?i)\bjud(\.|et(ul)?)?\b`),
	regexp.MustCompile(`(?i)\bsector ?\d\b`),
	regexp.MustCompile(`(?i)\b(tel|telefon|fax|email|e-mail|www\.)\b`),
	regexp.MustCompile(`(?i)\bcnp\b`),
	regexp.MustCompile(`(?i)\bcod postal\b`),
	regexp.MustCompile(`(?i)\b(pacient|medic|dr\.|punct de recoltare|data recoltarii|laborator(ul)?)\b`),
	regexp.MustCompile(`\d{7,}`),
}

// Config tunes the validator's matching behavior.
type Config struct {
	// FuzzyThreshold is the minimum similarity ratio for a fuzzy match.
	// 0.85 is a conservative precision/recall trade-off: lower values risk
	// merging two different biomarkers.
	FuzzyThreshold float64

	// MinPrefixLen is the minimum folded-name length for prefix matching.
	MinPrefixLen int
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		FuzzyThreshold: 0.85,
		MinPrefixLen:   4,
	}
}

// Validator resolves candidate names against the knowledge base and the
// persisted alias table. It is safe for concurrent use: first-sighting
// inserts are serialized per alias so parallel documents cannot race to
// create the same record.
type Validator struct {
	store  Store
	kb     *KnowledgeBase
	config Config
	group  singleflight.Group
}

// NewValidator creates a validator over the given store with the default
// knowledge base and configuration.
func NewValidator(store Store) *Validator {
	return NewValidatorWithConfig(store, DefaultKnowledgeBase(), DefaultConfig())
}

// NewValidatorWithConfig creates a validator with an explicit knowledge base
// and configuration. The knowledge base and store are injected rather than
// lazily shared so tests stay isolated and first-call latency is explicit.
func NewValidatorWithConfig(store Store, kb *KnowledgeBase, config Config) *Validator {
	return &Validator{store: store, kb: kb, config: config}
}

// Validate decides whether rawName is a real biomarker and resolves it.
// Branches are checked in order: blocklist, persisted alias, exact match,
// prefix match, fuzzy match, new pending. Every branch except the blocklist
// and ignored aliases accepts the row.
//
// Store failures do not invalidate the row: validation degrades to accepting
// the raw name and the error is returned for the caller to surface.
func (v *Validator) Validate(ctx context.Context, rawName string) (Validation, error) {
	raw := strings.TrimSpace(rawName)
	folded := romanian.Fold(raw)
	if folded == "" {
		return Validation{Valid: false, Outcome: OutcomeBlocked}, nil
	}

	if blockedName(raw) {
		_, err := v.insertOnce(ctx, folded, model.CanonicalAlias{Alias: folded, IsIgnored: true})
		if err != nil {
			return Validation{Valid: false, Outcome: OutcomeBlocked}, fmt.Errorf("persist blocked alias: %w", err)
		}
		return Validation{Valid: false, Outcome: OutcomeBlocked}, nil
	}

	existing, err := v.store.Find(ctx, folded)
	if err != nil {
		return Validation{Valid: true, Name: raw, Outcome: OutcomePendingReview},
			fmt.Errorf("find alias %q: %w", folded, err)
	}
	if existing != nil {
		switch {
		case existing.IsIgnored:
			return Validation{Valid: false, Outcome: OutcomeIgnoredAlias}, nil
		case existing.StandardizedName != nil:
			return Validation{Valid: true, Name: *existing.StandardizedName, Outcome: OutcomeAliasFound}, nil
		default:
			// Seen before, not yet resolved. Fail open.
			return Validation{Valid: true, Name: raw, Outcome: OutcomePendingReview}, nil
		}
	}

	if canonical, ok := v.kb.Lookup(folded); ok {
		return v.accept(ctx, folded, canonical, OutcomeExactMatch)
	}
	if canonical, ok := v.prefixMatch(folded); ok {
		return v.accept(ctx, folded, canonical, OutcomePrefixMatch)
	}
	if canonical, ok := v.fuzzyMatch(folded); ok {
		return v.accept(ctx, folded, canonical, OutcomeFuzzyMatch)
	}

	_, err = v.insertOnce(ctx, folded, model.CanonicalAlias{Alias: folded})
	if err != nil {
		return Validation{Valid: true, Name: raw, Outcome: OutcomeNewPending},
			fmt.Errorf("persist pending alias: %w", err)
	}
	return Validation{Valid: true, Name: raw, Outcome: OutcomeNewPending}, nil
}

// accept records a resolved alias mapping and returns the validation.
func (v *Validator) accept(ctx context.Context, folded, canonical string, outcome Outcome) (Validation, error) {
	record := model.CanonicalAlias{Alias: folded, StandardizedName: &canonical}
	if _, err := v.insertOnce(ctx, folded, record); err != nil {
		return Validation{Valid: true, Name: canonical, Outcome: outcome},
			fmt.Errorf("persist alias mapping: %w", err)
	}
	return Validation{Valid: true, Name: canonical, Outcome: outcome}, nil
}

// insertOnce serializes insert-if-absent per alias key. Two goroutines
// validating the same first-seen name share a single store round trip.
func (v *Validator) insertOnce(ctx context.Context, key string, record model.CanonicalAlias) (bool, error) {
	inserted, err, _ := v.group.Do(key, func() (interface{}, error) {
		return v.store.InsertIfAbsent(ctx, record)
	})
	if err != nil {
		return false, err
	}
	return inserted.(bool), nil
}

// prefixMatch resolves names that extend or truncate a known entry, e.g.
// "Hemoglobina A" against "hemoglobina". Both directions are checked; very
// short names are excluded to avoid accidental hits.
func (v *Validator) prefixMatch(folded string) (string, bool) {
	if len(folded) < v.config.MinPrefixLen {
		return "", false
	}
	for _, key := range v.kb.Keys() {
		if len(key) < v.config.MinPrefixLen {
			continue
		}
		if strings.HasPrefix(folded, key) || strings.HasPrefix(key, folded) {
			canonical, _ := v.kb.Lookup(key)
			return canonical, true
		}
	}
	return "", false
}

// fuzzyMatch returns the single closest knowledge base entry when its
// similarity ratio clears the threshold.
func (v *Validator) fuzzyMatch(folded string) (string, bool) {
	best := ""
	bestRatio := 0.0
	for _, key := range v.kb.Keys() {
		if r := similarity(folded, key); r > bestRatio {
			best = key
			bestRatio = r
		}
	}
	if bestRatio < v.config.FuzzyThreshold {
		return "", false
	}
	canonical, _ := v.kb.Lookup(best)
	return canonical, true
}

// similarity is a normalized edit-distance ratio in [0, 1]: identical
// strings score 1, disjoint strings approach 0.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

func blockedName(raw string) bool {
	for _, re := range blocklist {
		if re.MatchString(raw) {
			return true
		}
	}
	return false
}
