package biomarker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/laborator/rezulta/model"
)

func TestValidate_ExactMatch(t *testing.T) {
	v := NewValidator(NewMemoryStore())

	got, err := v.Validate(context.Background(), "Hemoglobina")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Valid || got.Name != "Hemoglobina" || got.Outcome != OutcomeExactMatch {
		t.Errorf("got %+v", got)
	}
}

func TestValidate_ExactMatchFoldsDiacriticsAndCase(t *testing.T) {
	v := NewValidator(NewMemoryStore())

	for _, raw := range []string{"HEMOGLOBINA", "Hemoglobină", "hgb"} {
		got, err := v.Validate(context.Background(), raw)
		if err != nil {
			t.Fatalf("Validate(%q): %v", raw, err)
		}
		if !got.Valid || got.Name != "Hemoglobina" {
			t.Errorf("Validate(%q) = %+v, want canonical Hemoglobina", raw, got)
		}
	}
}

func TestValidate_PrefixMatch(t *testing.T) {
	v := NewValidator(NewMemoryStore())

	got, err := v.Validate(context.Background(), "Hemoglobina A1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Valid || got.Name != "Hemoglobina" || got.Outcome != OutcomePrefixMatch {
		t.Errorf("got %+v", got)
	}
}

func TestValidate_FuzzyMatch(t *testing.T) {
	v := NewValidator(NewMemoryStore())

	// One substitution away from "leucocite", no prefix relation.
	got, err := v.Validate(context.Background(), "Leucacite")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Valid || got.Name != "Leucocite" || got.Outcome != OutcomeFuzzyMatch {
		t.Errorf("got %+v", got)
	}
}

func TestValidate_FuzzyBelowThresholdBecomesPending(t *testing.T) {
	store := NewMemoryStore()
	v := NewValidator(store)

	got, err := v.Validate(context.Background(), "Qqqq Zzzz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Valid || got.Name != "Qqqq Zzzz" || got.Outcome != OutcomeNewPending {
		t.Errorf("got %+v", got)
	}
	if store.Len() != 1 {
		t.Errorf("store has %d records, want 1 pending alias", store.Len())
	}

	// Seen again before review: still accepted, no duplicate row.
	got, err = v.Validate(context.Background(), "Qqqq Zzzz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Valid || got.Outcome != OutcomePendingReview {
		t.Errorf("second sighting = %+v", got)
	}
	if store.Len() != 1 {
		t.Errorf("store has %d records after second sighting, want 1", store.Len())
	}
}

func TestValidate_Blocklist(t *testing.T) {
	v := NewValidator(NewMemoryStore())

	blocked := []string{
		"Str. Mihai Eminescu 10",
		"Bulevardul Unirii",
		"CNP 1234567890123",
		"Tel: 021 555 1234",
		"Medic primar Popescu",
		"Pacient: Ionescu Maria",
		"Sector 3",
	}
	for _, raw := range blocked {
		got, err := v.Validate(context.Background(), raw)
		if err != nil {
			t.Fatalf("Validate(%q): %v", raw, err)
		}
		if got.Valid || got.Outcome != OutcomeBlocked {
			t.Errorf("Validate(%q) = %+v, want blocked", raw, got)
		}
	}
}

func TestValidate_IgnoredAlias(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.InsertIfAbsent(context.Background(), model.CanonicalAlias{
		Alias:     "buletin rezultate",
		IsIgnored: true,
	}); err != nil {
		t.Fatal(err)
	}
	v := NewValidator(store)

	got, err := v.Validate(context.Background(), "Buletin rezultate")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Valid || got.Outcome != OutcomeIgnoredAlias {
		t.Errorf("got %+v", got)
	}
}

func TestValidate_ResolvedAliasWins(t *testing.T) {
	store := NewMemoryStore()
	v := NewValidator(store)
	ctx := context.Background()

	// First sighting creates a pending alias.
	if _, err := v.Validate(ctx, "HGB corpuscular"); err != nil {
		t.Fatal(err)
	}

	// A reviewer resolves it.
	canonical := "HEM"
	if err := store.Update(ctx, model.CanonicalAlias{
		Alias:            "hgb corpuscular",
		StandardizedName: &canonical,
	}); err != nil {
		t.Fatal(err)
	}

	got, err := v.Validate(ctx, "HGB corpuscular")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Valid || got.Name != "HEM" || got.Outcome != OutcomeAliasFound {
		t.Errorf("got %+v", got)
	}
}

func TestValidate_ConcurrentFirstSightingInsertsOnce(t *testing.T) {
	store := NewMemoryStore()
	v := NewValidator(store)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := v.Validate(context.Background(), "Marker Nou Xz"); err != nil {
				t.Errorf("Validate: %v", err)
			}
		}()
	}
	wg.Wait()

	if store.Len() != 1 {
		t.Errorf("store has %d records, want exactly 1", store.Len())
	}
}

// failingStore errors on every operation.
type failingStore struct{}

func (failingStore) Find(context.Context, string) (*model.CanonicalAlias, error) {
	return nil, errors.New("store down")
}
func (failingStore) InsertIfAbsent(context.Context, model.CanonicalAlias) (bool, error) {
	return false, errors.New("store down")
}
func (failingStore) Update(context.Context, model.CanonicalAlias) error {
	return errors.New("store down")
}

func TestValidate_StoreFailureFailsOpen(t *testing.T) {
	v := NewValidator(failingStore{})

	got, err := v.Validate(context.Background(), "Glucoza")
	if err == nil {
		t.Fatal("expected store error to surface")
	}
	if !got.Valid || got.Name == "" {
		t.Errorf("store failure must not reject the row: %+v", got)
	}
}

func TestValidate_EmptyName(t *testing.T) {
	v := NewValidator(NewMemoryStore())

	got, err := v.Validate(context.Background(), "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Valid {
		t.Errorf("empty name accepted: %+v", got)
	}
}
