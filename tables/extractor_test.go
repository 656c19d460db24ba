package tables

import (
	"testing"

	"github.com/laborator/rezulta/model"
)

// word builds a test word with a nominal 10-unit height and per-character
// width.
func word(text string, x, y float64) model.Word {
	return model.Word{
		Text:   text,
		X0:     x,
		X1:     x + float64(len(text))*6,
		Top:    y,
		Bottom: y + 10,
	}
}

// headerLine returns the standard four-column header at y=100.
func headerLine() []model.Word {
	return []model.Word{
		word("Denumire", 30, 100),
		word("Rezultat", 200, 100),
		word("UM", 300, 100),
		word("Interval", 350, 100),
	}
}

func TestExtract_SingleRow(t *testing.T) {
	words := append(headerLine(),
		word("Hemoglobina", 30, 120),
		word("14.5", 200, 120),
		word("g/dL", 300, 120),
		word("13.0-17.0", 350, 120),
	)

	result := New().Extract(words)

	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}
	row := result.Rows[0]
	if row.Name != "Hemoglobina" {
		t.Errorf("name = %q, want Hemoglobina", row.Name)
	}
	if row.Result != "14.5" {
		t.Errorf("result = %q, want 14.5", row.Result)
	}
	if row.Unit != "g/dL" {
		t.Errorf("unit = %q, want g/dL", row.Unit)
	}
	if row.Reference != "13.0-17.0" {
		t.Errorf("reference = %q, want 13.0-17.0", row.Reference)
	}
	if result.UsedFallback {
		t.Error("expected header voting, not fallback")
	}
}

func TestExtract_MultiWordCells(t *testing.T) {
	words := append(headerLine(),
		word("Colesterol", 30, 130),
		word("total", 100, 130),
		word("195", 200, 130),
		word("mg/dL", 300, 130),
		word("0", 350, 130),
		word("-", 360, 130),
		word("200", 370, 130),
	)

	result := New().Extract(words)

	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}
	if result.Rows[0].Name != "Colesterol total" {
		t.Errorf("name = %q, want %q", result.Rows[0].Name, "Colesterol total")
	}
	if result.Rows[0].Reference != "0 - 200" {
		t.Errorf("reference = %q, want %q", result.Rows[0].Reference, "0 - 200")
	}
}

func TestExtract_JitteredHeaderAndRows(t *testing.T) {
	// Header cells vertically misaligned within tolerance; data rows at
	// slightly different baselines.
	words := []model.Word{
		word("Denumire", 30, 98),
		word("Rezultat", 200, 103),
		word("UM", 300, 100),
		word("Interval", 350, 101),

		word("Glucoza", 30, 121),
		word("92", 200, 119),
		word("mg/dL", 300, 120),
		word("70-100", 350, 120),

		word("Creatinina", 30, 140),
		word("0.9", 200, 141),
		word("mg/dL", 300, 139),
		word("0.6-1.2", 350, 140),
	}

	result := New().Extract(words)

	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Rows))
	}
	if result.Rows[0].Name != "Glucoza" || result.Rows[1].Name != "Creatinina" {
		t.Errorf("rows out of order: %+v", result.Rows)
	}
}

func TestExtract_DerivedResultAnchor(t *testing.T) {
	// No "Rezultat" header, but "Interval" is printed; the result and unit
	// anchors are derived at fixed offsets left of the reference anchor.
	words := []model.Word{
		word("Denumire", 30, 100),
		word("Interval", 400, 100),

		word("TSH", 30, 120),
		word("2.1", 230, 120),
		word("uUI/mL", 330, 120),
		word("0.4-4.0", 400, 120),
	}

	result := New().Extract(words)

	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}
	row := result.Rows[0]
	if row.Name != "TSH" || row.Result != "2.1" || row.Unit != "uUI/mL" {
		t.Errorf("derived anchors misbinned row: %+v", row)
	}
}

func TestExtract_FallbackAnchorSearch(t *testing.T) {
	// Header voting fails: the text layer split "Rezultat" into fragments
	// no header keyword matches exactly. The fallback's looser matching
	// still anchors the table on the leading fragment.
	words := []model.Word{
		word("Rezul", 200, 50),
		word("tat", 232, 51),

		word("Hemoglobina", 30, 120),
		word("14.5", 200, 120),
		word("g/dL", 410, 120),
		word("13.0-17.0", 490, 120),
	}

	result := New().Extract(words)

	if !result.UsedFallback {
		t.Fatal("expected fallback anchor search")
	}
	if len(result.Rows) == 0 {
		t.Fatal("expected at least one row from fallback extraction")
	}
	row := result.Rows[0]
	if row.Name != "Hemoglobina" {
		t.Errorf("name = %q, want Hemoglobina", row.Name)
	}
	if row.Result != "14.5" {
		t.Errorf("result = %q, want 14.5", row.Result)
	}
}

func TestExtract_FooterBoundsContent(t *testing.T) {
	words := append(headerLine(),
		word("Glucoza", 30, 120),
		word("92", 200, 120),
		word("mg/dL", 300, 120),
		word("70-100", 350, 120),

		word("Medic", 30, 150),
		word("primar", 80, 150),

		// Below the footer: must not become a row.
		word("Str.", 30, 170),
		word("Exemplu", 60, 170),
		word("10", 200, 170),
	)

	result := New().Extract(words)

	if len(result.Rows) != 1 {
		t.Fatalf("expected footer to bound content, got %d rows", len(result.Rows))
	}
	if result.Rows[0].Name != "Glucoza" {
		t.Errorf("row = %+v", result.Rows[0])
	}
}

func TestExtract_NoiseRowsDiscarded(t *testing.T) {
	words := append(headerLine(),
		// Unit and reference but no name or result: pure noise.
		word("mg/dL", 300, 120),
		word("70-100", 350, 120),
	)

	result := New().Extract(words)

	if len(result.Rows) != 0 {
		t.Errorf("expected noise row discarded, got %+v", result.Rows)
	}
}

func TestExtract_EmptyPage(t *testing.T) {
	result := New().Extract(nil)
	if len(result.Rows) != 0 {
		t.Errorf("expected no rows for empty page")
	}

	// Words but no header and no fallback keyword: empty, not an error.
	result = New().Extract([]model.Word{word("Buletin", 30, 40), word("de", 90, 40), word("analize", 110, 40)})
	if len(result.Rows) != 0 {
		t.Errorf("expected no rows without anchors, got %+v", result.Rows)
	}
}

func TestExtract_HeaderVotingPicksTopmostBestCluster(t *testing.T) {
	// Two candidate lines: the real header covers four distinct columns,
	// a summary line further down covers one.
	words := []model.Word{
		word("Denumire", 30, 100),
		word("Rezultat", 200, 100),
		word("UM", 300, 100),
		word("Interval", 350, 100),

		word("Rezultatele", 30, 300),

		word("Glucoza", 30, 120),
		word("92", 200, 120),
		word("mg/dL", 300, 120),
		word("70-100", 350, 120),
	}

	result := New().Extract(words)

	if result.UsedFallback {
		t.Fatal("voting should have won")
	}
	if len(result.Rows) < 1 || result.Rows[0].Name != "Glucoza" {
		t.Errorf("rows = %+v", result.Rows)
	}
}

func TestExtract_DiacriticInsensitiveHeaders(t *testing.T) {
	words := []model.Word{
		word("Denumire", 30, 100),
		word("Rezultat", 200, 100),
		word("UM", 300, 100),
		word("Referință", 350, 100),

		word("VSH", 30, 120),
		word("12", 200, 120),
		word("mm/h", 300, 120),
		word("1-15", 350, 120),
	}

	result := New().Extract(words)

	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}
	if result.Rows[0].Reference != "1-15" {
		t.Errorf("reference = %q, want 1-15", result.Rows[0].Reference)
	}
}
