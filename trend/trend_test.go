package trend

import (
	"math"
	"testing"
	"time"

	"github.com/laborator/rezulta/model"
)

func day(n int) time.Time {
	return time.Date(2024, time.January, n, 0, 0, 0, 0, time.UTC)
}

func obs(name, value string, n int) Observation {
	return Observation{Name: name, Value: value, Date: day(n)}
}

func TestAnalyze_Up(t *testing.T) {
	trends := NewAnalyzer().Analyze([]Observation{
		obs("Glucoza", "90", 1),
		obs("Glucoza", "95", 2),
		obs("Glucoza", "120", 3),
	})

	if len(trends) != 1 {
		t.Fatalf("expected 1 trend, got %d", len(trends))
	}
	tr := trends[0]
	if tr.Direction != DirectionUp {
		t.Errorf("direction = %q, want up", tr.Direction)
	}
	if !tr.HasPercent {
		t.Fatal("expected a percent change")
	}
	// 120 versus mean(90, 95) = 92.5.
	want := (120 - 92.5) / 92.5 * 100
	if math.Abs(tr.PercentChange-want) > 1e-9 {
		t.Errorf("percent = %v, want %v", tr.PercentChange, want)
	}
	if tr.Count != 3 || tr.Latest.Value != "120" {
		t.Errorf("trend = %+v", tr)
	}
}

func TestAnalyze_Down(t *testing.T) {
	trends := NewAnalyzer().Analyze([]Observation{
		obs("Feritina", "100", 1),
		obs("Feritina", "60", 2),
	})

	if len(trends) != 1 || trends[0].Direction != DirectionDown {
		t.Fatalf("trends = %+v", trends)
	}
}

func TestAnalyze_Stable(t *testing.T) {
	trends := NewAnalyzer().Analyze([]Observation{
		obs("TSH", "2.0", 1),
		obs("TSH", "2.1", 2),
	})

	if len(trends) != 1 || trends[0].Direction != DirectionStable {
		t.Fatalf("trends = %+v", trends)
	}
}

func TestAnalyze_WindowLimitsComparison(t *testing.T) {
	// Old values outside the 3-observation window must not dilute the mean:
	// only (100, 100) precede the latest.
	trends := NewAnalyzer().Analyze([]Observation{
		obs("Glucoza", "500", 1),
		obs("Glucoza", "100", 2),
		obs("Glucoza", "100", 3),
		obs("Glucoza", "105", 4),
	})

	if len(trends) != 1 {
		t.Fatalf("trends = %+v", trends)
	}
	if trends[0].Direction != DirectionStable {
		t.Errorf("direction = %q, want stable within the window", trends[0].Direction)
	}
}

func TestAnalyze_SingleNumericObservationSkipped(t *testing.T) {
	trends := NewAnalyzer().Analyze([]Observation{obs("Glucoza", "92", 1)})
	if len(trends) != 0 {
		t.Errorf("trends = %+v", trends)
	}
}

func TestAnalyze_QualitativePositiveFinding(t *testing.T) {
	trends := NewAnalyzer().Analyze([]Observation{
		{Name: "Helicobacter pylori", Value: "pozitiv", Flag: model.FlagHigh, Date: day(1)},
	})

	if len(trends) != 1 || trends[0].Direction != DirectionQualitative {
		t.Fatalf("trends = %+v", trends)
	}
	if trends[0].HasPercent {
		t.Error("qualitative trend must not carry a percent change")
	}
}

func TestAnalyze_QualitativeSingleNegativeSkipped(t *testing.T) {
	trends := NewAnalyzer().Analyze([]Observation{
		{Name: "Antigen HBs", Value: "negativ", Flag: model.FlagNormal, Date: day(1)},
	})
	if len(trends) != 0 {
		t.Errorf("trends = %+v", trends)
	}
}

func TestAnalyze_GroupsFoldNamesAndSortByLatestDate(t *testing.T) {
	trends := NewAnalyzer().Analyze([]Observation{
		obs("Glucoza", "90", 1),
		obs("GLUCOZĂ", "120", 5),

		obs("TSH", "2.0", 2),
		obs("TSH", "2.1", 9),
	})

	if len(trends) != 2 {
		t.Fatalf("expected 2 trends, got %d", len(trends))
	}
	if trends[0].Name != "TSH" {
		t.Errorf("most recent series first: %+v", trends)
	}
	if trends[1].Count != 2 {
		t.Errorf("folded names not grouped: %+v", trends[1])
	}
}

func TestAnalyze_UnorderedInput(t *testing.T) {
	// Observations arrive in arbitrary order; the latest by date decides.
	trends := NewAnalyzer().Analyze([]Observation{
		obs("Glucoza", "120", 3),
		obs("Glucoza", "90", 1),
		obs("Glucoza", "95", 2),
	})

	if len(trends) != 1 || trends[0].Latest.Value != "120" || trends[0].Direction != DirectionUp {
		t.Fatalf("trends = %+v", trends)
	}
}

func TestAnalyzerWithConfig(t *testing.T) {
	a := NewAnalyzerWithConfig(Config{Window: 2, Threshold: 50})
	trends := a.Analyze([]Observation{
		obs("Glucoza", "100", 1),
		obs("Glucoza", "130", 2),
	})

	// 30% change sits under the 50% threshold.
	if len(trends) != 1 || trends[0].Direction != DirectionStable {
		t.Fatalf("trends = %+v", trends)
	}
}
