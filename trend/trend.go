// Package trend computes short-window trend directions over validated,
// flagged test results collected across documents. It is the downstream
// consumer of the extraction pipeline: records grouped by canonical name,
// the most recent few observations compared against their recent mean.
package trend

import (
	"sort"
	"strconv"
	"time"

	"github.com/laborator/rezulta/internal/romanian"
	"github.com/laborator/rezulta/model"
)

// Direction classifies a series' short-window movement.
type Direction string

const (
	DirectionUp          Direction = "up"
	DirectionDown        Direction = "down"
	DirectionStable      Direction = "stable"
	DirectionQualitative Direction = "qualitative"
)

// Observation is one dated, already-validated test result.
type Observation struct {
	Name  string
	Value string
	Unit  string
	Flag  model.Flag
	Date  time.Time
}

// numeric returns the observation's value as a float, if it has one.
func (o Observation) numeric() (float64, bool) {
	v, err := strconv.ParseFloat(o.Value, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Trend is the computed movement of one biomarker series.
type Trend struct {
	// Name is the canonical biomarker name shared by the group.
	Name string

	// Direction is the classified movement.
	Direction Direction

	// PercentChange is the latest value versus the mean of the prior
	// points in the window. Meaningless when HasPercent is false.
	PercentChange float64
	HasPercent    bool

	// Latest is the most recent observation in the group.
	Latest Observation

	// Count is the number of observations in the group.
	Count int
}

// Config tunes the analyzer.
type Config struct {
	// Window is how many recent observations the comparison uses.
	Window int

	// Threshold is the percent change beyond which a series counts as
	// moving rather than stable.
	Threshold float64
}

// DefaultConfig returns the tuned defaults: a 3-observation window and a
// ±10% threshold.
func DefaultConfig() Config {
	return Config{Window: 3, Threshold: 10.0}
}

// Analyzer groups observations by name and classifies each group.
type Analyzer struct {
	config Config
}

// NewAnalyzer creates an analyzer with the default configuration.
func NewAnalyzer() *Analyzer {
	return &Analyzer{config: DefaultConfig()}
}

// NewAnalyzerWithConfig creates an analyzer with a custom configuration.
func NewAnalyzerWithConfig(config Config) *Analyzer {
	return &Analyzer{config: config}
}

// Analyze groups the observations by folded name and classifies each group.
// Numeric groups need at least two dated observations; qualitative groups
// are reported from a single positive finding. The result is sorted by most
// recent observation date, descending.
func (a *Analyzer) Analyze(observations []Observation) []Trend {
	groups := make(map[string][]Observation)
	displayName := make(map[string]string)
	for _, o := range observations {
		key := romanian.Fold(o.Name)
		groups[key] = append(groups[key], o)
		if _, ok := displayName[key]; !ok {
			displayName[key] = o.Name
		}
	}

	var trends []Trend
	for key, group := range groups {
		sort.SliceStable(group, func(i, j int) bool { return group[i].Date.Before(group[j].Date) })
		if t, ok := a.classify(displayName[key], group); ok {
			trends = append(trends, t)
		}
	}

	sort.SliceStable(trends, func(i, j int) bool {
		return trends[i].Latest.Date.After(trends[j].Latest.Date)
	})
	return trends
}

// classify computes one group's trend. The group is sorted by date
// ascending.
func (a *Analyzer) classify(name string, group []Observation) (Trend, bool) {
	latest := group[len(group)-1]
	trend := Trend{Name: name, Latest: latest, Count: len(group)}

	if _, ok := latest.numeric(); !ok {
		// Qualitative series: worth reporting from a single positive
		// finding, without a percent change.
		positive := latest.Flag == model.FlagHigh ||
			romanian.MatchesAny(latest.Value, romanian.PositiveStatus)
		if !positive && len(group) < 2 {
			return Trend{}, false
		}
		trend.Direction = DirectionQualitative
		return trend, true
	}

	if len(group) < 2 {
		return Trend{}, false
	}

	window := group
	if len(window) > a.config.Window {
		window = window[len(window)-a.config.Window:]
	}

	latestValue, _ := window[len(window)-1].numeric()
	priorSum := 0.0
	priorCount := 0
	for _, o := range window[:len(window)-1] {
		if v, ok := o.numeric(); ok {
			priorSum += v
			priorCount++
		}
	}
	if priorCount == 0 || priorSum == 0 {
		trend.Direction = DirectionStable
		return trend, true
	}

	mean := priorSum / float64(priorCount)
	trend.PercentChange = (latestValue - mean) / mean * 100
	trend.HasPercent = true

	switch {
	case trend.PercentChange > a.config.Threshold:
		trend.Direction = DirectionUp
	case trend.PercentChange < -a.config.Threshold:
		trend.Direction = DirectionDown
	default:
		trend.Direction = DirectionStable
	}
	return trend, true
}
