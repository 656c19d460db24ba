package tables

import (
	"math"
	"sort"
	"strings"

	"github.com/laborator/rezulta/internal/romanian"
	"github.com/laborator/rezulta/model"
)

// Extractor converts a page's positioned words into column-bound rows using
// a header-keyword configuration.
type Extractor struct {
	config Config
}

// New creates an extractor with the default configuration.
func New() *Extractor {
	return &Extractor{config: DefaultConfig()}
}

// NewWithConfig creates an extractor with a provider-specific configuration.
func NewWithConfig(config Config) *Extractor {
	return &Extractor{config: config}
}

// Result is the outcome of extracting one page.
type Result struct {
	// Rows are the column-bound candidate rows, top to bottom. Empty when
	// no table could be located on the page.
	Rows []model.Row

	// Anchors are the locked column x-boundaries used for binning.
	Anchors map[Column]float64

	// UsedFallback reports that header voting failed and anchors were
	// derived by the single-keyword search instead.
	UsedFallback bool
}

// anchor is a column boundary locked to an x-coordinate.
type anchor struct {
	column Column
	x      float64
}

// headerCandidate is a word whose text matched a column's header keyword.
type headerCandidate struct {
	column Column
	x, y   float64
}

// Extract locates the header line, locks column anchors, and bins the words
// of the content region into rows. Absence of a detectable header degrades
// to an empty Result rather than an error.
func (e *Extractor) Extract(words []model.Word) *Result {
	if len(words) == 0 {
		return &Result{}
	}

	anchors, headerY, usedFallback := e.lockAnchors(words)
	if len(anchors) == 0 {
		return &Result{}
	}

	top, bottom := e.contentBounds(words, headerY)
	rows := e.binRows(e.clusterRows(words, top, bottom), anchors)

	anchorMap := make(map[Column]float64, len(anchors))
	for _, a := range anchors {
		anchorMap[a.column] = a.x
	}

	return &Result{Rows: rows, Anchors: anchorMap, UsedFallback: usedFallback}
}

// lockAnchors runs header voting and, when that fails to pin down at least
// two columns, the single-anchor fallback. The returned anchors are sorted
// by x ascending. headerY is the y-coordinate of the line the content
// region is measured from.
func (e *Extractor) lockAnchors(words []model.Word) (anchors []anchor, headerY float64, usedFallback bool) {
	cluster := e.voteHeader(words)
	if len(cluster) > 0 {
		if locked := e.anchorsFromHeader(cluster); len(locked) >= 2 {
			return locked, cluster[0].y, false
		}
	}

	kw, ok := e.searchFallbackAnchor(words)
	if !ok {
		return nil, 0, false
	}
	return e.anchorsFromFallback(kw), kw.Top, true
}

// columnOrder fixes the precedence a word's vote is resolved in. Each word
// votes for at most one column; without a fixed order a token like
// "Denumire", which happens to contain the unit keyword "um", could steal
// the unit anchor.
var columnOrder = []Column{ColumnName, ColumnResult, ColumnUnit, ColumnReference}

// voteHeader finds the most plausible header line. Every word matching a
// column keyword becomes a candidate; candidates are clustered by
// y-coordinate and the cluster covering the most distinct columns wins,
// ties broken by smallest y (topmost). Voting tolerates header cells that
// are vertically misaligned or split across several word tokens.
func (e *Extractor) voteHeader(words []model.Word) []headerCandidate {
	var candidates []headerCandidate
	for _, w := range words {
		folded := romanian.Fold(w.Text)
		for _, column := range columnOrder {
			if containsKeyword(folded, e.config.Headers[column]) {
				candidates = append(candidates, headerCandidate{column: column, x: w.X0, y: w.Top})
				break
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].y < candidates[j].y })

	var clusters [][]headerCandidate
	for _, c := range candidates {
		placed := false
		for i := range clusters {
			if math.Abs(c.y-clusters[i][0].y) <= e.config.HeaderYTolerance {
				clusters[i] = append(clusters[i], c)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, []headerCandidate{c})
		}
	}

	// Highest distinct-column coverage wins; clusters are already in
	// ascending y order, so the first best is the topmost.
	var best []headerCandidate
	bestScore := 0
	for _, cluster := range clusters {
		if score := distinctColumns(cluster); score > bestScore {
			best = cluster
			bestScore = score
		}
	}
	return best
}

func distinctColumns(cluster []headerCandidate) int {
	seen := make(map[Column]bool, 4)
	for _, c := range cluster {
		seen[c.column] = true
	}
	return len(seen)
}

// anchorsFromHeader locks each column present in the winning cluster to its
// first matching word's x0. A missing result column is derived at fixed
// offsets left of the reference anchor: some reports omit a printed
// "Rezultat" header while still printing "Interval"/"Referinta".
func (e *Extractor) anchorsFromHeader(cluster []headerCandidate) []anchor {
	locked := make(map[Column]float64, 4)
	for _, c := range cluster {
		if _, ok := locked[c.column]; !ok {
			locked[c.column] = c.x
		}
	}

	if _, ok := locked[ColumnResult]; !ok {
		if refX, ok := locked[ColumnReference]; ok {
			locked[ColumnResult] = refX - e.config.ResultOffset
			if _, ok := locked[ColumnUnit]; !ok {
				locked[ColumnUnit] = refX - e.config.UnitOffset
			}
		}
	}

	return sortedAnchors(locked)
}

// searchFallbackAnchor scans words top to bottom for the first occurrence of
// a result-like keyword. This recovers layouts where the header is a single
// unlabeled line or extraction noise defeated multi-keyword matching.
// Matching is looser than voting: a fragment like "Rezul" left behind by
// the text layer splitting "Rezultat" still anchors the table.
func (e *Extractor) searchFallbackAnchor(words []model.Word) (model.Word, bool) {
	sorted := make([]model.Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Top < sorted[j].Top })

	for _, w := range sorted {
		folded := romanian.Fold(strings.TrimSpace(w.Text))
		for _, kw := range e.config.FallbackKeywords {
			if strings.Contains(folded, kw) {
				return w, true
			}
			if len(folded) >= 4 && strings.Contains(kw, folded) {
				return w, true
			}
		}
	}
	return model.Word{}, false
}

// containsKeyword reports whether the folded text contains any keyword.
func containsKeyword(folded string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

// anchorsFromFallback derives all four column anchors at fixed offsets from
// the matched keyword's x. The name column opens at the page's left edge.
func (e *Extractor) anchorsFromFallback(kw model.Word) []anchor {
	return sortedAnchors(map[Column]float64{
		ColumnName:      0,
		ColumnResult:    kw.X0 - e.config.FallbackResultOffset,
		ColumnUnit:      kw.X0 + e.config.FallbackUnitOffset,
		ColumnReference: kw.X0 + e.config.FallbackReferenceOffset,
	})
}

func sortedAnchors(locked map[Column]float64) []anchor {
	anchors := make([]anchor, 0, len(locked))
	for column, x := range locked {
		anchors = append(anchors, anchor{column: column, x: x})
	}
	sort.Slice(anchors, func(i, j int) bool { return anchors[i].x < anchors[j].x })
	return anchors
}

// contentBounds returns the vertical extent of the data region: a fixed gap
// below the header down to the first footer keyword, or unbounded when no
// footer matches.
func (e *Extractor) contentBounds(words []model.Word, headerY float64) (top, bottom float64) {
	top = headerY + e.config.ContentGap
	bottom = math.Inf(1)

	for _, w := range words {
		if w.Top <= top {
			continue
		}
		if w.Top >= bottom {
			continue
		}
		if romanian.ContainsAny(w.Text, e.config.FooterKeywords) {
			bottom = w.Top
		}
	}
	return top, bottom
}

// clusterRows groups the content region's words into rows by vertical-center
// proximity. A word joins an existing row when its center is within
// tolerance of the row's running average center, else it starts a new row.
// Different tests render at slightly different baselines, so a fixed row
// height would split or merge rows incorrectly.
func (e *Extractor) clusterRows(words []model.Word, top, bottom float64) [][]model.Word {
	var content []model.Word
	for _, w := range words {
		if w.MidY() >= top && w.Top < bottom {
			content = append(content, w)
		}
	}
	if len(content) == 0 {
		return nil
	}

	sort.SliceStable(content, func(i, j int) bool { return content[i].MidY() < content[j].MidY() })

	var rows [][]model.Word
	for _, w := range content {
		placed := false
		for i := range rows {
			if math.Abs(w.MidY()-averageMidY(rows[i])) <= e.config.RowTolerance {
				rows[i] = append(rows[i], w)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, []model.Word{w})
		}
	}

	for i := range rows {
		sort.SliceStable(rows[i], func(a, b int) bool { return rows[i][a].X0 < rows[i][b].X0 })
	}
	return rows
}

func averageMidY(row []model.Word) float64 {
	total := 0.0
	for _, w := range row {
		total += w.MidY()
	}
	return total / float64(len(row))
}

// binRows assigns each word of a row to the column whose anchor interval
// contains the word's horizontal midpoint, then joins each column's words
// left to right with single spaces. Rows with neither name nor result are
// discarded as noise.
func (e *Extractor) binRows(rows [][]model.Word, anchors []anchor) []model.Row {
	var out []model.Row
	for _, rowWords := range rows {
		cells := make(map[Column][]string, len(anchors))
		for _, w := range rowWords {
			column := e.columnFor(w.MidX(), anchors)
			cells[column] = append(cells[column], w.Text)
		}

		row := model.Row{
			Name:      strings.Join(cells[ColumnName], " "),
			Result:    strings.Join(cells[ColumnResult], " "),
			Unit:      strings.Join(cells[ColumnUnit], " "),
			Reference: strings.Join(cells[ColumnReference], " "),
		}
		if row.IsEmpty() {
			continue
		}
		out = append(out, row)
	}
	return out
}

// columnFor returns the column whose [anchor, nextAnchor) interval contains
// midX. Words left of the first anchor belong to the first column.
func (e *Extractor) columnFor(midX float64, anchors []anchor) Column {
	column := anchors[0].column
	for i := len(anchors) - 1; i >= 1; i-- {
		if midX >= anchors[i].x {
			return anchors[i].column
		}
	}
	return column
}
