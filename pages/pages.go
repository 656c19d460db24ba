// Package pages is the input boundary of the pipeline: anything that can
// yield positioned words per page. PDF decoding is delegated to
// github.com/ledongthuc/pdf; this module never parses PDF binary structure
// itself.
package pages

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/laborator/rezulta/model"
)

// Source yields one word list per page of a document.
type Source interface {
	// PageCount returns the number of pages.
	PageCount() int

	// Words returns the positioned words of a page (1-indexed).
	Words(ctx context.Context, page int) ([]model.Word, error)
}

// SliceSource is an in-memory Source, one word slice per page. Useful for
// tests and for callers that run their own PDF text extraction.
type SliceSource [][]model.Word

// PageCount implements Source.
func (s SliceSource) PageCount() int { return len(s) }

// Words implements Source.
func (s SliceSource) Words(_ context.Context, page int) ([]model.Word, error) {
	if page < 1 || page > len(s) {
		return nil, fmt.Errorf("page %d out of range [1, %d]", page, len(s))
	}
	return s[page-1], nil
}

// PDFSource reads words from a PDF file's text layer.
type PDFSource struct {
	file   *os.File
	reader *pdf.Reader
}

// OpenPDF opens a PDF file as a word source. The returned source must be
// closed when done.
func OpenPDF(path string) (*PDFSource, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	return &PDFSource{file: file, reader: reader}, nil
}

// Close releases the underlying file.
func (s *PDFSource) Close() error {
	return s.file.Close()
}

// PageCount implements Source.
func (s *PDFSource) PageCount() int {
	return s.reader.NumPage()
}

// Words implements Source. Coordinates are flipped from PDF's bottom-left
// origin to the top-left origin the extraction pipeline expects, and
// adjacent character fragments are merged back into whole words so header
// keywords can match.
func (s *PDFSource) Words(_ context.Context, page int) ([]model.Word, error) {
	if page < 1 || page > s.reader.NumPage() {
		return nil, fmt.Errorf("page %d out of range [1, %d]", page, s.reader.NumPage())
	}

	p := s.reader.Page(page)
	if p.V.IsNull() {
		return nil, nil
	}

	height := pageHeight(p)

	var fragments []model.Word
	for _, t := range p.Content().Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		fontSize := t.FontSize
		if fontSize <= 0 {
			fontSize = 10
		}
		fragments = append(fragments, model.Word{
			Text:   t.S,
			X0:     t.X,
			X1:     t.X + t.W,
			Top:    height - t.Y - fontSize,
			Bottom: height - t.Y,
		})
	}

	return MergeFragments(fragments), nil
}

// pageHeight reads the page's MediaBox height, defaulting to US Letter when
// the entry is missing or malformed.
func pageHeight(p pdf.Page) float64 {
	mediaBox := p.V.Key("MediaBox")
	if mediaBox.IsNull() || mediaBox.Len() != 4 {
		return 792
	}
	height := mediaBox.Index(3).Float64() - mediaBox.Index(1).Float64()
	if height <= 0 {
		return 792
	}
	return height
}

// MergeFragments joins adjacent same-baseline fragments into whole words.
// PDF text layers frequently emit one fragment per glyph run; keyword
// matching needs "Rezultat" as one token, not four. Fragments merge when
// they share a baseline and the horizontal gap between them is under a
// third of the fragment height.
func MergeFragments(fragments []model.Word) []model.Word {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]model.Word, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Bottom != sorted[j].Bottom {
			return sorted[i].Bottom < sorted[j].Bottom
		}
		return sorted[i].X0 < sorted[j].X0
	})

	var words []model.Word
	current := sorted[0]
	for _, frag := range sorted[1:] {
		sameBaseline := abs(frag.Bottom-current.Bottom) <= current.Height()*0.2
		gap := frag.X0 - current.X1
		if sameBaseline && gap >= -0.5 && gap <= current.Height()/3 {
			current.Text += frag.Text
			if frag.X1 > current.X1 {
				current.X1 = frag.X1
			}
			if frag.Top < current.Top {
				current.Top = frag.Top
			}
			if frag.Bottom > current.Bottom {
				current.Bottom = frag.Bottom
			}
			continue
		}
		words = append(words, current)
		current = frag
	}
	words = append(words, current)
	return words
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
