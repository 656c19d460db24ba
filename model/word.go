package model

// Word is a single text token on a page with its horizontal and vertical
// extent. Coordinates follow the text layer's convention: X grows to the
// right, Y grows downward, so Top < Bottom for every word.
//
// Words are produced by an external PDF text extraction step and are never
// mutated by this module.
type Word struct {
	Text   string
	X0, X1 float64
	Top    float64
	Bottom float64
}

// MidX returns the horizontal midpoint of the word. Column binning compares
// this midpoint against the locked column anchors.
func (w Word) MidX() float64 {
	return (w.X0 + w.X1) / 2
}

// MidY returns the vertical center of the word. Row clustering groups words
// whose vertical centers are within tolerance of each other.
func (w Word) MidY() float64 {
	return (w.Top + w.Bottom) / 2
}

// Width returns the horizontal extent of the word.
func (w Word) Width() float64 {
	return w.X1 - w.X0
}

// Height returns the vertical extent of the word.
func (w Word) Height() float64 {
	return w.Bottom - w.Top
}
