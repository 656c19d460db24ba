package rezulta

// Options holds pipeline configuration.
type Options struct {
	// pages selects 1-indexed pages; nil means all pages.
	pages []int
}

// defaultOptions returns the default pipeline options.
func defaultOptions() Options {
	return Options{pages: nil}
}

// clone creates a deep copy of Options.
func (o Options) clone() Options {
	newOpts := Options{}
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}
	return newOpts
}
