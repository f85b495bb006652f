package model

// Creation helpers for the common extraction workflows. All of them funnel
// through NewSignature so the shape contract is enforced in one place.

// Template builds a zero-valued signature for manual filling. All reflectance
// values are zero and no continuum or index values are set.
func Template(id string, category Category) (*Signature, error) {
	return NewSignature(Input{
		ID:          id,
		Category:    category,
		Reflectance: make([]float64, BandCount),
	})
}

// FromPixel builds a signature from raw pixel values as exported by a GIS
// identify tool. Coordinates may be pixel offsets, geographic, or both.
func FromPixel(id string, category Category, values []float64, loc Location, src *Source) (*Signature, error) {
	l := loc
	return NewSignature(Input{
		ID:          id,
		Category:    category,
		Reflectance: values,
		Location:    &l,
		Source:      src,
	})
}
