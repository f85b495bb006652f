// Package model defines the core domain models used throughout the application.
package model

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Accessor and construction errors.
var (
	// ErrBandCount indicates a band sequence of the wrong length.
	ErrBandCount = errors.New("signature requires exactly 18 bands")
	// ErrBandNotFound indicates a band number outside 1-18.
	ErrBandNotFound = errors.New("band number out of range")
	// ErrInvalidBand indicates an index lookup on a non-index band.
	ErrInvalidBand = errors.New("index values only exist on bands 13-18")
	// ErrNoValue indicates an optional value that was never computed.
	// Distinct from a measured zero.
	ErrNoValue = errors.New("no value recorded")
)

// Category partitions signatures by exploration target.
type Category string

// Valid signature categories.
const (
	CategoryGoldExploration Category = "gold_exploration"
	CategoryMinerals        Category = "minerals"
	CategoryVegetation      Category = "vegetation"
	CategoryBackground      Category = "background"
	CategoryOther           Category = "other"
)

// Categories returns the closed set of valid categories in declaration order.
func Categories() []Category {
	return []Category{
		CategoryGoldExploration,
		CategoryMinerals,
		CategoryVegetation,
		CategoryBackground,
		CategoryOther,
	}
}

// ValidCategory reports whether c belongs to the closed category set.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryGoldExploration, CategoryMinerals, CategoryVegetation,
		CategoryBackground, CategoryOther:
		return true
	default:
		return false
	}
}

// Band is one channel of a signature. WavelengthUM is required for bands 1-12
// and absent for 13-18. ContinuumRemoved is meaningful on bands 7-12 and
// IndexValue on bands 13-18; both use pointers so "not computed" stays
// distinguishable from a measured zero.
type Band struct {
	Number           int      `json:"band_number"`
	Name             string   `json:"band_name"`
	WavelengthUM     *float64 `json:"wavelength_um,omitempty"`
	Reflectance      float64  `json:"reflectance_value"`
	ContinuumRemoved *float64 `json:"continuum_removed,omitempty"`
	IndexValue       *float64 `json:"index_value,omitempty"`
	Notes            string   `json:"notes,omitempty"`
}

// Location carries whatever coordinate forms were captured for the sampled
// pixel. None is mandatory; their absence is a quality warning, not an error.
type Location struct {
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	UTMEasting  *float64 `json:"utm_easting,omitempty"`
	UTMNorthing *float64 `json:"utm_northing,omitempty"`
	PixelX      *float64 `json:"pixel_x,omitempty"`
	PixelY      *float64 `json:"pixel_y,omitempty"`
	UTMZone     string   `json:"utm_zone,omitempty"`
}

// HasCoordinates reports whether at least one coordinate form is present.
func (l *Location) HasCoordinates() bool {
	if l == nil {
		return false
	}
	return (l.Latitude != nil && l.Longitude != nil) ||
		(l.UTMEasting != nil && l.UTMNorthing != nil) ||
		(l.PixelX != nil && l.PixelY != nil)
}

// Source identifies where a signature's band values were extracted from.
type Source struct {
	Sensor           string `json:"sensor,omitempty"`
	SceneID          string `json:"scene_id,omitempty"`
	AcquisitionDate  string `json:"acquisition_date,omitempty"`
	ExtractionMethod string `json:"extraction_method,omitempty"`
}

// Statistics is a precomputed aggregate over reflectance on bands 1-12.
// When absent on a record, consumers derive it on demand.
type Statistics struct {
	MeanReflectance float64 `json:"mean_reflectance"`
	StdReflectance  float64 `json:"std_reflectance"`
	MinReflectance  float64 `json:"min_reflectance"`
	MaxReflectance  float64 `json:"max_reflectance"`
}

// Metadata carries bookkeeping fields for a signature record.
type Metadata struct {
	CreatedDate      string `json:"created_date,omitempty"`
	CreatedBy        string `json:"created_by,omitempty"`
	ValidationStatus string `json:"validation_status,omitempty"`
	Notes            string `json:"notes,omitempty"`
}

// Signature is one 18-band spectral measurement record for a single sampled
// location. Records are treated as immutable after construction; edits go
// through Clone-and-set helpers and produce new records. Identity is the ID
// alone: two records with the same ID are the same logical signature.
type Signature struct {
	ID          string      `json:"signature_id"`
	Category    Category    `json:"category"`
	Subcategory string      `json:"subcategory,omitempty"`
	Description string      `json:"description,omitempty"`
	Location    *Location   `json:"location,omitempty"`
	Source      *Source     `json:"source,omitempty"`
	Bands       []Band      `json:"bands"`
	Statistics  *Statistics `json:"statistics,omitempty"`
	Metadata    *Metadata   `json:"metadata,omitempty"`
}

// Input carries the raw material for assembling a Signature. Reflectance must
// hold exactly 18 values in band order. ContinuumRemoved, when present, holds
// 6 values for bands 7-12; IndexValues, when present, holds 6 values for
// bands 13-18. Everything else is optional metadata.
type Input struct {
	Location         *Location
	Source           *Source
	Metadata         *Metadata
	ID               string
	Category         Category
	Subcategory      string
	Description      string
	Reflectance      []float64
	ContinuumRemoved []float64
	IndexValues      []float64
}

// NewSignature assembles a Signature from a flat ordered value sequence.
// This is the common entry point for all creation flows: extraction-tool
// adapters hand in the 18 raw values here. An empty ID gets a fresh UUID.
// Category and coordinates are not checked here; parsing and construction
// are permissive, validation is strict.
func NewSignature(in Input) (*Signature, error) {
	if len(in.Reflectance) != BandCount {
		return nil, fmt.Errorf("%w: got %d reflectance values", ErrBandCount, len(in.Reflectance))
	}
	if in.ContinuumRemoved != nil && len(in.ContinuumRemoved) != LastContinuumBand-FirstContinuumBand+1 {
		return nil, fmt.Errorf("%w: got %d continuum-removed values, want 6", ErrBandCount, len(in.ContinuumRemoved))
	}
	if in.IndexValues != nil && len(in.IndexValues) != LastIndexBand-FirstIndexBand+1 {
		return nil, fmt.Errorf("%w: got %d index values, want 6", ErrBandCount, len(in.IndexValues))
	}

	bands := make([]Band, BandCount)
	for i := range bands {
		def := bandCatalog[i]
		b := Band{
			Number:      def.Number,
			Name:        def.Name,
			Reflectance: in.Reflectance[i],
		}
		if def.WavelengthUM != nil {
			w := *def.WavelengthUM
			b.WavelengthUM = &w
		}
		if in.ContinuumRemoved != nil && IsContinuumBand(def.Number) {
			v := in.ContinuumRemoved[def.Number-FirstContinuumBand]
			b.ContinuumRemoved = &v
		}
		if in.IndexValues != nil && IsIndexBand(def.Number) {
			v := in.IndexValues[def.Number-FirstIndexBand]
			b.IndexValue = &v
		}
		bands[i] = b
	}

	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}

	meta := in.Metadata
	if meta == nil {
		meta = &Metadata{}
	} else {
		m := *meta
		meta = &m
	}
	if meta.CreatedDate == "" {
		meta.CreatedDate = time.Now().Format("2006-01-02")
	}
	if meta.CreatedBy == "" {
		meta.CreatedBy = "unknown"
	}

	sig := &Signature{
		ID:          id,
		Category:    in.Category,
		Subcategory: in.Subcategory,
		Description: in.Description,
		Bands:       bands,
		Location:    in.Location,
		Source:      in.Source,
		Metadata:    meta,
	}
	stats := sig.DeriveStatistics()
	sig.Statistics = &stats
	return sig, nil
}

// BandValue returns the reflectance value stored for band number n.
func (s *Signature) BandValue(n int) (float64, error) {
	if n < 1 || n > BandCount {
		return 0, fmt.Errorf("%w: %d", ErrBandNotFound, n)
	}
	for i := range s.Bands {
		if s.Bands[i].Number == n {
			return s.Bands[i].Reflectance, nil
		}
	}
	return 0, fmt.Errorf("%w: %d", ErrBandNotFound, n)
}

// IndexValue returns the pathfinder index stored for band number n.
// Only bands 13-18 carry indices. An absent value is ErrNoValue, never a
// fabricated zero.
func (s *Signature) IndexValue(n int) (float64, error) {
	if !IsIndexBand(n) {
		return 0, fmt.Errorf("%w: band %d", ErrInvalidBand, n)
	}
	for i := range s.Bands {
		if s.Bands[i].Number == n {
			if s.Bands[i].IndexValue == nil {
				return 0, fmt.Errorf("%w: index for band %d", ErrNoValue, n)
			}
			return *s.Bands[i].IndexValue, nil
		}
	}
	return 0, fmt.Errorf("%w: %d", ErrBandNotFound, n)
}

// BandByName returns the band carrying the given catalog name.
func (s *Signature) BandByName(name string) (Band, bool) {
	for i := range s.Bands {
		if s.Bands[i].Name == name {
			return s.Bands[i], true
		}
	}
	return Band{}, false
}

// ValueKind selects which per-band quantity a vector extraction reads.
type ValueKind int

// Value kinds for vector extraction.
const (
	KindReflectance ValueKind = iota
	KindContinuum
	KindIndex
)

// Values extracts one value per band in ascending band order. Slots where the
// requested kind was never computed hold NaN so downstream statistics can
// mask them out instead of treating them as zeros.
func (s *Signature) Values(kind ValueKind) []float64 {
	out := make([]float64, len(s.Bands))
	for i := range s.Bands {
		switch kind {
		case KindContinuum:
			if s.Bands[i].ContinuumRemoved != nil {
				out[i] = *s.Bands[i].ContinuumRemoved
			} else {
				out[i] = math.NaN()
			}
		case KindIndex:
			if s.Bands[i].IndexValue != nil {
				out[i] = *s.Bands[i].IndexValue
			} else {
				out[i] = math.NaN()
			}
		default:
			out[i] = s.Bands[i].Reflectance
		}
	}
	return out
}

// DeriveStatistics computes the reflectance aggregate over bands 1-12.
func (s *Signature) DeriveStatistics() Statistics {
	var stats Statistics
	var sum float64
	var n int
	stats.MinReflectance = math.Inf(1)
	stats.MaxReflectance = math.Inf(-1)
	for i := range s.Bands {
		b := &s.Bands[i]
		if b.Number < FirstReflectanceBand || b.Number > LastContinuumBand {
			continue
		}
		sum += b.Reflectance
		n++
		if b.Reflectance < stats.MinReflectance {
			stats.MinReflectance = b.Reflectance
		}
		if b.Reflectance > stats.MaxReflectance {
			stats.MaxReflectance = b.Reflectance
		}
	}
	if n == 0 {
		return Statistics{}
	}
	stats.MeanReflectance = sum / float64(n)
	var sq float64
	for i := range s.Bands {
		b := &s.Bands[i]
		if b.Number < FirstReflectanceBand || b.Number > LastContinuumBand {
			continue
		}
		d := b.Reflectance - stats.MeanReflectance
		sq += d * d
	}
	stats.StdReflectance = math.Sqrt(sq / float64(n))
	return stats
}

// SameSignature reports whether a and b are the same logical signature.
// Identity is the ID alone, regardless of content drift.
func SameSignature(a, b *Signature) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}

// Clone returns a deep copy of the signature.
func (s *Signature) Clone() *Signature {
	out := *s
	out.Bands = make([]Band, len(s.Bands))
	for i := range s.Bands {
		b := s.Bands[i]
		b.WavelengthUM = clonePtr(b.WavelengthUM)
		b.ContinuumRemoved = clonePtr(b.ContinuumRemoved)
		b.IndexValue = clonePtr(b.IndexValue)
		out.Bands[i] = b
	}
	if s.Location != nil {
		l := *s.Location
		l.Latitude = clonePtr(l.Latitude)
		l.Longitude = clonePtr(l.Longitude)
		l.UTMEasting = clonePtr(l.UTMEasting)
		l.UTMNorthing = clonePtr(l.UTMNorthing)
		l.PixelX = clonePtr(l.PixelX)
		l.PixelY = clonePtr(l.PixelY)
		out.Location = &l
	}
	if s.Source != nil {
		src := *s.Source
		out.Source = &src
	}
	if s.Statistics != nil {
		st := *s.Statistics
		out.Statistics = &st
	}
	if s.Metadata != nil {
		m := *s.Metadata
		out.Metadata = &m
	}
	return &out
}

// WithID returns a copy of the signature under a new identity.
func (s *Signature) WithID(id string) *Signature {
	out := s.Clone()
	out.ID = id
	return out
}

// WithCategory returns a copy of the signature in a different category.
func (s *Signature) WithCategory(c Category) *Signature {
	out := s.Clone()
	out.Category = c
	return out
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
