// Package compare quantifies how distinguishable signature records are.
// Separability is normalized against a fixed per-band expected dynamic range
// rather than the inputs themselves, so scores stay comparable across
// arbitrary signature pairs.
package compare

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/goldpath/spectra/internal/model"
)

// Comparator errors.
var (
	// ErrNoCandidates indicates a ranking call with an empty candidate set.
	ErrNoCandidates = errors.New("no candidates to rank")
	// ErrNoComparableBands indicates that no focus band had values on both
	// sides, leaving separability undefined.
	ErrNoComparableBands = errors.New("no comparable focus bands")
)

// relFloor keeps relative differences finite when both values are near zero.
const relFloor = 0.001

// DefaultFocusBands returns the default comparison focus: the phyllic
// sericite and composite gold index bands.
func DefaultFocusBands() []int {
	return []int{13, 16}
}

// BandDiff reports the difference on one band present in both records.
type BandDiff struct {
	Name       string
	Band       int
	ValueA     float64
	ValueB     float64
	AbsDiff    float64
	RelDiff    float64
	Normalized float64
}

// ExcludedBand records a band left out of a comparison because a value was
// never computed on one or both sides. Exclusion is explicit: an absent
// index is never treated as zero.
type ExcludedBand struct {
	Reason string
	Band   int
}

// Report is the outcome of comparing two signatures.
type Report struct {
	IDA            string
	IDB            string
	FocusBands     []int
	Bands          []BandDiff
	Excluded       []ExcludedBand
	KeyDifferences []BandDiff
	Separability   float64
}

// Signatures compares two records band by band. Bands 1-12 compare
// reflectance, 13-18 compare pathfinder indices. Separability is the mean
// normalized absolute difference over the focus bands available on both
// sides; if that set is empty the comparison fails rather than returning a
// misleading number. A nil focus selects DefaultFocusBands.
func Signatures(a, b *model.Signature, focus []int) (*Report, error) {
	if focus == nil {
		focus = DefaultFocusBands()
	}
	for _, n := range focus {
		if n < 1 || n > model.BandCount {
			return nil, fmt.Errorf("%w: focus band %d", model.ErrBandNotFound, n)
		}
	}

	report := &Report{
		IDA:        a.ID,
		IDB:        b.ID,
		FocusBands: append([]int(nil), focus...),
	}

	diffs := make(map[int]BandDiff, model.BandCount)
	for n := 1; n <= model.BandCount; n++ {
		va, okA := bandValue(a, n)
		vb, okB := bandValue(b, n)
		if !okA || !okB {
			report.Excluded = append(report.Excluded, ExcludedBand{
				Band:   n,
				Reason: excludeReason(okA, okB),
			})
			continue
		}

		abs := math.Abs(va - vb)
		denom := math.Max(math.Max(math.Abs(va), math.Abs(vb)), relFloor)
		d := BandDiff{
			Band:       n,
			Name:       model.BandName(n),
			ValueA:     va,
			ValueB:     vb,
			AbsDiff:    abs,
			RelDiff:    abs / denom,
			Normalized: math.Min(abs/model.ExpectedRange(n), 1),
		}
		report.Bands = append(report.Bands, d)
		diffs[n] = d
	}

	var sum float64
	available := 0
	for _, n := range focus {
		d, ok := diffs[n]
		if !ok {
			continue
		}
		sum += d.Normalized
		available++
		report.KeyDifferences = append(report.KeyDifferences, d)
	}
	if available == 0 {
		return nil, fmt.Errorf("%w: focus bands %v", ErrNoComparableBands, focus)
	}
	report.Separability = sum / float64(available)

	sort.Slice(report.KeyDifferences, func(i, j int) bool {
		ki, kj := report.KeyDifferences[i], report.KeyDifferences[j]
		if ki.Normalized != kj.Normalized {
			return ki.Normalized > kj.Normalized
		}
		return ki.Band < kj.Band
	})

	return report, nil
}

// bandValue selects the quantity compared on band n: reflectance for the
// physical channels, the pathfinder index for bands 13-18. ok is false when
// the value was never computed.
func bandValue(sig *model.Signature, n int) (float64, bool) {
	if model.IsIndexBand(n) {
		v, err := sig.IndexValue(n)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	v, err := sig.BandValue(n)
	if err != nil {
		return 0, false
	}
	return v, true
}

func excludeReason(okA, okB bool) string {
	switch {
	case !okA && !okB:
		return "value absent in both records"
	case !okA:
		return "value absent in first record"
	default:
		return "value absent in second record"
	}
}
