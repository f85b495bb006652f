// Package validate performs structural validation and quality checks over
// signature records. Validation is strict where parsing is permissive: the
// codec only guarantees shape, this package enforces the semantic rules.
// Both checks are pure functions of record content, never mutate their
// input, and report everything wrong in one pass rather than stopping at
// the first violation.
package validate

import (
	"fmt"

	"github.com/goldpath/spectra/internal/model"
)

// Issue describes one structural rule violation: the offending field, the
// band involved (0 when record-level), and the rule that failed.
type Issue struct {
	Field   string
	Rule    string
	Message string
	Band    int
}

func (i Issue) String() string {
	if i.Band > 0 {
		return fmt.Sprintf("band %d: %s", i.Band, i.Message)
	}
	return i.Message
}

// Result is the outcome of a structural check. Failures are reported as
// data, never as a returned error; the caller decides whether to reject.
type Result struct {
	Errors []Issue
	Valid  bool
}

// Check runs all structural rules over the record and collects every
// violation. Calling it twice on the same record yields identical results.
func Check(sig *model.Signature) Result {
	var errs []Issue

	if sig.ID == "" {
		errs = append(errs, Issue{
			Field:   "signature_id",
			Rule:    "required",
			Message: "signature_id must not be empty",
		})
	}

	if !model.ValidCategory(sig.Category) {
		errs = append(errs, Issue{
			Field:   "category",
			Rule:    "closed_set",
			Message: fmt.Sprintf("category %q is not one of %v", sig.Category, model.Categories()),
		})
	}

	errs = append(errs, checkBands(sig.Bands)...)

	return Result{Valid: len(errs) == 0, Errors: errs}
}

func checkBands(bands []model.Band) []Issue {
	var errs []Issue

	if len(bands) != model.BandCount {
		errs = append(errs, Issue{
			Field:   "bands",
			Rule:    "band_count",
			Message: fmt.Sprintf("expected %d bands, found %d", model.BandCount, len(bands)),
		})
	}

	seen := make(map[int]bool, len(bands))
	prev := 0
	for i, b := range bands {
		if b.Number < 1 || b.Number > model.BandCount {
			errs = append(errs, Issue{
				Field:   fmt.Sprintf("bands[%d].band_number", i),
				Rule:    "band_range",
				Band:    b.Number,
				Message: fmt.Sprintf("band_number %d outside 1-%d", b.Number, model.BandCount),
			})
			continue
		}
		if seen[b.Number] {
			errs = append(errs, Issue{
				Field:   fmt.Sprintf("bands[%d].band_number", i),
				Rule:    "band_unique",
				Band:    b.Number,
				Message: fmt.Sprintf("duplicate band_number %d", b.Number),
			})
		}
		seen[b.Number] = true

		if b.Number <= prev {
			errs = append(errs, Issue{
				Field:   fmt.Sprintf("bands[%d].band_number", i),
				Rule:    "band_order",
				Band:    b.Number,
				Message: fmt.Sprintf("band_number %d out of ascending order", b.Number),
			})
		}
		prev = b.Number

		if model.RequiresWavelength(b.Number) && b.WavelengthUM == nil {
			errs = append(errs, Issue{
				Field:   fmt.Sprintf("bands[%d].wavelength_um", i),
				Rule:    "wavelength_required",
				Band:    b.Number,
				Message: fmt.Sprintf("wavelength_um is required for band %d", b.Number),
			})
		}
		if !model.RequiresWavelength(b.Number) && b.WavelengthUM != nil {
			errs = append(errs, Issue{
				Field:   fmt.Sprintf("bands[%d].wavelength_um", i),
				Rule:    "wavelength_absent",
				Band:    b.Number,
				Message: fmt.Sprintf("wavelength_um must be absent for band %d", b.Number),
			})
		}
	}

	if len(bands) == model.BandCount {
		for n := 1; n <= model.BandCount; n++ {
			if !seen[n] {
				errs = append(errs, Issue{
					Field:   "bands",
					Rule:    "band_missing",
					Band:    n,
					Message: fmt.Sprintf("band %d is missing", n),
				})
			}
		}
	}

	return errs
}
