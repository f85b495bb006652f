package validate

import (
	"fmt"

	"github.com/goldpath/spectra/internal/model"
)

// Warning is a non-blocking quality advisory. Band is 0 for record-level
// warnings.
type Warning struct {
	Field   string
	Message string
	Band    int
}

// QualityReport summarizes how complete and plausible a record is. It is
// independent of structural validity; an invalid record still gets a report.
type QualityReport struct {
	Warnings            []Warning
	Completeness        float64
	HasLocation         bool
	HasSource           bool
	HasStatistics       bool
	HasContinuumRemoved bool
	HasIndexValues      bool
}

// Optional slots counted toward completeness: continuum-removed on bands
// 7-12, index values on bands 13-18, notes on every band, plus the
// statistics block.
const completenessSlots = 6 + 6 + model.BandCount + 1

// Quality runs the advisory pass: range checks on reflectance, presence
// checks on location and source, and a completeness score over the optional
// fields. Nothing here affects validity; sensor-scaled inputs legitimately
// exceed [0,1].
func Quality(sig *model.Signature) QualityReport {
	report := QualityReport{
		HasLocation:   sig.Location.HasCoordinates(),
		HasStatistics: sig.Statistics != nil,
	}

	for _, b := range sig.Bands {
		if b.Reflectance < 0 || b.Reflectance > 1 {
			report.Warnings = append(report.Warnings, Warning{
				Field:   "reflectance_value",
				Band:    b.Number,
				Message: fmt.Sprintf("reflectance %g on band %d outside typical range [0,1]", b.Reflectance, b.Number),
			})
		}
		if b.ContinuumRemoved != nil {
			report.HasContinuumRemoved = true
		}
		if b.IndexValue != nil {
			report.HasIndexValues = true
		}
	}

	if !report.HasLocation {
		report.Warnings = append(report.Warnings, Warning{
			Field:   "location",
			Message: "no coordinate form present",
		})
	}

	if sig.Source != nil && (sig.Source.Sensor != "" || sig.Source.SceneID != "") {
		report.HasSource = true
	} else {
		report.Warnings = append(report.Warnings, Warning{
			Field:   "source",
			Message: "sensor and scene identifiers are absent",
		})
	}

	if sig.Statistics != nil {
		mean := sig.Statistics.MeanReflectance
		if mean < 0 || mean > 1 {
			report.Warnings = append(report.Warnings, Warning{
				Field:   "statistics.mean_reflectance",
				Message: fmt.Sprintf("mean reflectance %g outside typical range [0,1]", mean),
			})
		}
	}

	report.Completeness = completeness(sig)
	return report
}

func completeness(sig *model.Signature) float64 {
	filled := 0
	for _, b := range sig.Bands {
		if b.ContinuumRemoved != nil && model.IsContinuumBand(b.Number) {
			filled++
		}
		if b.IndexValue != nil && model.IsIndexBand(b.Number) {
			filled++
		}
		if b.Notes != "" {
			filled++
		}
	}
	if sig.Statistics != nil {
		filled++
	}
	return float64(filled) / float64(completenessSlots)
}
