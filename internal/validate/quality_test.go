package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldpath/spectra/internal/model"
)

func TestQuality_OutOfRangeReflectanceWarnsButStaysValid(t *testing.T) {
	sig := validSignature(t)
	sig.Bands[2].Reflectance = 1.4

	res := Check(sig)
	assert.True(t, res.Valid, "out-of-range reflectance is a quality issue, not a structural one")

	report := Quality(sig)
	var found bool
	for _, w := range report.Warnings {
		if w.Band == 3 && w.Field == "reflectance_value" {
			found = true
		}
	}
	assert.True(t, found, "expected a range warning on band 3, got %v", report.Warnings)
}

func TestQuality_PresenceWarnings(t *testing.T) {
	sig := validSignature(t)

	report := Quality(sig)
	assert.False(t, report.HasLocation)
	assert.False(t, report.HasSource)
	assert.True(t, report.HasStatistics)

	fields := make(map[string]bool)
	for _, w := range report.Warnings {
		fields[w.Field] = true
	}
	assert.True(t, fields["location"])
	assert.True(t, fields["source"])
}

func TestQuality_CompleteRecord(t *testing.T) {
	values := make([]float64, 18)
	for i := range values {
		values[i] = 0.2
	}
	lat, lon := 48.75, 82.15
	sig, err := model.NewSignature(model.Input{
		ID:               "complete-001",
		Category:         model.CategoryGoldExploration,
		Reflectance:      values,
		ContinuumRemoved: []float64{0.9, 0.9, 0.9, 0.9, 0.9, 0.9},
		IndexValues:      []float64{150, 120, 100, 180, 110, 90},
		Location:         &model.Location{Latitude: &lat, Longitude: &lon},
		Source:           &model.Source{Sensor: "ASTER", SceneID: "AST_L1T_003"},
	})
	require.NoError(t, err)

	report := Quality(sig)
	assert.True(t, report.HasLocation)
	assert.True(t, report.HasSource)
	assert.True(t, report.HasContinuumRemoved)
	assert.True(t, report.HasIndexValues)
	assert.Empty(t, report.Warnings)

	// 6 continuum + 6 index + statistics, no notes: 13 of 31 slots
	assert.InDelta(t, 13.0/31.0, report.Completeness, 1e-9)
}

func TestQuality_CompletenessCountsNotes(t *testing.T) {
	sig := validSignature(t)
	sig.Bands[0].Notes = "strong absorption"

	// statistics block plus one note: 2 of 31 slots
	assert.InDelta(t, 2.0/31.0, Quality(sig).Completeness, 1e-9)
}

func TestQuality_MeanOutOfRange(t *testing.T) {
	sig := validSignature(t)
	sig.Statistics = &model.Statistics{MeanReflectance: 5.2}

	report := Quality(sig)
	var found bool
	for _, w := range report.Warnings {
		if w.Field == "statistics.mean_reflectance" {
			found = true
		}
	}
	assert.True(t, found)
}
