package compare

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldpath/spectra/internal/model"
)

// sigWithIndices builds a record with flat reflectance and the given
// pathfinder index values. Bands 13-18 absent from the map stay unset.
func sigWithIndices(t *testing.T, id string, indices map[int]float64) *model.Signature {
	t.Helper()

	values := make([]float64, 18)
	for i := range values {
		values[i] = 0.2
	}
	sig, err := model.NewSignature(model.Input{
		ID:          id,
		Category:    model.CategoryGoldExploration,
		Reflectance: values,
	})
	require.NoError(t, err)

	for n, v := range indices {
		v := v
		sig.Bands[n-1].IndexValue = &v
	}
	return sig
}

func sigWithReflectance(t *testing.T, id string, values []float64) *model.Signature {
	t.Helper()
	sig, err := model.NewSignature(model.Input{
		ID:          id,
		Category:    model.CategoryMinerals,
		Reflectance: values,
	})
	require.NoError(t, err)
	return sig
}

func TestSignatures_SelfComparisonIsZero(t *testing.T) {
	sig := sigWithIndices(t, "self", map[int]float64{13: 220, 16: 250})

	report, err := Signatures(sig, sig, nil)
	require.NoError(t, err)
	assert.Zero(t, report.Separability)
	for _, d := range report.Bands {
		assert.Zero(t, d.AbsDiff, "band %d", d.Band)
	}
}

func TestSignatures_Symmetric(t *testing.T) {
	a := sigWithIndices(t, "a", map[int]float64{13: 220, 16: 250})
	b := sigWithIndices(t, "b", map[int]float64{13: 40, 16: 90})

	ab, err := Signatures(a, b, nil)
	require.NoError(t, err)
	ba, err := Signatures(b, a, nil)
	require.NoError(t, err)

	assert.Equal(t, ab.Separability, ba.Separability)
	require.Equal(t, len(ab.Bands), len(ba.Bands))
	for i := range ab.Bands {
		assert.Equal(t, ab.Bands[i].AbsDiff, ba.Bands[i].AbsDiff)
		assert.Equal(t, ab.Bands[i].Normalized, ba.Bands[i].Normalized)
	}
}

func TestSignatures_SeparabilityValue(t *testing.T) {
	a := sigWithIndices(t, "a", map[int]float64{13: 220, 16: 250})
	b := sigWithIndices(t, "b", map[int]float64{13: 215, 16: 245})

	report, err := Signatures(a, b, nil)
	require.NoError(t, err)

	// mean of 5/300 on each focus band
	assert.InDelta(t, 5.0/300.0, report.Separability, 1e-9)
}

func TestSignatures_NormalizedClampsAtOne(t *testing.T) {
	a := sigWithIndices(t, "a", map[int]float64{13: 900, 16: 250})
	b := sigWithIndices(t, "b", map[int]float64{13: 100, 16: 250})

	report, err := Signatures(a, b, []int{13})
	require.NoError(t, err)
	assert.Equal(t, 1.0, report.Separability)
}

func TestSignatures_MissingFocusBandExcluded(t *testing.T) {
	a := sigWithIndices(t, "a", map[int]float64{13: 220, 16: 250})
	b := sigWithIndices(t, "b", map[int]float64{13: 100})

	report, err := Signatures(a, b, nil)
	require.NoError(t, err)

	// band 16 has no value on one side: flagged, never treated as zero
	var excluded *ExcludedBand
	for i := range report.Excluded {
		if report.Excluded[i].Band == 16 {
			excluded = &report.Excluded[i]
		}
	}
	require.NotNil(t, excluded, "band 16 should be excluded")
	assert.Equal(t, "value absent in second record", excluded.Reason)

	// separability falls back to the remaining focus band
	assert.InDelta(t, 120.0/300.0, report.Separability, 1e-9)
	require.Len(t, report.KeyDifferences, 1)
	assert.Equal(t, 13, report.KeyDifferences[0].Band)
}

func TestSignatures_NoComparableFocusBands(t *testing.T) {
	a := sigWithIndices(t, "a", nil)
	b := sigWithIndices(t, "b", nil)

	_, err := Signatures(a, b, nil)
	assert.ErrorIs(t, err, ErrNoComparableBands)
}

func TestSignatures_InvalidFocusBand(t *testing.T) {
	a := sigWithIndices(t, "a", map[int]float64{13: 220})
	b := sigWithIndices(t, "b", map[int]float64{13: 100})

	for _, n := range []int{0, 19, -3} {
		_, err := Signatures(a, b, []int{n})
		assert.ErrorIs(t, err, model.ErrBandNotFound, "focus band %d", n)
	}
}

func TestSignatures_KeyDifferencesSorted(t *testing.T) {
	a := sigWithIndices(t, "a", map[int]float64{13: 220, 14: 100, 16: 250})
	b := sigWithIndices(t, "b", map[int]float64{13: 190, 14: 100, 16: 100})

	report, err := Signatures(a, b, []int{13, 14, 16})
	require.NoError(t, err)

	require.Len(t, report.KeyDifferences, 3)
	assert.Equal(t, 16, report.KeyDifferences[0].Band)
	assert.Equal(t, 13, report.KeyDifferences[1].Band)
	assert.Equal(t, 14, report.KeyDifferences[2].Band)
}

func TestSignatures_ReflectanceFocus(t *testing.T) {
	values := make([]float64, 18)
	for i := range values {
		values[i] = 0.2
	}
	shifted := make([]float64, 18)
	copy(shifted, values)
	shifted[2] = 0.5

	a := sigWithReflectance(t, "a", values)
	b := sigWithReflectance(t, "b", shifted)

	report, err := Signatures(a, b, []int{3})
	require.NoError(t, err)
	assert.InDelta(t, 0.3, report.Separability, 1e-9)
}

func TestRankBySimilarity(t *testing.T) {
	ref := sigWithIndices(t, "ref", map[int]float64{13: 220, 16: 250})
	x := sigWithIndices(t, "x", map[int]float64{13: 215, 16: 245})
	y := sigWithIndices(t, "y", map[int]float64{13: 10, 16: 5})

	ranked, err := RankBySimilarity(ref, []*model.Signature{y, x}, nil)
	require.NoError(t, err)

	require.Len(t, ranked, 2)
	assert.Equal(t, "x", ranked[0].Signature.ID)
	assert.Equal(t, "y", ranked[1].Signature.ID)
	assert.Less(t, ranked[0].Separability, ranked[1].Separability)
}

func TestRankBySimilarity_TieBreaksOnID(t *testing.T) {
	ref := sigWithIndices(t, "ref", map[int]float64{13: 220, 16: 250})
	b := sigWithIndices(t, "b", map[int]float64{13: 220, 16: 250})
	a := sigWithIndices(t, "a", map[int]float64{13: 220, 16: 250})

	ranked, err := RankBySimilarity(ref, []*model.Signature{b, a}, nil)
	require.NoError(t, err)
	assert.Equal(t, "a", ranked[0].Signature.ID)
	assert.Equal(t, "b", ranked[1].Signature.ID)
}

func TestRankBySimilarity_EmptyCandidates(t *testing.T) {
	ref := sigWithIndices(t, "ref", map[int]float64{13: 220})
	_, err := RankBySimilarity(ref, nil, nil)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestRankBySimilarity_PropagatesComparisonError(t *testing.T) {
	ref := sigWithIndices(t, "ref", nil)
	bare := sigWithIndices(t, "bare", nil)

	_, err := RankBySimilarity(ref, []*model.Signature{bare}, nil)
	assert.ErrorIs(t, err, ErrNoComparableBands)
}

func TestDedupe(t *testing.T) {
	ref := sigWithIndices(t, "ref", map[int]float64{13: 220})
	refAgain := sigWithIndices(t, "ref", map[int]float64{13: 100})
	a := sigWithIndices(t, "a", map[int]float64{13: 50})
	aAgain := sigWithIndices(t, "a", map[int]float64{13: 60})
	b := sigWithIndices(t, "b", map[int]float64{13: 70})

	out := Dedupe(ref, []*model.Signature{refAgain, a, aAgain, b})
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
}

func TestEuclideanDistance(t *testing.T) {
	values := make([]float64, 18)
	for i := range values {
		values[i] = 0.2
	}
	shifted := make([]float64, 18)
	copy(shifted, values)
	shifted[0] = 0.5
	shifted[1] = 0.6

	a := sigWithReflectance(t, "a", values)
	b := sigWithReflectance(t, "b", shifted)

	want := math.Sqrt(0.3*0.3 + 0.4*0.4)
	assert.InDelta(t, want, EuclideanDistance(a, b, model.KindReflectance), 1e-9)

	// no index values on either side: nothing to accumulate
	assert.Zero(t, EuclideanDistance(a, b, model.KindIndex))
}

func TestCorrelation(t *testing.T) {
	up := make([]float64, 18)
	double := make([]float64, 18)
	flat := make([]float64, 18)
	for i := range up {
		up[i] = float64(i + 1)
		double[i] = 2 * float64(i+1)
		flat[i] = 0.5
	}

	a := sigWithReflectance(t, "a", up)
	b := sigWithReflectance(t, "b", double)
	c := sigWithReflectance(t, "c", flat)

	assert.InDelta(t, 1.0, Correlation(a, b, model.KindReflectance), 1e-9)
	assert.Zero(t, Correlation(a, c, model.KindReflectance), "zero variance side yields 0")
	assert.Zero(t, Correlation(a, b, model.KindIndex), "fewer than two comparable bands yields 0")
}

func TestPairSeparability(t *testing.T) {
	low := make([]float64, 18)
	high := make([]float64, 18)
	flat := make([]float64, 18)
	for i := range low {
		low[i] = 0.1 + float64(i)*0.01
		high[i] = 0.7 + float64(i)*0.01
		flat[i] = 0.5
	}

	a := sigWithReflectance(t, "a", low)
	b := sigWithReflectance(t, "b", high)
	c := sigWithReflectance(t, "c", flat)

	sep := PairSeparability(a, b, model.KindReflectance)
	assert.Greater(t, sep, 1.9, "well separated distributions approach 2")
	assert.LessOrEqual(t, sep, 2.0)

	assert.Zero(t, PairSeparability(a, c, model.KindReflectance), "zero spread yields 0")
	assert.Zero(t, PairSeparability(a, a, model.KindReflectance), "identical means yield 0")
}

func TestMatrix(t *testing.T) {
	up := make([]float64, 18)
	double := make([]float64, 18)
	down := make([]float64, 18)
	for i := range up {
		up[i] = float64(i + 1)
		double[i] = 2 * float64(i+1)
		down[i] = float64(18 - i)
	}

	sigs := []*model.Signature{
		sigWithReflectance(t, "a", up),
		sigWithReflectance(t, "b", double),
		sigWithReflectance(t, "c", down),
	}

	cross, err := Matrix(sigs, model.KindReflectance)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, cross.IDs)
	for i := range sigs {
		assert.Equal(t, 1.0, cross.Similarity[i][i])
	}
	assert.InDelta(t, 1.0, cross.Similarity[0][1], 1e-9)
	assert.InDelta(t, -1.0, cross.Similarity[0][2], 1e-9)
	assert.Equal(t, cross.Similarity[1][2], cross.Similarity[2][1])
	assert.Equal(t, cross.Separability[0][1], cross.Separability[1][0])

	_, err = Matrix(nil, model.KindReflectance)
	assert.ErrorIs(t, err, ErrNoCandidates)
}
