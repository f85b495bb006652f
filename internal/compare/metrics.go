package compare

import (
	"math"

	"github.com/goldpath/spectra/internal/model"
)

// Supplemental whole-spectrum metrics. These operate on the full 18-band
// vectors of a chosen value kind, masking out slots where a value was never
// computed on either side.

// EuclideanDistance returns the L2 distance between two signatures over the
// given value kind. Bands without a value on both sides are skipped.
func EuclideanDistance(a, b *model.Signature, kind model.ValueKind) float64 {
	va, vb := a.Values(kind), b.Values(kind)
	var sum float64
	for i := range va {
		if i >= len(vb) || math.IsNaN(va[i]) || math.IsNaN(vb[i]) {
			continue
		}
		d := va[i] - vb[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Correlation returns the Pearson correlation between two signatures over
// the given value kind. Fewer than two comparable bands yields 0.
func Correlation(a, b *model.Signature, kind model.ValueKind) float64 {
	va, vb := a.Values(kind), b.Values(kind)
	var xs, ys []float64
	for i := range va {
		if i >= len(vb) || math.IsNaN(va[i]) || math.IsNaN(vb[i]) {
			continue
		}
		xs = append(xs, va[i])
		ys = append(ys, vb[i])
	}
	if len(xs) < 2 {
		return 0
	}

	mx, my := mean(xs), mean(ys)
	var cov, vx, vy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return 0
	}
	return cov / math.Sqrt(vx*vy)
}

// PairSeparability returns a Jeffries-Matusita style separability in [0,2]
// between the two signatures' value distributions, using a Bhattacharyya
// distance approximation. Zero spread on either side yields 0.
func PairSeparability(a, b *model.Signature, kind model.ValueKind) float64 {
	va, vb := a.Values(kind), b.Values(kind)
	var xs, ys []float64
	for i := range va {
		if i >= len(vb) || math.IsNaN(va[i]) || math.IsNaN(vb[i]) {
			continue
		}
		xs = append(xs, va[i])
		ys = append(ys, vb[i])
	}
	if len(xs) < 2 {
		return 0
	}

	m1, m2 := mean(xs), mean(ys)
	s1, s2 := stddev(xs, m1), stddev(ys, m2)
	if s1 == 0 || s2 == 0 {
		return 0
	}
	avg := (s1 + s2) / 2
	sep := 2 * (1 - math.Exp(-0.125*(m1-m2)*(m1-m2)/(avg*avg)))
	return math.Min(sep, 2)
}

// CrossComparison holds pairwise metrics over a signature set.
type CrossComparison struct {
	IDs              []string
	Similarity       [][]float64
	Separability     [][]float64
	MeanSimilarity   float64
	MeanSeparability float64
}

// Matrix computes pairwise correlation and separability over a set of
// signatures. The similarity diagonal is 1 by definition. Means are taken
// over off-diagonal entries only.
func Matrix(sigs []*model.Signature, kind model.ValueKind) (*CrossComparison, error) {
	if len(sigs) == 0 {
		return nil, ErrNoCandidates
	}

	n := len(sigs)
	out := &CrossComparison{
		IDs:          make([]string, n),
		Similarity:   newMatrix(n),
		Separability: newMatrix(n),
	}
	for i, s := range sigs {
		out.IDs[i] = s.ID
		out.Similarity[i][i] = 1
	}

	var simSum, sepSum float64
	pairs := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sim := Correlation(sigs[i], sigs[j], kind)
			sep := PairSeparability(sigs[i], sigs[j], kind)
			out.Similarity[i][j], out.Similarity[j][i] = sim, sim
			out.Separability[i][j], out.Separability[j][i] = sep, sep
			simSum += sim
			sepSum += sep
			pairs++
		}
	}
	if pairs > 0 {
		out.MeanSimilarity = simSum / float64(pairs)
		out.MeanSeparability = sepSum / float64(pairs)
	}
	return out, nil
}

func newMatrix(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stddev(xs []float64, m float64) float64 {
	var sq float64
	for _, x := range xs {
		d := x - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(xs)))
}
