package compare

import (
	"fmt"
	"sort"

	"github.com/goldpath/spectra/internal/model"
)

// RankedCandidate pairs a candidate with its separability from the
// reference. Lower separability means more similar.
type RankedCandidate struct {
	Signature    *model.Signature
	Separability float64
}

// RankBySimilarity orders candidates by ascending separability from the
// reference, most similar first. Ties break on candidate ID so the output
// order is deterministic. An empty candidate set is an error.
func RankBySimilarity(ref *model.Signature, candidates []*model.Signature, focus []int) ([]RankedCandidate, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	ranked := make([]RankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		report, err := Signatures(ref, c, focus)
		if err != nil {
			return nil, fmt.Errorf("comparing %q against %q: %w", ref.ID, c.ID, err)
		}
		ranked = append(ranked, RankedCandidate{Signature: c, Separability: report.Separability})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Separability != ranked[j].Separability {
			return ranked[i].Separability < ranked[j].Separability
		}
		return ranked[i].Signature.ID < ranked[j].Signature.ID
	})
	return ranked, nil
}

// Dedupe drops candidates that are the same logical signature as the
// reference, plus later repeats of an ID already seen. Identity is the
// signature ID alone.
func Dedupe(ref *model.Signature, candidates []*model.Signature) []*model.Signature {
	seen := make(map[string]bool, len(candidates))
	out := make([]*model.Signature, 0, len(candidates))
	for _, c := range candidates {
		if model.SameSignature(ref, c) || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out
}
