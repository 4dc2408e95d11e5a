package domain

import "slices"

// Provenance holds the transform and feature positions shared by a set of
// reference rows
type Provenance struct {
	Transforms IndexSet
	Features   IndexSet
}

// ExtractProvenance unions the decoded bit positions of every high-quality
// row. Indices that match no row are ignored.
func ExtractProvenance(rows []DataRow, highQuality IndexSet) Provenance {
	prov := Provenance{
		Transforms: IndexSet{},
		Features:   IndexSet{},
	}
	for _, r := range rows {
		if !highQuality.Has(r.Idx) {
			continue
		}
		for _, pos := range r.TransformPositions() {
			prov.Transforms.Add(pos)
		}
		for _, pos := range r.FeaturePositions() {
			prov.Features.Add(pos)
		}
	}
	return prov
}

// OverlapScore counts the row's transform and feature positions that also
// appear in prov
func OverlapScore(r DataRow, prov Provenance) int {
	return countIn(r.TransformPositions(), prov.Transforms) + countIn(r.FeaturePositions(), prov.Features)
}

func countIn(positions []int, ref IndexSet) int {
	n := 0
	for _, p := range positions {
		if ref.Has(p) {
			n++
		}
	}
	return n
}

// SortBySimilarity returns a copy of rows ordered by descending overlap with
// prov. Rows with equal scores keep their relative order. Scores follow the
// rows themselves, so duplicate indices do not share a score.
func SortBySimilarity(rows []DataRow, prov Provenance) []DataRow {
	type scored struct {
		row   DataRow
		score int
	}
	ranked := make([]scored, len(rows))
	for i, r := range rows {
		ranked[i] = scored{row: r, score: OverlapScore(r, prov)}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		return b.score - a.score
	})

	sorted := make([]DataRow, len(ranked))
	for i, s := range ranked {
		sorted[i] = s.row
	}
	return sorted
}
