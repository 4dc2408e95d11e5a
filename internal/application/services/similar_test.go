package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provmark/internal/domain"
)

func threeRows() []domain.DataRow {
	return []domain.DataRow{
		{ID: "a", Idx: 0, Text: "t0", Label: "pos", Transforms: "[1 0]", Features: "[0 1]", Diff: "d0", OldSentence: "o0"},
		{ID: "b", Idx: 1, Text: "t1", Label: "neg", Transforms: "[0 1]", Features: "[0 0]", Diff: "d1", OldSentence: "o1"},
		{ID: "c", Idx: 2, Text: "t2", Label: "pos", Transforms: "[1 1]", Features: "[1 1]", Diff: "d2", OldSentence: "o2"},
	}
}

func idxs(summaries []domain.RowSummary) []int {
	out := make([]int, len(summaries))
	for i, s := range summaries {
		out[i] = s.Idx
	}
	return out
}

func TestInitializeTransformsToData(t *testing.T) {
	s := NewFilterBySimilarDataService(nil)
	s.InitializeTransformsToDataIfNotExist(threeRows())

	idx := s.DataSliceOfTransformType()
	require.Len(t, idx, 2)
	assert.Equal(t, []int{0, 2}, idxs(idx[0]))
	assert.Equal(t, []int{1, 2}, idxs(idx[1]))

	assert.Equal(t, domain.RowSummary{ID: "a", Idx: 0, Text: "d0", Label: "pos"}, idx[0][0])
}

func TestInitializeFeaturesToData(t *testing.T) {
	s := NewFilterBySimilarDataService(nil)
	s.InitializeFeaturesToDataIfNotExist(threeRows())

	idx := s.DatapointsWithFeatures()
	require.Len(t, idx, 2)
	assert.Equal(t, []int{2}, idxs(idx[0]))
	assert.Equal(t, []int{0, 2}, idxs(idx[1]))
	assert.Equal(t, "o0", idx[1][0].Text)
}

func TestInitializeIsIdempotent(t *testing.T) {
	s := NewFilterBySimilarDataService(nil)
	s.InitializeTransformsToDataIfNotExist(threeRows())

	other := []domain.DataRow{{ID: "z", Idx: 9, Transforms: "[0 0 0 1]"}}
	s.InitializeTransformsToDataIfNotExist(other)

	idx := s.DatapointsWithTransforms()
	assert.NotContains(t, idx, 3)
	assert.Equal(t, []int{0, 2}, idxs(idx[0]))
}

func TestInitializeWithNoPositionsStaysEmpty(t *testing.T) {
	s := NewFilterBySimilarDataService(nil)
	s.InitializeTransformsToDataIfNotExist([]domain.DataRow{{Idx: 0, Transforms: "[0 0]"}})
	assert.Empty(t, s.DataSliceOfTransformType())

	// an empty index is still initializable
	s.InitializeTransformsToDataIfNotExist(threeRows())
	assert.Len(t, s.DataSliceOfTransformType(), 2)
}

func TestSetCommonReplaces(t *testing.T) {
	s := NewFilterBySimilarDataService(nil)

	s.SetCommonTransforms([]int{2, 5})
	s.SetCommonTransforms([]int{7})
	assert.Equal(t, []int{7}, s.CommonTransformTypes().Sorted())

	s.SetCommonFeatures([]int{1, 1, 3})
	s.SetCommonFeatures(nil)
	assert.Empty(t, s.CommonFeatureTypes().Sorted())
}

func TestCommonSnapshotsAreCopies(t *testing.T) {
	s := NewFilterBySimilarDataService(nil)
	s.SetCommonFeatures([]int{1})

	snap := s.CommonFeatureTypes()
	snap.Add(2)
	assert.Equal(t, []int{1}, s.CommonFeatureTypes().Sorted())
}

func TestFilterClearAllData(t *testing.T) {
	s := NewFilterBySimilarDataService(nil)
	s.InitializeTransformsToDataIfNotExist(threeRows())
	s.InitializeFeaturesToDataIfNotExist(threeRows())
	s.SetCommonTransforms([]int{0})
	s.SetCommonFeatures([]int{1})

	s.ClearAllData()

	assert.Empty(t, s.DataSliceOfTransformType())
	assert.Empty(t, s.DataSliceOfFeatureType())
	assert.Zero(t, s.CommonTransformTypes().Len())
	assert.Zero(t, s.CommonFeatureTypes().Len())

	rows := []domain.DataRow{{ID: "z", Idx: 9, Transforms: "[0 0 0 1]"}}
	s.InitializeTransformsToDataIfNotExist(rows)
	assert.Equal(t, []int{9}, idxs(s.DataSliceOfTransformType()[3]))
}
