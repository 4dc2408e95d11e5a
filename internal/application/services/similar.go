package services

import (
	"sync"

	"provmark/internal/domain"
)

// CategoryIndex maps a category position to the rows exhibiting it, in
// dataset order
type CategoryIndex map[int][]domain.RowSummary

// FilterBySimilarDataService owns the category-to-rows indices and the
// currently common category sets
type FilterBySimilarDataService struct {
	mu     sync.RWMutex
	notify *Notifier

	transformsToData CategoryIndex
	featuresToData   CategoryIndex
	commonTransforms domain.IndexSet
	commonFeatures   domain.IndexSet
}

// NewFilterBySimilarDataService creates an empty service
func NewFilterBySimilarDataService(notify *Notifier) *FilterBySimilarDataService {
	return &FilterBySimilarDataService{
		notify:           notify,
		transformsToData: CategoryIndex{},
		featuresToData:   CategoryIndex{},
		commonTransforms: domain.IndexSet{},
		commonFeatures:   domain.IndexSet{},
	}
}

// InitializeTransformsToDataIfNotExist builds the transform index from rows
// unless it is already populated. Summaries carry the row's diff text.
func (s *FilterBySimilarDataService) InitializeTransformsToDataIfNotExist(rows []domain.DataRow) {
	s.mu.Lock()
	if len(s.transformsToData) > 0 {
		s.mu.Unlock()
		return
	}
	s.transformsToData = buildIndex(rows, domain.DataRow.TransformPositions, func(r domain.DataRow) string { return r.Diff })
	s.mu.Unlock()

	s.notify.Publish(TopicTransformIndex)
}

// InitializeFeaturesToDataIfNotExist builds the feature index from rows
// unless it is already populated. Summaries carry the row's old sentence.
func (s *FilterBySimilarDataService) InitializeFeaturesToDataIfNotExist(rows []domain.DataRow) {
	s.mu.Lock()
	if len(s.featuresToData) > 0 {
		s.mu.Unlock()
		return
	}
	s.featuresToData = buildIndex(rows, domain.DataRow.FeaturePositions, func(r domain.DataRow) string { return r.OldSentence })
	s.mu.Unlock()

	s.notify.Publish(TopicFeatureIndex)
}

func buildIndex(rows []domain.DataRow, positions func(domain.DataRow) []int, text func(domain.DataRow) string) CategoryIndex {
	idx := CategoryIndex{}
	for _, r := range rows {
		for _, p := range positions(r) {
			idx[p] = append(idx[p], r.Summary(text(r)))
		}
	}
	return idx
}

// SetCommonTransforms replaces the common transform set with exactly indices
func (s *FilterBySimilarDataService) SetCommonTransforms(indices []int) {
	s.mu.Lock()
	s.commonTransforms = domain.NewIndexSet(indices...)
	s.mu.Unlock()

	s.notify.Publish(TopicCommonTransforms)
}

// SetCommonFeatures replaces the common feature set with exactly indices
func (s *FilterBySimilarDataService) SetCommonFeatures(indices []int) {
	s.mu.Lock()
	s.commonFeatures = domain.NewIndexSet(indices...)
	s.mu.Unlock()

	s.notify.Publish(TopicCommonFeatures)
}

func (s *FilterBySimilarDataService) CommonTransformTypes() domain.IndexSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.commonTransforms.Clone()
}

func (s *FilterBySimilarDataService) CommonFeatureTypes() domain.IndexSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.commonFeatures.Clone()
}

// DataSliceOfTransformType returns the transform index itself, not a copy.
// Callers must treat it as read-only.
func (s *FilterBySimilarDataService) DataSliceOfTransformType() CategoryIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transformsToData
}

// DatapointsWithTransforms is an alias of DataSliceOfTransformType
func (s *FilterBySimilarDataService) DatapointsWithTransforms() CategoryIndex {
	return s.DataSliceOfTransformType()
}

// DataSliceOfFeatureType returns the feature index itself, not a copy.
// Callers must treat it as read-only.
func (s *FilterBySimilarDataService) DataSliceOfFeatureType() CategoryIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.featuresToData
}

// DatapointsWithFeatures is an alias of DataSliceOfFeatureType
func (s *FilterBySimilarDataService) DatapointsWithFeatures() CategoryIndex {
	return s.DataSliceOfFeatureType()
}

// ClearAllData empties both indices and both common sets so the next
// initialize call repopulates them
func (s *FilterBySimilarDataService) ClearAllData() {
	s.mu.Lock()
	s.transformsToData = CategoryIndex{}
	s.featuresToData = CategoryIndex{}
	s.commonTransforms = domain.IndexSet{}
	s.commonFeatures = domain.IndexSet{}
	s.mu.Unlock()

	s.notify.Publish(TopicTransformIndex, TopicFeatureIndex, TopicCommonTransforms, TopicCommonFeatures)
}
