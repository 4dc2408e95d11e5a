package services

import (
	"sync"

	"provmark/internal/domain"
)

// QualityMarkService holds the reviewer's quality judgements for rows and
// for transform/feature categories. All operations are total: any int can
// be marked, whether or not it exists in the dataset.
type QualityMarkService struct {
	mu     sync.RWMutex
	policy domain.MarkPolicy
	notify *Notifier

	highQuality    domain.IndexSet
	lowQuality     domain.IndexSet
	highTransforms domain.IndexSet
	lowTransforms  domain.IndexSet
	highFeatures   domain.IndexSet
	lowFeatures    domain.IndexSet
}

// NewQualityMarkService creates an empty service. A nil notifier disables
// change notifications.
func NewQualityMarkService(policy domain.MarkPolicy, notify *Notifier) *QualityMarkService {
	if policy == "" {
		policy = domain.PolicyExclusive
	}
	s := &QualityMarkService{policy: policy, notify: notify}
	s.reset()
	return s
}

func (s *QualityMarkService) reset() {
	s.highQuality = domain.IndexSet{}
	s.lowQuality = domain.IndexSet{}
	s.highTransforms = domain.IndexSet{}
	s.lowTransforms = domain.IndexSet{}
	s.highFeatures = domain.IndexSet{}
	s.lowFeatures = domain.IndexSet{}
}

// Policy returns the row mark policy in effect
func (s *QualityMarkService) Policy() domain.MarkPolicy {
	return s.policy
}

// MarkHighQuality flags a row as high quality
func (s *QualityMarkService) MarkHighQuality(index int) {
	s.mu.Lock()
	s.highQuality.Add(index)
	switch s.policy {
	case domain.PolicyInspected:
		s.lowQuality.Add(index)
	default:
		s.lowQuality.Remove(index)
	}
	s.mu.Unlock()

	s.notify.Publish(TopicHighQualityIndices, TopicLowQualityIndices)
}

// UnmarkHighQuality clears a row's high-quality flag
func (s *QualityMarkService) UnmarkHighQuality(index int) {
	s.mutate(TopicHighQualityIndices, func() { s.highQuality.Remove(index) })
}

// MarkLowQuality flags a row as low quality
func (s *QualityMarkService) MarkLowQuality(index int) {
	s.mu.Lock()
	s.lowQuality.Add(index)
	if s.policy == domain.PolicyExclusive {
		s.highQuality.Remove(index)
	}
	s.mu.Unlock()

	s.notify.Publish(TopicLowQualityIndices, TopicHighQualityIndices)
}

// UnmarkLowQuality clears a row's low-quality flag
func (s *QualityMarkService) UnmarkLowQuality(index int) {
	s.mutate(TopicLowQualityIndices, func() { s.lowQuality.Remove(index) })
}

func (s *QualityMarkService) MarkHighQualityTransforms(t int) {
	s.mutate(TopicHighQualityTransforms, func() { s.highTransforms.Add(t) })
}

func (s *QualityMarkService) UnmarkHighQualityTransforms(t int) {
	s.mutate(TopicHighQualityTransforms, func() { s.highTransforms.Remove(t) })
}

func (s *QualityMarkService) MarkLowQualityTransforms(t int) {
	s.mutate(TopicLowQualityTransforms, func() { s.lowTransforms.Add(t) })
}

func (s *QualityMarkService) UnmarkLowQualityTransforms(t int) {
	s.mutate(TopicLowQualityTransforms, func() { s.lowTransforms.Remove(t) })
}

func (s *QualityMarkService) MarkHighQualityFeatures(f int) {
	s.mutate(TopicHighQualityFeatures, func() { s.highFeatures.Add(f) })
}

func (s *QualityMarkService) UnmarkHighQualityFeatures(f int) {
	s.mutate(TopicHighQualityFeatures, func() { s.highFeatures.Remove(f) })
}

func (s *QualityMarkService) MarkLowQualityFeatures(f int) {
	s.mutate(TopicLowQualityFeatures, func() { s.lowFeatures.Add(f) })
}

func (s *QualityMarkService) UnmarkLowQualityFeatures(f int) {
	s.mutate(TopicLowQualityFeatures, func() { s.lowFeatures.Remove(f) })
}

// ClearAllData empties every set, e.g. when another dataset is loaded
func (s *QualityMarkService) ClearAllData() {
	s.mu.Lock()
	s.reset()
	s.mu.Unlock()

	s.notify.Publish(
		TopicHighQualityIndices, TopicLowQualityIndices,
		TopicHighQualityTransforms, TopicLowQualityTransforms,
		TopicHighQualityFeatures, TopicLowQualityFeatures,
	)
}

func (s *QualityMarkService) mutate(topic Topic, fn func()) {
	s.mu.Lock()
	fn()
	s.mu.Unlock()
	s.notify.Publish(topic)
}

// HighQualityIndices returns a snapshot of the high-quality rows
func (s *QualityMarkService) HighQualityIndices() domain.IndexSet {
	return s.snapshot(func() domain.IndexSet { return s.highQuality })
}

// LowQualityIndices returns a snapshot of the low-quality rows
func (s *QualityMarkService) LowQualityIndices() domain.IndexSet {
	return s.snapshot(func() domain.IndexSet { return s.lowQuality })
}

func (s *QualityMarkService) HighQualityTransforms() domain.IndexSet {
	return s.snapshot(func() domain.IndexSet { return s.highTransforms })
}

func (s *QualityMarkService) LowQualityTransforms() domain.IndexSet {
	return s.snapshot(func() domain.IndexSet { return s.lowTransforms })
}

func (s *QualityMarkService) HighQualityFeatures() domain.IndexSet {
	return s.snapshot(func() domain.IndexSet { return s.highFeatures })
}

func (s *QualityMarkService) LowQualityFeatures() domain.IndexSet {
	return s.snapshot(func() domain.IndexSet { return s.lowFeatures })
}

// snapshot clones a set under the read lock. The field is selected inside
// the lock since ClearAllData swaps the maps.
func (s *QualityMarkService) snapshot(field func() domain.IndexSet) domain.IndexSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return field().Clone()
}
