package services

import "sync"

// Topic names an observable piece of review state
type Topic string

const (
	TopicHighQualityIndices    Topic = "high_quality_indices"
	TopicLowQualityIndices     Topic = "low_quality_indices"
	TopicHighQualityTransforms Topic = "high_quality_transforms"
	TopicLowQualityTransforms  Topic = "low_quality_transforms"
	TopicHighQualityFeatures   Topic = "high_quality_features"
	TopicLowQualityFeatures    Topic = "low_quality_features"
	TopicCommonTransforms      Topic = "common_transforms"
	TopicCommonFeatures        Topic = "common_features"
	TopicTransformIndex        Topic = "transform_index"
	TopicFeatureIndex          Topic = "feature_index"
	TopicDataset               Topic = "dataset"
)

// Change announces that the state behind Topic was replaced. Subscribers
// re-read the snapshot they care about.
type Change struct {
	Topic   Topic  `json:"topic"`
	Version uint64 `json:"version"`
}

// Notifier fans changes out to subscribers without ever blocking a writer
type Notifier struct {
	mu      sync.Mutex
	subs    map[int]chan Change
	nextID  int
	version uint64
}

// NewNotifier creates an empty notifier
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan Change)}
}

// Subscribe registers a listener. The returned cancel func closes the
// channel and must be called once the listener is done.
func (n *Notifier) Subscribe(buffer int) (<-chan Change, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Change, buffer)

	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subs[id] = ch
	n.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Version returns the number of changes published so far
func (n *Notifier) Version() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.version
}

// Publish announces changes to every subscriber. A full subscriber channel
// already holds a pending change, so the send is skipped.
func (n *Notifier) Publish(topics ...Topic) {
	if n == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, t := range topics {
		n.version++
		c := Change{Topic: t, Version: n.version}
		for _, ch := range n.subs {
			select {
			case ch <- c:
			default:
			}
		}
	}
}
