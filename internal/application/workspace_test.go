package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provmark/internal/application/services"
	"provmark/internal/domain"
)

func TestWorkspace_SetRowsClearsState(t *testing.T) {
	ws := NewWorkspace(WorkspaceOptions{})
	require.ErrorIs(t, ws.RequireDataset(), ErrNoDataset)

	rows := []domain.DataRow{
		{Idx: 0, Transforms: "[1 0]"},
		{Idx: 1, Transforms: "[0 1]"},
	}
	ws.SetRows("first.csv", rows)
	ws.Quality.MarkHighQuality(0)
	ws.Similar.InitializeTransformsToDataIfNotExist(rows)
	ws.Similar.SetCommonTransforms([]int{0})

	ch, cancel := ws.Notifier.Subscribe(32)
	defer cancel()

	ws.SetRows("second.csv", rows[:1])

	assert.Equal(t, "second.csv", ws.Source())
	assert.Len(t, ws.Rows(), 1)
	assert.Zero(t, ws.Quality.HighQualityIndices().Len())
	assert.Empty(t, ws.Similar.DataSliceOfTransformType())
	assert.Zero(t, ws.Similar.CommonTransformTypes().Len())

	var topics []services.Topic
	for len(ch) > 0 {
		topics = append(topics, (<-ch).Topic)
	}
	assert.Contains(t, topics, services.TopicDataset)
}

func TestWorkspace_RowsAt(t *testing.T) {
	ws := NewWorkspace(WorkspaceOptions{})
	ws.SetRows("x", []domain.DataRow{{Idx: 5}, {Idx: 2}, {Idx: 9}})

	got := ws.RowsAt(domain.NewIndexSet(9, 2, 42))
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Idx)
	assert.Equal(t, 9, got[1].Idx)

	_, ok := ws.Row(42)
	assert.False(t, ok)
}

func TestWorkspace_DefaultVocabulary(t *testing.T) {
	ws := NewWorkspace(WorkspaceOptions{})
	assert.Equal(t, "AddNeutralEmoji", ws.Vocab.Name(domain.NamespaceTransform, 0))

	custom := domain.Vocabulary{Features: []string{"negation"}}
	ws = NewWorkspace(WorkspaceOptions{Vocab: &custom, Policy: domain.PolicyInspected})
	assert.Equal(t, "negation", ws.Vocab.Name(domain.NamespaceFeature, 0))
	assert.Equal(t, domain.PolicyInspected, ws.Quality.Policy())
}
