package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelectionType(t *testing.T) {
	for _, st := range SelectionTypes {
		got, err := ParseSelectionType(string(st))
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}

	_, err := ParseSelectionType("medium_Q")
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestSelectionType_NextCycles(t *testing.T) {
	assert.Equal(t, SelectionHighQuality, SelectionDefault.Next())
	assert.Equal(t, SelectionLowQuality, SelectionHighQuality.Next())
	assert.Equal(t, SelectionDefault, SelectionLowQuality.Next())
}

func TestParseMarkPolicy(t *testing.T) {
	p, err := ParseMarkPolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyExclusive, p)

	p, err = ParseMarkPolicy("inspected")
	require.NoError(t, err)
	assert.Equal(t, PolicyInspected, p)

	_, err = ParseMarkPolicy("sticky")
	assert.Error(t, err)
}

func TestParseNamespace(t *testing.T) {
	ns, err := ParseNamespace("transforms")
	require.NoError(t, err)
	assert.Equal(t, NamespaceTransform, ns)

	ns, err = ParseNamespace("feature")
	require.NoError(t, err)
	assert.Equal(t, NamespaceFeature, ns)

	_, err = ParseNamespace("labels")
	assert.ErrorIs(t, err, ErrInvalidNamespace)
}

func TestVocabulary_Names(t *testing.T) {
	v := DefaultVocabulary()

	assert.Equal(t, "AddNeutralEmoji", v.Name(NamespaceTransform, 0))
	assert.Equal(t, "WordDeletion", v.Name(NamespaceTransform, 19))
	assert.Equal(t, "transform #20", v.Name(NamespaceTransform, 20))
	assert.Equal(t, "feature #3", v.Name(NamespaceFeature, 3))

	assert.Equal(t, "pos", v.LabelName("1"))
	assert.Equal(t, "7", v.LabelName("7"))
	assert.Equal(t, "neutral", v.LabelName("neutral"))
}
