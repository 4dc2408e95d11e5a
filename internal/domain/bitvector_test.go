package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeBitPositions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []int
	}{
		{"brackets stripped", "[1 0 1]", []int{0, 2}},
		{"all zeros", "[0 0 0]", nil},
		{"single one", "[1]", []int{0}},
		{"empty vector", "[]", nil},
		{"too short", "[", nil},
		{"empty string", "", nil},
		{"malformed token skipped", "[1 x 1]", []int{0, 2}},
		{"values other than one ignored", "[2 1 -1]", []int{1}},
		{"double space shifts positions", "[1  1]", []int{0, 2}},
		{"multi-byte delimiters", "«1 0 1»", []int{0, 2}},
		{"single multi-byte rune", "«", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeBitPositions(tt.raw))
		})
	}
}

func TestIndexSet_CloneIsIndependent(t *testing.T) {
	s := NewIndexSet(1, 2)
	c := s.Clone()
	c.Add(3)
	s.Remove(1)

	assert.Equal(t, []int{2}, s.Sorted())
	assert.Equal(t, []int{1, 2, 3}, c.Sorted())
}

func TestIndexSet_SortedEmptyIsNotNil(t *testing.T) {
	assert.NotNil(t, IndexSet{}.Sorted())
	assert.Empty(t, IndexSet{}.Sorted())
}

func TestIndexSet_Equal(t *testing.T) {
	assert.True(t, NewIndexSet(1, 2).Equal(NewIndexSet(2, 1)))
	assert.False(t, NewIndexSet(1).Equal(NewIndexSet(1, 2)))
	assert.False(t, NewIndexSet(1, 3).Equal(NewIndexSet(1, 2)))
}
