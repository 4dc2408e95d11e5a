package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginator(t *testing.T) {
	p := NewPaginator(2)
	p.SetTotal(5)
	assert.Equal(t, 3, p.TotalPages())

	assert.True(t, p.NextPage())
	assert.Equal(t, 2, p.Cursor())
	assert.Equal(t, 2, p.CurrentPage())

	start, end := p.VisibleRange()
	assert.Equal(t, 2, start)
	assert.Equal(t, 4, end)

	p.SetCursor(4)
	assert.Equal(t, 3, p.CurrentPage())
	assert.False(t, p.NextPage())
	assert.False(t, p.CursorDown())

	p.SetPageSize(10)
	assert.Equal(t, 1, p.CurrentPage())
	assert.Equal(t, 4, p.CursorInPage())
}
