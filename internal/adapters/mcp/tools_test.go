package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provmark/internal/application"
	"provmark/internal/domain"
)

func testWorkspace() *application.Workspace {
	ws := application.NewWorkspace(application.WorkspaceOptions{})
	ws.SetRows("fixture.csv", []domain.DataRow{
		{ID: "a", Idx: 0, Text: "good", Label: "pos", Transforms: "[1 0]", Features: "[0 1]", Alignment: 1},
		{ID: "b", Idx: 1, Text: "bad", Label: "neg", Transforms: "[0 1]", Features: "[0 0]"},
		{ID: "c", Idx: 2, Text: "fine", Label: "pos", Transforms: "[1 1]", Features: "[1 1]", Alignment: 0.5},
	})
	return ws
}

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text, res.IsError
}

func TestMarkRowAndListRows(t *testing.T) {
	ws := testWorkspace()

	out, isErr := call(t, markRowHandler(ws), map[string]any{"idx": 2, "quality": "high"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "Row 2 marked high quality")
	assert.Contains(t, out, "common transforms: 0 AddNeutralEmoji, 1 ChangeHypernym")

	out, isErr = call(t, listRowsHandler(ws), map[string]any{"similar": true, "limit": 1})
	require.False(t, isErr, out)
	assert.Equal(t, "2  [pos]  👍 fine  (overlap 4)\n", out)

	out, _ = call(t, markRowHandler(ws), map[string]any{"idx": 2, "quality": "high", "status": false})
	assert.Contains(t, out, "Row 2 unmarked")
}

func TestMarkRowErrors(t *testing.T) {
	ws := testWorkspace()

	out, isErr := call(t, markRowHandler(ws), map[string]any{"quality": "high"})
	assert.True(t, isErr, out)

	out, isErr = call(t, markRowHandler(ws), map[string]any{"idx": 7, "quality": "high"})
	assert.True(t, isErr)
	assert.Contains(t, out, "not found")

	_, isErr = call(t, markRowHandler(ws), map[string]any{"idx": 0, "quality": "great"})
	assert.True(t, isErr)
}

func TestMarkCategoryAndExports(t *testing.T) {
	ws := testWorkspace()

	out, isErr := call(t, markCategoryHandler(ws), map[string]any{"namespace": "feature", "index": 1, "quality": "high"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "(2 rows marked)")

	out, _ = call(t, inspectedHandler(ws), nil)
	assert.Equal(t, "2 already inspected to be high quality", out)

	out, _ = call(t, exportRowsHandler(ws), nil)
	assert.Equal(t, "idx,text,label\r\n0,good,pos\r\n2,fine,pos\r\n", out)

	out, _ = call(t, exportCategoriesHandler(ws), map[string]any{"namespace": "feature"})
	assert.Equal(t, "feature,high_quality\r\nfeature #1,1\r\n", out)

	out, _ = call(t, categoriesHandler(ws), map[string]any{"namespace": "transform"})
	assert.Contains(t, out, "0  AddNeutralEmoji  (2 rows)")

	out, _ = call(t, qualityStatsHandler(ws), map[string]any{"selection": "high_Q"})
	assert.Contains(t, out, "2 rows")
	assert.Contains(t, out, "mean 0.75")

	out, _ = call(t, clearMarksHandler(ws), nil)
	assert.Equal(t, "All marks cleared.", out)

	out, _ = call(t, marksHandler(ws), nil)
	assert.Contains(t, out, "high rows: -")
}

func TestCategoriesRejectsUnknownNamespace(t *testing.T) {
	_, isErr := call(t, categoriesHandler(testWorkspace()), map[string]any{"namespace": "label"})
	assert.True(t, isErr)
}

func TestRegisterTools(t *testing.T) {
	s := server.NewMCPServer("provmark", "test", server.WithToolCapabilities(false))
	ws := testWorkspace()
	RegisterReadTools(s, ws)
	RegisterWriteTools(s, ws)

	names := map[string]bool{}
	for name := range s.ListTools() {
		names[name] = true
	}
	for _, want := range []string{"list_rows", "marks", "categories", "inspected_count", "quality_stats",
		"export_rows", "export_categories", "mark_row", "mark_category", "clear_marks"} {
		assert.True(t, names[want], want)
	}
}
