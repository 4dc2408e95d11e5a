package httpapi

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provmark/internal/application"
	"provmark/internal/application/commands"
	"provmark/internal/domain"
)

func newTestServer(t *testing.T) (*Server, *application.Workspace) {
	t.Helper()
	ws := application.NewWorkspace(application.WorkspaceOptions{})
	ws.SetRows("fixture.csv", []domain.DataRow{
		{ID: "a", Idx: 0, Text: "good", Label: "pos", Transforms: "[1 0]", Features: "[0 1]"},
		{ID: "b", Idx: 1, Text: "bad", Label: "neg", Transforms: "[0 1]", Features: "[0 0]"},
		{ID: "c", Idx: 2, Text: "fine", Label: "pos", Transforms: "[1 1]", Features: "[1 1]"},
	})
	return NewServer(ws), ws
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestMarkRowAndListSimilar(t *testing.T) {
	s, ws := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/rows/1/high", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var toggled commands.ToggleResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &toggled))
	assert.Equal(t, []int{1}, toggled.CommonTransforms)
	assert.True(t, ws.Quality.HighQualityIndices().Has(1))

	rec = do(t, s, http.MethodGet, "/api/rows?similar=true&limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var rows rowsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	assert.Equal(t, 3, rows.Total)
	require.Len(t, rows.Rows, 2)
	assert.Equal(t, 1, rows.Rows[0].Idx)
	assert.True(t, rows.Rows[0].HighQuality)
	require.NotNil(t, rows.Rows[0].Score)
	assert.Equal(t, 1, *rows.Rows[0].Score)
	assert.Equal(t, 2, rows.Rows[1].Idx)

	rec = do(t, s, http.MethodPost, "/api/rows/1/high", `{"status": false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, ws.Quality.HighQualityIndices().Has(1))
}

func TestMarkRowErrors(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{"unknown row", "/api/rows/9/high", "", http.StatusNotFound},
		{"bad idx", "/api/rows/x/high", "", http.StatusBadRequest},
		{"bad quality", "/api/rows/0/meh", "", http.StatusBadRequest},
		{"bad body", "/api/rows/0/low", "{", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestNoDataset(t *testing.T) {
	s := NewServer(application.NewWorkspace(application.WorkspaceOptions{}))
	rec := do(t, s, http.MethodPost, "/api/rows/0/high", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCategoriesCascadeAndExport(t *testing.T) {
	s, ws := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/categories/transforms/0/high", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []int{0, 2}, ws.Quality.HighQualityIndices().Sorted())

	rec = do(t, s, http.MethodGet, "/api/categories/transform?preview=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var cats []commands.CategoryEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cats))
	require.Len(t, cats, 2)
	assert.True(t, cats[0].HighQuality)
	assert.Len(t, cats[0].Preview, 1)

	rec = do(t, s, http.MethodGet, "/api/inspected", "")
	assert.JSONEq(t, `{"count":2,"message":"2 already inspected to be high quality"}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/api/export/rows", "")
	assert.Equal(t, "idx,text,label\r\n0,good,pos\r\n2,fine,pos\r\n", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "data_inspector.csv")

	rec = do(t, s, http.MethodGet, "/api/export/categories/transform", "")
	assert.Equal(t, "transform,high_quality\r\nAddNeutralEmoji,1\r\n", rec.Body.String())

	rec = do(t, s, http.MethodGet, "/api/categories/labels", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarksStatsAndClear(t *testing.T) {
	s, _ := newTestServer(t)
	do(t, s, http.MethodPost, "/api/rows/0/low", "")

	rec := do(t, s, http.MethodGet, "/api/stats?selection=low_Q", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var st domain.QualityStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, 1, st.Rows)

	rec = do(t, s, http.MethodGet, "/api/stats?selection=everything", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/marks", "")
	var snap commands.MarksSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, []int{0}, snap.LowRows)

	rec = do(t, s, http.MethodPost, "/api/marks/clear", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Empty(t, snap.LowRows)
}

func TestEventsStream(t *testing.T) {
	s, _ := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Hub().Run(ctx)
	<-s.Hub().running

	ts := httptest.NewServer(s)
	defer ts.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	require.True(t, lines.Scan())
	assert.Equal(t, ": connected", lines.Text())
	require.Eventually(t, func() bool { return s.Hub().Clients() == 1 }, time.Second, 10*time.Millisecond)

	post, err := http.Post(ts.URL+"/api/rows/2/low", "application/json", nil)
	require.NoError(t, err)
	post.Body.Close()

	var data string
	for lines.Scan() {
		if strings.HasPrefix(lines.Text(), "data: ") {
			data = strings.TrimPrefix(lines.Text(), "data: ")
			break
		}
	}
	assert.Contains(t, data, `"topic":"low_quality_indices"`)
}

func TestListRowsHugeLimit(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/rows?offset=1&limit=9223372036854775807", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var rows rowsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	assert.Equal(t, 3, rows.Total)
	require.Len(t, rows.Rows, 2)
	assert.Equal(t, 1, rows.Rows[0].Idx)
	assert.Equal(t, 2, rows.Rows[1].Idx)
}

func TestEventsAfterHubStopped(t *testing.T) {
	s, _ := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	go s.Hub().Run(ctx)
	<-s.Hub().running
	cancel()
	<-s.Hub().stopped

	rec := do(t, s, http.MethodGet, "/api/events", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, 0, s.Hub().Clients())
}
