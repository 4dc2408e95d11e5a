package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"provmark/internal/application"
	"provmark/internal/application/commands"
	"provmark/internal/domain"
)

type markRequest struct {
	Status *bool `json:"status"`
}

// status reads the optional {"status": bool} body; marking is the default
func (m markRequest) status() bool {
	return m.Status == nil || *m.Status
}

type rowsResponse struct {
	Total  int           `json:"total"`
	Offset int           `json:"offset"`
	Rows   []rowResponse `json:"rows"`
}

type rowResponse struct {
	Idx            int               `json:"idx"`
	ID             string            `json:"id"`
	Text           string            `json:"text"`
	Label          string            `json:"label"`
	Transforms     []int             `json:"transforms"`
	Features       []int             `json:"features"`
	HighQuality    bool              `json:"high_quality"`
	LowQuality     bool              `json:"low_quality"`
	Score          *int              `json:"score,omitempty"`
	Alignment      float64           `json:"alignment"`
	Fluency        float64           `json:"fluency"`
	Grammaticality float64           `json:"grammaticality"`
	Extra          map[string]string `json:"extra,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"rows":   len(s.ws.Rows()),
		"source": s.ws.Source(),
	})
}

func (s *Server) handleListRows(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	similar := q.Get("similar") == "true" || q.Get("similar") == "1"
	offset, err := intParam(q.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "offset: "+err.Error())
		return
	}
	limit, err := intParam(q.Get("limit"), 50)
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit: "+err.Error())
		return
	}

	res, err := commands.NewSortRowsCommand(s.ws, similar).Execute(r.Context())
	if err != nil {
		s.writeCommandError(w, err)
		return
	}

	high := s.ws.Quality.HighQualityIndices()
	low := s.ws.Quality.LowQualityIndices()
	page := paginate(res.Rows, offset, limit)

	out := rowsResponse{Total: len(res.Rows), Offset: offset, Rows: make([]rowResponse, 0, len(page))}
	for _, row := range page {
		rr := rowResponse{
			Idx:            row.Idx,
			ID:             row.ID,
			Text:           row.Text,
			Label:          row.Label,
			Transforms:     nonNil(row.TransformPositions()),
			Features:       nonNil(row.FeaturePositions()),
			HighQuality:    high.Has(row.Idx),
			LowQuality:     low.Has(row.Idx),
			Alignment:      row.Alignment,
			Fluency:        row.Fluency,
			Grammaticality: row.Grammaticality,
			Extra:          row.Extra,
		}
		if res.Similar {
			score := res.Scores[row.Idx]
			rr.Score = &score
		}
		out.Rows = append(out.Rows, rr)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMarkRow(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(chi.URLParam(r, "idx"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "idx must be an integer")
		return
	}
	quality, err := domain.ParseQuality(chi.URLParam(r, "quality"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req markRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var res *commands.ToggleResult
	if quality == domain.QualityHigh {
		res, err = commands.NewToggleHighQualityCommand(s.ws, idx, req.status()).Execute(r.Context())
	} else {
		res, err = commands.NewToggleLowQualityCommand(s.ws, idx, req.status()).Execute(r.Context())
	}
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleMarkCategory(w http.ResponseWriter, r *http.Request) {
	ns, err := application.ValidateNamespace("namespace", chi.URLParam(r, "namespace"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return
	}
	var req markRequest
	if !decodeBody(w, r, &req) {
		return
	}

	quality := domain.Quality(chi.URLParam(r, "quality"))
	res, err := commands.NewToggleCategoryCommand(s.ws, ns, quality, index, req.status()).Execute(r.Context())
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleMarks(w http.ResponseWriter, r *http.Request) {
	snap, err := commands.NewSnapshotMarksCommand(s.ws).Execute(r.Context())
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleClearMarks(w http.ResponseWriter, r *http.Request) {
	snap, err := commands.NewClearMarksCommand(s.ws).Execute(r.Context())
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleInspected(w http.ResponseWriter, r *http.Request) {
	res, err := commands.NewCountInspectedCommand(s.ws).Execute(r.Context())
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": res.Count, "message": res.Message})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	selection := domain.SelectionType(q.Get("selection"))
	if selection == "" {
		selection = domain.SelectionDefault
	}
	selected, err := intList(q.Get("rows"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "rows: "+err.Error())
		return
	}

	res, err := commands.NewQualityStatsCommand(s.ws, selection, selected).Execute(r.Context())
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	ns, err := application.ValidateNamespace("namespace", chi.URLParam(r, "namespace"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cmd := commands.NewCategoryOverviewCommand(s.ws, ns)
	if p := r.URL.Query().Get("preview"); p != "" {
		if cmd.PreviewSize, err = strconv.Atoi(p); err != nil {
			writeError(w, http.StatusBadRequest, "preview must be an integer")
			return
		}
	}

	res, err := cmd.Execute(r.Context())
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Categories)
}

func (s *Server) handleExportRows(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+commands.DefaultExportFile+`"`)
	if _, err := commands.NewExportRowsCommand(s.ws, w).Execute(r.Context()); err != nil {
		s.logger.Error("export rows failed", "error", err)
	}
}

func (s *Server) handleExportCategories(w http.ResponseWriter, r *http.Request) {
	ns, err := application.ValidateNamespace("namespace", chi.URLParam(r, "namespace"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+string(ns)+`s.csv"`)
	if _, err := commands.NewExportCategoriesCommand(s.ws, ns, w).Execute(r.Context()); err != nil {
		s.logger.Error("export categories failed", "namespace", ns, "error", err)
	}
}

// writeCommandError maps application errors to status codes
func (s *Server) writeCommandError(w http.ResponseWriter, err error) {
	var valErr *application.ValidationError
	switch {
	case errors.As(err, &valErr):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, application.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, application.ErrNoDataset):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error("command failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeBody decodes an optional JSON body, answering 400 on bad input
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New("must be a non-negative integer")
	}
	return n, nil
}

func intList(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.New("expected comma separated integers")
		}
		out = append(out, n)
	}
	return out, nil
}

func paginate(rows []domain.DataRow, offset, limit int) []domain.DataRow {
	if offset >= len(rows) {
		return nil
	}
	end := len(rows)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	return rows[offset:end]
}

func nonNil(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}
