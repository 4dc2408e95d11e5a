// Package datafile reads augmented datasets from CSV and Excel files.
package datafile

import (
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"provmark/internal/domain"
	"provmark/internal/ports"
)

const (
	kindCSV  = "csv"
	kindXLSX = "xlsx"
)

// rowNamespace seeds the deterministic ids of rows without an id column
var rowNamespace = uuid.MustParse("6f0c8a43-3c2e-5b1e-9d7a-2f4b8e1c0a55")

// Reader implements ports.DatasetSource for .csv and .xlsx files
type Reader struct {
	path   string
	kind   string
	vocab  domain.Vocabulary
	logger *slog.Logger
}

// Ensure Reader implements DatasetSource
var _ ports.DatasetSource = (*Reader)(nil)

// NewReader creates a reader. The file type follows the extension; anything
// that is not an Excel workbook is read as CSV.
func NewReader(path string, vocab domain.Vocabulary, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	kind := kindCSV
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		kind = kindXLSX
	}
	return &Reader{path: path, kind: kind, vocab: vocab, logger: logger}
}

func (r *Reader) Path() string {
	return r.path
}

// Fingerprint hashes the file content
func (r *Reader) Fingerprint() (string, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", r.path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", r.path, err)
	}
	return hex.EncodeToString(h.Sum(nil)[:16]), nil
}

// ReadRows parses the whole file
func (r *Reader) ReadRows(ctx context.Context) ([]domain.DataRow, *domain.ImportStats, error) {
	start := time.Now()

	var (
		records [][]string
		err     error
	)
	switch r.kind {
	case kindXLSX:
		records, err = r.readExcel()
	default:
		records, err = r.readCSV()
	}
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s: file is empty", r.path)
	}

	cols, err := mapColumns(records[0])
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", r.path, err)
	}

	stats := &domain.ImportStats{Source: r.path}
	rows := make([]domain.DataRow, 0, len(records)-1)
	seen := make(map[int]int, len(records)-1)
	for i, rec := range records[1:] {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
		}
		stats.RowsRead++

		row, err := cols.parse(rec, i, r.vocab)
		if err != nil {
			stats.RowsSkipped++
			r.logger.Warn("skipping row", "path", r.path, "line", i+2, "error", err)
			continue
		}
		// idx identifies a row for marks and exports; the first occurrence wins
		if line, dup := seen[row.Idx]; dup {
			stats.RowsSkipped++
			r.logger.Warn("skipping row", "path", r.path, "line", i+2,
				"error", fmt.Sprintf("duplicate idx %d, first seen on line %d", row.Idx, line))
			continue
		}
		seen[row.Idx] = i + 2
		rows = append(rows, row)
	}

	stats.RowsImported = len(rows)
	stats.Duration = time.Since(start)
	r.logger.Info("dataset read", "path", r.path, "kind", r.kind,
		"rows", stats.RowsImported, "skipped", stats.RowsSkipped, "duration", stats.Duration)
	return rows, stats, nil
}

func (r *Reader) readCSV() ([][]string, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return records, nil
}

// readExcel reads the first sheet of the workbook
func (r *Reader) readExcel() ([][]string, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%s: workbook has no sheets", r.path)
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return records, nil
}

// columnAliases lists accepted header names per field, lower case
var columnAliases = map[string][]string{
	"idx":        {"idx", "index"},
	"id":         {"id"},
	"text":       {"text", "sentence"},
	"label":      {"label"},
	"transforms": {"transforms"},
	"features":   {"features"},
	"old":        {"old_text", "old_sentence"},
	"diff":       {"diff_html", "diff"},
	"alignment":  {"alignment_score", "alignment"},
	"fluency":    {"fluency_score", "fluency"},
	"grammar":    {"grammar_score", "grammaticality_score", "grammaticality"},
}

type columns struct {
	pos    map[string]int
	extras map[int]string
}

func mapColumns(header []string) (*columns, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := byName[name]; !dup {
			byName[name] = i
		}
	}

	c := &columns{pos: map[string]int{}, extras: map[int]string{}}
	used := map[int]bool{}
	for field, aliases := range columnAliases {
		for _, a := range aliases {
			if i, ok := byName[a]; ok {
				c.pos[field] = i
				used[i] = true
				break
			}
		}
	}
	if _, ok := c.pos["text"]; !ok {
		return nil, fmt.Errorf("missing text column")
	}

	for i, h := range header {
		if !used[i] && strings.TrimSpace(h) != "" {
			c.extras[i] = strings.TrimSpace(h)
		}
	}
	return c, nil
}

func (c *columns) get(rec []string, field string) string {
	i, ok := c.pos[field]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func (c *columns) parse(rec []string, position int, vocab domain.Vocabulary) (domain.DataRow, error) {
	if isBlank(rec) {
		return domain.DataRow{}, fmt.Errorf("blank row")
	}

	idx := position
	if raw := c.get(rec, "idx"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return domain.DataRow{}, fmt.Errorf("invalid idx %q", raw)
		}
		idx = n
	}

	row := domain.DataRow{
		ID:          c.get(rec, "id"),
		Idx:         idx,
		Text:        c.get(rec, "text"),
		Label:       vocab.LabelName(c.get(rec, "label")),
		Transforms:  c.get(rec, "transforms"),
		Features:    c.get(rec, "features"),
		OldSentence: c.get(rec, "old"),
		Diff:        c.get(rec, "diff"),
	}
	if row.ID == "" {
		row.ID = uuid.NewSHA1(rowNamespace, []byte(strconv.Itoa(idx)+"\x00"+row.Text)).String()
	}

	var err error
	if row.Alignment, err = score(c.get(rec, "alignment")); err != nil {
		return domain.DataRow{}, fmt.Errorf("alignment: %w", err)
	}
	if row.Fluency, err = score(c.get(rec, "fluency")); err != nil {
		return domain.DataRow{}, fmt.Errorf("fluency: %w", err)
	}
	if row.Grammaticality, err = score(c.get(rec, "grammar")); err != nil {
		return domain.DataRow{}, fmt.Errorf("grammaticality: %w", err)
	}

	for i, name := range c.extras {
		if i < len(rec) {
			if row.Extra == nil {
				row.Extra = map[string]string{}
			}
			row.Extra[name] = rec[i]
		}
	}
	return row, nil
}

// score parses a quality score, clamped to [0,1] and rounded to two
// decimals. Empty cells score 0.
func score(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("invalid score %q", raw)
	}
	v = min(max(v, 0), 1)
	return math.Round(v*100) / 100, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
