package commands

import (
	"context"
	"fmt"

	"provmark/internal/application"
	"provmark/internal/domain"
)

// SortRowsResult contains the rows in display order
type SortRowsResult struct {
	Rows    []domain.DataRow
	Similar bool
	Scores  map[int]int // Overlap score per row idx, only when Similar
}

// SortRowsCommand returns the dataset in file order or ranked by overlap
// with the provenance of the high-quality rows
type SortRowsCommand struct {
	ws      *application.Workspace
	Similar bool
}

// NewSortRowsCommand creates a new SortRowsCommand
func NewSortRowsCommand(ws *application.Workspace, similar bool) *SortRowsCommand {
	return &SortRowsCommand{ws: ws, Similar: similar}
}

// Execute runs the sort
func (c *SortRowsCommand) Execute(ctx context.Context) (*SortRowsResult, error) {
	rows := c.ws.Rows()
	if !c.Similar {
		return &SortRowsResult{Rows: rows}, nil
	}

	prov := domain.ExtractProvenance(rows, c.ws.Quality.HighQualityIndices())
	scores := make(map[int]int, len(rows))
	for _, r := range rows {
		scores[r.Idx] = domain.OverlapScore(r, prov)
	}
	return &SortRowsResult{
		Rows:    domain.SortBySimilarity(rows, prov),
		Similar: true,
		Scores:  scores,
	}, nil
}

// CountInspectedResult contains the inspected-row counter
type CountInspectedResult struct {
	Count   int
	Message string
}

// CountInspectedCommand counts rows that are high quality directly or
// through a high-quality transform or feature
type CountInspectedCommand struct {
	ws *application.Workspace
}

// NewCountInspectedCommand creates a new CountInspectedCommand
func NewCountInspectedCommand(ws *application.Workspace) *CountInspectedCommand {
	return &CountInspectedCommand{ws: ws}
}

// Execute runs the count
func (c *CountInspectedCommand) Execute(ctx context.Context) (*CountInspectedResult, error) {
	inspected := c.ws.Quality.HighQualityIndices()

	transforms := c.ws.Similar.DataSliceOfTransformType()
	for _, t := range c.ws.Quality.HighQualityTransforms().Sorted() {
		for _, s := range transforms[t] {
			inspected.Add(s.Idx)
		}
	}
	features := c.ws.Similar.DataSliceOfFeatureType()
	for _, f := range c.ws.Quality.HighQualityFeatures().Sorted() {
		for _, s := range features[f] {
			inspected.Add(s.Idx)
		}
	}

	n := inspected.Len()
	return &CountInspectedResult{
		Count:   n,
		Message: fmt.Sprintf("%d already inspected to be high quality", n),
	}, nil
}

// DefaultPreviewSize is the number of example rows shown per category
const DefaultPreviewSize = 3

// CategoryEntry describes one common category
type CategoryEntry struct {
	Index       int                 `json:"index"`
	Name        string              `json:"name"`
	HighQuality bool                `json:"high_quality"`
	LowQuality  bool                `json:"low_quality"`
	RowCount    int                 `json:"row_count"`
	Preview     []domain.RowSummary `json:"preview"`
}

// CategoryOverviewResult lists the common categories of a namespace
type CategoryOverviewResult struct {
	Namespace  domain.Namespace
	Categories []CategoryEntry
}

// CategoryOverviewCommand lists the common transforms or features in
// ascending order with their marks and a preview of their rows
type CategoryOverviewCommand struct {
	ws          *application.Workspace
	Namespace   domain.Namespace
	PreviewSize int
}

// NewCategoryOverviewCommand creates a new CategoryOverviewCommand
func NewCategoryOverviewCommand(ws *application.Workspace, ns domain.Namespace) *CategoryOverviewCommand {
	return &CategoryOverviewCommand{ws: ws, Namespace: ns, PreviewSize: DefaultPreviewSize}
}

// Validate checks the namespace and preview size
func (c *CategoryOverviewCommand) Validate() error {
	if _, err := application.ValidateNamespace("namespace", string(c.Namespace)); err != nil {
		return err
	}
	return application.ValidateNonNegative("previewSize", c.PreviewSize)
}

// Execute builds the overview
func (c *CategoryOverviewCommand) Execute(ctx context.Context) (*CategoryOverviewResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var (
		common domain.IndexSet
		index  map[int][]domain.RowSummary
		high   domain.IndexSet
		low    domain.IndexSet
	)
	if c.Namespace == domain.NamespaceTransform {
		common = c.ws.Similar.CommonTransformTypes()
		index = c.ws.Similar.DataSliceOfTransformType()
		high = c.ws.Quality.HighQualityTransforms()
		low = c.ws.Quality.LowQualityTransforms()
	} else {
		common = c.ws.Similar.CommonFeatureTypes()
		index = c.ws.Similar.DataSliceOfFeatureType()
		high = c.ws.Quality.HighQualityFeatures()
		low = c.ws.Quality.LowQualityFeatures()
	}

	res := &CategoryOverviewResult{Namespace: c.Namespace, Categories: []CategoryEntry{}}
	for _, i := range common.Sorted() {
		rows := index[i]
		preview := rows[:min(c.PreviewSize, len(rows))]
		res.Categories = append(res.Categories, CategoryEntry{
			Index:       i,
			Name:        c.ws.Vocab.Name(c.Namespace, i),
			HighQuality: high.Has(i),
			LowQuality:  low.Has(i),
			RowCount:    len(rows),
			Preview:     append([]domain.RowSummary(nil), preview...),
		})
	}
	return res, nil
}

// SelectRowsResult contains the rows of a selection
type SelectRowsResult struct {
	Selection domain.SelectionType
	Rows      []domain.DataRow
}

// SelectRowsCommand resolves the selection dropdown: the explicitly
// selected rows, or every high or low quality row
type SelectRowsCommand struct {
	ws        *application.Workspace
	Selection domain.SelectionType
	Selected  []int
}

// NewSelectRowsCommand creates a new SelectRowsCommand
func NewSelectRowsCommand(ws *application.Workspace, selection domain.SelectionType, selected []int) *SelectRowsCommand {
	return &SelectRowsCommand{ws: ws, Selection: selection, Selected: selected}
}

// Validate rejects unknown selection types
func (c *SelectRowsCommand) Validate() error {
	if _, err := domain.ParseSelectionType(string(c.Selection)); err != nil {
		return &application.ValidationError{
			Field:   "selection",
			Message: err.Error(),
		}
	}
	return nil
}

// Execute resolves the selection
func (c *SelectRowsCommand) Execute(ctx context.Context) (*SelectRowsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var set domain.IndexSet
	switch c.Selection {
	case domain.SelectionHighQuality:
		set = c.ws.Quality.HighQualityIndices()
	case domain.SelectionLowQuality:
		set = c.ws.Quality.LowQualityIndices()
	default:
		set = domain.NewIndexSet(c.Selected...)
	}
	return &SelectRowsResult{Selection: c.Selection, Rows: c.ws.RowsAt(set)}, nil
}
