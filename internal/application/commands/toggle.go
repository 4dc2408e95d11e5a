package commands

import (
	"context"
	"fmt"

	"provmark/internal/application"
	"provmark/internal/domain"
)

// ToggleResult contains the marks in effect after a toggle
type ToggleResult struct {
	Index            int   `json:"index"`
	Marked           bool  `json:"marked"`
	CommonTransforms []int `json:"common_transforms"`
	CommonFeatures   []int `json:"common_features"`
	// Categories whose high mark was dropped because no high-quality row
	// supports them anymore
	SweptTransforms []int `json:"swept_transforms,omitempty"`
	SweptFeatures   []int `json:"swept_features,omitempty"`
	// Rows newly marked high by a category cascade
	Cascaded []int  `json:"cascaded,omitempty"`
	Message  string `json:"message"`
}

// refreshCommon recomputes provenance from the high-quality rows and
// replaces both common category sets with it
func refreshCommon(ws *application.Workspace) domain.Provenance {
	prov := domain.ExtractProvenance(ws.Rows(), ws.Quality.HighQualityIndices())
	ws.Similar.SetCommonTransforms(prov.Transforms.Sorted())
	ws.Similar.SetCommonFeatures(prov.Features.Sorted())
	return prov
}

func ensureIndices(ws *application.Workspace) {
	rows := ws.Rows()
	ws.Similar.InitializeTransformsToDataIfNotExist(rows)
	ws.Similar.InitializeFeaturesToDataIfNotExist(rows)
}

// ToggleHighQualityCommand marks or unmarks a row as high quality and
// propagates the change to the common category sets
type ToggleHighQualityCommand struct {
	ws     *application.Workspace
	Index  int
	Status bool
}

// NewToggleHighQualityCommand creates a new ToggleHighQualityCommand
func NewToggleHighQualityCommand(ws *application.Workspace, index int, status bool) *ToggleHighQualityCommand {
	return &ToggleHighQualityCommand{ws: ws, Index: index, Status: status}
}

// Validate checks the row exists in the loaded dataset
func (c *ToggleHighQualityCommand) Validate() error {
	return validateRow(c.ws, c.Index)
}

// Execute runs the toggle. Unmarking sweeps high-quality categories that
// lost all supporting rows; the sweep does not undo an earlier cascade.
func (c *ToggleHighQualityCommand) Execute(ctx context.Context) (*ToggleResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	res := &ToggleResult{Index: c.Index, Marked: c.Status}
	err := c.ws.Exclusive(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		q := c.ws.Quality
		if c.Status {
			q.MarkHighQuality(c.Index)
			ensureIndices(c.ws)
		} else {
			q.UnmarkHighQuality(c.Index)
		}

		prov := refreshCommon(c.ws)
		res.CommonTransforms = prov.Transforms.Sorted()
		res.CommonFeatures = prov.Features.Sorted()

		if !c.Status {
			for _, t := range q.HighQualityTransforms().Sorted() {
				if !prov.Transforms.Has(t) {
					q.UnmarkHighQualityTransforms(t)
					res.SweptTransforms = append(res.SweptTransforms, t)
				}
			}
			for _, f := range q.HighQualityFeatures().Sorted() {
				if !prov.Features.Has(f) {
					q.UnmarkHighQualityFeatures(f)
					res.SweptFeatures = append(res.SweptFeatures, f)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if c.Status {
		res.Message = fmt.Sprintf("Row %d marked high quality", c.Index)
	} else {
		res.Message = fmt.Sprintf("Row %d unmarked", c.Index)
	}
	c.ws.Logger.Debug("toggle high quality", "idx", c.Index, "marked", c.Status,
		"swept_transforms", len(res.SweptTransforms), "swept_features", len(res.SweptFeatures))
	return res, nil
}

// ToggleLowQualityCommand marks or unmarks a row as low quality
type ToggleLowQualityCommand struct {
	ws     *application.Workspace
	Index  int
	Status bool
}

// NewToggleLowQualityCommand creates a new ToggleLowQualityCommand
func NewToggleLowQualityCommand(ws *application.Workspace, index int, status bool) *ToggleLowQualityCommand {
	return &ToggleLowQualityCommand{ws: ws, Index: index, Status: status}
}

func (c *ToggleLowQualityCommand) Validate() error {
	return validateRow(c.ws, c.Index)
}

// Execute runs the toggle. Under the exclusive policy a low mark removes
// the row's high mark, so common sets are recomputed as well.
func (c *ToggleLowQualityCommand) Execute(ctx context.Context) (*ToggleResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	res := &ToggleResult{Index: c.Index, Marked: c.Status}
	err := c.ws.Exclusive(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.Status {
			c.ws.Quality.MarkLowQuality(c.Index)
		} else {
			c.ws.Quality.UnmarkLowQuality(c.Index)
		}
		prov := refreshCommon(c.ws)
		res.CommonTransforms = prov.Transforms.Sorted()
		res.CommonFeatures = prov.Features.Sorted()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if c.Status {
		res.Message = fmt.Sprintf("Row %d marked low quality", c.Index)
	} else {
		res.Message = fmt.Sprintf("Row %d low mark cleared", c.Index)
	}
	return res, nil
}

// ToggleCategoryCommand marks or unmarks a transform or feature category.
// A high mark cascades to every row exhibiting the category.
type ToggleCategoryCommand struct {
	ws        *application.Workspace
	Namespace domain.Namespace
	Quality   domain.Quality
	Index     int
	Status    bool
}

// NewToggleCategoryCommand creates a new ToggleCategoryCommand
func NewToggleCategoryCommand(ws *application.Workspace, ns domain.Namespace, quality domain.Quality, index int, status bool) *ToggleCategoryCommand {
	return &ToggleCategoryCommand{
		ws:        ws,
		Namespace: ns,
		Quality:   quality,
		Index:     index,
		Status:    status,
	}
}

// Validate checks the namespace, quality and position
func (c *ToggleCategoryCommand) Validate() error {
	if _, err := application.ValidateNamespace("namespace", string(c.Namespace)); err != nil {
		return err
	}
	if _, err := domain.ParseQuality(string(c.Quality)); err != nil {
		return &application.ValidationError{
			Field:   "quality",
			Message: fmt.Sprintf("expected high or low, got: %s", c.Quality),
		}
	}
	if err := application.ValidateNonNegative("categoryIndex", c.Index); err != nil {
		return err
	}
	return c.ws.RequireDataset()
}

// Execute runs the toggle
func (c *ToggleCategoryCommand) Execute(ctx context.Context) (*ToggleResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	res := &ToggleResult{Index: c.Index, Marked: c.Status}
	err := c.ws.Exclusive(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.apply()
		if c.Quality == domain.QualityHigh && c.Status {
			res.Cascaded = c.cascade()
		}
		prov := refreshCommon(c.ws)
		res.CommonTransforms = prov.Transforms.Sorted()
		res.CommonFeatures = prov.Features.Sorted()
		return nil
	})
	if err != nil {
		return nil, err
	}

	name := c.ws.Vocab.Name(c.Namespace, c.Index)
	if c.Status {
		res.Message = fmt.Sprintf("%s marked %s quality", name, c.Quality)
		if len(res.Cascaded) > 0 {
			res.Message += fmt.Sprintf(" (%d rows marked)", len(res.Cascaded))
		}
	} else {
		res.Message = fmt.Sprintf("%s %s mark cleared", name, c.Quality)
	}
	c.ws.Logger.Debug("toggle category", "namespace", c.Namespace, "quality", c.Quality,
		"index", c.Index, "marked", c.Status, "cascaded", len(res.Cascaded))
	return res, nil
}

func (c *ToggleCategoryCommand) apply() {
	q := c.ws.Quality
	switch {
	case c.Namespace == domain.NamespaceTransform && c.Quality == domain.QualityHigh:
		setMark(c.Status, c.Index, q.MarkHighQualityTransforms, q.UnmarkHighQualityTransforms)
	case c.Namespace == domain.NamespaceTransform:
		setMark(c.Status, c.Index, q.MarkLowQualityTransforms, q.UnmarkLowQualityTransforms)
	case c.Quality == domain.QualityHigh:
		setMark(c.Status, c.Index, q.MarkHighQualityFeatures, q.UnmarkHighQualityFeatures)
	default:
		setMark(c.Status, c.Index, q.MarkLowQualityFeatures, q.UnmarkLowQualityFeatures)
	}
}

// cascade marks every row of the category high quality and returns the
// rows that were not marked before
func (c *ToggleCategoryCommand) cascade() []int {
	ensureIndices(c.ws)

	index := c.ws.Similar.DataSliceOfTransformType()
	if c.Namespace == domain.NamespaceFeature {
		index = c.ws.Similar.DataSliceOfFeatureType()
	}

	before := c.ws.Quality.HighQualityIndices()
	var marked []int
	for _, s := range index[c.Index] {
		if !before.Has(s.Idx) {
			marked = append(marked, s.Idx)
		}
		c.ws.Quality.MarkHighQuality(s.Idx)
	}
	return marked
}

func setMark(status bool, i int, mark, unmark func(int)) {
	if status {
		mark(i)
		return
	}
	unmark(i)
}

func validateRow(ws *application.Workspace, idx int) error {
	if err := ws.RequireDataset(); err != nil {
		return err
	}
	if _, ok := ws.Row(idx); !ok {
		return fmt.Errorf("row %d: %w", idx, application.ErrNotFound)
	}
	return nil
}
