package commands

import (
	"context"

	"provmark/internal/application"
)

// MarksSnapshot lists every mark and common category, each ascending
type MarksSnapshot struct {
	HighRows         []int `json:"high_rows"`
	LowRows          []int `json:"low_rows"`
	HighTransforms   []int `json:"high_transforms"`
	LowTransforms    []int `json:"low_transforms"`
	HighFeatures     []int `json:"high_features"`
	LowFeatures      []int `json:"low_features"`
	CommonTransforms []int `json:"common_transforms"`
	CommonFeatures   []int `json:"common_features"`
}

// SnapshotMarksCommand reads the current marks
type SnapshotMarksCommand struct {
	ws *application.Workspace
}

// NewSnapshotMarksCommand creates a new SnapshotMarksCommand
func NewSnapshotMarksCommand(ws *application.Workspace) *SnapshotMarksCommand {
	return &SnapshotMarksCommand{ws: ws}
}

// Execute takes the snapshot
func (c *SnapshotMarksCommand) Execute(ctx context.Context) (*MarksSnapshot, error) {
	q, s := c.ws.Quality, c.ws.Similar
	return &MarksSnapshot{
		HighRows:         q.HighQualityIndices().Sorted(),
		LowRows:          q.LowQualityIndices().Sorted(),
		HighTransforms:   q.HighQualityTransforms().Sorted(),
		LowTransforms:    q.LowQualityTransforms().Sorted(),
		HighFeatures:     q.HighQualityFeatures().Sorted(),
		LowFeatures:      q.LowQualityFeatures().Sorted(),
		CommonTransforms: s.CommonTransformTypes().Sorted(),
		CommonFeatures:   s.CommonFeatureTypes().Sorted(),
	}, nil
}

// ClearMarksCommand drops every mark and common category. Category
// indices stay built since the dataset is unchanged.
type ClearMarksCommand struct {
	ws *application.Workspace
}

// NewClearMarksCommand creates a new ClearMarksCommand
func NewClearMarksCommand(ws *application.Workspace) *ClearMarksCommand {
	return &ClearMarksCommand{ws: ws}
}

// Execute clears the marks
func (c *ClearMarksCommand) Execute(ctx context.Context) (*MarksSnapshot, error) {
	err := c.ws.Exclusive(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.ws.Quality.ClearAllData()
		c.ws.Similar.SetCommonTransforms(nil)
		c.ws.Similar.SetCommonFeatures(nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.ws.Logger.Info("marks cleared")
	return NewSnapshotMarksCommand(c.ws).Execute(ctx)
}
