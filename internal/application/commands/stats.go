package commands

import (
	"context"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"provmark/internal/application"
	"provmark/internal/domain"
)

// QualityStatsCommand summarises the quality scores of a selection
type QualityStatsCommand struct {
	ws        *application.Workspace
	Selection domain.SelectionType
	Selected  []int
}

// NewQualityStatsCommand creates a new QualityStatsCommand
func NewQualityStatsCommand(ws *application.Workspace, selection domain.SelectionType, selected []int) *QualityStatsCommand {
	return &QualityStatsCommand{ws: ws, Selection: selection, Selected: selected}
}

// Execute computes mean, median and standard deviation per score. An empty
// selection yields zero summaries.
func (c *QualityStatsCommand) Execute(ctx context.Context) (*domain.QualityStats, error) {
	sel, err := NewSelectRowsCommand(c.ws, c.Selection, c.Selected).Execute(ctx)
	if err != nil {
		return nil, err
	}

	var align, fluency, grammar []float64
	for _, r := range sel.Rows {
		align = append(align, r.Alignment)
		fluency = append(fluency, r.Fluency)
		grammar = append(grammar, r.Grammaticality)
	}

	out := &domain.QualityStats{Selection: c.Selection, Rows: len(sel.Rows)}
	if out.Alignment, err = summarize(align); err != nil {
		return nil, fmt.Errorf("alignment: %w", err)
	}
	if out.Fluency, err = summarize(fluency); err != nil {
		return nil, fmt.Errorf("fluency: %w", err)
	}
	if out.Grammaticality, err = summarize(grammar); err != nil {
		return nil, fmt.Errorf("grammaticality: %w", err)
	}
	return out, nil
}

func summarize(data []float64) (domain.ScoreSummary, error) {
	if len(data) == 0 {
		return domain.ScoreSummary{}, nil
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return domain.ScoreSummary{}, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return domain.ScoreSummary{}, err
	}
	sd, err := stats.StandardDeviation(data)
	if err != nil {
		return domain.ScoreSummary{}, err
	}
	return domain.ScoreSummary{
		Mean:   round2(mean),
		Median: round2(median),
		StdDev: round2(sd),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
