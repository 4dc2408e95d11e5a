package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"provmark/internal/application"
	"provmark/internal/domain"
)

// DefaultExportFile is the file name suggested for row exports
const DefaultExportFile = "data_inspector.csv"

// ExportResult contains the outcome of an export
type ExportResult struct {
	Rows    int
	Message string
}

// ExportRowsCommand writes the high-quality rows as CSV (idx,text,label)
// in ascending index order
type ExportRowsCommand struct {
	ws  *application.Workspace
	Out io.Writer
}

// NewExportRowsCommand creates a new ExportRowsCommand
func NewExportRowsCommand(ws *application.Workspace, out io.Writer) *ExportRowsCommand {
	return &ExportRowsCommand{ws: ws, Out: out}
}

// Validate checks an output is set
func (c *ExportRowsCommand) Validate() error {
	if c.Out == nil {
		return &application.ValidationError{Field: "out", Message: "output writer is required"}
	}
	return nil
}

// Execute writes the CSV
func (c *ExportRowsCommand) Execute(ctx context.Context) (*ExportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	rows := c.ws.RowsAt(c.ws.Quality.HighQualityIndices())
	records := make([][]string, 0, len(rows)+1)
	records = append(records, []string{"idx", "text", "label"})
	for _, r := range rows {
		records = append(records, []string{strconv.Itoa(r.Idx), r.Text, r.Label})
	}

	if err := writeCSV(c.Out, records); err != nil {
		return nil, fmt.Errorf("failed to export rows: %w", err)
	}
	return &ExportResult{
		Rows:    len(rows),
		Message: fmt.Sprintf("Exported %d high-quality rows", len(rows)),
	}, nil
}

// ExportCategoriesCommand writes the high-quality transforms or features as
// CSV, one named category per line in ascending index order
type ExportCategoriesCommand struct {
	ws        *application.Workspace
	Namespace domain.Namespace
	Out       io.Writer
}

// NewExportCategoriesCommand creates a new ExportCategoriesCommand
func NewExportCategoriesCommand(ws *application.Workspace, ns domain.Namespace, out io.Writer) *ExportCategoriesCommand {
	return &ExportCategoriesCommand{ws: ws, Namespace: ns, Out: out}
}

// Validate checks the namespace and output
func (c *ExportCategoriesCommand) Validate() error {
	if _, err := application.ValidateNamespace("namespace", string(c.Namespace)); err != nil {
		return err
	}
	if c.Out == nil {
		return &application.ValidationError{Field: "out", Message: "output writer is required"}
	}
	return nil
}

// Execute writes the CSV
func (c *ExportCategoriesCommand) Execute(ctx context.Context) (*ExportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	high := c.ws.Quality.HighQualityFeatures()
	if c.Namespace == domain.NamespaceTransform {
		high = c.ws.Quality.HighQualityTransforms()
	}

	records := [][]string{{string(c.Namespace), "high_quality"}}
	for _, i := range high.Sorted() {
		records = append(records, []string{c.ws.Vocab.Name(c.Namespace, i), "1"})
	}

	if err := writeCSV(c.Out, records); err != nil {
		return nil, fmt.Errorf("failed to export %ss: %w", c.Namespace, err)
	}
	n := len(records) - 1
	return &ExportResult{
		Rows:    n,
		Message: fmt.Sprintf("Exported %d high-quality %ss", n, c.Namespace),
	}, nil
}

func writeCSV(out io.Writer, records [][]string) error {
	w := csv.NewWriter(out)
	w.UseCRLF = true
	if err := w.WriteAll(records); err != nil {
		return err
	}
	return w.Error()
}
