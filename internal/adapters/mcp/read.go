package mcp

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"provmark/internal/application"
	"provmark/internal/application/commands"
	"provmark/internal/domain"
)

// RegisterReadTools adds all read-only review tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, ws *application.Workspace) {
	s.AddTool(listRowsTool(), listRowsHandler(ws))
	s.AddTool(marksTool(), marksHandler(ws))
	s.AddTool(categoriesTool(), categoriesHandler(ws))
	s.AddTool(inspectedTool(), inspectedHandler(ws))
	s.AddTool(qualityStatsTool(), qualityStatsHandler(ws))
	s.AddTool(exportRowsTool(), exportRowsHandler(ws))
	s.AddTool(exportCategoriesTool(), exportCategoriesHandler(ws))
}

// --- list_rows ---

func listRowsTool() mcp.Tool {
	return mcp.NewTool("list_rows",
		mcp.WithDescription("List dataset rows with their quality marks. With similar=true rows are ranked by how many transforms and features they share with the high-quality rows."),
		mcp.WithBoolean("similar",
			mcp.Description("Rank rows by overlap with high-quality rows instead of dataset order"),
		),
		mcp.WithNumber("offset",
			mcp.Description("Number of rows to skip (default 0)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum rows to return (default 20)"),
		),
	)
}

func listRowsHandler(ws *application.Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := ws.RequireDataset(); err != nil {
			return toolError(err)
		}
		similar := req.GetBool("similar", false)
		offset := max(req.GetInt("offset", 0), 0)
		limit := req.GetInt("limit", 20)

		res, err := commands.NewSortRowsCommand(ws, similar).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		rows := res.Rows
		if offset >= len(rows) {
			return mcp.NewToolResultText("No results."), nil
		}
		rows = rows[offset:]
		if limit > 0 && limit < len(rows) {
			rows = rows[:limit]
		}

		high := ws.Quality.HighQualityIndices()
		low := ws.Quality.LowQualityIndices()
		return formatEntities(rows, func(r domain.DataRow) string {
			line := fmt.Sprintf("%d  [%s]  %s%s", r.Idx, r.Label, markBadge(high.Has(r.Idx), low.Has(r.Idx)), r.Text)
			if res.Similar {
				line += fmt.Sprintf("  (overlap %d)", res.Scores[r.Idx])
			}
			return line
		})
	}
}

// --- marks ---

func marksTool() mcp.Tool {
	return mcp.NewTool("marks",
		mcp.WithDescription("Show every row and category quality mark and the currently common transforms and features."),
	)
}

func marksHandler(ws *application.Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snap, err := commands.NewSnapshotMarksCommand(ws).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "high rows: %s\n", joinInts(snap.HighRows))
		fmt.Fprintf(&sb, "low rows: %s\n", joinInts(snap.LowRows))
		fmt.Fprintf(&sb, "high transforms: %s\n", joinNames(ws.Vocab, domain.NamespaceTransform, snap.HighTransforms))
		fmt.Fprintf(&sb, "low transforms: %s\n", joinNames(ws.Vocab, domain.NamespaceTransform, snap.LowTransforms))
		fmt.Fprintf(&sb, "high features: %s\n", joinNames(ws.Vocab, domain.NamespaceFeature, snap.HighFeatures))
		fmt.Fprintf(&sb, "low features: %s\n", joinNames(ws.Vocab, domain.NamespaceFeature, snap.LowFeatures))
		fmt.Fprintf(&sb, "common transforms: %s\n", joinNames(ws.Vocab, domain.NamespaceTransform, snap.CommonTransforms))
		fmt.Fprintf(&sb, "common features: %s\n", joinNames(ws.Vocab, domain.NamespaceFeature, snap.CommonFeatures))
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- categories ---

func categoriesTool() mcp.Tool {
	return mcp.NewTool("categories",
		mcp.WithDescription("List the transforms or features shared by the high-quality rows, with their marks, row counts and up to three example rows."),
		mcp.WithString("namespace",
			mcp.Description("transform or feature"),
			mcp.Required(),
			mcp.Enum("transform", "feature"),
		),
	)
}

func categoriesHandler(ws *application.Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ns, err := application.ValidateNamespace("namespace", req.GetString("namespace", ""))
		if err != nil {
			return toolError(err)
		}

		res, err := commands.NewCategoryOverviewCommand(ws, ns).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return formatEntities(res.Categories, func(c commands.CategoryEntry) string {
			var sb strings.Builder
			fmt.Fprintf(&sb, "%d  %s%s  (%d rows)", c.Index, markBadge(c.HighQuality, c.LowQuality), c.Name, c.RowCount)
			for _, p := range c.Preview {
				fmt.Fprintf(&sb, "\n    %d  [%s]  %s", p.Idx, p.Label, p.Text)
			}
			return sb.String()
		})
	}
}

// --- inspected_count ---

func inspectedTool() mcp.Tool {
	return mcp.NewTool("inspected_count",
		mcp.WithDescription("Count rows that are high quality directly or through a high-quality transform or feature."),
	)
}

func inspectedHandler(ws *application.Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := commands.NewCountInspectedCommand(ws).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(res.Message), nil
	}
}

// --- quality_stats ---

func qualityStatsTool() mcp.Tool {
	return mcp.NewTool("quality_stats",
		mcp.WithDescription("Summarise alignment, fluency and grammaticality scores (mean, median, standard deviation) over a selection of rows."),
		mcp.WithString("selection",
			mcp.Description("default (use rows), high_Q or low_Q"),
			mcp.Enum(string(domain.SelectionDefault), string(domain.SelectionHighQuality), string(domain.SelectionLowQuality)),
		),
		mcp.WithString("rows",
			mcp.Description("Comma separated row indices for the default selection"),
		),
	)
}

func qualityStatsHandler(ws *application.Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		selection := domain.SelectionType(req.GetString("selection", string(domain.SelectionDefault)))
		rows, err := parseIndices(req.GetString("rows", ""))
		if err != nil {
			return toolError(err)
		}

		st, err := commands.NewQualityStatsCommand(ws, selection, rows).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s: %d rows\n", st.Selection.Label(), st.Rows)
		for _, line := range []struct {
			name string
			s    domain.ScoreSummary
		}{
			{"alignment", st.Alignment},
			{"fluency", st.Fluency},
			{"grammaticality", st.Grammaticality},
		} {
			fmt.Fprintf(&sb, "%-15s mean %.2f  median %.2f  sd %.2f\n", line.name, line.s.Mean, line.s.Median, line.s.StdDev)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- export_rows ---

func exportRowsTool() mcp.Tool {
	return mcp.NewTool("export_rows",
		mcp.WithDescription("Export the high-quality rows as CSV (idx,text,label)."),
	)
}

func exportRowsHandler(ws *application.Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var buf bytes.Buffer
		if _, err := commands.NewExportRowsCommand(ws, &buf).Execute(ctx); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(buf.String()), nil
	}
}

// --- export_categories ---

func exportCategoriesTool() mcp.Tool {
	return mcp.NewTool("export_categories",
		mcp.WithDescription("Export the high-quality transforms or features as CSV."),
		mcp.WithString("namespace",
			mcp.Description("transform or feature"),
			mcp.Required(),
			mcp.Enum("transform", "feature"),
		),
	)
}

func exportCategoriesHandler(ws *application.Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ns, err := application.ValidateNamespace("namespace", req.GetString("namespace", ""))
		if err != nil {
			return toolError(err)
		}
		var buf bytes.Buffer
		if _, err := commands.NewExportCategoriesCommand(ws, ns, &buf).Execute(ctx); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(buf.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func markBadge(high, low bool) string {
	switch {
	case high && low:
		return "👍👎 "
	case high:
		return "👍 "
	case low:
		return "👎 "
	}
	return ""
}

func joinInts(v []int) string {
	if len(v) == 0 {
		return "-"
	}
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

func joinNames(vocab domain.Vocabulary, ns domain.Namespace, v []int) string {
	if len(v) == 0 {
		return "-"
	}
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = fmt.Sprintf("%d %s", n, vocab.Name(ns, n))
	}
	return strings.Join(parts, ", ")
}

func parseIndices(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid row index %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}
