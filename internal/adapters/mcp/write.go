package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"provmark/internal/application"
	"provmark/internal/application/commands"
	"provmark/internal/domain"
)

// RegisterWriteTools adds all marking tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, ws *application.Workspace) {
	s.AddTool(markRowTool(), markRowHandler(ws))
	s.AddTool(markCategoryTool(), markCategoryHandler(ws))
	s.AddTool(clearMarksTool(), clearMarksHandler(ws))
}

// --- mark_row ---

func markRowTool() mcp.Tool {
	return mcp.NewTool("mark_row",
		mcp.WithDescription("Mark or unmark a row as high or low quality. High marks update the common transforms and features; unmarking drops high-quality categories no high-quality row exhibits anymore."),
		mcp.WithNumber("idx",
			mcp.Description("Dataset index of the row"),
			mcp.Required(),
		),
		mcp.WithString("quality",
			mcp.Description("high or low"),
			mcp.Required(),
			mcp.Enum("high", "low"),
		),
		mcp.WithBoolean("status",
			mcp.Description("true to mark (default), false to unmark"),
		),
	)
}

func markRowHandler(ws *application.Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		idx, err := req.RequireInt("idx")
		if err != nil {
			return toolError(err)
		}
		quality, err := domain.ParseQuality(req.GetString("quality", ""))
		if err != nil {
			return toolError(err)
		}
		status := req.GetBool("status", true)

		var res *commands.ToggleResult
		if quality == domain.QualityHigh {
			res, err = commands.NewToggleHighQualityCommand(ws, idx, status).Execute(ctx)
		} else {
			res, err = commands.NewToggleLowQualityCommand(ws, idx, status).Execute(ctx)
		}
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(toggleSummary(ws, res)), nil
	}
}

// --- mark_category ---

func markCategoryTool() mcp.Tool {
	return mcp.NewTool("mark_category",
		mcp.WithDescription("Mark or unmark a transform or feature as high or low quality. Marking a category high also marks every row that exhibits it."),
		mcp.WithString("namespace",
			mcp.Description("transform or feature"),
			mcp.Required(),
			mcp.Enum("transform", "feature"),
		),
		mcp.WithNumber("index",
			mcp.Description("Category position in the bit-vector"),
			mcp.Required(),
		),
		mcp.WithString("quality",
			mcp.Description("high or low"),
			mcp.Required(),
			mcp.Enum("high", "low"),
		),
		mcp.WithBoolean("status",
			mcp.Description("true to mark (default), false to unmark"),
		),
	)
}

func markCategoryHandler(ws *application.Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ns, err := application.ValidateNamespace("namespace", req.GetString("namespace", ""))
		if err != nil {
			return toolError(err)
		}
		index, err := req.RequireInt("index")
		if err != nil {
			return toolError(err)
		}
		quality := domain.Quality(req.GetString("quality", ""))
		status := req.GetBool("status", true)

		res, err := commands.NewToggleCategoryCommand(ws, ns, quality, index, status).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(toggleSummary(ws, res)), nil
	}
}

// --- clear_marks ---

func clearMarksTool() mcp.Tool {
	return mcp.NewTool("clear_marks",
		mcp.WithDescription("Remove every row and category mark."),
	)
}

func clearMarksHandler(ws *application.Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if _, err := commands.NewClearMarksCommand(ws).Execute(ctx); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText("All marks cleared."), nil
	}
}

func toggleSummary(ws *application.Workspace, res *commands.ToggleResult) string {
	msg := res.Message
	msg += fmt.Sprintf("\ncommon transforms: %s", joinNames(ws.Vocab, domain.NamespaceTransform, res.CommonTransforms))
	msg += fmt.Sprintf("\ncommon features: %s", joinNames(ws.Vocab, domain.NamespaceFeature, res.CommonFeatures))
	if len(res.SweptTransforms) > 0 || len(res.SweptFeatures) > 0 {
		msg += fmt.Sprintf("\nno longer high quality: %s; %s",
			joinNames(ws.Vocab, domain.NamespaceTransform, res.SweptTransforms),
			joinNames(ws.Vocab, domain.NamespaceFeature, res.SweptFeatures))
	}
	return msg
}
