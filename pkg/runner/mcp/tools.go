package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/notes/pkg/entry"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerAppendEntryTool(srv, svc)
	registerListTopicsTool(srv, svc)
	registerListEntriesTool(srv, svc)
	registerSearchEntriesTool(srv, svc)
	registerRenderEntriesTool(srv, svc)
	registerSetStyleTool(srv, svc)
}

// topicArg splits a comma separated topics argument.
func topicArg(request mcp.CallToolRequest) []string {
	raw := strings.TrimSpace(request.GetString("topics", ""))
	if raw == "" {
		return nil
	}
	return entry.SplitTopics(raw)
}

func registerAppendEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"append_entry",
		mcp.WithDescription("Append a note to the journal. Thoughts within the body are separated by the configured line break, ';' by default."),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Note text, on one line."),
		),
		mcp.WithString("topics",
			mcp.Description("Comma separated topics; 'misc' when empty."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := request.RequireString("body")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.AppendEntry(ctx, topicArg(request), body)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListTopicsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_topics",
		mcp.WithDescription("List every topic in the journal with entry counts."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summaries, err := svc.ListTopics(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"topics": summaries,
			"count":  len(summaries),
		})
	})
}

func registerListEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_entries",
		mcp.WithDescription("List entries newest first, optionally only those under some topics."),
		mcp.WithString("topics",
			mcp.Description("Optional comma separated topic filter, matched case-insensitively."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return (default all)."),
			mcp.Min(1),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter := topicArg(request)
		results, err := svc.ListEntries(ctx, filter, request.GetInt("limit", 0))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"topics":  filter,
			"entries": results,
			"count":   len(results),
		})
	})
}

func registerSearchEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_entries",
		mcp.WithDescription("Search entries by substring match across bodies and topics."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Case-insensitive search text."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return (default 20)."),
			mcp.Min(1),
			mcp.Max(100),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit := request.GetInt("limit", 20)

		results, err := svc.SearchEntries(ctx, query, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"query":   query,
			"limit":   limit,
			"results": results,
			"count":   len(results),
		})
	})
}

func registerRenderEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"render_entries",
		mcp.WithDescription("Render entries as the terminal shows them, without colour."),
		mcp.WithString("topics",
			mcp.Description("Optional comma separated topic filter. ALL, SHOW, HELP or TOPICS adds the topic listing."),
		),
		mcp.WithNumber("width",
			mcp.Description("Wrap width in columns (default no wrapping)."),
			mcp.Min(20),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := svc.RenderEntries(ctx, topicArg(request), request.GetInt("width", 0))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	})
}

func registerSetStyleTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_style",
		mcp.WithDescription("Set the style used for a keyword or topic."),
		mcp.WithString("keyword",
			mcp.Required(),
			mcp.Description("Keyword or topic, matched case-insensitively."),
		),
		mcp.WithString("style",
			mcp.Required(),
			mcp.Description("Style token such as <FORE-00ff00>, <RESET>, </h>, ggg, rrr or hhh."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		keyword, err := request.RequireString("keyword")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		value, err := request.RequireString("style")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.SetStyle(ctx, keyword, value); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]string{
			"keyword": strings.ToUpper(strings.TrimSpace(keyword)),
			"style":   value,
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
