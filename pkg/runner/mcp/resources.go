package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerTopicsResource(srv, svc)
	registerTopicTemplate(srv, svc)
}

func registerTopicsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"notes://topics",
		"Topics",
		mcp.WithResourceDescription("All topics in the notes journal with counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		summaries, err := svc.ListTopics(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"topics": summaries,
			"count":  len(summaries),
		})
	})
}

func registerTopicTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"notes://topics/{name}",
		"Topic Entries",
		mcp.WithTemplateDescription("Entries filed under a topic, newest first."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		name := templateArg(request, "name")
		if name == "" {
			return nil, fmt.Errorf("topic name is required")
		}
		entries, err := svc.ListEntries(ctx, []string{name}, 0)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"topic":   name,
			"count":   len(entries),
			"entries": entries,
		})
	})
}

// templateArg returns a matched URI template variable, which mcp-go passes
// either as a string or as the template's value list.
func templateArg(request mcp.ReadResourceRequest, key string) string {
	switch v := request.Params.Arguments[key].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
