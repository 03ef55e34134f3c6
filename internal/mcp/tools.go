package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// registerTools registers the read-only portfolio tools.
func (s *MCPServer) registerTools(srv *server.MCPServer) {

	srv.AddTool(
		mcp.NewTool("folio_list_projects",
			mcp.WithDescription(
				"List portfolio projects with title, slug, summary, technologies, and "+
					"links. Pass featured=true to return only the projects highlighted on "+
					"the home page.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
			mcp.WithBoolean("featured",
				mcp.Description("Return only featured projects"),
			),
		),
		s.handleListProjects,
	)

	srv.AddTool(
		mcp.NewTool("folio_get_project",
			mcp.WithDescription(
				"Get the full detail of one project by its slug, including the long "+
					"description. Use folio_list_projects first to discover slugs.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
			mcp.WithString("slug",
				mcp.Required(),
				mcp.Description("Slug of the project, e.g. \"folio-engine\""),
			),
		),
		s.handleGetProject,
	)

	srv.AddTool(
		mcp.NewTool("folio_list_skills",
			mcp.WithDescription(
				"List skills grouped by category, each with a 0-100 proficiency level.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
		),
		s.handleListSkills,
	)

	srv.AddTool(
		mcp.NewTool("folio_list_certificates",
			mcp.WithDescription(
				"List professional certificates with issuer, issue date, and credential "+
					"verification links.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
		),
		s.handleListCertificates,
	)

	srv.AddTool(
		mcp.NewTool("folio_list_education",
			mcp.WithDescription(
				"List education history entries, most recent first. An end year of zero "+
					"means the program is ongoing.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
		),
		s.handleListEducation,
	)
}

func (s *MCPServer) handleListProjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	featured := request.GetBool("featured", false)
	projects, err := s.store.ListProjects(ctx, featured)
	if err != nil {
		return toolError("failed to list projects: %v", err)
	}
	return successJSON(projects)
}

func (s *MCPServer) handleGetProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := request.RequireString("slug")
	if err != nil {
		return toolError("missing required parameter %q", "slug")
	}
	project, err := s.store.GetProjectBySlug(ctx, slug)
	if err != nil {
		return toolError("project %q not found", slug)
	}
	return successJSON(project)
}

func (s *MCPServer) handleListSkills(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	skills, err := s.store.ListSkills(ctx)
	if err != nil {
		return toolError("failed to list skills: %v", err)
	}
	return successJSON(skills)
}

func (s *MCPServer) handleListCertificates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	certs, err := s.store.ListCertificates(ctx)
	if err != nil {
		return toolError("failed to list certificates: %v", err)
	}
	return successJSON(certs)
}

func (s *MCPServer) handleListEducation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := s.store.ListEducation(ctx)
	if err != nil {
		return toolError("failed to list education: %v", err)
	}
	return successJSON(entries)
}

// successJSON marshals data to indented JSON and returns it as a tool result.
func successJSON(data interface{}) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}

// toolError returns a tool-level error result. Errors returned this way are
// visible to the LLM so it can self-correct; they do NOT terminate the MCP
// session.
func toolError(format string, args ...interface{}) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(fmt.Sprintf(format, args...)), nil
}
