package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/foliohq/folio/internal/model"
	"github.com/foliohq/folio/internal/store"
)

func newTestMCP(t *testing.T) (*MCPServer, *store.Store) {
	t.Helper()
	st, err := store.New(store.Options{})
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewMCPServer(st, nil), st
}

func toolRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return tc.Text
}

func TestListProjectsTool(t *testing.T) {
	s, st := newTestMCP(t)
	ctx := context.Background()

	if err := st.CreateProject(ctx, &model.Project{
		Title: "Folio Engine", Slug: "folio-engine", Featured: true,
	}); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if err := st.CreateProject(ctx, &model.Project{
		Title: "Side Quest", Slug: "side-quest",
	}); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	result, err := s.handleListProjects(ctx, toolRequest(nil))
	if err != nil {
		t.Fatalf("handleListProjects: %v", err)
	}
	text := textContent(t, result)
	if !strings.Contains(text, "folio-engine") || !strings.Contains(text, "side-quest") {
		t.Errorf("unfiltered list missing projects: %s", text)
	}

	result, err = s.handleListProjects(ctx, toolRequest(map[string]interface{}{"featured": true}))
	if err != nil {
		t.Fatalf("handleListProjects featured: %v", err)
	}
	text = textContent(t, result)
	if !strings.Contains(text, "folio-engine") {
		t.Errorf("featured list missing featured project: %s", text)
	}
	if strings.Contains(text, "side-quest") {
		t.Errorf("featured list includes non-featured project: %s", text)
	}
}

func TestGetProjectTool(t *testing.T) {
	s, st := newTestMCP(t)
	ctx := context.Background()

	if err := st.CreateProject(ctx, &model.Project{
		Title: "Folio Engine", Slug: "folio-engine", Description: "Long form text",
	}); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	result, err := s.handleGetProject(ctx, toolRequest(map[string]interface{}{"slug": "folio-engine"}))
	if err != nil {
		t.Fatalf("handleGetProject: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", textContent(t, result))
	}
	if !strings.Contains(textContent(t, result), "Long form text") {
		t.Error("detail missing description")
	}

	result, err = s.handleGetProject(ctx, toolRequest(map[string]interface{}{"slug": "missing"}))
	if err != nil {
		t.Fatalf("handleGetProject missing: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for unknown slug")
	}
}

func TestGetProjectToolRequiresSlug(t *testing.T) {
	s, _ := newTestMCP(t)

	result, err := s.handleGetProject(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("handleGetProject: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for missing slug")
	}
}

func TestListSkillsTool(t *testing.T) {
	s, st := newTestMCP(t)
	ctx := context.Background()

	if err := st.CreateSkill(ctx, &model.Skill{Name: "Go", Category: "Backend", Level: 90}); err != nil {
		t.Fatalf("CreateSkill: %v", err)
	}

	result, err := s.handleListSkills(ctx, toolRequest(nil))
	if err != nil {
		t.Fatalf("handleListSkills: %v", err)
	}
	if !strings.Contains(textContent(t, result), "Backend") {
		t.Error("skills list missing category")
	}
}
