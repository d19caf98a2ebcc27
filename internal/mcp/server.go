// Package mcp provides the stdio MCP server exposing context-resolution tools
// for transcript-routing clients.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/protokoll/internal/buildinfo"
	"github.com/go-ports/protokoll/internal/models"
	"github.com/go-ports/protokoll/internal/relation"
	"github.com/go-ports/protokoll/internal/service"
)

const infoDescription = `Describe the resolved protokoll context: discovered directories, entity-storage directories, and smart-assistance settings. Call this first to learn whether any context exists for the current directory.` //nolint:lll

const searchDescription = `Search context entities (people, projects, companies, terms, ignore-list) by case-insensitive name substring.` //nolint:lll

// NewServer creates and registers all context tools on a new MCP server.
// It is separate from Serve so tests can wire the server to an in-process
// transport.
func NewServer(svc *service.Service) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("protokoll", buildinfo.Version)
	registerTools(s, svc)
	return s
}

// Serve starts the stdio MCP server for the given options, blocking until
// stdin closes.
func Serve(_ context.Context, opts service.Options) error {
	svc, err := service.New(opts)
	if err != nil {
		return fmt.Errorf("mcp: init service: %w", err)
	}
	return mcpserver.ServeStdio(NewServer(svc))
}

func registerTools(s *mcpserver.MCPServer, svc *service.Service) { //nolint:funlen // one declaration per tool
	s.AddTool(mcp.NewTool("context_info",
		mcp.WithDescription(infoDescription),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleInfo(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("context_reload",
		mcp.WithDescription("Reload entity collections from disk. Set full=true to also re-run directory discovery and config merging."),
		mcp.WithBoolean("full",
			mcp.Description("Re-run discovery and config merge as well (default false)."),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleReload(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("entity_search",
		mcp.WithDescription(searchDescription),
		mcp.WithString("query",
			mcp.Description("Substring to match against entity names."),
			mcp.Required(),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleSearch(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("entity_get",
		mcp.WithDescription("Fetch one entity by type and id."),
		mcp.WithString("type",
			mcp.Description("Entity type."),
			mcp.Enum(typeNames()...),
			mcp.Required(),
		),
		mcp.WithString("id",
			mcp.Description("Entity id."),
			mcp.Required(),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGet(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("entity_save",
		mcp.WithDescription("Create or update an entity in the closest context directory. Fails when no context has been discovered."),
		mcp.WithString("type",
			mcp.Description("Entity type."),
			mcp.Enum(typeNames()...),
			mcp.Required(),
		),
		mcp.WithString("name",
			mcp.Description("Display name."),
			mcp.Required(),
		),
		mcp.WithString("id",
			mcp.Description("Entity id. Defaults to a slug of the name."),
		),
		mcp.WithString("notes",
			mcp.Description("Freeform notes."),
		),
		mcp.WithArray("sounds_like",
			mcp.Description("Phonetic variants for misheard forms of the name."),
			mcp.WithStringItems(),
		),
		mcp.WithString("parent",
			mcp.Description("Id of a parent entity of the same type."),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleSave(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("entity_delete",
		mcp.WithDescription("Delete an entity document from whichever storage directory currently holds it."),
		mcp.WithString("type",
			mcp.Description("Entity type."),
			mcp.Enum(typeNames()...),
			mcp.Required(),
		),
		mcp.WithString("id",
			mcp.Description("Entity id."),
			mcp.Required(),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDelete(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("term_ignored",
		mcp.WithDescription("Check whether a phrase is on the ignore list, by slug id or case-insensitive name match."),
		mcp.WithString("term",
			mcp.Description("Phrase to check."),
			mcp.Required(),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleIgnored(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("phonetic_lookup",
		mcp.WithDescription("Find the entity whose sounds_like list matches a misheard or mistranscribed phrase."),
		mcp.WithString("phrase",
			mcp.Description("Phrase as transcribed."),
			mcp.Required(),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handlePhonetic(ctx, svc, req)
	})
}

// ---------------------------------------------------------------------------
// Tool handlers
// ---------------------------------------------------------------------------

func handleInfo(_ context.Context, svc *service.Service, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dirs := make([]map[string]any, 0, len(svc.Dirs()))
	for _, d := range svc.Dirs() {
		dirs = append(dirs, map[string]any{"path": d.Path, "level": d.Level})
	}

	sa := svc.SmartAssist()
	return jsonResult(map[string]any{
		"has_context":  svc.HasContext(),
		"directories":  dirs,
		"storage_dirs": svc.StorageDirs(),
		"smart_assistance": map[string]any{
			"enabled":                sa.Enabled,
			"model":                  sa.Model,
			"transcription_model":    sa.TranscriptionModel,
			"suggest_entities":       sa.SuggestEntities,
			"suggest_relationships":  sa.SuggestRelationships,
			"learn_from_corrections": sa.LearnFromCorrections,
			"timeout_seconds":        int(sa.Timeout.Seconds()),
		},
	})
}

func handleReload(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if req.GetBool("full", false) {
		if err := svc.Load(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	} else {
		svc.Reload()
	}
	return jsonResult(map[string]any{
		"has_context":  svc.HasContext(),
		"storage_dirs": svc.StorageDirs(),
	})
}

func handleSearch(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	results := svc.Search(query)

	out := make([]map[string]any, 0, len(results))
	for _, ent := range results {
		base := ent.Base()
		out = append(out, map[string]any{
			"type":  string(base.Type),
			"id":    base.ID,
			"name":  base.Name,
			"notes": base.Notes,
		})
	}
	return jsonResult(out)
}

func handleGet(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t, err := models.ParseType(req.GetString("type", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id := req.GetString("id", "")

	ent, ok := svc.Entity(t, id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no %s with id %q", t, id)), nil
	}
	return jsonResult(entityToMap(ent))
}

func handleSave(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t, err := models.ParseType(req.GetString("type", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	name := req.GetString("name", "")
	id := req.GetString("id", "")
	if id == "" {
		id = models.Slug(name)
	}

	ent := models.New(t)
	// Carry existing fields forward on update so a save with fewer arguments
	// does not wipe them. Work on a copy; the stored entity must stay intact
	// if the write fails.
	if existing, ok := svc.Entity(t, id); ok {
		if data, err := yaml.Marshal(existing); err == nil {
			_ = yaml.Unmarshal(data, ent)
		}
	}
	base := ent.Base()
	base.ID = id
	base.Name = name
	if notes := req.GetString("notes", ""); notes != "" {
		base.Notes = notes
	}
	if variants := req.GetStringSlice("sounds_like", nil); len(variants) > 0 {
		base.SoundsLike = variants
	}
	if parent := req.GetString("parent", ""); parent != "" {
		// At most one parent: replace any existing declaration.
		kept := base.Relationships[:0]
		for _, rel := range base.Relationships {
			if rel.Kind != relation.KindParent {
				kept = append(kept, rel)
			}
		}
		base.Relationships = append(kept, models.Relationship{
			URI:  relation.URIFor(t, parent),
			Kind: relation.KindParent,
		})
	}

	path, err := svc.SaveEntity(ent)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"type":      string(t),
		"id":        id,
		"file_path": path,
	})
}

func handleDelete(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t, err := models.ParseType(req.GetString("type", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id := req.GetString("id", "")

	return jsonResult(map[string]any{
		"type":    string(t),
		"id":      id,
		"deleted": svc.DeleteEntity(t, id),
	})
}

func handleIgnored(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	term := req.GetString("term", "")
	return jsonResult(map[string]any{
		"term":    term,
		"slug":    models.Slug(term),
		"ignored": svc.IsIgnored(term),
	})
}

func handlePhonetic(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	phrase := req.GetString("phrase", "")
	ent, ok := svc.FindBySoundsLike(phrase)
	if !ok {
		return jsonResult(map[string]any{"found": false})
	}
	return jsonResult(map[string]any{
		"found":  true,
		"entity": entityToMap(ent),
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func typeNames() []string {
	names := make([]string, len(models.Types))
	for i, t := range models.Types {
		names[i] = string(t)
	}
	return names
}

// entityToMap flattens an entity to a generic map through its YAML form so
// every concrete field is included, then adds the in-memory type.
func entityToMap(ent models.Entity) map[string]any {
	out := map[string]any{}
	if data, err := yaml.Marshal(ent); err == nil {
		_ = yaml.Unmarshal(data, &out)
	}
	out["type"] = string(ent.Base().Type)
	return out
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
