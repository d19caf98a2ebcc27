// Package setup installs and uninstalls the protokoll MCP server entry in
// supported agent client configurations (Claude Code, Cursor).
package setup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Result is the return value from all Install/Uninstall functions.
type Result struct {
	Status  string // always "ok"
	Message string
}

func ok(msg string) Result          { return Result{Status: "ok", Message: msg} }
func okf(f string, a ...any) Result { return ok(fmt.Sprintf(f, a...)) }

// serverEntry is the MCP server block written into client configs.
var serverEntry = map[string]any{
	"command": "protokoll",
	"args":    []any{"mcp"},
	"type":    "stdio",
}

// ---------------------------------------------------------------------------
// Default path helpers
// ---------------------------------------------------------------------------

// DefaultClaudeConfig returns the default ~/.claude.json path.
func DefaultClaudeConfig() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude.json")
}

// DefaultCursorConfig returns the default ~/.cursor/mcp.json path.
func DefaultCursorConfig() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cursor", "mcp.json")
}

// ---------------------------------------------------------------------------
// Install / uninstall
// ---------------------------------------------------------------------------

// Install adds a protokoll entry to the mcpServers table of the JSON config
// at path, creating the file if needed. An existing entry is left untouched.
func Install(path string) (Result, error) {
	data := readJSON(path)
	servers, _ := data["mcpServers"].(map[string]any)
	if servers == nil {
		servers = make(map[string]any)
		data["mcpServers"] = servers
	}
	if _, exists := servers["protokoll"]; exists {
		return okf("protokoll already configured in %s", path), nil
	}
	servers["protokoll"] = serverEntry
	if err := writeJSON(path, data); err != nil {
		return Result{}, fmt.Errorf("Install: %w", err)
	}
	return okf("added protokoll MCP server to %s", path), nil
}

// Uninstall removes the protokoll entry from the JSON config at path. The
// file is deleted when nothing else remains in it.
func Uninstall(path string) (Result, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return okf("nothing to remove: %s does not exist", path), nil
	}
	data := readJSON(path)
	servers, _ := data["mcpServers"].(map[string]any)
	if _, exists := servers["protokoll"]; !exists {
		return okf("protokoll not configured in %s", path), nil
	}
	delete(servers, "protokoll")
	if len(servers) == 0 {
		delete(data, "mcpServers")
	}
	if len(data) == 0 {
		if err := os.Remove(path); err != nil {
			return Result{}, fmt.Errorf("Uninstall: %w", err)
		}
		return okf("removed protokoll MCP server and empty config %s", path), nil
	}
	if err := writeJSON(path, data); err != nil {
		return Result{}, fmt.Errorf("Uninstall: %w", err)
	}
	return okf("removed protokoll MCP server from %s", path), nil
}

// ---------------------------------------------------------------------------
// JSON helpers
// ---------------------------------------------------------------------------

func readJSON(path string) map[string]any {
	data, err := os.ReadFile(path)
	if err != nil {
		return make(map[string]any)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return make(map[string]any)
	}
	return m
}

func writeJSON(path string, data map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644) // #nosec G306 -- agent config files (MCP server entries) do not contain secrets
}
