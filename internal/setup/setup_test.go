package setup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
)

// ---------------------------------------------------------------------------
// Install
// ---------------------------------------------------------------------------

func TestInstall_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Run("creates config with protokoll entry", func(c *qt.C) {
		path := filepath.Join(c.TB.TempDir(), "mcp.json")

		res, err := Install(path)
		c.Assert(err, qt.IsNil)
		c.Assert(res.Status, qt.Equals, "ok")

		cfg := loadJSON(c, path)
		servers := cfg["mcpServers"].(map[string]any)
		entry := servers["protokoll"].(map[string]any)
		c.Assert(entry["command"], qt.Equals, "protokoll")
		c.Assert(entry["args"], qt.DeepEquals, []any{"mcp"})
		c.Assert(entry["type"], qt.Equals, "stdio")
	})

	c.Run("preserves other servers", func(c *qt.C) {
		path := filepath.Join(c.TB.TempDir(), "mcp.json")
		writeFile(c, path, `{"mcpServers":{"other":{"command":"other"}}}`)

		_, err := Install(path)
		c.Assert(err, qt.IsNil)

		servers := loadJSON(c, path)["mcpServers"].(map[string]any)
		c.Assert(servers, qt.HasLen, 2)
		c.Assert(servers["other"], qt.Not(qt.IsNil))
	})

	c.Run("preserves unrelated top-level keys", func(c *qt.C) {
		path := filepath.Join(c.TB.TempDir(), "config.json")
		writeFile(c, path, `{"theme":"dark"}`)

		_, err := Install(path)
		c.Assert(err, qt.IsNil)

		cfg := loadJSON(c, path)
		c.Assert(cfg["theme"], qt.Equals, "dark")
		c.Assert(cfg["mcpServers"], qt.Not(qt.IsNil))
	})

	c.Run("idempotent when already configured", func(c *qt.C) {
		path := filepath.Join(c.TB.TempDir(), "mcp.json")

		_, err := Install(path)
		c.Assert(err, qt.IsNil)
		res, err := Install(path)
		c.Assert(err, qt.IsNil)
		c.Assert(res.Message, qt.Matches, ".*already configured.*")
	})

	c.Run("creates parent directories", func(c *qt.C) {
		path := filepath.Join(c.TB.TempDir(), "nested", "dir", "mcp.json")

		_, err := Install(path)
		c.Assert(err, qt.IsNil)

		_, statErr := os.Stat(path)
		c.Assert(statErr, qt.IsNil)
	})
}

// ---------------------------------------------------------------------------
// Uninstall
// ---------------------------------------------------------------------------

func TestUninstall_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Run("removes entry, keeps other servers", func(c *qt.C) {
		path := filepath.Join(c.TB.TempDir(), "mcp.json")
		writeFile(c, path, `{"mcpServers":{"other":{"command":"other"},"protokoll":{"command":"protokoll"}}}`)

		res, err := Uninstall(path)
		c.Assert(err, qt.IsNil)
		c.Assert(res.Status, qt.Equals, "ok")

		servers := loadJSON(c, path)["mcpServers"].(map[string]any)
		c.Assert(servers, qt.HasLen, 1)
		c.Assert(servers["other"], qt.Not(qt.IsNil))
	})

	c.Run("deletes file when nothing else remains", func(c *qt.C) {
		path := filepath.Join(c.TB.TempDir(), "mcp.json")
		_, err := Install(path)
		c.Assert(err, qt.IsNil)

		_, err = Uninstall(path)
		c.Assert(err, qt.IsNil)

		_, statErr := os.Stat(path)
		c.Assert(os.IsNotExist(statErr), qt.IsTrue)
	})

	c.Run("keeps file when unrelated keys remain", func(c *qt.C) {
		path := filepath.Join(c.TB.TempDir(), "config.json")
		writeFile(c, path, `{"theme":"dark","mcpServers":{"protokoll":{"command":"protokoll"}}}`)

		_, err := Uninstall(path)
		c.Assert(err, qt.IsNil)

		cfg := loadJSON(c, path)
		c.Assert(cfg["theme"], qt.Equals, "dark")
		c.Assert(cfg["mcpServers"], qt.IsNil)
	})

	c.Run("no-op when file missing", func(c *qt.C) {
		path := filepath.Join(c.TB.TempDir(), "mcp.json")

		res, err := Uninstall(path)
		c.Assert(err, qt.IsNil)
		c.Assert(res.Message, qt.Matches, ".*does not exist.*")
	})

	c.Run("no-op when entry missing", func(c *qt.C) {
		path := filepath.Join(c.TB.TempDir(), "mcp.json")
		writeFile(c, path, `{"mcpServers":{"other":{"command":"other"}}}`)

		res, err := Uninstall(path)
		c.Assert(err, qt.IsNil)
		c.Assert(res.Message, qt.Matches, ".*not configured.*")
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func writeFile(c *qt.C, path, content string) {
	c.TB.Helper()
	c.Assert(os.MkdirAll(filepath.Dir(path), 0o755), qt.IsNil)
	c.Assert(os.WriteFile(path, []byte(content), 0o644), qt.IsNil)
}

func loadJSON(c *qt.C, path string) map[string]any {
	c.TB.Helper()
	data, err := os.ReadFile(path)
	c.Assert(err, qt.IsNil)
	var m map[string]any
	c.Assert(json.Unmarshal(data, &m), qt.IsNil)
	return m
}
