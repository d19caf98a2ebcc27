// Package initcmd implements the `protokoll init` command.
package initcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/go-ports/protokoll/cmd/protokoll/shared"
	"github.com/go-ports/protokoll/internal/config"
	"github.com/go-ports/protokoll/internal/discover"
	"github.com/go-ports/protokoll/internal/models"
	"github.com/go-ports/protokoll/internal/store"
)

const starterConfig = `# Protokoll context configuration.
# Settings here override anything inherited from parent directories.

# context_path: ../shared-context

smart_assistance:
  enabled: true
  # model: claude-sonnet-4-5
  # transcription_model: whisper-1
  # suggest_entities: true
  # suggest_relationships: false
  # learn_from_corrections: true
  # timeout_seconds: 30
`

// Command implements `protokoll init`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the init command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "init",
		Short: "Create a context scope in the target directory",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	target := c.ctx.StartDir
	if target == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("init: working directory: %w", err)
		}
		target = cwd
	}

	marker := c.ctx.Marker
	if marker == "" {
		marker = discover.DefaultMarkerName
	}
	configName := c.ctx.ConfigName
	if configName == "" {
		configName = config.DefaultFileName
	}

	markerDir := filepath.Join(target, marker)
	if err := os.MkdirAll(markerDir, 0o755); err != nil {
		return fmt.Errorf("init: create %s: %w", markerDir, err)
	}

	configPath := filepath.Join(markerDir, configName)
	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Context already initialised at %s\n", markerDir)
		return nil
	}
	if err := os.WriteFile(configPath, []byte(starterConfig), 0o644); err != nil { // #nosec G306 -- starter config holds no secrets
		return fmt.Errorf("init: write %s: %w", configPath, err)
	}

	for _, t := range models.Types {
		dir := filepath.Join(target, store.ConventionalDirName, t.DirName())
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("init: create %s: %w", dir, err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialised context at %s\n", markerDir)
	return nil
}
