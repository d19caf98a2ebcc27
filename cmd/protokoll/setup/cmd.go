// Package setupcmd implements the `protokoll setup` command group.
package setupcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/go-ports/protokoll/cmd/protokoll/shared"
	"github.com/go-ports/protokoll/internal/setup"
)

// Command implements `protokoll setup`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the setup command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "setup",
		Short: "Register the protokoll MCP server with an agent",
		RunE:  func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	c.cmd.AddCommand(
		newSetupClaudeCode(ctx),
		newSetupCursor(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

// ---------------------------------------------------------------------------
// setup claude-code
// ---------------------------------------------------------------------------

func newSetupClaudeCode(_ *shared.Context) *cobra.Command {
	var configFile string
	var project bool
	cmd := &cobra.Command{
		Use:   "claude-code",
		Short: "Register protokoll with Claude Code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := setup.Install(claudeConfigPath(configFile, project))
			if err != nil {
				return fmt.Errorf("setup claude-code: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&configFile, "config-file", "", "Path to the Claude Code MCP config file")
	cmd.Flags().BoolVar(&project, "project", false, "Register in current project instead of globally")
	return cmd
}

// ---------------------------------------------------------------------------
// setup cursor
// ---------------------------------------------------------------------------

func newSetupCursor(_ *shared.Context) *cobra.Command {
	var configFile string
	var project bool
	cmd := &cobra.Command{
		Use:   "cursor",
		Short: "Register protokoll with Cursor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := setup.Install(cursorConfigPath(configFile, project))
			if err != nil {
				return fmt.Errorf("setup cursor: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&configFile, "config-file", "", "Path to the Cursor MCP config file")
	cmd.Flags().BoolVar(&project, "project", false, "Register in current project instead of globally")
	return cmd
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

//revive:disable:flag-parameter
func claudeConfigPath(configFile string, project bool) string {
	if configFile != "" {
		return configFile
	}
	if project {
		cwd, _ := os.Getwd()
		return filepath.Join(cwd, ".mcp.json")
	}
	return setup.DefaultClaudeConfig()
}

func cursorConfigPath(configFile string, project bool) string {
	if configFile != "" {
		return configFile
	}
	if project {
		cwd, _ := os.Getwd()
		return filepath.Join(cwd, ".cursor", "mcp.json")
	}
	return setup.DefaultCursorConfig()
}

//revive:enable:flag-parameter
