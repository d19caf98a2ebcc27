// Package uninstallcmd implements the `protokoll uninstall` command group.
package uninstallcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/go-ports/protokoll/cmd/protokoll/shared"
	"github.com/go-ports/protokoll/internal/setup"
)

// Command implements `protokoll uninstall`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the uninstall command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the protokoll MCP server from an agent",
		RunE:  func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	c.cmd.AddCommand(
		newUninstallClaudeCode(ctx),
		newUninstallCursor(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func newUninstallClaudeCode(_ *shared.Context) *cobra.Command {
	var configFile string
	var project bool
	cmd := &cobra.Command{
		Use:   "claude-code",
		Short: "Remove protokoll from Claude Code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := setup.Uninstall(claudeConfigPath(configFile, project))
			if err != nil {
				return fmt.Errorf("uninstall claude-code: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&configFile, "config-file", "", "Path to the Claude Code MCP config file")
	cmd.Flags().BoolVar(&project, "project", false, "Remove from current project instead of globally")
	return cmd
}

func newUninstallCursor(_ *shared.Context) *cobra.Command {
	var configFile string
	var project bool
	cmd := &cobra.Command{
		Use:   "cursor",
		Short: "Remove protokoll from Cursor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := setup.Uninstall(cursorConfigPath(configFile, project))
			if err != nil {
				return fmt.Errorf("uninstall cursor: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&configFile, "config-file", "", "Path to the Cursor MCP config file")
	cmd.Flags().BoolVar(&project, "project", false, "Remove from current project instead of globally")
	return cmd
}

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
