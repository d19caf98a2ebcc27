// Package configcmd implements the `protokoll config` command.
package configcmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/protokoll/cmd/protokoll/shared"
	"github.com/go-ports/protokoll/internal/service"
)

// Command implements `protokoll config`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the config command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "config",
		Short: "Print the merged configuration as YAML",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := service.New(c.ctx.Options())
	if err != nil {
		return err
	}

	merged := svc.Config()
	if len(merged) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No configuration found.")
		return nil
	}

	data, err := yaml.Marshal(merged)
	if err != nil {
		return fmt.Errorf("config: marshal merged tree: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
