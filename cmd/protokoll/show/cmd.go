// Package showcmd implements the `protokoll show` command.
package showcmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/protokoll/cmd/protokoll/shared"
	"github.com/go-ports/protokoll/internal/models"
	"github.com/go-ports/protokoll/internal/service"
)

// Command implements `protokoll show`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the show command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "show <type> <id>",
		Short: "Print one entity as YAML",
		Args:  cobra.ExactArgs(2),
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	t, err := models.ParseType(args[0])
	if err != nil {
		return err
	}

	svc, err := service.New(c.ctx.Options())
	if err != nil {
		return err
	}

	ent, ok := svc.Entity(t, args[1])
	if !ok {
		return fmt.Errorf("no %s with id %q", t, args[1])
	}

	data, err := yaml.Marshal(ent)
	if err != nil {
		return fmt.Errorf("show: marshal entity: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "type: %s\n", t)
	_, err = out.Write(data)
	return err
}
