// Package deletecmd implements the `protokoll delete` command.
package deletecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/protokoll/cmd/protokoll/shared"
	"github.com/go-ports/protokoll/internal/models"
	"github.com/go-ports/protokoll/internal/service"
)

// Command implements `protokoll delete`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the delete command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "delete <type> <id>",
		Short: "Delete an entity document from whichever directory holds it",
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

	if svc.DeleteEntity(t, args[1]) {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %q\n", t, args[1])
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "No %s found for %q\n", t, args[1])
	}
	return nil
}
