// Package lookupcmd implements the `protokoll lookup` command.
package lookupcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/protokoll/cmd/protokoll/shared"
	"github.com/go-ports/protokoll/internal/service"
)

// Command implements `protokoll lookup`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the lookup command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "lookup <phrase>",
		Short: "Find the entity whose phonetic variants match a misheard phrase",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	svc, err := service.New(c.ctx.Options())
	if err != nil {
		return err
	}

	ent, ok := svc.FindBySoundsLike(args[0])
	out := cmd.OutOrStdout()
	if !ok {
		fmt.Fprintf(out, "No entity sounds like %q.\n", args[0])
		return nil
	}

	base := ent.Base()
	fmt.Fprintf(out, "%s %s (%s)\n", base.Type, base.ID, base.Name)
	return nil
}
