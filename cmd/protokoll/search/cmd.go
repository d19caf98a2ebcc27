// Package searchcmd implements the `protokoll search` command.
package searchcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/protokoll/cmd/protokoll/shared"
	"github.com/go-ports/protokoll/internal/service"
)

// Command implements `protokoll search`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the search command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "search <query>",
		Short: "Search entities by name substring across all types",
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

	results := svc.Search(args[0])
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}

	for _, ent := range results {
		base := ent.Base()
		fmt.Fprintf(out, "%-9s %-24s %s\n", base.Type, base.ID, base.Name)
	}
	return nil
}
