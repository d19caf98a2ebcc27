// Package ignoredcmd implements the `protokoll ignored` command.
package ignoredcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/protokoll/cmd/protokoll/shared"
	"github.com/go-ports/protokoll/internal/service"
)

// Command implements `protokoll ignored`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the ignored command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "ignored [term]",
		Short: "Check a phrase against the ignore list, or list all ignored terms",
		Args:  cobra.MaximumNArgs(1),
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

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		terms := svc.IgnoredTerms()
		if len(terms) == 0 {
			fmt.Fprintln(out, "Ignore list is empty.")
			return nil
		}
		for _, term := range terms {
			fmt.Fprintf(out, "%-24s %s\n", term.ID, term.Name)
		}
		return nil
	}

	if svc.IsIgnored(args[0]) {
		fmt.Fprintf(out, "%q is ignored.\n", args[0])
	} else {
		fmt.Fprintf(out, "%q is not ignored.\n", args[0])
	}
	return nil
}
