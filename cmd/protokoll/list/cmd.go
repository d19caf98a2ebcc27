// Package listcmd implements the `protokoll list` command.
package listcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/protokoll/cmd/protokoll/shared"
	"github.com/go-ports/protokoll/internal/models"
	"github.com/go-ports/protokoll/internal/service"
)

// Command implements `protokoll list`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the list command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "list <type>",
		Short: "List entities of one type (people, projects, companies, terms, ignored)",
		Args:  cobra.ExactArgs(1),
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

	entities := svc.Entities(t)
	out := cmd.OutOrStdout()
	if len(entities) == 0 {
		fmt.Fprintf(out, "No %s found.\n", t.DirName())
		return nil
	}

	for _, ent := range entities {
		base := ent.Base()
		fmt.Fprintf(out, "%-24s %s\n", base.ID, base.Name)
	}
	return nil
}
