// Package infocmd implements the `protokoll info` command.
package infocmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/protokoll/cmd/protokoll/shared"
	"github.com/go-ports/protokoll/internal/models"
	"github.com/go-ports/protokoll/internal/service"
)

// Command implements `protokoll info`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the info command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "info",
		Short: "Show the resolved context for the current directory",
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

	out := cmd.OutOrStdout()
	if !svc.HasContext() {
		fmt.Fprintln(out, "No context found. Run `protokoll init` to create one.")
		return nil
	}

	fmt.Fprintln(out, "Context directories (closest first):")
	for _, d := range svc.Dirs() {
		fmt.Fprintf(out, "  [%d] %s\n", d.Level, d.Path)
	}

	fmt.Fprintln(out, "\nEntity storage (furthest first):")
	for _, dir := range svc.StorageDirs() {
		fmt.Fprintf(out, "  %s\n", dir)
	}

	fmt.Fprintln(out, "\nEntities:")
	for _, t := range models.Types {
		fmt.Fprintf(out, "  %-9s %d\n", t.DirName(), len(svc.Entities(t)))
	}

	sa := svc.SmartAssist()
	fmt.Fprintln(out, "\nSmart assistance:")
	fmt.Fprintf(out, "  enabled:                %v\n", sa.Enabled)
	fmt.Fprintf(out, "  model:                  %s\n", sa.Model)
	fmt.Fprintf(out, "  transcription model:    %s\n", sa.TranscriptionModel)
	fmt.Fprintf(out, "  suggest entities:       %v\n", sa.SuggestEntities)
	fmt.Fprintf(out, "  suggest relationships:  %v\n", sa.SuggestRelationships)
	fmt.Fprintf(out, "  learn from corrections: %v\n", sa.LearnFromCorrections)
	fmt.Fprintf(out, "  timeout:                %s\n", sa.Timeout)

	return nil
}
