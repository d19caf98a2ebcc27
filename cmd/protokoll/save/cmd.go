// Package savecmd implements the `protokoll save` command.
package savecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/protokoll/cmd/protokoll/shared"
	"github.com/go-ports/protokoll/internal/models"
	"github.com/go-ports/protokoll/internal/relation"
	"github.com/go-ports/protokoll/internal/service"
)

// Command implements `protokoll save`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	name           string
	notes          string
	soundsLike     []string
	parent         string
	siblings       []string
	classification string
	routing        string
	active         bool
}

// New creates the save command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "save <type> <id>",
		Short: "Create or update an entity in the closest context directory",
		Args:  cobra.ExactArgs(2),
		RunE:  c.run,
	}

	f := c.cmd.Flags()
	f.StringVar(&c.name, "name", "", "Display name (defaults to the id)")
	f.StringVar(&c.notes, "notes", "", "Freeform notes")
	f.StringSliceVar(&c.soundsLike, "sounds-like", nil, "Phonetic variants (repeatable)")
	f.StringVar(&c.parent, "parent", "", "Id of a parent entity of the same type")
	f.StringSliceVar(&c.siblings, "sibling", nil, "Ids of sibling entities of the same type (repeatable)")
	f.StringVar(&c.classification, "classification", "", "Project classification (projects only)")
	f.StringVar(&c.routing, "routing", "", "Project routing target (projects only)")
	f.BoolVar(&c.active, "active", false, "Mark the project active (projects only)")

	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	t, err := models.ParseType(args[0])
	if err != nil {
		return err
	}
	id := args[1]

	if t != models.TypeProject &&
		(c.classification != "" || c.routing != "" || c.cmd.Flags().Changed("active")) {
		return fmt.Errorf("--classification, --routing, and --active apply to projects only")
	}

	svc, err := service.New(c.ctx.Options())
	if err != nil {
		return err
	}

	ent, ok := svc.Entity(t, id)
	if !ok {
		ent = models.New(t)
		ent.Base().ID = id
	}
	base := ent.Base()

	base.Name = c.name
	if base.Name == "" {
		base.Name = id
	}
	if c.notes != "" {
		base.Notes = c.notes
	}
	if len(c.soundsLike) > 0 {
		base.SoundsLike = c.soundsLike
	}
	c.applyRelationships(base, t)

	if project, ok := ent.(*models.Project); ok {
		if c.classification != "" {
			project.Classification = c.classification
		}
		if c.routing != "" {
			project.Routing = c.routing
		}
		if c.cmd.Flags().Changed("active") {
			project.Active = c.active
		}
	}

	path, err := svc.SaveEntity(ent)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s %q to %s\n", t, id, path)
	return nil
}

// applyRelationships rewrites the parent declaration and appends any new
// sibling declarations from the flags.
func (c *Command) applyRelationships(base *models.BaseEntity, t models.Type) {
	if c.parent != "" {
		kept := base.Relationships[:0]
		for _, rel := range base.Relationships {
			if rel.Kind != relation.KindParent {
				kept = append(kept, rel)
			}
		}
		base.Relationships = append(kept, models.Relationship{
			URI:  relation.URIFor(t, c.parent),
			Kind: relation.KindParent,
		})
	}

	for _, sibling := range c.siblings {
		uri := relation.URIFor(t, sibling)
		exists := false
		for _, rel := range base.Relationships {
			if rel.Kind == relation.KindSibling && rel.URI == uri {
				exists = true
				break
			}
		}
		if !exists {
			base.Relationships = append(base.Relationships, models.Relationship{
				URI:  uri,
				Kind: relation.KindSibling,
			})
		}
	}
}
