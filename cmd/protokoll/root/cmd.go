// Package rootcmd wires the root cobra.Command for the protokoll binary.
package rootcmd

import (
	"github.com/spf13/cobra"

	configcmd "github.com/go-ports/protokoll/cmd/protokoll/config"
	deletecmd "github.com/go-ports/protokoll/cmd/protokoll/delete"
	ignoredcmd "github.com/go-ports/protokoll/cmd/protokoll/ignored"
	infocmd "github.com/go-ports/protokoll/cmd/protokoll/info"
	initcmd "github.com/go-ports/protokoll/cmd/protokoll/init"
	listcmd "github.com/go-ports/protokoll/cmd/protokoll/list"
	lookupcmd "github.com/go-ports/protokoll/cmd/protokoll/lookup"
	mcpcmd "github.com/go-ports/protokoll/cmd/protokoll/mcp"
	savecmd "github.com/go-ports/protokoll/cmd/protokoll/save"
	searchcmd "github.com/go-ports/protokoll/cmd/protokoll/search"
	setupcmd "github.com/go-ports/protokoll/cmd/protokoll/setup"
	"github.com/go-ports/protokoll/cmd/protokoll/shared"
	showcmd "github.com/go-ports/protokoll/cmd/protokoll/show"
	uninstallcmd "github.com/go-ports/protokoll/cmd/protokoll/uninstall"
	"github.com/go-ports/protokoll/internal/buildinfo"
)

// New creates and returns the root cobra.Command for the protokoll CLI.
func New() *cobra.Command {
	ctx := &shared.Context{}

	root := &cobra.Command{
		Use:           "protokoll",
		Short:         "Protokoll resolves hierarchical context for transcript routing",
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}

	pf := root.PersistentFlags()
	pf.StringVar(&ctx.StartDir, "dir", "", "Directory to start context discovery from (default: current directory)")
	pf.StringVar(&ctx.Marker, "marker", "", "Marker directory name (default: .protokoll)")
	pf.StringVar(&ctx.ConfigName, "config-name", "", "Configuration file name inside the marker directory (default: config.yaml)")

	root.AddCommand(
		infocmd.New(ctx).Cmd(),
		initcmd.New(ctx).Cmd(),
		listcmd.New(ctx).Cmd(),
		showcmd.New(ctx).Cmd(),
		savecmd.New(ctx).Cmd(),
		deletecmd.New(ctx).Cmd(),
		searchcmd.New(ctx).Cmd(),
		lookupcmd.New(ctx).Cmd(),
		ignoredcmd.New(ctx).Cmd(),
		configcmd.New(ctx).Cmd(),
		mcpcmd.New(ctx).Cmd(),
		setupcmd.New(ctx).Cmd(),
		uninstallcmd.New(ctx).Cmd(),
	)

	return root
}
