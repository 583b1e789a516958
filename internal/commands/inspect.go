package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"ezcfg/binder"
	"ezcfg/examples/lobby"
)

func inspectCmd(e *env) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show how each settings field is bound",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := e.binder(cmd)
			if err != nil {
				return err
			}

			bindings, diags := binder.Bindings(lobby.Settings{}, b.Flags())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FIELD\tPATH\tKIND\tINHERITED\tCOMMENT")
			for _, bd := range bindings {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n",
					bd.Name(), bd.Path, bd.Kind, bd.Inherited, strings.Join(bd.Comment, " / "))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			for _, d := range diags.Warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", d)
			}

			if !dump {
				return nil
			}

			settings := lobby.Defaults()
			if _, err := b.LoadPath(settings, e.file(), false); err != nil {
				return err
			}

			cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
			cfg.Fdump(cmd.OutOrStdout(), settings)

			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "also dump the loaded settings")

	return cmd
}
