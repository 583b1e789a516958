package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"ezcfg/examples/lobby"
	"ezcfg/internal/diagnostic"
)

func loadCmd(e *env) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load the settings, backfilling missing values from the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := e.binder(cmd)
			if err != nil {
				return err
			}

			settings := lobby.Defaults()
			diags, err := b.LoadPath(settings, e.file(), !dryRun)
			if err != nil {
				return err
			}

			summarize(cmd.OutOrStdout(), diags)

			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "do not write backfilled values to the file")

	return cmd
}

// summarize prints one line per warning and a count of the rest.
func summarize(w io.Writer, diags *diagnostic.Diagnostics) {
	for _, d := range diags.Warnings {
		fmt.Fprintf(w, "warning: %s\n", d)
	}

	fmt.Fprintf(w, "%d written, %d warnings\n", len(diags.Infos), len(diags.Warnings))
}
