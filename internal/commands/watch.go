package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ezcfg/examples/lobby"
	"ezcfg/internal/diagnostic"
)

func watchCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reload the settings whenever the file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := e.binder(cmd)
			if err != nil {
				return err
			}

			settings := lobby.Defaults()
			if _, err := b.LoadPath(settings, e.file(), true); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			w, err := b.Watch(ctx, settings, e.file(), func(diags *diagnostic.Diagnostics, err error) {
				if err != nil {
					cmd.PrintErrln("reload failed:", err)
					return
				}
				summarize(out, diags)
			})
			if err != nil {
				return err
			}
			defer w.Stop()

			<-ctx.Done()

			return nil
		},
	}
}
