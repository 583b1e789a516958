package commands

import (
	"github.com/spf13/cobra"

	"ezcfg/examples/lobby"
)

func saveCmd(e *env) *cobra.Command {
	var (
		port int
		motd string
		mode string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Change settings and write the values that differ",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := e.binder(cmd)
			if err != nil {
				return err
			}

			settings := lobby.Defaults()
			if _, err := b.LoadPath(settings, e.file(), false); err != nil {
				return err
			}

			if cmd.Flags().Changed("port") {
				settings.Port = port
			}

			if cmd.Flags().Changed("motd") {
				settings.Motd = motd
			}

			if cmd.Flags().Changed("mode") {
				m, err := lobby.ParseMode(mode)
				if err != nil {
					return err
				}
				settings.Mode = m
			}

			diags, err := b.SavePath(settings, e.file())
			if err != nil {
				return err
			}

			summarize(cmd.OutOrStdout(), diags)

			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "server port")
	cmd.Flags().StringVar(&motd, "motd", "", "message of the day")
	cmd.Flags().StringVar(&mode, "mode", "", "game mode: survival, creative, adventure")

	return cmd
}
