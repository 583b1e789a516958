package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"ezcfg/binder"
	"ezcfg/host"
	"ezcfg/internal/logging"
)

// Version of the ezcfg command.
const Version = "0.1.0"

// env holds the settings shared by every subcommand, read through viper so
// flags, EZCFG_* variables and defaults agree.
type env struct {
	v *viper.Viper
}

func (e *env) dataDir() string   { return e.v.GetString("data_dir") }
func (e *env) file() string      { return e.v.GetString("file") }
func (e *env) logLevel() string  { return e.v.GetString("log_level") }
func (e *env) logFormat() string { return e.v.GetString("log_format") }

// binder builds a binder for the lobby plugin logging to the command's
// error stream.
func (e *env) binder(cmd *cobra.Command) (*binder.Binder, error) {
	logger, err := logging.New(cmd.ErrOrStderr(), e.logLevel(), e.logFormat())
	if err != nil {
		return nil, err
	}

	return binder.New(host.NewPlugin("lobby", e.dataDir(), logger)), nil
}

// RootCmd creates and returns the root command for the ezcfg CLI.
func RootCmd() *cobra.Command {
	e := &env{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "ezcfg",
		Short: "Bind plugin settings to a YAML configuration file",
		Long: `ezcfg loads and saves the settings of the example lobby plugin.

Every tagged field of the settings struct maps to a path of the file:
• load pulls values from the file and backfills missing ones
• save writes only the values that differ
• inspect shows how each field is bound`,
		Version:      Version,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.String("data-dir", ".", "plugin data directory")
	flags.String("file", host.DefaultFile, "configuration file, relative to the data directory")
	flags.String("log-level", "info", "log level: debug, info, warning, error")
	flags.String("log-format", logging.FormatText, "log format: text, json")

	mustBindPFlag(e.v, "data_dir", flags.Lookup("data-dir"))
	mustBindPFlag(e.v, "file", flags.Lookup("file"))
	mustBindPFlag(e.v, "log_level", flags.Lookup("log-level"))
	mustBindPFlag(e.v, "log_format", flags.Lookup("log-format"))

	e.v.SetEnvPrefix("EZCFG")
	e.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	e.v.AutomaticEnv()

	cmd.AddCommand(loadCmd(e))
	cmd.AddCommand(saveCmd(e))
	cmd.AddCommand(inspectCmd(e))
	cmd.AddCommand(watchCmd(e))

	return cmd
}

func mustBindPFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("viper.BindPFlag(%q): %v", key, err))
	}
}
