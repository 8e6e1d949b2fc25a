package main

import (
	"errors"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// defaultMemoryLimit keeps a stray write to a huge address from exhausting
// process memory. It is 128 MiB of cells.
const defaultMemoryLimit = 1 << 24

// app holds the configuration shared by all commands. Each root command gets
// its own viper instance so commands can be built repeatedly in tests.
type app struct {
	cfg *viper.Viper
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: viper.New(), log: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "intcode",
		Short:         "Run and inspect Intcode programs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default $HOME/.intcode.yaml)")
	flags.String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("output", "o", "text", "output format (text, json, cbor)")
	flags.Int("word-size", 64, "machine word size in bits")
	flags.Int64("max-steps", 0, "stop each machine after this many instructions (0 for no limit)")
	flags.Int64("memory-limit", defaultMemoryLimit, "maximum machine memory in cells (0 for no limit)")
	flags.Bool("trace", false, "print every instruction to stderr")
	flags.StringP("code", "c", "", "program text to use instead of a file")

	for _, key := range []string{
		"config", "log-level", "no-color", "output", "word-size",
		"max-steps", "memory-limit", "trace", "code",
	} {
		a.cfg.BindPFlag(key, flags.Lookup(key))
	}
	a.cfg.SetEnvPrefix("INTCODE")
	a.cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.cfg.AutomaticEnv()

	root.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return outputFormats, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(
		newRunCmd(a),
		newAmpCmd(a),
		newPaintCmd(a),
		newSearchCmd(a),
		newDisCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads the .env file and the config file, then applies global flags.
func (a *app) setup(cmd *cobra.Command) error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return err
		}
	}

	if file := a.cfg.GetString("config"); file != "" {
		a.cfg.SetConfigFile(file)
	} else {
		home, err := homedir.Dir()
		if err == nil {
			a.cfg.AddConfigPath(home)
		}
		a.cfg.SetConfigName(".intcode")
		a.cfg.SetConfigType("yaml")
	}
	if err := a.cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	if a.cfg.GetBool("no-color") {
		color.NoColor = true
	}

	level, err := zerolog.ParseLevel(a.cfg.GetString("log-level"))
	if err != nil {
		return err
	}
	a.log = zerolog.New(zerolog.ConsoleWriter{
		Out:     cmd.ErrOrStderr(),
		NoColor: color.NoColor,
	}).Level(level).With().Timestamp().Logger()
	return nil
}
