package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ggoodman/slashcmd-go/registry"
)

// Version is set at build time.
var Version = "0.1.0"

type app struct {
	cfg Config
	log *slog.Logger
}

func newRootCmd(cfg Config) *cobra.Command {
	a := &app{cfg: cfg}
	root := &cobra.Command{
		Use:   "slashcmd",
		Short: "Slash command definition toolkit",
		Long: `slashcmd loads slash command definitions from YAML or JSONC documents,
checks them against the platform rules, prints their registration payloads,
decodes interaction payloads against them and syncs changed commands.

Document globs default to $SLASHCMD_DEFINITIONS.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			l, err := newLogger(cmd.ErrOrStderr(), a.cfg.LogLevel)
			if err != nil {
				return err
			}
			a.log = l
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")

	root.AddCommand(
		a.validateCmd(),
		a.schemaCmd(),
		a.decodeCmd(),
		a.syncCmd(),
		a.watchCmd(),
	)
	return root
}

// pattern returns args[i] or the configured default glob.
func (a *app) pattern(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return a.cfg.Definitions
}

// registry loads and compiles every document matching pattern.
func (a *app) registry(pattern string) (*registry.Registry, error) {
	defs, err := loadDefinitions(pattern)
	if err != nil {
		return nil, err
	}
	r := registry.New(registry.WithLogger(a.log))
	if err := r.Replace(defs...); err != nil {
		return nil, err
	}
	return r, nil
}
