// Package commands provides the patternbook CLI commands.
//
// All commands are read-only: they load an immutable catalog, perform
// lookups or rendering, and exit. Nothing here mutates catalog state.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/patternbook/catalog"
	"github.com/c360studio/patternbook/config"
	"github.com/c360studio/patternbook/loader"
)

// App carries the shared state for all CLI commands.
type App struct {
	Config *config.Config
	Logger *slog.Logger

	// flag values bound on the root command
	configPath string
	docPaths   []string
	strict     bool
	logLevel   string
}

// NewRootCmd builds the patternbook root command with all subcommands.
func NewRootCmd(version, buildTime string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "patternbook",
		Short: "Design pattern reference catalog",
		Long: `Patternbook is a reference catalog of classic object-oriented design
patterns. The catalog is loaded from embedded markdown documents, plus any
extra documents you point it at, and served through read-only lookups.

Every entry carries a definition, an explanation, and a self-contained
example; the catalog itself is immutable once loaded.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
	}

	cmd.PersistentFlags().StringVarP(&app.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringSliceVar(&app.docPaths, "docs", nil, "Extra catalog document paths or glob patterns")
	cmd.PersistentFlags().BoolVar(&app.strict, "strict", false, "Fail on malformed extra documents")
	cmd.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newRenderCmd(app))
	cmd.AddCommand(newCheckCmd(app))
	cmd.AddCommand(newWatchCmd(app))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "patternbook version %s (build: %s)\n", version, buildTime)
		},
	})

	return cmd
}

// setup resolves config from file, defaults, and flags, then builds the
// logger. Runs before every command.
func (a *App) setup() error {
	cfg := config.DefaultConfig()

	if a.configPath != "" {
		fileCfg, err := config.LoadFromFile(a.configPath)
		if err != nil {
			return err
		}
		cfg.Merge(fileCfg)
	}

	// Flags override file config.
	if len(a.docPaths) > 0 {
		cfg.Catalog.Paths = append(cfg.Catalog.Paths, a.docPaths...)
	}
	if a.strict {
		cfg.Catalog.Strict = true
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.Config = cfg
	a.Logger = newLogger(cfg.Log.Level)
	return nil
}

// loadCatalog builds the catalog from the resolved configuration.
func (a *App) loadCatalog() (*catalog.Catalog, error) {
	opts := a.Config.LoaderOptions()
	opts.Logger = a.Logger
	return loader.Load(opts)
}

// loaderOptions returns the loader options for watch mode.
func (a *App) loaderOptions() loader.Options {
	opts := a.Config.LoaderOptions()
	opts.Logger = a.Logger
	return opts
}

// newLogger builds a slog text logger at the given level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
