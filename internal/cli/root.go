package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/demonax/demonax/internal/ingest"
	"github.com/demonax/demonax/internal/store"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose    bool
	Database   string
	LogFile    string
	ConfigPath string
	Workers    int

	// Logger carries the run-scoped logger after PersistentPreRunE.
	Logger *slog.Logger
	// RunID correlates every log line of one command execution.
	RunID string
}

// NewRootCommand creates the root command for the demonax CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "demonax",
		Short: "Demonax game-data ingestion",
		Long: `Decodes game data files (creatures, items, quests, raids, skinning,
spells, player snapshots) and maintains the demonax SQLite database.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Database, "database", DefaultDatabase, "path to the SQLite database")
	cmd.PersistentFlags().StringVar(&opts.LogFile, "log-file", "", "append logs to this file in addition to stderr")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().IntVar(&opts.Workers, "workers", 0, "decode workers (0 = one per CPU)")

	cmd.AddCommand(NewUpdateCreaturesCommand(opts))
	cmd.AddCommand(NewUpdateItemsCoreCommand(opts))
	cmd.AddCommand(NewUpdateQuestOverviewCommand(opts))
	cmd.AddCommand(NewUpdateItemsQuestsCommand(opts))
	cmd.AddCommand(NewUpdateRaidsCommand(opts))
	cmd.AddCommand(NewUpdateSkinningCommand(opts))
	cmd.AddCommand(NewUpdateSpellsCommand(opts))
	cmd.AddCommand(NewProcessUsrCommand(opts))

	return cmd
}

// resolve merges config sources and prepares logging. Flags win over
// environment, environment wins over the config file.
func (opts *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}

	flags := cmd.Flags()
	if !flags.Changed("database") {
		opts.Database = cfg.Database
	}
	if !flags.Changed("log-file") {
		opts.LogFile = cfg.LogFile
	}
	if !flags.Changed("workers") {
		opts.Workers = cfg.Workers
	}

	return opts.setupLogging(cmd.ErrOrStderr())
}

func (opts *RootOptions) setupLogging(stderr io.Writer) error {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	w := stderr
	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return WrapExitError(ExitCommandError, "open log file", err)
		}
		// The file stays open for the life of the process.
		w = io.MultiWriter(stderr, f)
	}

	opts.RunID = uuid.NewString()
	opts.Logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})).With("run", opts.RunID)
	slog.SetDefault(opts.Logger)
	return nil
}

func (opts *RootOptions) logger() *slog.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return slog.Default()
}

// openRunner opens the store and builds the stage runner. The returned
// cleanup closes the store.
func (opts *RootOptions) openRunner() (*ingest.Runner, func(), error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "open database", err)
	}
	cleanup := func() {
		if err := st.Close(); err != nil {
			opts.logger().Error("closing database", "error", err)
		}
	}
	return &ingest.Runner{Store: st, Log: opts.logger(), Workers: opts.Workers}, cleanup, nil
}

// stageError maps a failed stage to its exit code: persistence failures
// are stage failures, everything else (missing inputs, unreadable
// catalog) is a command error.
func stageError(stage string, err error) error {
	if store.IsPersistenceError(err) {
		return WrapExitError(ExitFailure, stage+" failed", err)
	}
	return WrapExitError(ExitCommandError, stage+" failed", err)
}

// printSummary writes the one-line stage result plus one line per
// skipped file.
func printSummary(cmd *cobra.Command, stage string, s *ingest.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: written=%d skipped=%d violations=%d\n",
		stage, s.Written, len(s.Skipped), s.Violations)
	for _, sk := range s.Skipped {
		fmt.Fprintf(out, "  skipped %s: %s\n", sk.Path, sk.Reason)
	}
}
