// Package cli implements the synaudio command line.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/llehouerou/synaudio/internal/config"
	"github.com/llehouerou/synaudio/internal/db"
	"github.com/llehouerou/synaudio/internal/errmsg"
	"github.com/llehouerou/synaudio/internal/library"
)

// RootOptions holds global flags and the state shared by subcommands.
type RootOptions struct {
	ConfigPath string
	DBPath     string
	LogLevel   string
	Stats      bool

	cfg      *config.Config
	log      *slog.Logger
	registry *prometheus.Registry
}

// NewRootCommand creates the root command for the synaudio CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "synaudio",
		Short:         "Query a synaudio music library",
		Long:          "Read-only views over the synaudio library file: artists, album views and songs.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Stats {
				return writeStats(cmd.OutOrStdout(), opts.registry)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "extra config file (toml)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "library file (overrides library_file)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "debug|info|warn|error (overrides log_level)")
	cmd.PersistentFlags().BoolVar(&opts.Stats, "stats", false, "print query statistics after the command")

	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewAlbumsCommand(opts))
	cmd.AddCommand(NewAlbumCommand(opts))
	cmd.AddCommand(NewArtistsCommand(opts))
	cmd.AddCommand(NewSongsCommand(opts))

	return cmd
}

func (o *RootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return userError(errmsg.Format(errmsg.OpConfigLoad, err), err)
	}
	if o.DBPath != "" {
		cfg.LibraryFile = o.DBPath
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	o.cfg = cfg
	o.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	o.registry = prometheus.NewRegistry()
	return nil
}

// openStore opens the configured library file with logging and metrics.
func (o *RootOptions) openStore() (*db.Store, error) {
	metrics, err := db.NewMetrics(o.registry)
	if err != nil {
		return nil, err
	}
	store, err := db.Open(o.cfg.LibraryFile, db.WithLogger(o.log), db.WithMetrics(metrics))
	if err != nil {
		return nil, userError(errmsg.FormatWith(errmsg.OpLibraryOpen, o.cfg.LibraryFile, err), err)
	}
	return store, nil
}

// withLibrary opens the store, runs fn and closes the store.
func (o *RootOptions) withLibrary(fn func(*library.Library) error) error {
	store, err := o.openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(library.New(store, library.WithLogger(o.log)))
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return 1
	}
	return 0
}
