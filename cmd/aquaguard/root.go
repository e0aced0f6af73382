// ABOUTME: Root Cobra command and global flags
// ABOUTME: Loads configuration and opens the SQLite store for every subcommand

package main

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/harper/aquaguard/internal/config"
	"github.com/harper/aquaguard/internal/observability"
	"github.com/harper/aquaguard/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	store  *storage.SQLiteDB
	logger *slog.Logger

	dbFlag string
)

var rootCmd = &cobra.Command{
	Use:   "aquaguard",
	Short: "Leak monitoring for your property",
	Long: `
 █████╗  ██████╗ ██╗   ██╗ █████╗  ██████╗ ██╗   ██╗ █████╗ ██████╗ ██████╗
██╔══██╗██╔═══██╗██║   ██║██╔══██╗██╔════╝ ██║   ██║██╔══██╗██╔══██╗██╔══██╗
███████║██║   ██║██║   ██║███████║██║  ███╗██║   ██║███████║██████╔╝██║  ██║
██╔══██║██║▄▄ ██║██║   ██║██╔══██║██║   ██║██║   ██║██╔══██║██╔══██╗██║  ██║
██║  ██║╚██████╔╝╚██████╔╝██║  ██║╚██████╔╝╚██████╔╝██║  ██║██║  ██║██████╔╝
╚═╝  ╚═╝ ╚══▀▀═╝  ╚═════╝ ╚═╝  ╚═╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝

       Watch locations for leaks and get mitigation advice

Examples:
  aquaguard serve
  aquaguard locations list
  aquaguard simulate 1 --leak
  aquaguard assess 1`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if dbFlag != "" {
			cfg.DBPath = dbFlag
		}

		logger = observability.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)

		store, err = cfg.OpenStorage(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		logger.Debug("database opened", "path", store.Path())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

var (
	metricsOnce sync.Once
	metrics     *observability.Metrics
)

// appMetrics registers the process metrics once with the default registry.
func appMetrics() *observability.Metrics {
	metricsOnce.Do(func() {
		metrics = observability.NewMetrics()
	})
	return metrics
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "database path (overrides DB_PATH)")
}
