// ABOUTME: HTTP serve command
// ABOUTME: Runs the API server until SIGINT or SIGTERM, then drains connections

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/harper/aquaguard/internal/api"
	"github.com/harper/aquaguard/internal/events"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and UI server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTPAddr = addr
		}

		assessor, closeAssessor, err := buildAssessor(ctx)
		if err != nil {
			return err
		}
		defer closeAssessor()

		publisher := newPublisher()
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Warn("close event publisher", "error", err)
			}
		}()

		if cfg.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}

		srv := api.NewServer(api.Options{
			Addr:       cfg.HTTPAddr,
			Production: cfg.IsProduction(),
			StaticDir:  cfg.StaticDir,
			DevOrigins: cfg.DevOrigins,
		}, api.Deps{
			Store:     store,
			Assessor:  assessor,
			Publisher: publisher,
			Logger:    logger,
			Metrics:   appMetrics(),
		})

		errCh := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	},
}

// newPublisher returns a Kafka publisher when brokers are configured.
func newPublisher() events.Publisher {
	if !cfg.KafkaEnabled() {
		return events.Nop{}
	}
	logger.Info("publishing location events", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger, appMetrics())
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides HTTP_ADDR)")

	rootCmd.AddCommand(serveCmd)
}
