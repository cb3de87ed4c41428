package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smokyabdulrahman/salat/internal/logger"
	"github.com/smokyabdulrahman/salat/internal/server"
)

var (
	flagServeAddr    string
	flagServeEnvFile string
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: "Serve prayer times, calendar conversion, events and places over HTTP.\n\n" +
			"Configured through SALAT_HTTP_ADDR, SALAT_LOG_LEVEL, SALAT_REDIS_ADDR,\n" +
			"SALAT_REDIS_PASSWORD, SALAT_REDIS_DB, SALAT_GEO_CACHE_TTL and\n" +
			"SALAT_DEFAULT_METHOD, optionally read from an env file.",
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().StringVar(&flagServeAddr, "addr", "", "Listen address (overrides SALAT_HTTP_ADDR)")
	cmd.Flags().StringVar(&flagServeEnvFile, "env-file", ".env", "Optional env file with server settings")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := server.LoadConfig(flagServeEnvFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr = flagServeAddr
	}

	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer lg.Sync() //nolint:errcheck

	store, closeStore, err := server.OpenStore(cfg, lg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			lg.Warn("Failed to close cache store", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, lg, store)
	lg.Info("Starting server", zap.String("addr", cfg.Addr), zap.String("default_method", cfg.DefaultMethod))
	return srv.Run(ctx)
}
