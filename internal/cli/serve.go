package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/strcalc/internal/config"
	"github.com/JonMunkholm/strcalc/internal/logging"
	"github.com/JonMunkholm/strcalc/internal/web"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// DefaultEnvFile is the environment file read before configuration.
const DefaultEnvFile = ".env"

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the calculator web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveStringFlagFromEnv(cmd, "env-file", envEnvFile); err != nil {
				return err
			}
			envFile, _ := cmd.Flags().GetString("env-file")

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return Serve(ctx, envFile)
		},
	}

	cmd.Flags().String("env-file", DefaultEnvFile, "Environment file to load before reading configuration")
	return cmd
}

// Serve loads envFile, reads configuration, and runs the web server until
// ctx is cancelled. Both `strcalc serve` and cmd/server start through here.
func Serve(ctx context.Context, envFile string) error {
	if err := loadEnvFile(envFile); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	srv, err := web.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	return srv.Run(ctx)
}

// loadEnvFile overlays values from path onto the environment. A missing
// file is not an error; a file that fails to parse is.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Overload(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("no env file found, using environment variables", "path", path)
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	slog.Info("loaded env file", "path", path)
	return nil
}
