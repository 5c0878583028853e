package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/strcalc/internal/cli"
)

func main() {
	envFile := cli.DefaultEnvFile
	if v, ok := os.LookupEnv("STRCALC_ENV_FILE"); ok {
		envFile = v
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Serve(ctx, envFile); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
