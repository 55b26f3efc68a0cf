package main

import (
	"log/slog"
	"os"

	"github.com/rcpassos/rasalint/internal/cli"
)

func main() {
	level := slog.LevelWarn
	if os.Getenv("RASALINT_DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
