package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/tunecatcher/tunecatcher/internal/cli"
	"github.com/tunecatcher/tunecatcher/internal/config"
	"github.com/tunecatcher/tunecatcher/internal/download"
	"github.com/tunecatcher/tunecatcher/internal/extractor"
	"github.com/tunecatcher/tunecatcher/internal/model"
	"github.com/tunecatcher/tunecatcher/internal/platform"
	"github.com/tunecatcher/tunecatcher/internal/playlist"
	"github.com/tunecatcher/tunecatcher/internal/preview"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const AppName = "TuneCatcher"

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	logger := newLogger()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Make sure yt-dlp is available before any download starts
	extractor.Install(ctx)

	// Initialize services
	store := config.NewStore(config.DefaultPath(), logger)
	backend := extractor.New(logger)

	settings := store.Snapshot()
	if err := platform.CreateDirectoryIfNotExists(settings.SavePath); err != nil {
		logger.Warnw("Failed to ensure downloads dir", "path", settings.SavePath, "error", err)
	}

	resolver := playlist.NewResolver(backend, logger)

	var repl *cli.REPL
	orchestrator := download.NewOrchestrator(store, backend, download.Callbacks{
		OnStatus:   func(text string) { repl.HandleStatus(text) },
		OnProgress: func(event model.ProgressEvent) { repl.HandleProgress(event) },
		OnBusy:     func(busy bool) { repl.HandleBusy(busy) },
	}, logger)
	fetcher := preview.NewFetcher(backend, func(state preview.State) { repl.HandlePreview(state) }, logger)
	repl = cli.New(store, fetcher, orchestrator, resolver, os.Stdin, os.Stdout, logger)

	if err := repl.Run(ctx); err != nil {
		logger.Errorw("Input loop failed", "error", err)
		os.Exit(1)
	}
}

func newLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"tunecatcher.log"}
	cfg.ErrorOutputPaths = []string{"tunecatcher.log"}

	logger, err := cfg.Build()
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	return logger.Sugar()
}
