package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/subcleanser/internal/codec"
	"github.com/nguyentantai21042004/subcleanser/internal/config"
	"github.com/nguyentantai21042004/subcleanser/internal/logger"
	"github.com/nguyentantai21042004/subcleanser/internal/pipeline"
	"github.com/nguyentantai21042004/subcleanser/internal/watcher"
)

func newWatchCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Monitor a directory and cleanse every subtitle file dropped into it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}
			if cfg.Paths.Input == "" || cfg.Paths.Output == "" {
				return fmt.Errorf("watch mode requires paths.input and paths.output in the config")
			}
			return runWatch(cmd.Context(), cfg)
		},
	}
}

func runWatch(ctx context.Context, cfg *config.Config) error {
	log := logger.New(cfg.Logging.Level)

	if err := ensureDirectories(cfg); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	proc := pipeline.New(log)
	handler := func(ctx context.Context, filePath string) error {
		return processFile(ctx, proc, cfg, filePath)
	}

	w, err := watcher.New(cfg.Paths.Input, handler, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Subtitle cleanser is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s (%s)", cfg.Paths.Output, cfg.OutputFormat())
	log.Info(ctx, "Max Concurrent Processing: %d", cfg.Performance.MaxConcurrent)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	log.Info(ctx, "Subtitle cleanser stopped")
	return nil
}

// processFile runs one watched file through the pipeline and writes the
// result next to its siblings in the output directory.
func processFile(ctx context.Context, proc pipeline.Processor, cfg *config.Config, filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}

	inFormat, err := codec.ParseFormat(filepath.Ext(filePath))
	if err != nil {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	res, err := proc.Process(ctx, pipeline.Request{
		Input:        data,
		InputFormat:  inFormat,
		OutputFormat: cfg.OutputFormat(),
		Cleanse:      cfg.CleanseOptions(),
		Timing:       cfg.TimingOptions(),
		Style:        cfg.StyleConfig(),
	})
	if err != nil {
		return err
	}

	base := filepath.Base(filePath)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + cfg.OutputFormat().Extension()
	outPath := filepath.Join(cfg.Paths.Output, name)
	if err := os.WriteFile(outPath, res.Output, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
