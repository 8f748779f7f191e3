// Package main is the reliefai CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sarahlunette/resilience2reliefai/internal/classify"
	"github.com/sarahlunette/resilience2reliefai/internal/config"
	"github.com/sarahlunette/resilience2reliefai/internal/entity"
	"github.com/sarahlunette/resilience2reliefai/internal/processor"
	"github.com/sarahlunette/resilience2reliefai/internal/server"
	"github.com/sarahlunette/resilience2reliefai/internal/storage"
	"github.com/sarahlunette/resilience2reliefai/internal/watcher"
	"github.com/sarahlunette/resilience2reliefai/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/reliefai/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		// No config file anywhere: run on defaults.
		if errors.Is(err, fs.ErrNotExist) {
			var defaults config.Config
			config.ApplyDefaults(&defaults)
			return &defaults, "", nil
		}
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "process":
		runProcess()
	case "batch":
		runBatch()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("reliefai version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`reliefai - disaster recovery document processing

Usage:
  reliefai server   [-config path] [-debug]        run the HTTP API and directory watcher
  reliefai process  [-config path] [-store] <file> process a single document and print the record
  reliefai batch    [-config path] <dir>           process a directory tree into the store
  reliefai status   [-config path]                 show stored document and chunk counts
  reliefai version                                 print version`)
}

// buildProcessor assembles a processor from config, loading gazetteer and
// entity pattern overrides when configured.
func buildProcessor(cfg *config.Config, logger *zap.Logger) (*processor.Processor, error) {
	var gazetteer *classify.Gazetteer
	if cfg.Classify.GazetteerPath != "" {
		g, err := classify.Load(cfg.Classify.GazetteerPath)
		if err != nil {
			return nil, fmt.Errorf("load gazetteer: %w", err)
		}
		gazetteer = g
	}
	var patterns *entity.Patterns
	if cfg.Classify.PatternsPath != "" {
		p, err := entity.LoadPatterns(cfg.Classify.PatternsPath)
		if err != nil {
			return nil, fmt.Errorf("load entity patterns: %w", err)
		}
		patterns = p
	}
	opts := []processor.Option{}
	if logger != nil {
		opts = append(opts, processor.WithLogger(logger))
	}
	return processor.New(&cfg.Processing, gazetteer, patterns, opts...)
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (file events, pipeline progress)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	proc, err := buildProcessor(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to build processor", zap.Error(err))
	}
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer store.Close()

	storeFile := func(path string) {
		record, err := proc.ProcessFile(path)
		if err != nil {
			logger.Warn("watch process file failed", zap.String("path", path), zap.Error(err))
			return
		}
		ctx := context.Background()
		if err := store.SaveRecord(ctx, record); err != nil {
			logger.Warn("watch save record failed", zap.String("path", path), zap.Error(err))
			return
		}
		if err := store.SaveChunks(ctx, record.ID, proc.Chunk(record.Text)); err != nil {
			logger.Warn("watch save chunks failed", zap.String("path", path), zap.Error(err))
		}
	}
	removeFile := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return
		}
		if err := store.DeleteRecord(context.Background(), processor.DocID(abs)); err != nil {
			logger.Warn("watch delete by path failed", zap.String("path", path), zap.Error(err))
		}
	}

	watchOpts := []watcher.Option{}
	if debugMode {
		watchOpts = append(watchOpts, watcher.WithLogger(logger))
	}
	watchSvc := watcher.New(
		cfg.Watch.Directories,
		proc.Registry().Supported,
		cfg.Watch.RecursiveOrDefault(),
		storeFile,
		removeFile,
		watchOpts...,
	)
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if len(cfg.Watch.Directories) > 0 {
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		watchSvc.SyncExistingFiles()
	}

	srv := server.NewServer(proc, store, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchSvc.Stop()
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runProcess() {
	fs := flag.NewFlagSet("process", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	save := fs.Bool("store", false, "also save the record to the configured database")
	_ = fs.Parse(os.Args[2:])
	if fs.NArg() < 1 {
		fmt.Println("Usage: reliefai process [-config path] [-store] <file>")
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	proc, err := buildProcessor(cfg, nil)
	if err != nil {
		fmt.Printf("Failed to build processor: %v\n", err)
		os.Exit(1)
	}

	record, err := proc.ProcessFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Processing failed: %v\n", err)
		os.Exit(1)
	}
	if *save {
		store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		ctx := context.Background()
		if err := store.SaveRecord(ctx, record); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save record: %v\n", err)
			os.Exit(1)
		}
		if err := store.SaveChunks(ctx, record.ID, proc.Chunk(record.Text)); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save chunks: %v\n", err)
			os.Exit(1)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runBatch() {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])
	if fs.NArg() < 1 {
		fmt.Println("Usage: reliefai batch [-config path] <dir>")
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug || *debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	proc, err := buildProcessor(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to build processor", zap.Error(err))
	}
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer store.Close()

	result, err := proc.ProcessDirectory(fs.Arg(0))
	if err != nil {
		logger.Fatal("Batch failed", zap.Error(err))
	}
	ctx := context.Background()
	stored := 0
	for _, record := range result.Records {
		if err := store.SaveRecord(ctx, record); err != nil {
			logger.Warn("save record failed", zap.String("id", record.ID), zap.Error(err))
			continue
		}
		if err := store.SaveChunks(ctx, record.ID, proc.Chunk(record.Text)); err != nil {
			logger.Warn("save chunks failed", zap.String("id", record.ID), zap.Error(err))
			continue
		}
		stored++
	}

	fmt.Printf("Processed %d documents (%d skipped, %d stored)\n", result.Processed, result.Skipped, stored)
	for _, f := range result.Failures {
		fmt.Printf("  skipped %s: %s\n", f.Path, f.Reason)
	}
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	docs, err := store.CountRecords(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to count documents: %v\n", err)
		os.Exit(1)
	}
	chunks, err := store.CountChunks(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to count chunks: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Documents: %d\nChunks:    %d\nDatabase:  %s\n", docs, chunks, cfg.Storage.DatabasePath)
}
