package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sycrosity/statik/config"
	"github.com/sycrosity/statik/supervisor"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "path to the statik config file")
	flag.StringVar(configPath, "c", config.DefaultConfigPath, "shorthand for -config")
	flag.Parse()

	cfg, err := loadOrInitConfig(*configPath)

	log, err2 := newLogger(cfg.General.LogLevel)
	if err2 != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q: %v\n", cfg.General.LogLevel, err2)
		os.Exit(1)
	}
	defer log.Sync()

	if err != nil {
		log.Warn("falling back to default configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	store := config.NewStore(cfg)
	srv := supervisor.New(store, log)

	if err := srv.Run(ctx); err != nil {
		log.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server stopped")
}

// loadOrInitConfig loads path. When path is the default path and nothing
// exists there, a fresh default file is written first; a missing
// user-supplied path is not created and falls back to defaults. Any
// failure along the way is non-fatal: the caller always gets a usable
// Config back, with the error reported for logging.
func loadOrInitConfig(path string) (config.Config, error) {
	if _, statErr := os.Stat(path); path == config.DefaultConfigPath && os.IsNotExist(statErr) {
		if err := config.WriteDefault(path); err != nil {
			return config.Default(), fmt.Errorf("writing default config: %w", err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Default(), err
	}
	return cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	return cfg.Build()
}
