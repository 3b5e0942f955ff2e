package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	appkg "github.com/xenking/kart-inventory/internal/app"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := appkg.LoadConfig()
	if err != nil {
		lg := newLogger(os.Stderr, zapcore.InfoLevel)
		lg.Error("Failed to load config", zap.Error(err))
		_ = lg.Sync()
		return err
	}

	lg := newLogger(os.Stderr, cfg.Level())
	defer func() { _ = lg.Sync() }()

	ctx = zctx.Base(ctx, lg)
	if err := appkg.Run(ctx, cfg, os.Stdout); err != nil {
		lg.Error("Inventory run failed", zap.Error(err))
		return err
	}
	return nil
}

// newLogger returns a JSON logger writing to w at the given level.
func newLogger(w zapcore.WriteSyncer, level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.Lock(w),
		level,
	)
	return zap.New(core, zap.AddCaller())
}
