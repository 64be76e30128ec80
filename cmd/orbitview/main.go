// Package main is the entry point for the orbitview model viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/asset"
	"github.com/Faultbox/orbitview/internal/config"
	"github.com/Faultbox/orbitview/internal/host"
	"github.com/Faultbox/orbitview/internal/logger"
	"github.com/Faultbox/orbitview/internal/scene"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Config save error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Config written to", config.ConfigDir())
		return
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== OrbitView ===")
	logger.Sugar.Debugf("Window: %+v", cfg.Window)
	logger.Sugar.Debugf("Model: %+v", cfg.Model)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := asset.NewFetcher(asset.FetchConfig{
		Root:        cfg.Assets.Root,
		HTTPTimeout: cfg.Assets.HTTPTimeout,
		S3: asset.S3Config{
			Region:          cfg.Assets.S3.Region,
			Endpoint:        cfg.Assets.S3.Endpoint,
			AccessKeyID:     cfg.Assets.S3.AccessKeyID,
			SecretAccessKey: cfg.Assets.S3.SecretAccessKey,
			UsePathStyle:    cfg.Assets.S3.UsePathStyle,
		},
	})
	loader := asset.NewCache(asset.NewGLTFLoader(fetcher))

	h, err := host.New(cfg, scene.DefaultRenderConfig(), loader)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer h.Close()

	if err := h.Run(ctx); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
