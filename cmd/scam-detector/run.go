package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/dig"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mikey/naija-scam-detector/internal/bundle"
	"github.com/mikey/naija-scam-detector/internal/ports"
)

// runShell loads the model bundle and runs the container's shell until it
// finishes or the process is signalled
func runShell(container *dig.Container) error {
	var logger *zap.Logger
	if err := container.Invoke(func(l *zap.Logger) { logger = l }); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", dig.RootCause(err))
	}
	defer logger.Sync()

	// A bundle that cannot be loaded is fatal; there is nothing to serve without it
	if err := container.Invoke(func(*bundle.Bundle) {}); err != nil {
		logger.Fatal("Failed to load model bundle", zap.Error(dig.RootCause(err)))
	}

	return container.Invoke(func(shell ports.Shell) error {
		return serveUntilSignal(logger, shell)
	})
}

func serveUntilSignal(logger *zap.Logger, shell ports.Shell) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		if err := shell.Start(); err != nil {
			logger.Error("Shell failed", zap.Error(err))
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down...")
		if err := shell.Stop(); err != nil {
			logger.Error("Failed to stop shell", zap.Error(err))
			return err
		}
		return nil
	})

	err := g.Wait()
	logger.Info("Shutdown complete")
	return err
}
