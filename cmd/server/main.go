// Package main - Entry point for the policy lookup HTTP server
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"policy-lookup/api"
	"policy-lookup/core/dataset"
	"policy-lookup/core/engine"
	"policy-lookup/core/ordering"
	"policy-lookup/core/output"
	"policy-lookup/internal/config"
	"policy-lookup/internal/logging"
)

const version = "1.0.0"

func main() {
	addr := flag.String("addr", ":8080", "Server address")
	cfgPath := flag.String("config", config.DefaultPath(), "Config file")
	data := flag.String("data", "", "Policy payload file or URL (overrides config)")
	flag.Parse()

	if err := run(*addr, *cfgPath, *data); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(addr, cfgPath, data string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if data != "" {
		cfg.Data.Source = data
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()
	logger := logging.Named("server")

	catalog := ordering.Default()
	if cfg.Ordering.File != "" {
		if catalog, err = ordering.LoadHCL(cfg.Ordering.File); err != nil {
			return err
		}
	}
	formatter := &output.AmountFormatter{Unit: cfg.Output.Unit, Placeholder: cfg.Output.Placeholder}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loadCtx := ctx
	if timeout := cfg.Data.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	loader := dataset.NewLoader(dataset.NewSource(cfg.Data.Source))
	loader.Start(loadCtx)
	go func() {
		<-loader.Done()
		if _, err := loader.Dataset(); err != nil {
			logger.Error("dataset load failed", zap.String("source", cfg.Data.Source), zap.Error(err))
			return
		}
		logger.Info("dataset ready", zap.String("source", cfg.Data.Source))
	}()

	srv := &http.Server{
		Addr: addr,
		Handler: api.NewServer(version, loader, engine.Options{
			Catalog:   catalog,
			Formatter: formatter,
			Logger:    logger,
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("version", version))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
