package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"expenso/internal/cache"
	apphttp "expenso/internal/http"
	"expenso/internal/log"
	"expenso/internal/store"
	"expenso/internal/worker"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API with the periodic recurring sweep",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	var notifier store.Notifier
	if client := connectAMQP(ctx); client != nil {
		defer client.Close()
		notifier = client
	}

	st, res, err := openStore(ctx, notifier)
	if err != nil {
		return err
	}
	defer closeBackend(ctx, res)

	recurring := worker.NewRecurringWorker(st, cfg.RecurringInterval)
	if n, err := recurring.RunOnce(ctx); err != nil {
		logger.ErrorContext(ctx, "Initial recurring processing failed", log.FieldError, err)
	} else {
		logger.InfoContext(ctx, "Initial recurring processing complete", log.FieldCount, n)
	}

	srv := apphttp.NewServer(st, apphttp.Options{
		Addr:               ":" + cfg.Port,
		Currency:           cfg.Currency,
		ReportMonths:       cfg.ReportMonths,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Ready:              res.Ready,
		Logger:             logger,
	})
	janitor := cache.NewJanitor(srv.Cleaners()...)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(gctx, "Starting expenso server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server on port %s: %w", cfg.Port, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		logger.Info("Server stopped gracefully")
		return nil
	})
	g.Go(func() error { return recurring.Loop(gctx) })
	g.Go(func() error { return janitor.Run(gctx, time.Minute) })

	return g.Wait()
}
