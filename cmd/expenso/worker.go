package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"expenso/internal/amqp"
	"expenso/internal/backend"
	"expenso/internal/config"
	"expenso/internal/log"
	"expenso/internal/worker"
)

func workerCmd() *cobra.Command {
	var (
		categories string
		months     int
	)

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Export the report on every state change event and periodically",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWorker(cmd.Context(), categories, months)
		},
	}
	addReportFlags(cmd, &categories, &months)
	return cmd
}

func runWorker(ctx context.Context, categories string, months int) error {
	if cfg.DataBackend == config.BackendMemory {
		return errors.New("worker needs a shared backend: set DATA_BACKEND to file or sqlite")
	}
	l := logger.WithComponent(log.ComponentWorker)

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	factory := backend.NewFactory(logger.WithComponent(log.ComponentBackend).Logger)
	res, err := factory.CreateBackend(ctx, bcfg)
	if err != nil {
		return err
	}
	defer closeBackend(ctx, res)

	writer, err := factory.CreateReportWriter(ctx, backend.ExportFromAppConfig(cfg))
	if err != nil {
		return err
	}
	export := worker.NewExportWorker(res.Persister, writer, reportOptions(categories, months))

	if ref, err := export.Export(ctx); err != nil {
		l.ErrorContext(ctx, "Initial export failed", log.FieldError, err)
	} else {
		l.InfoContext(ctx, "Initial export complete", "ref", ref)
	}

	g, gctx := errgroup.WithContext(ctx)
	if cfg.AMQPEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			return fmt.Errorf("connect AMQP: %w", err)
		}
		defer client.Close()
		l.InfoContext(ctx, "Consuming change events", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		g.Go(func() error { return client.ConsumeChanges(gctx, export.HandleChangeMessage) })
	} else {
		l.InfoContext(ctx, "AMQP disabled - exporting on the periodic schedule only", "interval", cfg.ExportInterval)
	}
	g.Go(func() error { return export.RunPeriodic(gctx, cfg.ExportInterval) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	l.Info("Worker stopped")
	return nil
}
