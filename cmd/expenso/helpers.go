package main

import (
	"context"
	"strings"

	"expenso/internal/amqp"
	"expenso/internal/backend"
	"expenso/internal/log"
	"expenso/internal/report"
	"expenso/internal/store"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// openStore builds the configured persister and opens the store over it.
func openStore(ctx context.Context, notifier store.Notifier) (*store.Store, *backend.BackendResult, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	res, err := backend.NewFactory(logger.WithComponent(log.ComponentBackend).Logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, nil, err
	}

	opts := []store.Option{
		store.WithLogger(logger.WithComponent(log.ComponentStore).Logger),
		store.WithIDGenerator(uuid.NewString),
	}
	if notifier != nil {
		opts = append(opts, store.WithNotifier(notifier))
	}
	if !cfg.RecurringCatchUp {
		opts = append(opts, store.WithSingleStepRecurrence())
	}
	return store.Open(ctx, res.Persister, opts...), res, nil
}

// connectAMQP returns nil when AMQP is disabled or unreachable; change
// events are optional for the server.
func connectAMQP(ctx context.Context) *amqp.Client {
	l := logger.WithComponent(log.ComponentAMQP)
	if !cfg.AMQPEnabled() {
		l.InfoContext(ctx, "AMQP disabled - change events will not be published")
		return nil
	}
	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		l.WarnContext(ctx, "Failed to initialize AMQP client, continuing without change events", log.FieldError, err)
		return nil
	}
	l.InfoContext(ctx, "Initialized AMQP client", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	return client
}

// reportOptions merges command flags with configured defaults.
func reportOptions(categories string, months int) report.Options {
	var selected []string
	for part := range strings.SplitSeq(categories, ",") {
		if part = strings.TrimSpace(part); part != "" {
			selected = append(selected, part)
		}
	}
	if months <= 0 {
		months = cfg.ReportMonths
	}
	return report.Options{Selected: selected, Months: months, Currency: cfg.Currency}
}

func closeBackend(ctx context.Context, res *backend.BackendResult) {
	if err := res.Close(); err != nil {
		logger.WarnContext(ctx, "Backend cleanup failed", log.FieldError, err)
	}
}

func addReportFlags(cmd *cobra.Command, categories *string, months *int) {
	cmd.Flags().StringVar(categories, "categories", "", "comma separated category ids (default: first five)")
	cmd.Flags().IntVar(months, "months", 0, "months covered by the series (default: REPORT_MONTHS)")
}
