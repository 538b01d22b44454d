package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"expenso/internal/cli"
	"expenso/internal/config"
	"expenso/internal/log"
)

var (
	version = "dev"

	envFile  string
	logLevel string

	cfg    *config.Config
	logger *log.Logger
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "expenso",
		Short: "Personal finance tracker",
		Long: `expenso keeps income and expense transactions, categories and budgets,
materializes recurring transactions and produces spending reports.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(serveCmd())
	root.AddCommand(sweepCmd())
	root.AddCommand(summaryCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(workerCmd())
	return root
}

func initConfig(cmd *cobra.Command, _ []string) error {
	if err := cli.LoadEnvFile(envFile); err != nil {
		return err
	}

	loaded := config.Load()
	if logLevel != "" {
		loaded.LogLevel = logLevel
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	l, err := cli.SetupLogger(loaded, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	cfg, logger = loaded, l
	return nil
}

func main() {
	ctx, stop := cli.GracefulShutdown(context.Background(), log.New(log.Config{Output: os.Stderr}))
	err := rootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
