package backend

import (
	"context"
	"fmt"
	"log/slog"

	"expenso/internal/sheets"
	gsheet "expenso/internal/sheets/google"
	"expenso/internal/sheets/memory"
	"expenso/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, config)
	case FileBackend:
		return f.createFileBackend(ctx, config)
	case MemoryBackend:
		return f.createMemoryBackend(ctx)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	p, err := storage.NewSQLitePersister(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite persister: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized SQLite backend", "db_path", config.SQLiteDBPath)
	return &BackendResult{
		Persister: p,
		Cleanup:   p.Close,
		Ready:     p.Ping,
	}, nil
}

func (f *DefaultFactory) createFileBackend(ctx context.Context, config Config) (*BackendResult, error) {
	p, err := storage.NewFilePersister(config.DataDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file persister: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized file backend", "path", p.Path())
	return &BackendResult{Persister: p}, nil
}

func (f *DefaultFactory) createMemoryBackend(ctx context.Context) (*BackendResult, error) {
	f.logger.WarnContext(ctx, "Initialized memory backend, state is lost on exit")
	return &BackendResult{Persister: storage.NewMemoryPersister(nil)}, nil
}

// CreateReportWriter returns the Google Sheets writer when a spreadsheet is
// configured, and an in-memory writer otherwise.
func (f *DefaultFactory) CreateReportWriter(ctx context.Context, config ExportConfig) (sheets.ReportWriter, error) {
	if config.SpreadsheetID == "" {
		f.logger.WarnContext(ctx, "No spreadsheet configured, reports are kept in memory")
		return memory.New(), nil
	}

	cli, err := gsheet.New(ctx, gsheet.Options{
		SpreadsheetID:   config.SpreadsheetID,
		SheetName:       config.SheetName,
		CredentialsJSON: config.CredentialsJSON,
		CredentialsFile: config.CredentialsFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized Google Sheets report writer",
		"spreadsheet_id", config.SpreadsheetID,
		"sheet", config.SheetName)
	return cli, nil
}
