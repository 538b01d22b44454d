package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"expenso/internal/backend"
	"expenso/internal/report"
)

const (
	formatCSV      = "csv"
	formatMarkdown = "markdown"
	formatJSON     = "json"
	formatSheets   = "sheets"
)

func exportCmd() *cobra.Command {
	var (
		categories string
		months     int
		format     string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the spending report as CSV, Markdown, JSON or to Google Sheets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			st, res, err := openStore(ctx, nil)
			if err != nil {
				return err
			}
			defer closeBackend(ctx, res)

			rep := report.Build(st.Snapshot(), reportOptions(categories, months), time.Now())
			if format == formatSheets {
				return exportToSheets(ctx, cmd.OutOrStdout(), rep)
			}

			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			if err := writeReport(w, format, rep); err != nil {
				return err
			}
			if output != "" && output != "-" {
				logger.InfoContext(ctx, "Report exported", "format", format, "path", output)
			}
			return nil
		},
	}
	addReportFlags(cmd, &categories, &months)
	cmd.Flags().StringVarP(&format, "format", "f", formatCSV, "csv, markdown, json or sheets")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	return cmd
}

func writeReport(w io.Writer, format string, rep report.Report) error {
	switch format {
	case formatCSV:
		return report.WriteCSV(w, rep)
	case formatMarkdown:
		_, err := io.WriteString(w, report.Markdown(rep))
		return err
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	default:
		return fmt.Errorf("unknown format %q: must be csv, markdown, json or sheets", format)
	}
}

func exportToSheets(ctx context.Context, out io.Writer, rep report.Report) error {
	if !cfg.SheetsEnabled() {
		return fmt.Errorf("sheets export needs GOOGLE_SPREADSHEET_ID")
	}
	writer, err := backend.NewFactory(logger.Logger).CreateReportWriter(ctx, backend.ExportFromAppConfig(cfg))
	if err != nil {
		return err
	}
	ref, err := writer.WriteReport(ctx, rep)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	_, err = fmt.Fprintln(out, ref)
	return err
}
