package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"expenso/internal/report"
)

func summaryCmd() *cobra.Command {
	var (
		categories string
		months     int
		plain      bool
		width      int
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the spending report in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			st, res, err := openStore(ctx, nil)
			if err != nil {
				return err
			}
			defer closeBackend(ctx, res)

			md := report.Markdown(report.Build(st.Snapshot(), reportOptions(categories, months), time.Now()))
			if plain {
				_, err := fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			}

			r, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(width),
			)
			if err != nil {
				return fmt.Errorf("create renderer: %w", err)
			}
			out, err := r.Render(md)
			if err != nil {
				return fmt.Errorf("render summary: %w", err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	addReportFlags(cmd, &categories, &months)
	cmd.Flags().BoolVar(&plain, "plain", false, "print raw Markdown")
	cmd.Flags().IntVar(&width, "width", 100, "word wrap width")
	return cmd
}
