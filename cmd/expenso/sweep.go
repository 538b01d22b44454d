package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"expenso/internal/store"
)

func sweepCmd() *cobra.Command {
	var upcoming int

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Materialize due recurring transactions once and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
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

			out := cmd.OutOrStdout()
			now := time.Now()
			created, err := st.ProcessRecurring(ctx, now)
			if err != nil {
				return err
			}
			for _, tx := range created {
				fmt.Fprintf(out, "%s  %-8s %-30s %s\n", tx.Date, tx.Type, tx.Description, tx.Amount)
			}
			fmt.Fprintf(out, "created %d transaction(s)\n", len(created))

			if upcoming > 0 {
				fmt.Fprintf(out, "\nupcoming in the next %d days:\n", upcoming)
				for _, o := range st.Upcoming(now, upcoming) {
					fmt.Fprintf(out, "%s  %-8s %-30s %s\n", o.Date, o.Template.Type, o.Template.Description, o.Template.Amount)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&upcoming, "upcoming", 0, "also list occurrences due in the next N days")
	return cmd
}
