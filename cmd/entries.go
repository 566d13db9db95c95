package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"paypalsync/internal/app"
	"paypalsync/internal/model"
	"paypalsync/internal/paypal"
)

var entriesLimit int

func NewEntriesCmd(application *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries <account>",
		Short: "List recent ledger entries of an account",
		Example: `  # List the 20 most recent entries
  paypalsync entries Shop

  # Show more history
  paypalsync entries Shop --limit 100`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := application.Service.Account.GetAccountByName(args[0])
			if err != nil {
				return fmt.Errorf("failed to get account: %w", err)
			}

			entries, err := application.Service.Entry.RecentEntries(account, entriesLimit)
			if err != nil {
				return fmt.Errorf("failed to get entries: %w", err)
			}

			if len(entries) == 0 {
				pterm.Warning.Println("No entries found")
				return nil
			}

			tableData := pterm.TableData{
				{"Date", "Counterparty", "Purpose", "Type", "Amount", "Balance"},
			}
			for _, e := range entries {
				tableData = append(tableData, []string{
					e.BookingDate.Format("2006-01-02"),
					e.CounterpartyName,
					firstLine(e),
					classificationLabel(e),
					formatAmount(e.Amount, account.Currency),
					formatAmount(e.Balance, account.Currency),
				})
			}

			pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
			pterm.Info.Printf("Total: %d entries\n", len(entries))
			return nil
		},
	}

	cmd.Flags().IntVarP(&entriesLimit, "limit", "l", 20, "Maximum number of entries to display")

	return cmd
}

func firstLine(e *model.Entry) string {
	if len(e.PurposeLines) == 0 {
		return "-"
	}
	return e.PurposeLines[0]
}

func classificationLabel(e *model.Entry) string {
	if desc, ok := paypal.DescribeTCode(e.Classification); ok {
		return desc
	}
	if e.Classification == "" {
		return "-"
	}
	return e.Classification
}

func formatAmount(v *float64, currency string) string {
	if v == nil {
		return "-"
	}
	s := fmt.Sprintf("%.2f %s", *v, currency)
	if *v < 0 {
		return pterm.Red(s)
	}
	return pterm.Green(s)
}
