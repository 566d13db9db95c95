package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"paypalsync/internal/app"
	"paypalsync/internal/model"
	"paypalsync/internal/sync"
)

var (
	syncForceBalance      bool
	syncForceTransactions bool
)

func NewSyncCmd(application *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [account]",
		Short: "Synchronize accounts with PayPal",
		Long: `Fetch transactions and balances via the PayPal reporting API and merge
them into the local ledger. Without an account name, all accounts with
activated sync options are synchronized.`,
		Example: `  # Synchronize everything that is configured for it
  paypalsync sync

  # Synchronize one account, forcing a balance fetch
  paypalsync sync Shop --balance`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			accounts, err := selectAccounts(application, args)
			if err != nil {
				return err
			}
			if len(accounts) == 0 {
				pterm.Warning.Println("No accounts with activated sync options")
				return nil
			}

			job := sync.NewJob(
				application.Client,
				application.Store,
				ptermNotifier{},
				application.Service.Config,
				application.Logger,
			)

			var failed int
			for _, account := range accounts {
				if err := runAccountSync(ctx, job, account); err != nil {
					if errors.Is(err, context.Canceled) {
						pterm.Warning.Println("Synchronization cancelled")
						return nil
					}
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d accounts failed to synchronize", failed, len(accounts))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&syncForceBalance, "balance", false, "Fetch the balance even if not activated for the account")
	cmd.Flags().BoolVar(&syncForceTransactions, "transactions", false, "Fetch transactions even if not activated for the account")

	return cmd
}

// selectAccounts resolves which accounts to synchronize: the named one, or
// every account with at least one sync option activated.
func selectAccounts(application *app.App, args []string) ([]*model.Account, error) {
	if len(args) == 1 {
		account, err := application.Service.Account.GetAccountByName(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to get account: %w", err)
		}
		return []*model.Account{account}, nil
	}

	all, err := application.Service.Account.GetAllAccounts()
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}

	var selected []*model.Account
	for _, account := range all {
		if account.SyncBalance || account.SyncTransactions {
			selected = append(selected, account)
		}
	}
	return selected, nil
}

func runAccountSync(ctx context.Context, job *sync.Job, account *model.Account) error {
	pterm.DefaultSection.Printf("Synchronizing %s", account.Name)

	result, err := job.Run(ctx, sync.Request{
		AccountID:         account.ID,
		ForceBalance:      syncForceBalance,
		ForceTransactions: syncForceTransactions,
	})
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			pterm.Error.Printf("Synchronization of %q failed: %v\n", account.Name, err)
		}
		return err
	}

	msg := fmt.Sprintf("%d new entries, %d already known", result.Created, result.Skipped)
	if result.Failed > 0 {
		msg += fmt.Sprintf(", %d could not be stored", result.Failed)
	}
	if result.BalanceApplied {
		msg += ", balance updated"
	}
	pterm.Success.Println(msg)
	return nil
}

// ptermNotifier routes job notifications to the terminal.
type ptermNotifier struct{}

func (ptermNotifier) Info(msg string) { pterm.Info.Println(msg) }

func (ptermNotifier) Error(msg string) { pterm.Error.Println(msg) }
