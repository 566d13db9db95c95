package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"paypalsync/internal/app"
	"paypalsync/internal/model"
	"paypalsync/internal/store"
)

var (
	accName     string
	accCurrency string
	accClientID string
	accSecret   string

	accSyncBalance      bool
	accSyncTransactions bool
)

func NewAccountCmd(application *app.App) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Manage synchronized accounts",
	}

	accountCmd.AddCommand(newAccountAddCmd(application))
	accountCmd.AddCommand(newAccountListCmd(application))
	accountCmd.AddCommand(newAccountShowCmd(application))
	accountCmd.AddCommand(newAccountSetCredentialsCmd(application))
	accountCmd.AddCommand(newAccountSetSyncCmd(application))

	return accountCmd
}

func newAccountAddCmd(application *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "add",
		Short:        "Register a new PayPal account",
		Example:      `  paypalsync account add -n "Shop" --currency EUR`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if accCurrency == "" {
				accCurrency = application.Service.Config.Sync.Currency
			}

			account, err := application.Service.Account.CreateAccount(accName, accCurrency)
			if err != nil {
				return fmt.Errorf("failed to create account: %w", err)
			}

			pterm.Success.Printf("Account %q created (id %d)\n", account.Name, account.ID)
			pterm.Info.Println("Set API credentials with: paypalsync account set-credentials " + account.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&accName, "name", "n", "", "Account name")
	cmd.Flags().StringVar(&accCurrency, "currency", "", "Settlement currency (defaults to sync.currency)")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newAccountListCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:          "list",
		Short:        "List all accounts",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := application.Service.Account.GetAllAccounts()
			if err != nil {
				return fmt.Errorf("failed to get accounts: %w", err)
			}

			if len(accounts) == 0 {
				pterm.Warning.Println("No accounts found")
				return nil
			}

			tableData := pterm.TableData{
				{"ID", "Name", "Currency", "Balance", "Sync"},
			}
			for _, account := range accounts {
				tableData = append(tableData, []string{
					fmt.Sprintf("%d", account.ID),
					account.Name,
					account.Currency,
					application.Service.Account.FormatBalance(account),
					syncOptionsLabel(account),
				})
			}

			pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
			return nil
		},
	}
}

func newAccountShowCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:          "show <name>",
		Short:        "Show account details, support status and sync protocol",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := application.Service.Account.GetAccountByName(args[0])
			if err != nil {
				return fmt.Errorf("failed to get account: %w", err)
			}

			status := account.Status()

			tableData := pterm.TableData{
				{pterm.Blue("Name"), account.Name},
				{pterm.Blue("BIC"), account.BIC},
				{pterm.Blue("Currency"), account.Currency},
				{pterm.Blue("Balance"), application.Service.Account.FormatBalance(account)},
				{pterm.Blue("Last sync"), application.Service.Account.FormatBalanceDate(account)},
				{pterm.Blue("Sync options"), syncOptionsLabel(account)},
				{pterm.Blue("PayPal BIC"), checkLabel(status.BIC)},
				{pterm.Blue("Client ID set"), checkLabel(status.ClientID)},
				{pterm.Blue("Secret set"), checkLabel(status.Secret)},
			}
			pterm.DefaultTable.WithData(tableData).Render()

			if !status.Complete() {
				pterm.Warning.Println("Account is not fully configured for synchronization")
			}

			protocol, err := application.Service.Account.GetProtocol(account, 10)
			if err != nil {
				return fmt.Errorf("failed to get protocol: %w", err)
			}
			if len(protocol) == 0 {
				return nil
			}

			pterm.DefaultSection.Println("Recent protocol")
			for _, p := range protocol {
				line := fmt.Sprintf("%s  %s", p.CreatedAt.Format("2006-01-02 15:04"), p.Message)
				if p.Kind == store.ProtocolError {
					pterm.Error.Println(line)
				} else {
					pterm.Info.Println(line)
				}
			}
			return nil
		},
	}
}

func newAccountSetCredentialsCmd(application *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "set-credentials <name>",
		Short:        "Store the API client id and secret for an account",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := application.Service.Account.GetAccountByName(args[0])
			if err != nil {
				return fmt.Errorf("failed to get account: %w", err)
			}

			if err := application.Service.Account.SetCredentials(account, accClientID, accSecret); err != nil {
				return fmt.Errorf("failed to set credentials: %w", err)
			}

			pterm.Success.Printf("Credentials stored for account %q\n", account.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&accClientID, "client-id", "", "API client id")
	cmd.Flags().StringVar(&accSecret, "secret", "", "API secret")
	cmd.MarkFlagRequired("client-id")
	cmd.MarkFlagRequired("secret")

	return cmd
}

func newAccountSetSyncCmd(application *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "set-sync <name>",
		Short:        "Choose what gets synchronized for an account",
		Example:      `  paypalsync account set-sync Shop --balance --transactions`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := application.Service.Account.GetAccountByName(args[0])
			if err != nil {
				return fmt.Errorf("failed to get account: %w", err)
			}

			if err := application.Service.Account.SetSyncOptions(account, accSyncBalance, accSyncTransactions); err != nil {
				return fmt.Errorf("failed to set sync options: %w", err)
			}

			pterm.Success.Printf("Sync options updated for account %q\n", account.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&accSyncBalance, "balance", false, "Synchronize the account balance")
	cmd.Flags().BoolVar(&accSyncTransactions, "transactions", false, "Synchronize transactions")

	return cmd
}

func syncOptionsLabel(account *model.Account) string {
	switch {
	case account.SyncBalance && account.SyncTransactions:
		return "balance, transactions"
	case account.SyncBalance:
		return "balance"
	case account.SyncTransactions:
		return "transactions"
	default:
		return "off"
	}
}

func checkLabel(ok bool) string {
	if ok {
		return pterm.Green("yes")
	}
	return pterm.Red("no")
}
