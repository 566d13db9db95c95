package service

import (
	"fmt"
	"strings"
	"time"

	"paypalsync/internal/model"
	"paypalsync/internal/store"
)

type AccountService struct {
	repo store.Repository
}

func NewAccountService(repo store.Repository) *AccountService {
	return &AccountService{repo: repo}
}

func (as *AccountService) CreateAccount(name, currency string) (*model.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("account name must not be empty")
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return nil, fmt.Errorf("invalid currency code %q (must be a 3-letter code)", currency)
	}

	id, err := as.repo.CreateAccount(name, currency)
	if err != nil {
		return nil, err
	}
	return as.repo.GetAccountByID(id)
}

func (as *AccountService) GetAllAccounts() ([]*model.Account, error) {
	return as.repo.GetAllAccounts()
}

func (as *AccountService) GetAccountByName(name string) (*model.Account, error) {
	return as.repo.GetAccountByName(name)
}

// SetCredentials stores the API credentials for an account. Blank values
// are rejected here, so the store never holds half-configured credentials.
func (as *AccountService) SetCredentials(account *model.Account, clientID, secret string) error {
	if strings.TrimSpace(clientID) == "" {
		return fmt.Errorf("client id must not be empty")
	}
	if strings.TrimSpace(secret) == "" {
		return fmt.Errorf("secret must not be empty")
	}
	return as.repo.SetCredentials(account.ID, clientID, secret)
}

func (as *AccountService) SetSyncOptions(account *model.Account, balance, transactions bool) error {
	return as.repo.SetSyncOptions(account.ID, balance, transactions)
}

func (as *AccountService) GetProtocol(account *model.Account, limit int) ([]*store.ProtocolEntry, error) {
	return as.repo.GetProtocol(account.ID, limit)
}

// FormatBalance renders the stored balance for display, or a dash when it
// was never synchronized or could not be parsed.
func (as *AccountService) FormatBalance(account *model.Account) string {
	if account.Balance == nil {
		return "-"
	}
	s := fmt.Sprintf("%.2f %s", *account.Balance, account.Currency)
	if account.BalanceDate != nil {
		s += " (as of " + account.BalanceDate.Format("2006-01-02") + ")"
	}
	return s
}

// FormatBalanceDate renders the last successful balance sync point.
func (as *AccountService) FormatBalanceDate(account *model.Account) string {
	if account.BalanceDate == nil {
		return "never"
	}
	return account.BalanceDate.Format(time.RFC1123)
}
