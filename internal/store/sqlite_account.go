package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"paypalsync/internal/model"
)

const accountColumns = `id, name, bic, currency, client_id, secret,
		balance, balance_available, balance_date, sync_balance, sync_transactions`

func (s *Store) CreateAccount(name, currency string) (int64, error) {
	stmt, err := s.db.Prepare(`
		INSERT INTO accounts (name, currency)
		VALUES (?, ?)
		RETURNING id;
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare SQL: %w", err)
	}
	defer stmt.Close()

	var newID int64
	err = stmt.QueryRow(name, currency).Scan(&newID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: accounts.name") {
			return 0, ErrAccountExists
		}
		return 0, fmt.Errorf("failed to insert account: %w", err)
	}

	return newID, nil
}

func (s *Store) GetAllAccounts() ([]*model.Account, error) {
	rows, err := s.db.Query(`SELECT ` + accountColumns + ` FROM accounts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*model.Account
	for rows.Next() {
		acc, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}

	return accounts, rows.Err()
}

func (s *Store) GetAccountByName(name string) (*model.Account, error) {
	row := s.db.QueryRow(`SELECT `+accountColumns+` FROM accounts WHERE name = ?`, name)
	acc, err := scanAccount(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account %q: %w", name, ErrRecordNotFound)
		}
		return nil, err
	}
	return acc, nil
}

func (s *Store) GetAccountByID(id int64) (*model.Account, error) {
	row := s.db.QueryRow(`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	acc, err := scanAccount(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account %d: %w", id, ErrRecordNotFound)
		}
		return nil, err
	}
	return acc, nil
}

func (s *Store) SetCredentials(accountID int64, clientID, secret string) error {
	_, err := s.db.Exec(`UPDATE accounts SET client_id = ?, secret = ? WHERE id = ?`,
		clientID, secret, accountID)
	if err != nil {
		return fmt.Errorf("failed to update credentials: %w", err)
	}
	return nil
}

func (s *Store) SetSyncOptions(accountID int64, balance, transactions bool) error {
	_, err := s.db.Exec(`UPDATE accounts SET sync_balance = ?, sync_transactions = ? WHERE id = ?`,
		balance, transactions, accountID)
	if err != nil {
		return fmt.Errorf("failed to update sync options: %w", err)
	}
	return nil
}

// SetBalance applies the fetched balance to the account. Either value may be
// nil, in which case the stored one is left untouched.
func (s *Store) SetBalance(accountID int64, total, available *float64, asOf time.Time) error {
	_, err := s.db.Exec(`
		UPDATE accounts
		SET balance = COALESCE(?, balance),
		    balance_available = COALESCE(?, balance_available),
		    balance_date = ?
		WHERE id = ?
	`, total, available, asOf.Unix(), accountID)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	return nil
}

func scanAccount(scan func(dest ...any) error) (*model.Account, error) {
	acc := &model.Account{}
	var balance, available sql.NullFloat64
	var balanceDate sql.NullInt64

	err := scan(
		&acc.ID, &acc.Name, &acc.BIC, &acc.Currency,
		&acc.ClientID, &acc.Secret,
		&balance, &available, &balanceDate,
		&acc.SyncBalance, &acc.SyncTransactions,
	)
	if err != nil {
		return nil, err
	}

	if balance.Valid {
		acc.Balance = &balance.Float64
	}
	if available.Valid {
		acc.BalanceAvailable = &available.Float64
	}
	if balanceDate.Valid {
		t := time.Unix(balanceDate.Int64, 0)
		acc.BalanceDate = &t
	}

	return acc, nil
}
