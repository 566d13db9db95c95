package store

import (
	"time"

	"paypalsync/internal/model"
)

type Repository interface {
	// Account operations
	CreateAccount(name, currency string) (int64, error)
	GetAllAccounts() ([]*model.Account, error)
	GetAccountByName(name string) (*model.Account, error)
	GetAccountByID(id int64) (*model.Account, error)
	SetCredentials(accountID int64, clientID, secret string) error
	SetSyncOptions(accountID int64, balance, transactions bool) error
	SetBalance(accountID int64, total, available *float64, asOf time.Time) error

	// Entry operations
	CreateEntry(e *model.Entry) (int64, error)
	EntriesInRange(accountID int64, from time.Time) ([]*model.Entry, error)
	RecentEntries(accountID int64, limit int) ([]*model.Entry, error)

	// Audit log
	AddProtocol(accountID int64, message, kind string) error
	GetProtocol(accountID int64, limit int) ([]*ProtocolEntry, error)

	Close() error
}

type ProtocolEntry struct {
	ID        int64
	AccountID int64
	Message   string
	Kind      string
	CreatedAt time.Time
}

const (
	ProtocolSuccess = "success"
	ProtocolError   = "error"
)
