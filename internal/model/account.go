package model

import (
	"strings"
	"time"
)

// BICPaypal is the BIC carried by PayPal accounts. Only accounts with this
// BIC are eligible for synchronization.
const BICPaypal = "PPLXLULLXXX"

type Account struct {
	ID               int64
	Name             string
	BIC              string
	Currency         string
	ClientID         string
	Secret           string
	Balance          *float64
	BalanceAvailable *float64
	BalanceDate      *time.Time
	SyncBalance      bool
	SyncTransactions bool
}

// SupportStatus reports which preconditions for synchronizing the account
// are fulfilled.
type SupportStatus struct {
	BIC      bool
	ClientID bool
	Secret   bool
}

func (a *Account) Status() SupportStatus {
	return SupportStatus{
		BIC:      strings.EqualFold(strings.ReplaceAll(strings.TrimSpace(a.BIC), " ", ""), BICPaypal),
		ClientID: strings.TrimSpace(a.ClientID) != "",
		Secret:   strings.TrimSpace(a.Secret) != "",
	}
}

// Syncable reports whether the account can be handled by the sync backend
// at all. Complete credentials are checked separately during login.
func (s SupportStatus) Syncable() bool {
	return s.BIC
}

// Complete reports whether all checks passed.
func (s SupportStatus) Complete() bool {
	return s.BIC && s.ClientID && s.Secret
}
