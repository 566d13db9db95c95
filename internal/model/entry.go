package model

import (
	"math"
	"strings"
	"time"
)

// Entry is a single booked movement in the local account history.
// Amount and Balance are nil when the provider sent no value or one that
// could not be parsed; an unknown number is never stored as zero.
type Entry struct {
	ID                  int64
	AccountID           int64
	TransactionID       string
	EndToEndID          string
	CustomerRef         string
	StatusCode          string
	Classification      string
	Amount              *float64
	Balance             *float64
	BookingDate         time.Time
	ValueDate           time.Time
	PurposeLines        []string
	Comment             string
	CounterpartyName    string
	CounterpartyAccount string
}

// Purpose returns the purpose lines joined for storage and display.
func (e *Entry) Purpose() string {
	return strings.Join(e.PurposeLines, "\n")
}

// SetPurpose splits a stored purpose text back into lines.
func (e *Entry) SetPurpose(s string) {
	if s == "" {
		e.PurposeLines = nil
		return
	}
	e.PurposeLines = strings.Split(s, "\n")
}

// Equals is the ledger's own notion of entry identity, used by the dedup
// engine. When both entries carry a transaction id, the id decides.
// Otherwise amount, dates, purpose and counterparty must all match.
func (e *Entry) Equals(other *Entry) bool {
	if other == nil {
		return false
	}
	if e.TransactionID != "" && other.TransactionID != "" {
		return e.TransactionID == other.TransactionID
	}
	if !sameAmount(e.Amount, other.Amount) {
		return false
	}
	if !sameDay(e.BookingDate, other.BookingDate) || !sameDay(e.ValueDate, other.ValueDate) {
		return false
	}
	if e.Purpose() != other.Purpose() {
		return false
	}
	return e.CounterpartyName == other.CounterpartyName &&
		e.CounterpartyAccount == other.CounterpartyAccount
}

func sameAmount(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return math.Abs(*a-*b) < 0.001
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
