package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestEqualsTransactionIDDecides(t *testing.T) {
	a := &Entry{TransactionID: "TX1", Amount: f(10)}
	b := &Entry{TransactionID: "TX1", Amount: f(99)}
	require.True(t, a.Equals(b))

	b.TransactionID = "TX2"
	require.False(t, a.Equals(b))
}

func TestEqualsFallbackFields(t *testing.T) {
	day := time.Date(2026, 5, 12, 10, 30, 0, 0, time.UTC)
	a := &Entry{
		Amount:           f(-19.99),
		BookingDate:      day,
		ValueDate:        day,
		PurposeLines:     []string{"Order 1234"},
		CounterpartyName: "Erika Mustermann",
	}

	b := &Entry{
		Amount: f(-19.9905),
		// Same day, different clock time.
		BookingDate:      day.Add(5 * time.Hour),
		ValueDate:        day.Add(5 * time.Hour),
		PurposeLines:     []string{"Order 1234"},
		CounterpartyName: "Erika Mustermann",
	}
	require.True(t, a.Equals(b))

	b.PurposeLines = []string{"Order 9999"}
	require.False(t, a.Equals(b))
}

func TestEqualsUnknownAmounts(t *testing.T) {
	day := time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC)
	a := &Entry{BookingDate: day, ValueDate: day}
	b := &Entry{BookingDate: day, ValueDate: day}

	// Both unknown matches, unknown vs known does not.
	require.True(t, a.Equals(b))
	b.Amount = f(0)
	require.False(t, a.Equals(b))
}

func TestEqualsNil(t *testing.T) {
	e := &Entry{TransactionID: "TX1"}
	require.False(t, e.Equals(nil))
}

func TestPurposeRoundTrip(t *testing.T) {
	e := &Entry{PurposeLines: []string{"a", "b"}}
	require.Equal(t, "a\nb", e.Purpose())

	var out Entry
	out.SetPurpose(e.Purpose())
	require.Equal(t, e.PurposeLines, out.PurposeLines)

	out.SetPurpose("")
	require.Nil(t, out.PurposeLines)
}

func TestSupportStatus(t *testing.T) {
	account := &Account{BIC: "pplx lullxxx", ClientID: "c", Secret: "s"}
	status := account.Status()
	require.True(t, status.BIC)
	require.True(t, status.Syncable())
	require.True(t, status.Complete())

	account.BIC = "MARKDEF1100"
	require.False(t, account.Status().Syncable())

	account.BIC = BICPaypal
	account.Secret = ""
	status = account.Status()
	require.True(t, status.Syncable())
	require.False(t, status.Complete())
}
