package sync

import (
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"paypalsync/internal/paypal"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func money(v string) *paypal.Money {
	return &paypal.Money{CurrencyCode: "EUR", Value: v}
}

func stamp(s string) paypal.Timestamp {
	t, err := time.Parse("2006-01-02T15:04:05Z07:00", s)
	if err != nil {
		panic(err)
	}
	return paypal.Timestamp{Time: t}
}

func baseTransaction() *paypal.TransactionDetails {
	return &paypal.TransactionDetails{
		TransactionInfo: &paypal.TransactionInfo{
			TransactionID:      "4SD87266HN062932L",
			TransactionEvent:   "T0006",
			TransactionStatus:  StatusSuccess,
			TransactionAmount:  money("-19.99"),
			EndingBalance:      money("80.01"),
			TransactionSubject: "Order 1234",
			TransactionUpdated: stamp("2026-05-12T10:30:00+02:00"),
		},
		PayerInfo: &paypal.PayerInfo{
			AccountID:    "ABCDEF123456",
			EmailAddress: "shop@example.com",
			PayerName: &paypal.PayerName{
				GivenName: "Erika",
				Surname:   "Mustermann",
			},
		},
	}
}

func TestMapBasicPayment(t *testing.T) {
	entries := NewMapper(true, testLogger()).Map(baseTransaction())
	require.Len(t, entries, 1)

	e := entries[0]
	require.Equal(t, "4SD87266HN062932L", e.TransactionID)
	require.Equal(t, "4SD87266HN062932L", e.EndToEndID)
	require.Equal(t, "T0006", e.Classification)
	require.Equal(t, "ABCDEF123456", e.CustomerRef)
	require.NotNil(t, e.Amount)
	require.InDelta(t, -19.99, *e.Amount, 0.0001)
	require.NotNil(t, e.Balance)
	require.InDelta(t, 80.01, *e.Balance, 0.0001)
	require.Equal(t, []string{"Order 1234"}, e.PurposeLines)
	require.Equal(t, "Erika Mustermann", e.CounterpartyName)
	require.Equal(t, "shop@example.com", e.CounterpartyAccount)
	require.Equal(t, e.BookingDate, e.ValueDate)
}

func TestMapMissingTransactionInfo(t *testing.T) {
	entries := NewMapper(true, testLogger()).Map(&paypal.TransactionDetails{})
	require.Nil(t, entries)
}

func TestMapStatusPolicy(t *testing.T) {
	tests := []struct {
		name          string
		status        string
		acceptPending bool
		want          int
	}{
		{"success always imported", StatusSuccess, false, 1},
		{"absent status always imported", "", false, 1},
		{"pending imported when enabled", StatusPending, true, 1},
		{"pending skipped when disabled", StatusPending, false, 0},
		{"denied never imported", StatusDenied, true, 0},
		{"reversed never imported", StatusReversed, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := baseTransaction()
			tx.TransactionInfo.TransactionStatus = tt.status
			entries := NewMapper(tt.acceptPending, testLogger()).Map(tx)
			require.Len(t, entries, tt.want)
		})
	}
}

func TestMapFeeSplit(t *testing.T) {
	tx := baseTransaction()
	tx.TransactionInfo.FeeAmount = money("-0.55")

	entries := NewMapper(true, testLogger()).Map(tx)
	require.Len(t, entries, 2)

	fee := entries[1]
	require.Equal(t, "4SD87266HN062932L-fee", fee.TransactionID)
	require.Equal(t, "Paypal", fee.CounterpartyName)
	require.Equal(t, []string{"Gebühren für Transaktion 4SD87266HN062932L"}, fee.PurposeLines)
	require.NotNil(t, fee.Amount)
	require.InDelta(t, -0.55, *fee.Amount, 0.0001)
	require.NotNil(t, fee.Balance)
	require.InDelta(t, 79.46, *fee.Balance, 0.0001)
	require.Equal(t, entries[0].BookingDate, fee.BookingDate)
}

func TestMapFeeWithoutParseableAmount(t *testing.T) {
	tx := baseTransaction()
	tx.TransactionInfo.FeeAmount = money("")

	entries := NewMapper(true, testLogger()).Map(tx)
	require.Len(t, entries, 2)
	require.Nil(t, entries[1].Amount)
	require.Nil(t, entries[1].Balance)
}

func TestMapUnparseableAmountStaysUnknown(t *testing.T) {
	tx := baseTransaction()
	tx.TransactionInfo.TransactionAmount = money("n/a")
	tx.TransactionInfo.EndingBalance = nil

	entries := NewMapper(true, testLogger()).Map(tx)
	require.Len(t, entries, 1)
	require.Nil(t, entries[0].Amount)
	require.Nil(t, entries[0].Balance)
}

func TestMapPurposeLines(t *testing.T) {
	tx := baseTransaction()
	tx.TransactionInfo.TransactionSubject = "Order 1234"
	tx.TransactionInfo.TransactionNote = "Order 1234"
	tx.CartInfo = &paypal.CartInfo{
		ItemDetails: []paypal.CartItemDetail{
			{ItemName: "Widget"},
			{ItemName: "   "},
			{ItemName: "Gadget"},
		},
	}

	entries := NewMapper(true, testLogger()).Map(tx)
	require.Len(t, entries, 1)
	// The note duplicates the subject and the blank cart item is dropped.
	require.Equal(t, []string{"Order 1234", "Widget", "Gadget"}, entries[0].PurposeLines)
}

func TestMapDistinctNoteKept(t *testing.T) {
	tx := baseTransaction()
	tx.TransactionInfo.TransactionNote = "Thanks for your purchase"

	entries := NewMapper(true, testLogger()).Map(tx)
	require.Equal(t, []string{"Order 1234", "Thanks for your purchase"}, entries[0].PurposeLines)
}

func TestMapBankWithdrawal(t *testing.T) {
	tx := baseTransaction()
	tx.TransactionInfo.TransactionEvent = "T0400"

	entries := NewMapper(true, testLogger()).Map(tx)
	require.Len(t, entries, 1)
	require.Equal(t, "Bankkonto", entries[0].CounterpartyName)
	require.Equal(t, []string{"Abbuchung auf Bankkonto"}, entries[0].PurposeLines)
}

func TestMapAutoSweep(t *testing.T) {
	tx := baseTransaction()
	tx.TransactionInfo.TransactionEvent = "T0401"

	entries := NewMapper(true, testLogger()).Map(tx)
	require.Equal(t, "Bankkonto", entries[0].CounterpartyName)
	require.Equal(t, []string{"Automatische Abbuchung auf Bankkonto"}, entries[0].PurposeLines)
}

func TestMapBankFunding(t *testing.T) {
	tx := baseTransaction()
	tx.TransactionInfo.TransactionEvent = "T0300"

	entries := NewMapper(true, testLogger()).Map(tx)
	require.Equal(t, "Bankkonto", entries[0].CounterpartyName)
	require.Equal(t, []string{"Einzahlung vom Bankkonto"}, entries[0].PurposeLines)
}

func TestMapOtherBankEventKeepsPurpose(t *testing.T) {
	tx := baseTransaction()
	tx.TransactionInfo.TransactionEvent = "T0403"

	entries := NewMapper(true, testLogger()).Map(tx)
	require.Equal(t, "Bankkonto", entries[0].CounterpartyName)
	require.Equal(t, []string{"Order 1234"}, entries[0].PurposeLines)
}

func TestMapRefund(t *testing.T) {
	tx := baseTransaction()
	tx.TransactionInfo.TransactionEvent = "T1107"
	tx.TransactionInfo.TransactionNote = "Defective item"
	tx.TransactionInfo.FeeAmount = money("0.55")

	entries := NewMapper(true, testLogger()).Map(tx)
	require.Len(t, entries, 2)

	e := entries[0]
	require.Equal(t, "Order 1234", e.Comment)
	require.Equal(t, []string{"Rückzahlung Defective item"}, e.PurposeLines)
	require.Equal(t,
		[]string{"Widerrufene Gebühren für Transaktion 4SD87266HN062932L"},
		entries[1].PurposeLines)
}

func TestMapRefundWithoutSubject(t *testing.T) {
	tx := baseTransaction()
	tx.TransactionInfo.TransactionEvent = "T1107"
	tx.TransactionInfo.TransactionSubject = ""

	entries := NewMapper(true, testLogger()).Map(tx)
	require.Len(t, entries, 1)
	require.Empty(t, entries[0].Comment)
	require.Equal(t, []string{"Rückzahlung "}, entries[0].PurposeLines)
}

func TestCounterpartyAlternateNameWins(t *testing.T) {
	name, account := counterparty(&paypal.PayerInfo{
		EmailAddress: "biz@example.com",
		PayerName: &paypal.PayerName{
			GivenName:         "Erika",
			Surname:           "Mustermann",
			AlternateFullName: "Mustermann GmbH",
		},
	})
	require.Equal(t, "Mustermann GmbH", name)
	require.Equal(t, "biz@example.com", account)
}

func TestCounterpartyTruncation(t *testing.T) {
	long := strings.Repeat("Mustermann ", 9) + "GmbH"
	name, account := counterparty(&paypal.PayerInfo{
		EmailAddress: "really.long.address.that.goes.on.and.on@subdomain.example.com",
		PayerName:    &paypal.PayerName{AlternateFullName: long},
	})
	require.Len(t, name, counterpartyNameMaxLen)
	require.Len(t, account, counterpartyAccountMaxLen)
}

func TestCounterpartyNilPayer(t *testing.T) {
	name, account := counterparty(nil)
	require.Empty(t, name)
	require.Empty(t, account)
}
