package paypal

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Timestamp decodes the ISO-8601 variants the API uses. Transaction dates
// carry a zone offset, balance dates do not.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unparseable timestamp: %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(timestampLayouts[0]) + `"`), nil
}

// Money is a provider-supplied decimal string with its currency.
type Money struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

// Float parses the decimal value. A blank or unparseable value reports
// ok=false; callers must treat that as "unknown", never as zero.
func (m *Money) Float() (float64, bool) {
	if m == nil {
		return 0, false
	}
	s := strings.TrimSpace(m.Value)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

type authResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// TransactionResult is one page of the transaction report.
type TransactionResult struct {
	AccountNumber         string               `json:"account_number"`
	LastRefreshedDatetime Timestamp            `json:"last_refreshed_datetime"`
	TotalItems            int                  `json:"total_items"`
	Page                  int                  `json:"page"`
	TotalPages            int                  `json:"total_pages"`
	TransactionDetails    []TransactionDetails `json:"transaction_details"`
}

// TransactionDetails is one transaction record as received. It is never
// mutated, only read during mapping.
type TransactionDetails struct {
	CartInfo        *CartInfo        `json:"cart_info"`
	PayerInfo       *PayerInfo       `json:"payer_info"`
	TransactionInfo *TransactionInfo `json:"transaction_info"`
}

type TransactionInfo struct {
	AvailableBalance     *Money    `json:"available_balance"`
	EndingBalance        *Money    `json:"ending_balance"`
	FeeAmount            *Money    `json:"fee_amount"`
	InvoiceID            string    `json:"invoice_id"`
	PaypalAccountID      string    `json:"paypal_account_id"`
	PaypalReferenceID    string    `json:"paypal_reference_id"`
	TransactionAmount    *Money    `json:"transaction_amount"`
	TransactionEvent     string    `json:"transaction_event_code"`
	TransactionID        string    `json:"transaction_id"`
	TransactionInitiated Timestamp `json:"transaction_initiation_date"`
	TransactionNote      string    `json:"transaction_note"`
	TransactionStatus    string    `json:"transaction_status"`
	TransactionSubject   string    `json:"transaction_subject"`
	TransactionUpdated   Timestamp `json:"transaction_updated_date"`
}

type PayerInfo struct {
	AccountID    string     `json:"account_id"`
	EmailAddress string     `json:"email_address"`
	PayerStatus  string     `json:"payer_status"`
	PayerName    *PayerName `json:"payer_name"`
	CountryCode  string     `json:"country_code"`
}

type PayerName struct {
	GivenName         string `json:"given_name"`
	Surname           string `json:"surname"`
	AlternateFullName string `json:"alternate_full_name"`
}

type CartInfo struct {
	ItemDetails     []CartItemDetail `json:"item_details"`
	PaypalInvoiceID string           `json:"paypal_invoice_id"`
}

type CartItemDetail struct {
	InvoiceNumber   string `json:"invoice_number"`
	ItemAmount      *Money `json:"item_amount"`
	ItemCode        string `json:"item_code"`
	ItemDescription string `json:"item_description"`
	ItemName        string `json:"item_name"`
	ItemQuantity    string `json:"item_quantity"`
	ItemUnitPrice   *Money `json:"item_unit_price"`
	TotalItemAmount *Money `json:"total_item_amount"`
}

// BalanceResult is the answer of the balances endpoint.
type BalanceResult struct {
	AccountID         string          `json:"account_id"`
	LastRefreshedTime Timestamp       `json:"last_refreshed_time"`
	AsOfTime          Timestamp       `json:"as_of_time"`
	Balances          []BalanceDetail `json:"balances"`
}

type BalanceDetail struct {
	Currency         string `json:"currency"`
	Primary          bool   `json:"primary"`
	TotalBalance     *Money `json:"total_balance"`
	AvailableBalance *Money `json:"available_balance"`
	WithheldBalance  *Money `json:"withheld_balance"`
}
