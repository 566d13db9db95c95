package sync

import (
	"fmt"
	"log"
	"strings"

	"paypalsync/internal/model"
	"paypalsync/internal/paypal"
)

// Transaction status codes as delivered by the reporting API.
const (
	StatusSuccess  = "S"
	StatusPending  = "P"
	StatusDenied   = "D"
	StatusReversed = "V"
)

// Ledger texts are kept in German verbatim, so that imported entries match
// what the upstream plugin writes into the same ledger.
const (
	labelBankAccount  = "Bankkonto"
	purposeBankDebit  = "Abbuchung auf Bankkonto"
	purposeAutoDebit  = "Automatische Abbuchung auf Bankkonto"
	purposeBankCredit = "Einzahlung vom Bankkonto"
	prefixRefund      = "Rückzahlung "
	prefixRevoked     = "Widerrufene "

	feeCounterpartyName = "Paypal"
)

const (
	// counterpartyNameMaxLen is the host ledger's limit for counterparty
	// names.
	counterpartyNameMaxLen = 70
	// counterpartyAccountMaxLen caps the email address stored as the
	// counterparty account identifier.
	counterpartyAccountMaxLen = 40
)

// textCleaner strips characters that must not end up in ledger text fields,
// typically line breaks.
var textCleaner = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Mapper converts one remote transaction record into zero, one or two
// ledger entries: the primary booking plus an optional fee split.
type Mapper struct {
	acceptPending bool
	logger        *log.Logger
}

func NewMapper(acceptPending bool, logger *log.Logger) *Mapper {
	if logger == nil {
		logger = log.Default()
	}
	return &Mapper{acceptPending: acceptPending, logger: logger}
}

// Map applies the mapping rules in order. A nil or filtered transaction
// yields no entries.
func (m *Mapper) Map(t *paypal.TransactionDetails) []*model.Entry {
	ti := t.TransactionInfo
	if ti == nil {
		m.logger.Printf("received transaction-details w/o transaction-info - skipping")
		return nil
	}

	status := ti.TransactionStatus
	ec := ti.TransactionEvent
	feePurpose := fmt.Sprintf("Gebühren für Transaktion %s", ti.TransactionID)

	if !m.statusAccepted(status) {
		m.logger.Printf("skipping denied/reversed transaction id %s (status: %s)", ti.TransactionID, status)
		return nil
	}

	entry := &model.Entry{
		TransactionID:  ti.TransactionID,
		EndToEndID:     ti.TransactionID,
		StatusCode:     status,
		Classification: textCleaner.Replace(ec),
	}
	result := []*model.Entry{entry}

	if t.PayerInfo != nil {
		entry.CustomerRef = t.PayerInfo.AccountID
	}

	if v, ok := ti.EndingBalance.Float(); ok {
		entry.Balance = &v
	}
	if v, ok := ti.TransactionAmount.Float(); ok {
		entry.Amount = &v
	}

	entry.BookingDate = ti.TransactionUpdated.Time
	entry.ValueDate = ti.TransactionUpdated.Time

	usages := purposeLines(t, ti)

	counterpartyName, counterpartyAccount := counterparty(t.PayerInfo)

	switch {
	case strings.HasPrefix(ec, "T04"):
		counterpartyName = labelBankAccount
		if ec == "T0400" {
			usages = []string{purposeBankDebit}
		} else if ec == "T0401" {
			usages = []string{purposeAutoDebit}
		}
	case strings.HasPrefix(ec, "T03"):
		counterpartyName = labelBankAccount
		if ec == "T0300" {
			usages = []string{purposeBankCredit}
		}
	case ec == "T1107":
		// A refund: the original subject moves into the comment field and
		// the remaining purpose text is marked as a refund.
		if strings.TrimSpace(ti.TransactionSubject) != "" && len(usages) > 0 {
			entry.Comment = usages[0]
			usages = usages[1:]
		}
		if len(usages) > 0 {
			usages[0] = prefixRefund + usages[0]
		} else {
			usages = []string{prefixRefund}
		}
		feePurpose = prefixRevoked + feePurpose
	}

	entry.CounterpartyName = counterpartyName
	entry.CounterpartyAccount = counterpartyAccount
	entry.PurposeLines = usages

	// The fee, if any, becomes its own entry with the provider as payee.
	// The fee amount is already negative, so the running balance drops.
	if ti.FeeAmount != nil {
		fee := &model.Entry{
			TransactionID:    ti.TransactionID + "-fee",
			CustomerRef:      entry.CustomerRef,
			BookingDate:      ti.TransactionUpdated.Time,
			ValueDate:        ti.TransactionUpdated.Time,
			PurposeLines:     []string{feePurpose},
			CounterpartyName: feeCounterpartyName,
		}
		if v, ok := ti.FeeAmount.Float(); ok {
			fee.Amount = &v
			if entry.Balance != nil {
				b := *entry.Balance + v
				fee.Balance = &b
			}
		}
		result = append(result, fee)
	}

	return result
}

// statusAccepted implements the configurable status policy: success and
// absent are always imported, pending only when enabled, everything else
// (denied, reversed) never.
func (m *Mapper) statusAccepted(status string) bool {
	switch status {
	case "", StatusSuccess:
		return true
	case StatusPending:
		return m.acceptPending
	default:
		return false
	}
}

// purposeLines builds the ordered purpose text: subject, note (when distinct
// from the subject), then the cart line-item names. Blank candidates are
// skipped, not inserted as empty lines.
func purposeLines(t *paypal.TransactionDetails, ti *paypal.TransactionInfo) []string {
	var usages []string

	subject := strings.TrimSpace(ti.TransactionSubject)
	if subject != "" {
		usages = append(usages, ti.TransactionSubject)
	}
	if strings.TrimSpace(ti.TransactionNote) != "" && (subject == "" || ti.TransactionNote != ti.TransactionSubject) {
		usages = append(usages, ti.TransactionNote)
	}
	if t.CartInfo != nil {
		for _, cd := range t.CartInfo.ItemDetails {
			if strings.TrimSpace(cd.ItemName) != "" {
				usages = append(usages, cd.ItemName)
			}
		}
	}

	return usages
}

// counterparty derives the counterparty display name and account identifier
// from the payer info. The alternate full name wins; otherwise given name
// and surname are joined. The email address serves as account identifier.
func counterparty(pi *paypal.PayerInfo) (name, account string) {
	if pi == nil {
		return "", ""
	}

	if pi.EmailAddress != "" {
		account = truncate(pi.EmailAddress, counterpartyAccountMaxLen)
	}

	pn := pi.PayerName
	if pn == nil {
		return "", account
	}

	name = strings.TrimSpace(pn.AlternateFullName)
	if name == "" {
		parts := make([]string, 0, 2)
		if pn.GivenName != "" {
			parts = append(parts, pn.GivenName)
		}
		if pn.Surname != "" {
			parts = append(parts, pn.Surname)
		}
		name = strings.Join(parts, " ")
	}
	name = strings.TrimSpace(truncate(name, counterpartyNameMaxLen))

	return name, account
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
