package sync

import (
	"log"
	"time"

	"paypalsync/internal/paypal"
)

// mergeWindow determines the lower bound of the local ledger range scanned
// for duplicates. The oldest updated_date of the received transactions
// wins; without one, the last sync point minus the configured offset is
// used. A zero result means there is nothing to merge against and the
// dedup scan is skipped.
func mergeWindow(start time.Time, txns []paypal.TransactionDetails, offsetDays int, logger *log.Logger) time.Time {
	var d time.Time
	var basedOn string

	for i := range txns {
		ti := txns[i].TransactionInfo
		if ti == nil || ti.TransactionUpdated.IsZero() {
			continue
		}
		nd := ti.TransactionUpdated.Time
		if d.IsZero() || nd.Before(d) {
			d = nd
			basedOn = "received data"
		}
	}

	if d.IsZero() && !start.IsZero() {
		d = start.AddDate(0, 0, -offsetDays)
		basedOn = "last sync"
	}

	if d.IsZero() {
		logger.Printf("merge window: not set")
	} else {
		logger.Printf("merge window: %s - now (based on %s)", d.Format("2006-01-02"), basedOn)
	}

	return d
}
