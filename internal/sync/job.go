package sync

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"paypalsync/internal/config"
	"paypalsync/internal/model"
	"paypalsync/internal/paypal"
	"paypalsync/internal/store"
)

// Transport is the subset of the API client the job needs.
type Transport interface {
	Login(ctx context.Context, creds paypal.Credentials) (*paypal.AccessToken, error)
	Transactions(ctx context.Context, token *paypal.AccessToken, start time.Time) ([]paypal.TransactionDetails, error)
	Balances(ctx context.Context, token *paypal.AccessToken, currency string) (*paypal.BalanceResult, error)
}

// Notifier delivers user-facing status text. The cmd layer implements it.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Info(string) {}

func (nopNotifier) Error(string) {}

// Request describes one synchronization run for one account. The force
// flags activate a stage even when the account's sync options disable it.
type Request struct {
	AccountID         int64
	ForceBalance      bool
	ForceTransactions bool
}

// Result summarizes a completed run.
type Result struct {
	Created        int
	Skipped        int
	Failed         int
	BalanceApplied bool
}

// Job synchronizes a single account. Stages run strictly sequentially and
// only move forward; cancellation is checked between stages and between
// fetch windows and surfaces as context.Canceled, not as a failure.
type Job struct {
	transport Transport
	repo      store.Repository
	notifier  Notifier
	cfg       *config.Config
	logger    *log.Logger
	now       func() time.Time
}

func NewJob(transport Transport, repo store.Repository, notifier Notifier, cfg *config.Config, logger *log.Logger) *Job {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Job{
		transport: transport,
		repo:      repo,
		notifier:  notifier,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes one synchronization run for the requested account.
func (j *Job) Run(ctx context.Context, req Request) (*Result, error) {
	account, err := j.repo.GetAccountByID(req.AccountID)
	if err != nil {
		return nil, err
	}

	if !account.Status().Syncable() {
		return nil, fmt.Errorf("account %q is not a PayPal account", account.Name)
	}

	syncBalance := account.SyncBalance || req.ForceBalance
	syncTransactions := account.SyncTransactions || req.ForceTransactions

	if !syncBalance && !syncTransactions {
		j.logger.Printf("no synchronize options activated")
		j.notifier.Info(fmt.Sprintf("nothing to synchronize for account %q", account.Name))
		return &Result{}, nil
	}

	start := j.startDate(account)

	token, err := j.transport.Login(ctx, paypal.Credentials{
		ClientID: account.ClientID,
		Secret:   account.Secret,
	})
	if err != nil {
		return nil, j.fail(account, "login failed", err)
	}

	result := &Result{}

	// The two stages are independent: a failed transaction fetch still lets
	// the balance stage run, so the run can produce partial results.
	var runErr error

	if syncTransactions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := j.syncTransactions(ctx, account, token, start, result); err != nil {
			if isCancelled(err) {
				return nil, err
			}
			runErr = err
		}
	}

	if syncBalance {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := j.syncBalance(ctx, account, token, result); err != nil {
			if isCancelled(err) {
				return nil, err
			}
			if runErr == nil {
				runErr = err
			}
		}
	}

	return result, runErr
}

func (j *Job) syncTransactions(ctx context.Context, account *model.Account, token *paypal.AccessToken, start time.Time, result *Result) error {
	txns, err := j.transport.Transactions(ctx, token, start)
	if err != nil {
		if isCancelled(err) {
			return err
		}
		return j.fail(account, "fetching transactions failed", err)
	}

	if len(txns) > 0 {
		from := mergeWindow(start, txns, j.cfg.Sync.MergeOffsetDays, j.logger)

		var existing []*model.Entry
		if !from.IsZero() {
			existing, err = j.repo.EntriesInRange(account.ID, from)
			if err != nil {
				return j.fail(account, "reading existing entries failed", err)
			}
		}

		mapper := NewMapper(j.cfg.Sync.AcceptPending, j.logger)

		j.logger.Printf("applying entries")
		for i := range txns {
			for _, entry := range mapper.Map(&txns[i]) {
				entry.AccountID = account.ID
				j.applyEntry(entry, existing, result)
			}
		}
	}

	j.logger.Printf("done. new entries: %d, skipped entries (already in database): %d", result.Created, result.Skipped)
	if err := j.repo.AddProtocol(account.ID, "transactions fetched", store.ProtocolSuccess); err != nil {
		j.logger.Printf("unable to write protocol entry: %v", err)
	}
	return nil
}

// applyEntry stores one candidate entry unless the merge window already
// contains it. A storage failure is logged and counted but never aborts
// the rest of the batch.
func (j *Job) applyEntry(entry *model.Entry, existing []*model.Entry, result *Result) {
	for _, ex := range existing {
		if ex.Equals(entry) {
			result.Skipped++
			return
		}
	}

	if _, err := j.repo.CreateEntry(entry); err != nil {
		j.logger.Printf("error while adding entry, skipping this one: %v", err)
		j.notifier.Error("not all received entries could be stored, please check the protocol")
		result.Failed++
		return
	}
	result.Created++
}

func (j *Job) syncBalance(ctx context.Context, account *model.Account, token *paypal.AccessToken, result *Result) error {
	br, err := j.transport.Balances(ctx, token, j.cfg.Sync.Currency)
	if err != nil {
		if isCancelled(err) {
			return err
		}
		return j.fail(account, "fetching balances failed", err)
	}

	applied, err := j.applyBalance(account, br)
	if err != nil {
		return j.fail(account, "applying balance failed", err)
	}
	result.BalanceApplied = applied
	return nil
}

// applyBalance selects the snapshot matching the settlement currency and
// applies total and available balance independently. Missing snapshots or
// values are a logged no-op, not an error.
func (j *Job) applyBalance(account *model.Account, br *paypal.BalanceResult) (bool, error) {
	if br == nil || len(br.Balances) == 0 {
		j.logger.Printf("no balances received")
		return false, nil
	}

	currency := j.cfg.Sync.Currency

	var found *paypal.BalanceDetail
	for i := range br.Balances {
		if br.Balances[i].Currency == currency {
			found = &br.Balances[i]
			break
		}
		j.logger.Printf("ignoring balance - wrong currency %s", br.Balances[i].Currency)
	}

	if found == nil {
		j.logger.Printf("no balance found for %s", currency)
		return false, nil
	}

	var total, available *float64
	if v, ok := found.TotalBalance.Float(); ok {
		total = &v
	}
	if v, ok := found.AvailableBalance.Float(); ok {
		available = &v
	}

	if total == nil && available == nil {
		j.logger.Printf("no usable balance received for %s", currency)
		return false, nil
	}

	if err := j.repo.SetBalance(account.ID, total, available, j.now()); err != nil {
		return false, err
	}
	if err := j.repo.AddProtocol(account.ID, "balance fetched", store.ProtocolSuccess); err != nil {
		j.logger.Printf("unable to write protocol entry: %v", err)
	}
	return true, nil
}

// startDate derives the fetch start: the last balance date minus one day,
// truncated to the start of day. Future dates are not allowed. Without a
// last sync point, the configured initial lookback applies.
func (j *Job) startDate(account *model.Account) time.Time {
	now := j.now()

	var start time.Time
	if account.BalanceDate != nil {
		start = *account.BalanceDate
		if start.After(now) {
			j.logger.Printf("future start date %s given, this is not allowed", start.Format("2006-01-02"))
			start = time.Time{}
		}
	}

	if start.IsZero() {
		start = now.AddDate(0, 0, -j.cfg.Sync.InitialLookbackDays)
	} else {
		// Re-fetch the previous day so entries booked late are not missed.
		start = start.AddDate(0, 0, -1)
	}

	start = startOfDay(start)
	j.logger.Printf("startdate: %s", start.Format("2006-01-02"))
	return start
}

// fail records a terminal run failure in the protocol and notifies the
// user, composing the detail for structured API errors.
func (j *Job) fail(account *model.Account, stage string, err error) error {
	detail := err.Error()
	var apiErr *paypal.APIError
	if errors.As(err, &apiErr) {
		detail = apiErr.Detail()
	}

	msg := fmt.Sprintf("%s: %s", stage, detail)
	j.logger.Printf("%s", msg)
	j.notifier.Error(msg)
	if pErr := j.repo.AddProtocol(account.ID, msg, store.ProtocolError); pErr != nil {
		j.logger.Printf("unable to write protocol entry: %v", pErr)
	}
	return fmt.Errorf("%s: %w", stage, err)
}

func isCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
