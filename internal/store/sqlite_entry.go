package store

import (
	"database/sql"
	"fmt"
	"time"

	"paypalsync/internal/model"
)

const entryColumns = `id, account_id, transaction_id, end_to_end_id, customer_ref,
		status_code, classification, amount, balance, booking_date, value_date,
		purpose, comment, counterparty_name, counterparty_account`

func (s *Store) CreateEntry(e *model.Entry) (int64, error) {
	stmt, err := s.db.Prepare(`
		INSERT INTO entries (account_id, transaction_id, end_to_end_id, customer_ref,
			status_code, classification, amount, balance, booking_date, value_date,
			purpose, comment, counterparty_name, counterparty_account)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id;
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare entry SQL: %w", err)
	}
	defer stmt.Close()

	var newID int64
	err = stmt.QueryRow(
		e.AccountID, e.TransactionID, e.EndToEndID, e.CustomerRef,
		e.StatusCode, e.Classification, e.Amount, e.Balance,
		e.BookingDate.Unix(), e.ValueDate.Unix(),
		e.Purpose(), e.Comment, e.CounterpartyName, e.CounterpartyAccount,
	).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert entry: %w", err)
	}

	return newID, nil
}

// EntriesInRange returns all entries of the account booked on or after from.
// It backs the merge window scan of the dedup engine.
func (s *Store) EntriesInRange(accountID int64, from time.Time) ([]*model.Entry, error) {
	rows, err := s.db.Query(`
		SELECT `+entryColumns+`
		FROM entries
		WHERE account_id = ? AND booking_date >= ?
		ORDER BY booking_date
	`, accountID, from.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

func (s *Store) RecentEntries(accountID int64, limit int) ([]*model.Entry, error) {
	rows, err := s.db.Query(`
		SELECT `+entryColumns+`
		FROM entries
		WHERE account_id = ?
		ORDER BY booking_date DESC, id DESC
		LIMIT ?
	`, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

func (s *Store) AddProtocol(accountID int64, message, kind string) error {
	_, err := s.db.Exec(`INSERT INTO protocol (account_id, message, kind) VALUES (?, ?, ?)`,
		accountID, message, kind)
	if err != nil {
		return fmt.Errorf("failed to insert protocol entry: %w", err)
	}
	return nil
}

func (s *Store) GetProtocol(accountID int64, limit int) ([]*ProtocolEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, account_id, message, kind, created_at
		FROM protocol
		WHERE account_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query protocol: %w", err)
	}
	defer rows.Close()

	var result []*ProtocolEntry
	for rows.Next() {
		p := &ProtocolEntry{}
		var createdAt int64
		if err := rows.Scan(&p.ID, &p.AccountID, &p.Message, &p.Kind, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan protocol entry: %w", err)
		}
		p.CreatedAt = time.Unix(createdAt, 0)
		result = append(result, p)
	}

	return result, rows.Err()
}

func collectEntries(rows *sql.Rows) ([]*model.Entry, error) {
	var entries []*model.Entry
	for rows.Next() {
		e := &model.Entry{}
		var amount, balance sql.NullFloat64
		var booking, value int64
		var purpose string

		err := rows.Scan(
			&e.ID, &e.AccountID, &e.TransactionID, &e.EndToEndID, &e.CustomerRef,
			&e.StatusCode, &e.Classification, &amount, &balance, &booking, &value,
			&purpose, &e.Comment, &e.CounterpartyName, &e.CounterpartyAccount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}

		if amount.Valid {
			e.Amount = &amount.Float64
		}
		if balance.Valid {
			e.Balance = &balance.Float64
		}
		e.BookingDate = time.Unix(booking, 0)
		e.ValueDate = time.Unix(value, 0)
		e.SetPurpose(purpose)

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
