package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"finled/internal/core"
	"finled/internal/store"
)

const transactionColumns = "id, owner_id, title, amount, type, category, date, created_at"

func scanTransaction(row interface{ Scan(...any) error }) (core.Transaction, error) {
	var t core.Transaction
	var typ string
	err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Amount, &typ, &t.Category, &t.Date, &t.CreatedAt)
	t.Type = core.TxnType(typ)
	return t, err
}

func (r *Repository) FindOneTransaction(ctx context.Context, f store.TransactionFilter) (*core.Transaction, error) {
	where, args := whereClause(
		"owner_id", f.OwnerID,
		"type", string(f.Type),
		"category", f.Category,
		"date", f.Date,
	)
	row := r.db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions"+where+" LIMIT 1", args...)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find one transaction: %w", err)
	}
	return &t, nil
}

func (r *Repository) FindTransactions(ctx context.Context, f store.TransactionFilter) ([]core.Transaction, error) {
	where, args := whereClause(
		"owner_id", f.OwnerID,
		"type", string(f.Type),
		"category", f.Category,
		"date", f.Date,
	)
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions"+where+" ORDER BY created_at DESC, id DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	defer rows.Close()

	out := []core.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repository) GetTransaction(ctx context.Context, id string) (*core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ?", id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

func (r *Repository) InsertTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO transactions ("+transactionColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		t.ID, t.OwnerID, t.Title, t.Amount, string(t.Type), t.Category, t.Date, t.CreatedAt)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	return t, nil
}

func (r *Repository) SaveTransaction(ctx context.Context, t core.Transaction) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE transactions SET title = ?, amount = ?, type = ?, category = ?, date = ? WHERE id = ?",
		t.Title, t.Amount, string(t.Type), t.Category, t.Date, t.ID)
	if err != nil {
		return fmt.Errorf("save transaction: %w", err)
	}
	return nil
}

func (r *Repository) DeleteTransaction(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}
