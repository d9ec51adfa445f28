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

const budgetColumns = "id, owner_id, amount, date, title, created_at"

func scanBudget(row interface{ Scan(...any) error }) (core.Budget, error) {
	var b core.Budget
	err := row.Scan(&b.ID, &b.OwnerID, &b.Amount, &b.Date, &b.Title, &b.CreatedAt)
	return b, err
}

func (r *Repository) FindOneBudget(ctx context.Context, f store.BudgetFilter) (*core.Budget, error) {
	where, args := whereClause("owner_id", f.OwnerID, "date", f.Date)
	row := r.db.QueryRowContext(ctx,
		"SELECT "+budgetColumns+" FROM budgets"+where+" LIMIT 1", args...)
	b, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find one budget: %w", err)
	}
	return &b, nil
}

func (r *Repository) FindBudgets(ctx context.Context, f store.BudgetFilter) ([]core.Budget, error) {
	where, args := whereClause("owner_id", f.OwnerID, "date", f.Date)
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+budgetColumns+" FROM budgets"+where+" ORDER BY created_at DESC, id DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("find budgets: %w", err)
	}
	defer rows.Close()

	out := []core.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repository) GetBudget(ctx context.Context, id string) (*core.Budget, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+budgetColumns+" FROM budgets WHERE id = ?", id)
	b, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get budget: %w", err)
	}
	return &b, nil
}

func (r *Repository) InsertBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO budgets ("+budgetColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		b.ID, b.OwnerID, b.Amount, b.Date, b.Title, b.CreatedAt)
	if err != nil {
		return core.Budget{}, fmt.Errorf("insert budget: %w", err)
	}
	return b, nil
}

func (r *Repository) SaveBudget(ctx context.Context, b core.Budget) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE budgets SET amount = ?, date = ?, title = ? WHERE id = ?",
		b.Amount, b.Date, b.Title, b.ID)
	if err != nil {
		return fmt.Errorf("save budget: %w", err)
	}
	return nil
}

func (r *Repository) DeleteBudget(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM budgets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return nil
}
