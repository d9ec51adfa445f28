// Package store defines the persistence ports for the ledger. Records are
// single documents addressed by id; filters are exact-match on the owner id
// plus optional equality on type, category, and date. No multi-record
// transactions are used or required.
package store

import (
	"context"

	"finled/internal/core"
)

// TransactionFilter selects transactions by exact match. OwnerID is always
// set by callers; the remaining fields narrow the match when non-empty.
type TransactionFilter struct {
	OwnerID  string
	Type     core.TxnType
	Category string
	Date     string
}

// BudgetFilter selects budgets by exact match on owner and optionally date.
type BudgetFilter struct {
	OwnerID string
	Date    string
}

// UserStore persists account records. FindByEmail returns (nil, nil) when no
// user matches; errors are reserved for infrastructure failures.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*core.User, error)
	InsertUser(ctx context.Context, u core.User) (core.User, error)
}

// TransactionStore persists ledger entries. Insert assigns the record id and
// creation timestamp when unset and returns the stored record. Find returns
// matches ordered by creation time descending.
type TransactionStore interface {
	FindOneTransaction(ctx context.Context, f TransactionFilter) (*core.Transaction, error)
	FindTransactions(ctx context.Context, f TransactionFilter) ([]core.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*core.Transaction, error)
	InsertTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	SaveTransaction(ctx context.Context, t core.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
}

// BudgetStore persists monthly budgets with the same conventions as
// TransactionStore.
type BudgetStore interface {
	FindOneBudget(ctx context.Context, f BudgetFilter) (*core.Budget, error)
	FindBudgets(ctx context.Context, f BudgetFilter) ([]core.Budget, error)
	GetBudget(ctx context.Context, id string) (*core.Budget, error)
	InsertBudget(ctx context.Context, b core.Budget) (core.Budget, error)
	SaveBudget(ctx context.Context, b core.Budget) error
	DeleteBudget(ctx context.Context, id string) error
}
