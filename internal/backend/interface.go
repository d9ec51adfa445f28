package backend

import (
	"context"

	"finled/internal/events"
	"finled/internal/store"
)

// Stores bundles the three persistence ports a running instance needs. A
// single backend value typically implements all three.
type Stores struct {
	Users        store.UserStore
	Transactions store.TransactionStore
	Budgets      store.BudgetStore
}

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Result contains the wired stores, the optional event stream client, and
// an optional cleanup function.
type Result struct {
	Stores  Stores
	Events  *events.Client
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// Event stream, optional for any backend
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// Type represents the kind of persistence backing the stores.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
