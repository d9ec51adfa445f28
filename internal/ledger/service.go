// Package ledger holds the ownership-scoped business logic over transactions
// and budgets: create-with-dedup, ownership-checked reads and writes, and
// monthly aggregation.
package ledger

import (
	"context"
	"log/slog"

	"finled/internal/cache"
	"finled/internal/core"
	"finled/internal/events"
	"finled/internal/store"
)

// EventPublisher is the optional lifecycle stream. A nil publisher disables
// eventing without changing ledger behavior.
type EventPublisher interface {
	Publish(ctx context.Context, event *events.LedgerEvent) error
}

// Service implements the ledger operations on top of the store ports. Every
// operation is scoped to the identity resolved by the auth gate; ownership is
// the sole access-control relation.
type Service struct {
	transactions store.TransactionStore
	budgets      store.BudgetStore
	events       EventPublisher
	summaries    *cache.LRU[core.MonthSummary]
}

func NewService(transactions store.TransactionStore, budgets store.BudgetStore, publisher EventPublisher) *Service {
	return &Service{
		transactions: transactions,
		budgets:      budgets,
		events:       publisher,
	}
}

// WithSummaryCache enables caching of month summaries. Every transaction
// write invalidates the owner's affected months, so a cached summary never
// outlives the data it was computed from.
func (s *Service) WithSummaryCache(c *cache.LRU[core.MonthSummary]) *Service {
	s.summaries = c
	return s
}

// TransactionInput carries the client-supplied fields for create and update.
// On update, zero values mean "leave unchanged": an explicit zero amount or
// empty string is indistinguishable from an omitted field and is ignored.
type TransactionInput struct {
	Title    string       `json:"title"`
	Amount   float64      `json:"amount"`
	Type     core.TxnType `json:"type"`
	Category string       `json:"category"`
	Date     string       `json:"date"`
}

// TransactionResult is the tagged outcome of a create. AlreadyExists marks a
// soft duplicate: the returned record is the pre-existing match and nothing
// was inserted.
type TransactionResult struct {
	Transaction   core.Transaction
	AlreadyExists bool
}

// CreateTransaction validates the input, checks the owner's ledger for a
// record with the same (type, category, date) key, and inserts only when no
// match exists. The check and the insert are two independent store calls;
// two concurrent identical creates can both pass the check and both insert.
func (s *Service) CreateTransaction(ctx context.Context, owner core.Identity, in TransactionInput) (TransactionResult, error) {
	if in.Title == "" || in.Amount == 0 || in.Type == "" || in.Category == "" || in.Date == "" {
		return TransactionResult{}, core.InvalidInput("All fields are required")
	}
	if !in.Type.Valid() {
		return TransactionResult{}, core.InvalidInput("Type must be income or expense")
	}

	existing, err := s.transactions.FindOneTransaction(ctx, store.TransactionFilter{
		OwnerID:  owner.ID,
		Type:     in.Type,
		Category: in.Category,
		Date:     in.Date,
	})
	if err != nil {
		return TransactionResult{}, err
	}
	if existing != nil {
		return TransactionResult{Transaction: *existing, AlreadyExists: true}, nil
	}

	created, err := s.transactions.InsertTransaction(ctx, core.Transaction{
		OwnerID:  owner.ID,
		Title:    in.Title,
		Amount:   in.Amount,
		Type:     in.Type,
		Category: in.Category,
		Date:     in.Date,
	})
	if err != nil {
		return TransactionResult{}, err
	}

	s.invalidateSummary(owner.ID, created.Date)
	s.publish(ctx, events.KindCreated, events.CollectionTransactions, created.ID, owner.ID)

	return TransactionResult{Transaction: created}, nil
}

// GetTransaction fetches a record by id. Existence is checked before
// ownership, so a request for another user's record reports Forbidden rather
// than NotFound.
func (s *Service) GetTransaction(ctx context.Context, owner core.Identity, id string) (core.Transaction, error) {
	txn, err := s.transactions.GetTransaction(ctx, id)
	if err != nil {
		return core.Transaction{}, err
	}
	if txn == nil {
		return core.Transaction{}, core.NotFound("Transaction not found")
	}
	if txn.OwnerID != owner.ID {
		return core.Transaction{}, core.Forbidden("Unauthorized")
	}
	return *txn, nil
}

// ListTransactions returns the owner's records, newest first. An owner with
// no records gets an empty sequence.
func (s *Service) ListTransactions(ctx context.Context, owner core.Identity) ([]core.Transaction, error) {
	return s.transactions.FindTransactions(ctx, store.TransactionFilter{OwnerID: owner.ID})
}

// UpdateTransaction overwrites each stored field with the provided value
// only when the value is non-zero. Setting a field to zero or empty is
// silently ignored; callers wanting that must delete and recreate.
func (s *Service) UpdateTransaction(ctx context.Context, owner core.Identity, id string, in TransactionInput) (core.Transaction, error) {
	txn, err := s.GetTransaction(ctx, owner, id)
	if err != nil {
		return core.Transaction{}, err
	}
	previousDate := txn.Date

	if in.Title != "" {
		txn.Title = in.Title
	}
	if in.Amount != 0 {
		txn.Amount = in.Amount
	}
	if in.Type != "" {
		if !in.Type.Valid() {
			return core.Transaction{}, core.InvalidInput("Type must be income or expense")
		}
		txn.Type = in.Type
	}
	if in.Category != "" {
		txn.Category = in.Category
	}
	if in.Date != "" {
		txn.Date = in.Date
	}

	if err := s.transactions.SaveTransaction(ctx, txn); err != nil {
		return core.Transaction{}, err
	}

	// A moved transaction dirties both the old and the new month.
	s.invalidateSummary(owner.ID, previousDate)
	s.invalidateSummary(owner.ID, txn.Date)

	return txn, nil
}

// DeleteTransaction removes the record after the same existence and
// ownership checks as GetTransaction.
func (s *Service) DeleteTransaction(ctx context.Context, owner core.Identity, id string) error {
	txn, err := s.GetTransaction(ctx, owner, id)
	if err != nil {
		return err
	}
	if err := s.transactions.DeleteTransaction(ctx, txn.ID); err != nil {
		return err
	}

	s.invalidateSummary(owner.ID, txn.Date)
	s.publish(ctx, events.KindDeleted, events.CollectionTransactions, txn.ID, owner.ID)

	return nil
}

// MonthSummary totals the owner's transactions for one month key.
func (s *Service) MonthSummary(ctx context.Context, owner core.Identity, date string) (core.MonthSummary, error) {
	if err := core.ValidateMonthKey(date); err != nil {
		return core.MonthSummary{}, core.InvalidInput("Invalid date format. Use YYYY/M or YYYY/MM")
	}

	if s.summaries != nil {
		if cached, ok := s.summaries.Get(summaryKey(owner.ID, date)); ok {
			return cached, nil
		}
	}

	txns, err := s.transactions.FindTransactions(ctx, store.TransactionFilter{
		OwnerID: owner.ID,
		Date:    date,
	})
	if err != nil {
		return core.MonthSummary{}, err
	}

	summary := core.Summarize(date, txns)
	if s.summaries != nil {
		s.summaries.Set(summaryKey(owner.ID, date), summary)
	}
	return summary, nil
}

// MonthDetails partitions the owner's transactions for one month key into
// income and expense lists.
func (s *Service) MonthDetails(ctx context.Context, owner core.Identity, date string) (core.MonthDetails, error) {
	if err := core.ValidateMonthKey(date); err != nil {
		return core.MonthDetails{}, core.InvalidInput("Invalid date format. Use YYYY/M or YYYY/MM")
	}
	txns, err := s.transactions.FindTransactions(ctx, store.TransactionFilter{
		OwnerID: owner.ID,
		Date:    date,
	})
	if err != nil {
		return core.MonthDetails{}, err
	}
	return core.Partition(txns), nil
}

func summaryKey(ownerID, date string) string {
	return ownerID + "|" + date
}

func (s *Service) invalidateSummary(ownerID, date string) {
	if s.summaries == nil {
		return
	}
	s.summaries.Delete(summaryKey(ownerID, date))
}

// publish sends a lifecycle event when a stream is configured. Failures are
// logged and never fail the ledger operation.
func (s *Service) publish(ctx context.Context, kind, collection, recordID, ownerID string) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, events.NewLedgerEvent(kind, collection, recordID, ownerID)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"error", err,
			"kind", kind,
			"collection", collection,
			"record_id", recordID)
	}
}
