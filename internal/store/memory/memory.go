// Package memory provides an in-process store backend used for tests and
// local development without a database file.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"finled/internal/core"
	"finled/internal/store"
)

type Store struct {
	mu           sync.Mutex
	users        map[string]core.User
	transactions map[string]core.Transaction
	budgets      map[string]core.Budget
	seq          map[string]int64 // insertion order, tie-break for equal timestamps
	nextSeq      int64
}

func New() *Store {
	return &Store{
		users:        make(map[string]core.User),
		transactions: make(map[string]core.Transaction),
		budgets:      make(map[string]core.Budget),
		seq:          make(map[string]int64),
	}
}

// assign fills in id and creation timestamp when the caller left them unset.
// Tests may pre-set CreatedAt to pin list ordering.
func (s *Store) assign(id string, createdAt time.Time) (string, time.Time) {
	if id == "" {
		id = uuid.NewString()
	}
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return id, createdAt
}

func (s *Store) FindByEmail(_ context.Context, email string) (*core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (s *Store) InsertUser(_ context.Context, u core.User) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID, u.CreatedAt = s.assign(u.ID, u.CreatedAt)
	s.users[u.ID] = u
	return u, nil
}

func matchTransaction(t core.Transaction, f store.TransactionFilter) bool {
	if t.OwnerID != f.OwnerID {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Date != "" && t.Date != f.Date {
		return false
	}
	return true
}

func (s *Store) FindOneTransaction(_ context.Context, f store.TransactionFilter) (*core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.transactions {
		if matchTransaction(t, f) {
			out := t
			return &out, nil
		}
	}
	return nil, nil
}

func (s *Store) FindTransactions(_ context.Context, f store.TransactionFilter) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []core.Transaction{}
	for _, t := range s.transactions {
		if matchTransaction(t, f) {
			out = append(out, t)
		}
	}
	s.sortNewestFirst(out)
	return out, nil
}

// sortNewestFirst orders records by creation time descending, falling back to
// reverse insertion order when timestamps collide.
func (s *Store) sortNewestFirst(txns []core.Transaction) {
	sort.Slice(txns, func(i, j int) bool {
		if !txns[i].CreatedAt.Equal(txns[j].CreatedAt) {
			return txns[i].CreatedAt.After(txns[j].CreatedAt)
		}
		return s.seq[txns[i].ID] > s.seq[txns[j].ID]
	})
}

func (s *Store) GetTransaction(_ context.Context, id string) (*core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.transactions[id]; ok {
		out := t
		return &out, nil
	}
	return nil, nil
}

func (s *Store) InsertTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID, t.CreatedAt = s.assign(t.ID, t.CreatedAt)
	s.transactions[t.ID] = t
	s.nextSeq++
	s.seq[t.ID] = s.nextSeq
	return t, nil
}

func (s *Store) SaveTransaction(_ context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[t.ID] = t
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.transactions, id)
	delete(s.seq, id)
	return nil
}

func matchBudget(b core.Budget, f store.BudgetFilter) bool {
	if b.OwnerID != f.OwnerID {
		return false
	}
	if f.Date != "" && b.Date != f.Date {
		return false
	}
	return true
}

func (s *Store) FindOneBudget(_ context.Context, f store.BudgetFilter) (*core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.budgets {
		if matchBudget(b, f) {
			out := b
			return &out, nil
		}
	}
	return nil, nil
}

func (s *Store) FindBudgets(_ context.Context, f store.BudgetFilter) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []core.Budget{}
	for _, b := range s.budgets {
		if matchBudget(b, f) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return s.seq[out[i].ID] > s.seq[out[j].ID]
	})
	return out, nil
}

func (s *Store) GetBudget(_ context.Context, id string) (*core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.budgets[id]; ok {
		out := b
		return &out, nil
	}
	return nil, nil
}

func (s *Store) InsertBudget(_ context.Context, b core.Budget) (core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID, b.CreatedAt = s.assign(b.ID, b.CreatedAt)
	s.budgets[b.ID] = b
	s.nextSeq++
	s.seq[b.ID] = s.nextSeq
	return b, nil
}

func (s *Store) SaveBudget(_ context.Context, b core.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets[b.ID] = b
	return nil
}

func (s *Store) DeleteBudget(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.budgets, id)
	delete(s.seq, id)
	return nil
}
