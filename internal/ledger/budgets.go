package ledger

import (
	"context"

	"finled/internal/core"
	"finled/internal/events"
	"finled/internal/store"
)

// BudgetInput carries the client-supplied budget fields. Update follows the
// same zero-means-unchanged rule as TransactionInput.
type BudgetInput struct {
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
	Title  string  `json:"title"`
}

// BudgetResult is the tagged outcome of a budget create.
type BudgetResult struct {
	Budget        core.Budget
	AlreadyExists bool
}

// CreateBudget enforces at most one budget per owner per month: the
// duplicate key is (owner, date) alone. As with transactions, the
// check-then-insert sequence is not atomic.
func (s *Service) CreateBudget(ctx context.Context, owner core.Identity, in BudgetInput) (BudgetResult, error) {
	if in.Amount == 0 || in.Date == "" || in.Title == "" {
		return BudgetResult{}, core.InvalidInput("All fields are required")
	}

	existing, err := s.budgets.FindOneBudget(ctx, store.BudgetFilter{
		OwnerID: owner.ID,
		Date:    in.Date,
	})
	if err != nil {
		return BudgetResult{}, err
	}
	if existing != nil {
		return BudgetResult{Budget: *existing, AlreadyExists: true}, nil
	}

	created, err := s.budgets.InsertBudget(ctx, core.Budget{
		OwnerID: owner.ID,
		Amount:  in.Amount,
		Date:    in.Date,
		Title:   in.Title,
	})
	if err != nil {
		return BudgetResult{}, err
	}

	s.publish(ctx, events.KindCreated, events.CollectionBudgets, created.ID, owner.ID)

	return BudgetResult{Budget: created}, nil
}

// BudgetsByDate returns every budget the owner has for the month key.
// Create enforces one per month, but a pre-existing duplicate from another
// path can surface more than one record, so callers get a sequence.
func (s *Service) BudgetsByDate(ctx context.Context, owner core.Identity, date string) ([]core.Budget, error) {
	if err := core.ValidateMonthKey(date); err != nil {
		return nil, core.InvalidInput("Invalid date format. Use YYYY/M or YYYY/MM")
	}
	return s.budgets.FindBudgets(ctx, store.BudgetFilter{
		OwnerID: owner.ID,
		Date:    date,
	})
}

func (s *Service) GetBudget(ctx context.Context, owner core.Identity, id string) (core.Budget, error) {
	b, err := s.budgets.GetBudget(ctx, id)
	if err != nil {
		return core.Budget{}, err
	}
	if b == nil {
		return core.Budget{}, core.NotFound("Budget not found")
	}
	if b.OwnerID != owner.ID {
		return core.Budget{}, core.Forbidden("Unauthorized")
	}
	return *b, nil
}

// ListBudgets returns the owner's budgets, newest first.
func (s *Service) ListBudgets(ctx context.Context, owner core.Identity) ([]core.Budget, error) {
	return s.budgets.FindBudgets(ctx, store.BudgetFilter{OwnerID: owner.ID})
}

func (s *Service) UpdateBudget(ctx context.Context, owner core.Identity, id string, in BudgetInput) (core.Budget, error) {
	b, err := s.GetBudget(ctx, owner, id)
	if err != nil {
		return core.Budget{}, err
	}

	if in.Amount != 0 {
		b.Amount = in.Amount
	}
	if in.Date != "" {
		b.Date = in.Date
	}
	if in.Title != "" {
		b.Title = in.Title
	}

	if err := s.budgets.SaveBudget(ctx, b); err != nil {
		return core.Budget{}, err
	}
	return b, nil
}

func (s *Service) DeleteBudget(ctx context.Context, owner core.Identity, id string) error {
	b, err := s.GetBudget(ctx, owner, id)
	if err != nil {
		return err
	}
	if err := s.budgets.DeleteBudget(ctx, b.ID); err != nil {
		return err
	}

	s.publish(ctx, events.KindDeleted, events.CollectionBudgets, b.ID, owner.ID)

	return nil
}
