package memory

import (
	"context"
	"testing"
	"time"

	"finled/internal/core"
	"finled/internal/store"
)

func TestInsertTransactionAssignsIDAndTimestamp(t *testing.T) {
	s := New()
	got, err := s.InsertTransaction(context.Background(), core.Transaction{
		OwnerID: "u1", Title: "rent", Amount: 800, Type: core.Expense,
		Category: "housing", Date: "2024/5",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if got.ID == "" {
		t.Fatal("insert must assign an id")
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("insert must assign a creation timestamp")
	}
}

func TestFindOneTransactionFilter(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, _ = s.InsertTransaction(ctx, core.Transaction{OwnerID: "u1", Type: core.Income, Category: "salary", Date: "2024/5"})
	_, _ = s.InsertTransaction(ctx, core.Transaction{OwnerID: "u1", Type: core.Expense, Category: "food", Date: "2024/5"})
	_, _ = s.InsertTransaction(ctx, core.Transaction{OwnerID: "u2", Type: core.Income, Category: "salary", Date: "2024/5"})

	got, err := s.FindOneTransaction(ctx, store.TransactionFilter{
		OwnerID: "u1", Type: core.Income, Category: "salary", Date: "2024/5",
	})
	if err != nil {
		t.Fatalf("find one: %v", err)
	}
	if got == nil || got.OwnerID != "u1" || got.Type != core.Income {
		t.Fatalf("wrong match: %+v", got)
	}

	miss, err := s.FindOneTransaction(ctx, store.TransactionFilter{
		OwnerID: "u1", Type: core.Income, Category: "salary", Date: "2024/6",
	})
	if err != nil {
		t.Fatalf("find one: %v", err)
	}
	if miss != nil {
		t.Fatalf("expected no match, got %+v", miss)
	}
}

func TestFindTransactionsNewestFirst(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	_, _ = s.InsertTransaction(ctx, core.Transaction{OwnerID: "u1", Title: "old", CreatedAt: base})
	_, _ = s.InsertTransaction(ctx, core.Transaction{OwnerID: "u1", Title: "new", CreatedAt: base.Add(time.Hour)})
	_, _ = s.InsertTransaction(ctx, core.Transaction{OwnerID: "u1", Title: "mid", CreatedAt: base.Add(time.Minute)})

	got, err := s.FindTransactions(ctx, store.TransactionFilter{OwnerID: "u1"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	want := []string{"new", "mid", "old"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("pos %d = %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestFindTransactionsEmptyOwner(t *testing.T) {
	s := New()
	got, err := s.FindTransactions(context.Background(), store.TransactionFilter{OwnerID: "nobody"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestSaveAndDeleteTransaction(t *testing.T) {
	s := New()
	ctx := context.Background()
	txn, _ := s.InsertTransaction(ctx, core.Transaction{OwnerID: "u1", Title: "before"})

	txn.Title = "after"
	if err := s.SaveTransaction(ctx, txn); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, _ := s.GetTransaction(ctx, txn.ID)
	if got == nil || got.Title != "after" {
		t.Fatalf("save not applied: %+v", got)
	}

	if err := s.DeleteTransaction(ctx, txn.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	gone, _ := s.GetTransaction(ctx, txn.ID)
	if gone != nil {
		t.Fatalf("expected record gone, got %+v", gone)
	}
}

func TestBudgetFilterByDate(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, _ = s.InsertBudget(ctx, core.Budget{OwnerID: "u1", Date: "2024/5", Amount: 1000})
	_, _ = s.InsertBudget(ctx, core.Budget{OwnerID: "u1", Date: "2024/6", Amount: 1200})
	_, _ = s.InsertBudget(ctx, core.Budget{OwnerID: "u2", Date: "2024/5", Amount: 900})

	got, err := s.FindBudgets(ctx, store.BudgetFilter{OwnerID: "u1", Date: "2024/5"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 1 || got[0].Amount != 1000 {
		t.Fatalf("wrong budgets: %+v", got)
	}
}

func TestFindUserByEmail(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, _ = s.InsertUser(ctx, core.User{Name: "Ada", Email: "ada@example.com"})

	got, err := s.FindByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got == nil || got.Name != "Ada" {
		t.Fatalf("expected user, got %+v", got)
	}

	miss, _ := s.FindByEmail(ctx, "nobody@example.com")
	if miss != nil {
		t.Fatalf("expected nil for unknown email, got %+v", miss)
	}
}
