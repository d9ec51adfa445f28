package ledger

import (
	"context"
	"errors"
	"testing"

	"finled/internal/core"
	"finled/internal/events"
	"finled/internal/store"
	"finled/internal/store/memory"
)

var (
	alice = core.Identity{ID: "alice", Name: "Alice", Email: "alice@example.com"}
	bob   = core.Identity{ID: "bob", Name: "Bob", Email: "bob@example.com"}
)

func newService() (*Service, *memory.Store) {
	st := memory.New()
	return NewService(st, st, nil), st
}

func validInput() TransactionInput {
	return TransactionInput{
		Title:    "Salary",
		Amount:   500,
		Type:     core.Income,
		Category: "work",
		Date:     "2024/5",
	}
}

func TestCreateTransaction(t *testing.T) {
	svc, _ := newService()
	res, err := svc.CreateTransaction(context.Background(), alice, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.AlreadyExists {
		t.Fatal("first create must not be a duplicate")
	}
	if res.Transaction.ID == "" || res.Transaction.OwnerID != alice.ID {
		t.Fatalf("bad record: %+v", res.Transaction)
	}
}

func TestCreateTransactionMissingFields(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	cases := []func(*TransactionInput){
		func(in *TransactionInput) { in.Title = "" },
		func(in *TransactionInput) { in.Amount = 0 },
		func(in *TransactionInput) { in.Type = "" },
		func(in *TransactionInput) { in.Category = "" },
		func(in *TransactionInput) { in.Date = "" },
	}
	for i, mutate := range cases {
		in := validInput()
		mutate(&in)
		if _, err := svc.CreateTransaction(ctx, alice, in); !errors.Is(err, core.ErrInvalidInput) {
			t.Errorf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestCreateTransactionRejectsUnknownType(t *testing.T) {
	svc, _ := newService()
	in := validInput()
	in.Type = "transfer"
	if _, err := svc.CreateTransaction(context.Background(), alice, in); !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateTransactionSoftDuplicate(t *testing.T) {
	svc, st := newService()
	ctx := context.Background()

	first, err := svc.CreateTransaction(ctx, alice, validInput())
	if err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Same (type, category, date) key; differing title and amount do not
	// make it a new record.
	dup := validInput()
	dup.Title = "Bonus"
	dup.Amount = 999

	second, err := svc.CreateTransaction(ctx, alice, dup)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if !second.AlreadyExists {
		t.Fatal("second create must report the existing record")
	}
	if second.Transaction.ID != first.Transaction.ID {
		t.Fatalf("duplicate returned a different record: %s vs %s",
			second.Transaction.ID, first.Transaction.ID)
	}

	all, _ := st.FindTransactions(ctx, store.TransactionFilter{OwnerID: alice.ID})
	if len(all) != 1 {
		t.Fatalf("store has %d records, want exactly 1", len(all))
	}
}

func TestCreateTransactionDifferentOwnersNoDedup(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	if _, err := svc.CreateTransaction(ctx, alice, validInput()); err != nil {
		t.Fatalf("alice create: %v", err)
	}
	res, err := svc.CreateTransaction(ctx, bob, validInput())
	if err != nil {
		t.Fatalf("bob create: %v", err)
	}
	if res.AlreadyExists {
		t.Fatal("dedup must be scoped per owner")
	}
}

func TestGetTransactionOwnership(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	res, _ := svc.CreateTransaction(ctx, alice, validInput())

	if _, err := svc.GetTransaction(ctx, bob, res.Transaction.ID); !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign record, got %v", err)
	}
	if _, err := svc.GetTransaction(ctx, alice, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	got, err := svc.GetTransaction(ctx, alice, res.Transaction.ID)
	if err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if got.ID != res.Transaction.ID {
		t.Fatalf("got wrong record: %+v", got)
	}
}

func TestUpdateTransactionForeignOwnerForbidden(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	res, _ := svc.CreateTransaction(ctx, alice, validInput())

	_, err := svc.UpdateTransaction(ctx, bob, res.Transaction.ID, TransactionInput{Title: "stolen"})
	if !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	got, _ := svc.GetTransaction(ctx, alice, res.Transaction.ID)
	if got.Title != "Salary" {
		t.Fatalf("foreign update must not change the record: %+v", got)
	}
}

func TestDeleteTransactionForeignOwnerForbidden(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	res, _ := svc.CreateTransaction(ctx, alice, validInput())

	if err := svc.DeleteTransaction(ctx, bob, res.Transaction.ID); !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.GetTransaction(ctx, alice, res.Transaction.ID); err != nil {
		t.Fatalf("record must survive foreign delete: %v", err)
	}

	if err := svc.DeleteTransaction(ctx, alice, res.Transaction.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := svc.GetTransaction(ctx, alice, res.Transaction.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestUpdateTransactionIgnoresZeroValues(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	res, _ := svc.CreateTransaction(ctx, alice, validInput())

	// A zero amount means "leave unchanged", not "set to zero".
	updated, err := svc.UpdateTransaction(ctx, alice, res.Transaction.ID, TransactionInput{
		Amount: 0,
		Title:  "Renamed",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Amount != 500 {
		t.Fatalf("amount = %v, want 500 (zero must be ignored)", updated.Amount)
	}
	if updated.Title != "Renamed" {
		t.Fatalf("title = %q, want Renamed", updated.Title)
	}

	stored, _ := svc.GetTransaction(ctx, alice, res.Transaction.ID)
	if stored.Amount != 500 {
		t.Fatalf("stored amount = %v, want 500", stored.Amount)
	}
}

func TestUpdateTransactionPartialFields(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	res, _ := svc.CreateTransaction(ctx, alice, validInput())

	updated, err := svc.UpdateTransaction(ctx, alice, res.Transaction.ID, TransactionInput{
		Amount: 750,
		Date:   "2024/6",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Amount != 750 || updated.Date != "2024/6" {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.Title != "Salary" || updated.Type != core.Income || updated.Category != "work" {
		t.Fatalf("omitted fields changed: %+v", updated)
	}
}

func TestListTransactionsEmptyOwner(t *testing.T) {
	svc, _ := newService()
	got, err := svc.ListTransactions(context.Background(), alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty sequence, got %#v", got)
	}
}

func TestListTransactionsScopedToOwner(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	_, _ = svc.CreateTransaction(ctx, alice, validInput())
	bobIn := validInput()
	bobIn.Category = "freelance"
	_, _ = svc.CreateTransaction(ctx, bob, bobIn)

	got, err := svc.ListTransactions(ctx, alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].OwnerID != alice.ID {
		t.Fatalf("list leaked records: %+v", got)
	}
}

func TestMonthSummary(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	seed := []TransactionInput{
		{Title: "Salary", Amount: 500, Type: core.Income, Category: "work", Date: "2024/5"},
		{Title: "Gift", Amount: 200, Type: core.Income, Category: "family", Date: "2024/5"},
		{Title: "Rent", Amount: 300, Type: core.Expense, Category: "housing", Date: "2024/5"},
		{Title: "Old rent", Amount: 999, Type: core.Expense, Category: "housing", Date: "2024/4"},
	}
	for _, in := range seed {
		if _, err := svc.CreateTransaction(ctx, alice, in); err != nil {
			t.Fatalf("seed %q: %v", in.Title, err)
		}
	}

	s, err := svc.MonthSummary(ctx, alice, "2024/5")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.TotalIncome != 700 || s.TotalExpense != 300 || s.Balance != 400 {
		t.Fatalf("summary = %+v, want 700/300/400", s)
	}
}

func TestMonthSummaryClampsBalance(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	_, _ = svc.CreateTransaction(ctx, alice, TransactionInput{Title: "Pay", Amount: 100, Type: core.Income, Category: "work", Date: "2024/5"})
	_, _ = svc.CreateTransaction(ctx, alice, TransactionInput{Title: "Car", Amount: 500, Type: core.Expense, Category: "auto", Date: "2024/5"})

	s, err := svc.MonthSummary(ctx, alice, "2024/5")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.Balance != 0 {
		t.Fatalf("balance = %v, want 0 (clamped)", s.Balance)
	}
}

func TestMonthSummaryRejectsBadDate(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	for _, date := range []string{"2024", "May-2024", "2024/5/1", ""} {
		if _, err := svc.MonthSummary(ctx, alice, date); !errors.Is(err, core.ErrInvalidInput) {
			t.Errorf("%q: expected ErrInvalidInput, got %v", date, err)
		}
		if _, err := svc.MonthDetails(ctx, alice, date); !errors.Is(err, core.ErrInvalidInput) {
			t.Errorf("%q details: expected ErrInvalidInput, got %v", date, err)
		}
	}
}

func TestMonthDetailsPartitions(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	_, _ = svc.CreateTransaction(ctx, alice, TransactionInput{Title: "Pay", Amount: 100, Type: core.Income, Category: "work", Date: "2024/5"})
	_, _ = svc.CreateTransaction(ctx, alice, TransactionInput{Title: "Food", Amount: 50, Type: core.Expense, Category: "groceries", Date: "2024/5"})

	d, err := svc.MonthDetails(ctx, alice, "2024/5")
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if len(d.Income) != 1 || len(d.Expense) != 1 {
		t.Fatalf("partition sizes income=%d expense=%d", len(d.Income), len(d.Expense))
	}
}

func TestMonthDetailsEmptyMonth(t *testing.T) {
	svc, _ := newService()
	d, err := svc.MonthDetails(context.Background(), alice, "2024/5")
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if d.Income == nil || d.Expense == nil {
		t.Fatal("lists must be empty, not absent")
	}
}

type capturingPublisher struct {
	published []*events.LedgerEvent
	err       error
}

func (p *capturingPublisher) Publish(_ context.Context, e *events.LedgerEvent) error {
	p.published = append(p.published, e)
	return p.err
}

func TestCreatePublishesEvent(t *testing.T) {
	st := memory.New()
	pub := &capturingPublisher{}
	svc := NewService(st, st, pub)

	res, err := svc.CreateTransaction(context.Background(), alice, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(pub.published) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.published))
	}
	ev := pub.published[0]
	if ev.Kind != events.KindCreated || ev.Collection != events.CollectionTransactions || ev.RecordID != res.Transaction.ID {
		t.Fatalf("wrong event: %+v", ev)
	}
}

func TestSoftDuplicateDoesNotPublish(t *testing.T) {
	st := memory.New()
	pub := &capturingPublisher{}
	svc := NewService(st, st, pub)
	ctx := context.Background()

	_, _ = svc.CreateTransaction(ctx, alice, validInput())
	_, _ = svc.CreateTransaction(ctx, alice, validInput())
	if len(pub.published) != 1 {
		t.Fatalf("published %d events, want 1 (duplicates are silent)", len(pub.published))
	}
}

func TestPublishFailureDoesNotFailCreate(t *testing.T) {
	st := memory.New()
	pub := &capturingPublisher{err: errors.New("broker down")}
	svc := NewService(st, st, pub)

	if _, err := svc.CreateTransaction(context.Background(), alice, validInput()); err != nil {
		t.Fatalf("create must succeed despite publish failure: %v", err)
	}
}
