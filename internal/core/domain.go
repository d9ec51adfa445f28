package core

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

const (
	Income  TxnType = "income"
	Expense TxnType = "expense"
)

type (
	// TxnType distinguishes money coming in from money going out.
	TxnType string

	// Identity is the claim set carried by an issued token. Once minted it is
	// trusted as-is until expiry and never re-checked against stored users.
	Identity struct {
		ID    string `json:"userId"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	// User is the persisted account record. The password is stored only in
	// hashed form and never leaves the users package.
	User struct {
		ID           string    `json:"id"`
		Name         string    `json:"name"`
		Email        string    `json:"email"`
		PasswordHash string    `json:"-"`
		CreatedAt    time.Time `json:"createdAt"`
	}

	// Transaction is a single ledger entry owned by exactly one user.
	// Within one owner the tuple (Type, Category, Date) is unique; a second
	// create with the same tuple is answered with the existing record.
	Transaction struct {
		ID        string    `json:"id"`
		OwnerID   string    `json:"userId"`
		Title     string    `json:"title"`
		Amount    float64   `json:"amount"`
		Type      TxnType   `json:"type"`
		Category  string    `json:"category"`
		Date      string    `json:"date"`
		CreatedAt time.Time `json:"createdAt"`
	}

	// Budget is a per-month spending target. Within one owner the Date is
	// unique: at most one budget per month.
	Budget struct {
		ID        string    `json:"id"`
		OwnerID   string    `json:"userId"`
		Amount    float64   `json:"amount"`
		Date      string    `json:"date"`
		Title     string    `json:"title"`
		CreatedAt time.Time `json:"createdAt"`
	}
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
)

// monthKeyRe matches the calendar-month partition key: YYYY/M or YYYY/MM.
var monthKeyRe = regexp.MustCompile(`^\d{4}/\d{1,2}$`)

// ValidateMonthKey checks the month-key date format used to partition
// transactions and budgets. Keys are compared as opaque strings, so "2024/5"
// and "2024/05" are distinct partitions.
func ValidateMonthKey(date string) error {
	if !monthKeyRe.MatchString(date) {
		return ErrInvalidInput
	}
	return nil
}

// Valid reports whether t is one of the two known transaction types.
func (t TxnType) Valid() bool {
	return t == Income || t == Expense
}

func (i Identity) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return errors.New("identity missing id")
	}
	return nil
}
