package core

// MonthSummary aggregates one owner's transactions for a single month key.
type MonthSummary struct {
	Month        string  `json:"month"`
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	Balance      float64 `json:"balance"`
}

// MonthDetails partitions one month's transactions by type. Both slices are
// always non-nil so callers serialize empty lists, never null.
type MonthDetails struct {
	Income  []Transaction `json:"income"`
	Expense []Transaction `json:"expense"`
}

// Summarize totals the given transactions into income and expense buckets.
// The balance is clamped at zero when expenses exceed income; months in the
// red report 0, not a negative number.
func Summarize(month string, txns []Transaction) MonthSummary {
	s := MonthSummary{Month: month}
	for _, t := range txns {
		switch t.Type {
		case Income:
			s.TotalIncome += t.Amount
		case Expense:
			s.TotalExpense += t.Amount
		}
	}
	if s.TotalIncome > s.TotalExpense {
		s.Balance = s.TotalIncome - s.TotalExpense
	}
	return s
}

// Partition splits transactions into income and expense lists, preserving
// input order. Records with an unknown type are dropped.
func Partition(txns []Transaction) MonthDetails {
	d := MonthDetails{
		Income:  []Transaction{},
		Expense: []Transaction{},
	}
	for _, t := range txns {
		switch t.Type {
		case Income:
			d.Income = append(d.Income, t)
		case Expense:
			d.Expense = append(d.Expense, t)
		}
	}
	return d
}
