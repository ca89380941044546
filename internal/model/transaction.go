package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the canonical three-way classification every bank
// format collapses into.
type TransactionType string

const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
)

// Transaction is the normalized record produced by a bank format adapter.
// After creation it is only mutated once, to attach AccountID when the
// account resolver has run.
type Transaction struct {
	ID     string
	UserID string

	// AccountName is the bank-reported label the row came from. It is
	// resolved to AccountID before the record is persisted.
	AccountName string
	AccountID   string

	Type   TransactionType
	Amount decimal.Decimal // sign-normalized: income >= 0, expense/transfer <= 0
	Date   time.Time

	Description    string
	Category       string
	ParentCategory string
	Note           string
	Tags           string
	AccountMask    string
	Status         string
	Reference      string
	Recurring      bool
	Excluded       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeSign coerces amount so its sign agrees with typ: expenses and
// transfers end up non-positive, income non-negative. Zero stays zero.
func NormalizeSign(typ TransactionType, amount decimal.Decimal) decimal.Decimal {
	switch typ {
	case TypeIncome:
		if amount.IsNegative() {
			return amount.Neg()
		}
	default:
		if amount.IsPositive() {
			return amount.Neg()
		}
	}
	return amount
}
