package model

import "time"

// AccountType classifies imported accounts. CSV imports always create
// checking accounts; the richer types exist for accounts that arrive
// through other channels.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeInvestment AccountType = "investment"
)

// Account is a bank account owned by a user. Uniqueness is enforced on
// (UserID, Name) by the store.
type Account struct {
	ID        string
	UserID    string
	Name      string
	Type      AccountType
	Balance   string
	Mask      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
