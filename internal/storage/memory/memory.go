package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/florin-dev/florin/internal/accounts"
	"github.com/florin-dev/florin/internal/model"
)

// Store is an in-memory implementation of the account and transaction
// stores. It backs dry runs and tests; it enforces the same
// (UserID, Name) uniqueness a relational store would.
type Store struct {
	mu           sync.Mutex
	accounts     []model.Account
	transactions []model.Transaction

	// FailInserts makes InsertMany fail, for exercising bulk-write
	// failure paths in tests.
	FailInserts error
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// FindByNames returns the user's accounts whose names are in names.
func (s *Store) FindByNames(ctx context.Context, userID string, names []string) ([]model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	var found []model.Account
	for _, a := range s.accounts {
		if a.UserID == userID && wanted[a.Name] {
			found = append(found, a)
		}
	}
	return found, nil
}

// CreateMany inserts all accounts, or none: a uniqueness conflict on any
// row fails the whole batch with accounts.ErrNameTaken.
func (s *Store) CreateMany(ctx context.Context, accts []model.Account) ([]model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range accts {
		for _, existing := range s.accounts {
			if existing.UserID == a.UserID && existing.Name == a.Name {
				return nil, fmt.Errorf("account %q: %w", a.Name, accounts.ErrNameTaken)
			}
		}
	}

	s.accounts = append(s.accounts, accts...)
	return accts, nil
}

// InsertMany appends transactions in one operation, skipping any whose
// (UserID, Reference) is already persisted. It returns the number of
// rows actually written.
func (s *Store) InsertMany(ctx context.Context, txns []model.Transaction) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailInserts != nil {
		return 0, s.FailInserts
	}

	seen := make(map[string]bool, len(s.transactions))
	for _, t := range s.transactions {
		if t.Reference != "" {
			seen[t.UserID+"\x00"+t.Reference] = true
		}
	}

	inserted := 0
	for _, t := range txns {
		if t.Reference != "" && seen[t.UserID+"\x00"+t.Reference] {
			continue
		}
		s.transactions = append(s.transactions, t)
		inserted++
	}
	return inserted, nil
}

// Accounts returns a copy of all stored accounts.
func (s *Store) Accounts() []model.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Transactions returns a copy of all stored transactions.
func (s *Store) Transactions() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Seed adds accounts directly, bypassing uniqueness checks. Test setup
// only.
func (s *Store) Seed(accts ...model.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append(s.accounts, accts...)
}
