package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/florin-dev/florin/internal/accounts"
	"github.com/florin-dev/florin/internal/model"
)

const (
	accountsFile     = "accounts.csv"
	transactionsFile = "transactions.csv"
)

// Store persists accounts and transactions as CSV files in a data
// directory. It implements the resolver's and writer's store
// interfaces; each bulk call is one file operation.
type Store struct {
	mu  sync.Mutex
	dir string
}

// Open creates a Store rooted at dir, creating the directory if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// FindByNames returns the user's accounts whose names are in names.
func (s *Store) FindByNames(ctx context.Context, userID string, names []string) ([]model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAccounts()
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	var found []model.Account
	for _, a := range all {
		if a.UserID == userID && wanted[a.Name] {
			found = append(found, a)
		}
	}
	return found, nil
}

// CreateMany appends all accounts in one write. A (UserID, Name)
// collision with an existing row fails the whole batch with
// accounts.ErrNameTaken and writes nothing.
func (s *Store) CreateMany(ctx context.Context, accts []model.Account) ([]model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.readAccounts()
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(existing))
	for _, a := range existing {
		taken[a.UserID+"\x00"+a.Name] = true
	}
	for _, a := range accts {
		if taken[a.UserID+"\x00"+a.Name] {
			return nil, fmt.Errorf("account %q: %w", a.Name, accounts.ErrNameTaken)
		}
	}

	rows := make([][]string, len(accts))
	for i, a := range accts {
		rows[i] = MarshalAccount(a)
	}
	if err := s.appendRows(accountsFile, AccountsHeader, rows); err != nil {
		return nil, err
	}
	return accts, nil
}

// InsertMany appends transactions in one write, skipping any whose
// (UserID, Reference) is already persisted. It returns the number of
// rows actually written.
func (s *Store) InsertMany(ctx context.Context, txns []model.Transaction) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.readTransactions()
	if err != nil {
		return 0, err
	}
	seen := make(map[string]bool, len(existing))
	for _, t := range existing {
		if t.Reference != "" {
			seen[t.UserID+"\x00"+t.Reference] = true
		}
	}

	var rows [][]string
	for _, t := range txns {
		if t.Reference != "" && seen[t.UserID+"\x00"+t.Reference] {
			continue
		}
		rows = append(rows, MarshalTransaction(t))
	}
	if len(rows) == 0 {
		return 0, nil
	}
	if err := s.appendRows(transactionsFile, TransactionsHeader, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// ReadTransactions returns every persisted transaction.
func (s *Store) ReadTransactions() ([]model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readTransactions()
}

func (s *Store) readTransactions() ([]model.Transaction, error) {
	f, err := os.Open(filepath.Join(s.dir, transactionsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", transactionsFile, err)
	}
	defer f.Close()

	records, err := readAll(f, txnNumFields)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", transactionsFile, err)
	}

	var txns []model.Transaction
	for i, rec := range records {
		t, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}

func (s *Store) readAccounts() ([]model.Account, error) {
	f, err := os.Open(filepath.Join(s.dir, accountsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", accountsFile, err)
	}
	defer f.Close()

	records, err := readAll(f, acctNumFields)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", accountsFile, err)
	}

	var accts []model.Account
	for i, rec := range records {
		a, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accts = append(accts, a)
	}
	return accts, nil
}

// readAll reads every data record (header skipped) from a CSV reader.
func readAll(r io.Reader, numFields int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil
}

// appendRows appends rows to a CSV file, writing the header first when
// the file is new.
func (s *Store) appendRows(name, header string, rows [][]string) error {
	path := filepath.Join(s.dir, name)

	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	if isNew {
		if err := cw.Write(strings.Split(header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
