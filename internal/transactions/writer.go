package transactions

import (
	"context"
	"fmt"

	"github.com/florin-dev/florin/internal/model"
)

// Store persists transactions. InsertMany is a true bulk insert: one
// store round-trip per call, transactional as a whole. The store skips
// rows whose (UserID, Reference) is already persisted and reports the
// number actually written, so re-importing a statement is a no-op.
type Store interface {
	InsertMany(ctx context.Context, txns []model.Transaction) (int, error)
}

// Writer bulk-persists fully resolved transactions. It does not attempt
// partial-row recovery: a failed bulk insert fails the whole batch, and
// any retry policy belongs to the caller.
type Writer struct {
	store Store
}

// NewWriter creates a Writer backed by store.
func NewWriter(store Store) *Writer {
	return &Writer{store: store}
}

// WriteMany inserts all records in a single bulk operation and returns
// the number of rows written, which is lower than len(txns) when the
// store skipped already-imported rows. Every record must already carry an
// AccountID; an unresolved record is a programming error upstream and
// fails the batch before the store is touched.
func (w *Writer) WriteMany(ctx context.Context, txns []model.Transaction) (int, error) {
	if len(txns) == 0 {
		return 0, nil
	}

	for i, t := range txns {
		if t.AccountID == "" {
			return 0, fmt.Errorf("transaction %d (%s): no account resolved", i, t.Reference)
		}
	}

	n, err := w.store.InsertMany(ctx, txns)
	if err != nil {
		return 0, fmt.Errorf("bulk insert of %d transactions: %w", len(txns), err)
	}
	return n, nil
}
