package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/florin-dev/florin/internal/accounts"
	"github.com/florin-dev/florin/internal/importer"
	"github.com/florin-dev/florin/internal/model"
	"github.com/florin-dev/florin/internal/transactions"
)

// Summary aggregates the result of one import run. Errors preserves the
// original row order for user-facing diagnostics.
type Summary struct {
	TotalRows int
	Converted int
	Persisted int
	Errors    []importer.RowError
}

// ErrorCount returns the number of rows that failed conversion.
func (s Summary) ErrorCount() int {
	return len(s.Errors)
}

// ProgressFunc is called periodically during the parse phase with the
// number of rows processed so far and the bytes consumed from the input.
type ProgressFunc func(rowsProcessed int, bytesRead int64)

// defaultProgressEvery is the row interval between progress callbacks.
const defaultProgressEvery = 100

// Importer orchestrates one statement import: stream-parse every row,
// resolve accounts in one batch, attach account IDs, bulk-write, and
// summarize. Each run is a single pass over one uploaded file; nothing
// is cached across runs.
type Importer struct {
	resolver *accounts.Resolver
	writer   *transactions.Writer

	// Progress, when set, is invoked every ProgressEvery rows and once
	// at end of parse. Optional; correctness does not depend on it.
	Progress      ProgressFunc
	ProgressEvery int
}

// New creates an Importer over the given resolver and writer.
func New(resolver *accounts.Resolver, writer *transactions.Writer) *Importer {
	return &Importer{
		resolver:      resolver,
		writer:        writer,
		ProgressEvery: defaultProgressEvery,
	}
}

// Import runs the full pipeline for one CSV statement. Row-level
// failures accumulate in the Summary; only structural CSV errors and
// store failures (account resolution, bulk write) fail the run. On
// failure nothing has been persisted: writes happen strictly after all
// parsing and resolution succeed.
func (imp *Importer) Import(ctx context.Context, r io.Reader, userID string) (Summary, error) {
	var summary Summary

	counting := &countingReader{r: r}
	s := importer.NewScanner(counting, userID)

	var parsed []model.Transaction
	var names []string

	for s.Scan() {
		if err := ctx.Err(); err != nil {
			return Summary{}, fmt.Errorf("import canceled: %w", err)
		}

		res := s.Result()
		summary.TotalRows++
		if imp.Progress != nil && summary.TotalRows%imp.progressEvery() == 0 {
			imp.Progress(summary.TotalRows, counting.n)
		}

		if res.Err != nil {
			summary.Errors = append(summary.Errors, *res.Err)
			continue
		}
		parsed = append(parsed, res.Transaction)
		names = append(names, res.AccountName)
	}
	if err := s.Err(); err != nil {
		return Summary{}, fmt.Errorf("parsing statement: %w", err)
	}
	if imp.Progress != nil {
		imp.Progress(summary.TotalRows, counting.n)
	}
	summary.Converted = len(parsed)

	if len(parsed) == 0 {
		return summary, nil
	}

	resolved, err := imp.resolver.Resolve(ctx, userID, names)
	if err != nil {
		return Summary{}, fmt.Errorf("resolving accounts: %w", err)
	}

	for i := range parsed {
		acct, ok := resolved[parsed[i].AccountName]
		if !ok {
			return Summary{}, fmt.Errorf("no account resolved for %q", parsed[i].AccountName)
		}
		parsed[i].AccountID = acct.ID
	}

	persisted, err := imp.writer.WriteMany(ctx, parsed)
	if err != nil {
		return Summary{}, fmt.Errorf("writing transactions: %w", err)
	}
	summary.Persisted = persisted

	return summary, nil
}

func (imp *Importer) progressEvery() int {
	if imp.ProgressEvery > 0 {
		return imp.ProgressEvery
	}
	return defaultProgressEvery
}

// countingReader tracks bytes consumed from the underlying reader so
// progress can report input position without buffering the file.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
