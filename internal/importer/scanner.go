package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/florin-dev/florin/internal/model"
)

// Result is the outcome of parsing one CSV data row: either a converted
// transaction or a row-scoped error. A Result with a non-nil Err never
// carries a transaction.
type Result struct {
	Line        int
	Format      Format
	AccountName string
	Transaction model.Transaction
	Err         *RowError
}

// Scanner streams a bank statement CSV, detecting the bank format and
// converting rows one at a time. It follows the bufio.Scanner idiom:
//
//	s := importer.NewScanner(r, userID)
//	for s.Scan() {
//		res := s.Result()
//		...
//	}
//	if err := s.Err(); err != nil { ... }
//
// Row-level conversion failures surface through Result.Err and do not
// stop the scan; only structural CSV failures terminate it. The scan is
// a single forward pass and is not restartable.
type Scanner struct {
	cr      *csv.Reader
	userID  string
	headers []string
	line    int
	cur     Result
	err     error
	started bool
}

// NewScanner creates a Scanner over raw CSV bytes for the given importing
// user. A header row is required; each subsequent row is detected and
// converted independently.
func NewScanner(r io.Reader, userID string) *Scanner {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	return &Scanner{cr: cr, userID: userID}
}

// Scan advances to the next data row. It returns false at end of input
// or on a structural CSV error; check Err to tell the two apart.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}

	if !s.started {
		s.started = true
		if err := s.readHeader(); err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = err
			}
			return false
		}
	}

	for {
		record, err := s.cr.Read()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = fmt.Errorf("reading csv row: %w", err)
			}
			return false
		}

		if isBlank(record) {
			continue
		}

		s.line++
		s.cur = s.convert(record)
		return true
	}
}

// Result returns the outcome of the most recent successful Scan.
func (s *Scanner) Result() Result {
	return s.cur
}

// Err returns the structural error that terminated the scan, or nil on a
// clean end of input. Row-level errors are never reported here.
func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) readHeader() error {
	record, err := s.cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return fmt.Errorf("reading csv header: %w", err)
	}

	s.headers = make([]string, len(record))
	for i, h := range record {
		s.headers[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return nil
}

func (s *Scanner) convert(record []string) Result {
	row := make(Row, len(s.headers))
	for i, h := range s.headers {
		if i < len(record) {
			row[h] = strings.TrimSpace(record[i])
		}
	}

	format := Detect(s.headers)
	if format == FormatUnknown {
		return Result{Line: s.line, Format: format, Err: &RowError{
			Line:   s.line,
			Format: FormatUnknown,
			Reason: fmt.Sprintf("headers match no known bank format: %s", strings.Join(s.headers, ",")),
		}}
	}

	txn, err := Convert(format, row, s.userID)
	if err != nil {
		return Result{Line: s.line, Format: format, Err: &RowError{
			Line:   s.line,
			Format: format,
			Reason: err.Error(),
		}}
	}

	return Result{Line: s.line, Format: format, AccountName: txn.AccountName, Transaction: txn}
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
