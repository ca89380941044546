package importlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the import log: the outcome of importing a single
// statement file.
type Entry struct {
	Timestamp time.Time
	File      string
	UserID    string
	TotalRows int
	Converted int
	Failed    int
	Persisted int
	Duration  time.Duration
}

// Header is the CSV header for import-log.csv.
const Header = "timestamp,file,user_id,total_rows,converted,failed,persisted,duration_ms"

const (
	numFields    = 8
	logDir       = "logs"
	logFile      = "logs/import-log.csv"
	colTimestamp = 0
	colFile      = 1
	colUserID    = 2
	colTotal     = 3
	colConverted = 4
	colFailed    = 5
	colPersisted = 6
	colDuration  = 7
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colFile] = e.File
	row[colUserID] = e.UserID
	row[colTotal] = strconv.Itoa(e.TotalRows)
	row[colConverted] = strconv.Itoa(e.Converted)
	row[colFailed] = strconv.Itoa(e.Failed)
	row[colPersisted] = strconv.Itoa(e.Persisted)
	row[colDuration] = strconv.FormatInt(e.Duration.Milliseconds(), 10)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	total, err := strconv.Atoi(record[colTotal])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing total_rows %q: %w", record[colTotal], err)
	}
	converted, err := strconv.Atoi(record[colConverted])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing converted %q: %w", record[colConverted], err)
	}
	failed, err := strconv.Atoi(record[colFailed])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing failed %q: %w", record[colFailed], err)
	}
	persisted, err := strconv.Atoi(record[colPersisted])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing persisted %q: %w", record[colPersisted], err)
	}
	ms, err := strconv.ParseInt(record[colDuration], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing duration_ms %q: %w", record[colDuration], err)
	}

	return Entry{
		Timestamp: ts,
		File:      record[colFile],
		UserID:    record[colUserID],
		TotalRows: total,
		Converted: converted,
		Failed:    failed,
		Persisted: persisted,
		Duration:  time.Duration(ms) * time.Millisecond,
	}, nil
}

// Append writes entries to <projectRoot>/logs/import-log.csv, creating
// the file and header if needed.
func Append(projectRoot string, entries []Entry) error {
	dir := filepath.Join(projectRoot, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(projectRoot, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <projectRoot>/logs/import-log.csv.
// Returns an empty slice if the file does not exist.
func Read(projectRoot string) ([]Entry, error) {
	path := filepath.Join(projectRoot, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
