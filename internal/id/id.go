package id

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// New returns a fresh UUID string for a transaction or account row.
func New() string {
	return uuid.NewString()
}

// refPrefixLen bounds the description part of a reference key.
const refPrefixLen = 10

// Reference builds a deterministic natural key like
// "copilot_20231026_GROCERYSTO" from the source format, the transaction
// date and its description. Two imports of the same statement produce
// the same reference for the same row.
func Reference(format string, date time.Time, desc string) string {
	prefix := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, desc)
	prefix = strings.ToUpper(prefix)
	if len(prefix) > refPrefixLen {
		prefix = prefix[:refPrefixLen]
	}
	return fmt.Sprintf("%s_%s_%s", format, date.Format("20060102"), prefix)
}
