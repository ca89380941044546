package importer

import "strings"

// Format identifies which bank's export shape a CSV row uses.
type Format string

const (
	FormatCopilot    Format = "copilot"
	FormatCapitalOne Format = "capital-one"
	FormatUnknown    Format = "unknown"
)

// Signature columns, all compared case-insensitively.
var (
	capitalOneSignature = []string{"transaction date", "transaction amount", "transaction description"}
	copilotSignature    = []string{"date", "name", "amount", "type"}
)

// Detect inspects a row's column names and returns the matching Format,
// or FormatUnknown. It never fails: unrecognized headers simply yield
// FormatUnknown so the surrounding stream keeps flowing.
//
// Signatures are checked most-distinctive first: the capital-one "transaction
// *"-prefixed columns cannot collide with other formats, while copilot's
// generic date/amount columns could.
func Detect(headers []string) Format {
	set := make(map[string]bool, len(headers))
	for _, h := range headers {
		set[strings.ToLower(strings.TrimSpace(h))] = true
	}

	if hasAll(set, capitalOneSignature) {
		return FormatCapitalOne
	}
	if hasAll(set, copilotSignature) {
		return FormatCopilot
	}
	return FormatUnknown
}

func hasAll(set map[string]bool, cols []string) bool {
	for _, c := range cols {
		if !set[c] {
			return false
		}
	}
	return true
}
