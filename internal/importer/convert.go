package importer

import (
	"errors"
	"fmt"

	"github.com/florin-dev/florin/internal/model"
)

// ErrUnknownFormat marks a row whose headers match no known bank format.
var ErrUnknownFormat = errors.New("unknown bank format")

// Convert runs the adapter for a detected format against one row.
// Every Format constant must have a case here.
func Convert(format Format, row Row, userID string) (model.Transaction, error) {
	switch format {
	case FormatCopilot:
		return convertCopilot(row, userID)
	case FormatCapitalOne:
		return convertCapitalOne(row, userID)
	case FormatUnknown:
		return model.Transaction{}, ErrUnknownFormat
	default:
		return model.Transaction{}, fmt.Errorf("no adapter registered for format %q", format)
	}
}
