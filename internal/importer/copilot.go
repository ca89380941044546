package importer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/florin-dev/florin/internal/id"
	"github.com/florin-dev/florin/internal/model"
)

const copilotDateFormat = "2006-01-02"

// convertCopilot maps a Copilot export row to a canonical Transaction.
//
// Copilot's type vocabulary ("regular", "income", "internal transfer", ...)
// collapses to the canonical three-way type: anything mentioning income is
// income, anything mentioning transfer is a transfer, and everything else,
// including labels we have never seen, is conservatively an expense.
func convertCopilot(row Row, userID string) (model.Transaction, error) {
	date, err := time.Parse(copilotDateFormat, row.Get("date"))
	if err != nil {
		return model.Transaction{}, &ConversionError{
			Format: FormatCopilot, Field: "date", Value: row.Get("date"), Err: err,
		}
	}

	amount, err := decimal.NewFromString(row.Get("amount"))
	if err != nil {
		return model.Transaction{}, &ConversionError{
			Format: FormatCopilot, Field: "amount", Value: row.Get("amount"), Err: err,
		}
	}

	account := row.Get("account")
	if account == "" {
		return model.Transaction{}, &ConversionError{
			Format: FormatCopilot, Field: "account", Value: "", Err: errAccountMissing,
		}
	}

	typ := classifyCopilotType(row.Get("type"))
	desc := row.Get("name")
	now := time.Now()

	return model.Transaction{
		ID:             id.New(),
		UserID:         userID,
		AccountName:    account,
		Type:           typ,
		Amount:         model.NormalizeSign(typ, amount),
		Date:           date,
		Description:    desc,
		Category:       row.Get("category"),
		ParentCategory: row.Get("parent category"),
		Note:           row.Get("note"),
		Tags:           row.Get("tags"),
		AccountMask:    row.Get("account mask"),
		Status:         row.Get("status"),
		Reference:      id.Reference(string(FormatCopilot), date, desc),
		Recurring:      row.Bool("recurring"),
		Excluded:       row.Bool("excluded"),
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func classifyCopilotType(raw string) model.TransactionType {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "income"):
		return model.TypeIncome
	case strings.Contains(lower, "transfer"):
		return model.TypeTransfer
	default:
		// "regular" and any unrecognized label. New labels a bank adds
		// must not be dropped, so they classify as expenses.
		return model.TypeExpense
	}
}
