package importer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/florin-dev/florin/internal/id"
	"github.com/florin-dev/florin/internal/model"
)

const capitalOneDateFormat = "01/02/2006"

// convertCapitalOne maps a Capital One export row to a canonical
// Transaction. Capital One reports no account label, only an account
// number, so the resolver-facing name is derived from it.
func convertCapitalOne(row Row, userID string) (model.Transaction, error) {
	date, err := time.Parse(capitalOneDateFormat, row.Get("transaction date"))
	if err != nil {
		return model.Transaction{}, &ConversionError{
			Format: FormatCapitalOne, Field: "transaction date", Value: row.Get("transaction date"), Err: err,
		}
	}

	amount, err := decimal.NewFromString(row.Get("transaction amount"))
	if err != nil {
		return model.Transaction{}, &ConversionError{
			Format: FormatCapitalOne, Field: "transaction amount", Value: row.Get("transaction amount"), Err: err,
		}
	}

	number := row.Get("account number")
	if number == "" {
		return model.Transaction{}, &ConversionError{
			Format: FormatCapitalOne, Field: "account number", Value: "", Err: errAccountMissing,
		}
	}

	typ := classifyCapitalOneType(row.Get("transaction type"))
	desc := row.Get("transaction description")
	now := time.Now()

	return model.Transaction{
		ID:          id.New(),
		UserID:      userID,
		AccountName: "Capital One " + number,
		Type:        typ,
		Amount:      model.NormalizeSign(typ, amount),
		Date:        date,
		Description: desc,
		AccountMask: lastFour(number),
		Reference:   id.Reference(string(FormatCapitalOne), date, desc),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// classifyCapitalOneType collapses Capital One's Credit/Debit vocabulary:
// credits are income, transfers are transfers, everything else (Debit
// included) is an expense.
func classifyCapitalOneType(raw string) model.TransactionType {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "credit"):
		return model.TypeIncome
	case strings.Contains(lower, "transfer"):
		return model.TypeTransfer
	default:
		return model.TypeExpense
	}
}

func lastFour(accountNumber string) string {
	if len(accountNumber) <= 4 {
		return accountNumber
	}
	return accountNumber[len(accountNumber)-4:]
}
