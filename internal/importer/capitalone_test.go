package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florin-dev/florin/internal/model"
)

func capitalOneRow() Row {
	return Row{
		"account number":          "0007291378",
		"transaction date":        "10/23/2023",
		"transaction amount":      "45.00",
		"transaction type":        "Debit",
		"transaction description": "UBER EATS",
		"balance":                 "1200.00",
	}
}

func TestConvertCapitalOne_DebitIsExpense(t *testing.T) {
	txn, err := convertCapitalOne(capitalOneRow(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, model.TypeExpense, txn.Type)
	assert.Equal(t, "-45.00", txn.Amount.StringFixed(2))
	assert.Equal(t, "UBER EATS", txn.Description)
	assert.Equal(t, "Capital One 0007291378", txn.AccountName)
	assert.Equal(t, "1378", txn.AccountMask)
	assert.Equal(t, 2023, txn.Date.Year())
	assert.Equal(t, 10, int(txn.Date.Month()))
	assert.Equal(t, 23, txn.Date.Day())
}

func TestConvertCapitalOne_CreditIsIncome(t *testing.T) {
	row := capitalOneRow()
	row["transaction type"] = "Credit"
	row["transaction amount"] = "1500.00"

	txn, err := convertCapitalOne(row, "user-1")
	require.NoError(t, err)
	assert.Equal(t, model.TypeIncome, txn.Type)
	assert.Equal(t, "1500.00", txn.Amount.StringFixed(2))
}

func TestConvertCapitalOne_TransferStaysNegative(t *testing.T) {
	row := capitalOneRow()
	row["transaction type"] = "Transfer"
	row["transaction amount"] = "200.00"

	txn, err := convertCapitalOne(row, "user-1")
	require.NoError(t, err)
	assert.Equal(t, model.TypeTransfer, txn.Type)
	assert.Equal(t, "-200.00", txn.Amount.StringFixed(2))
}

func TestConvertCapitalOne_BadAmount(t *testing.T) {
	row := capitalOneRow()
	row["transaction amount"] = "12,34"

	_, err := convertCapitalOne(row, "user-1")
	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, "transaction amount", convErr.Field)
	assert.Equal(t, "12,34", convErr.Value)
}

func TestConvertCapitalOne_BadDate(t *testing.T) {
	row := capitalOneRow()
	row["transaction date"] = "2023-10-23"

	_, err := convertCapitalOne(row, "user-1")
	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, "transaction date", convErr.Field)
}

func TestConvertCapitalOne_EmptyAccountNumber(t *testing.T) {
	row := capitalOneRow()
	row["account number"] = ""

	_, err := convertCapitalOne(row, "user-1")
	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, "account number", convErr.Field)
}

func TestLastFour(t *testing.T) {
	assert.Equal(t, "1378", lastFour("0007291378"))
	assert.Equal(t, "42", lastFour("42"))
	assert.Equal(t, "", lastFour(""))
}
