package csvfile

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/florin-dev/florin/internal/model"
)

// AccountsHeader is the CSV header for accounts.csv.
const AccountsHeader = "account_id,user_id,account_name,account_type,balance,mask,created_at,updated_at"

const (
	acctNumFields  = 8
	acctColID      = 0
	acctColUser    = 1
	acctColName    = 2
	acctColType    = 3
	acctColBalance = 4
	acctColMask    = 5
	acctColCreated = 6
	acctColUpdated = 7
)

// TransactionsHeader is the CSV header for transactions.csv.
const TransactionsHeader = "transaction_id,user_id,account_id,type,amount,date,description,category,parent_category,note,tags,account_mask,status,reference,recurring,excluded,created_at,updated_at"

const (
	txnNumFields    = 18
	txnColID        = 0
	txnColUser      = 1
	txnColAccount   = 2
	txnColType      = 3
	txnColAmount    = 4
	txnColDate      = 5
	txnColDesc      = 6
	txnColCategory  = 7
	txnColParentCat = 8
	txnColNote      = 9
	txnColTags      = 10
	txnColMask      = 11
	txnColStatus    = 12
	txnColRef       = 13
	txnColRecurring = 14
	txnColExcluded  = 15
	txnColCreated   = 16
	txnColUpdated   = 17
)

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(a model.Account) []string {
	row := make([]string, acctNumFields)
	row[acctColID] = a.ID
	row[acctColUser] = a.UserID
	row[acctColName] = a.Name
	row[acctColType] = string(a.Type)
	row[acctColBalance] = a.Balance
	row[acctColMask] = a.Mask
	row[acctColCreated] = a.CreatedAt.Format(time.RFC3339)
	row[acctColUpdated] = a.UpdatedAt.Format(time.RFC3339)
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != acctNumFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", acctNumFields, len(record))
	}

	created, err := time.Parse(time.RFC3339, record[acctColCreated])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing created_at %q: %w", record[acctColCreated], err)
	}
	updated, err := time.Parse(time.RFC3339, record[acctColUpdated])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing updated_at %q: %w", record[acctColUpdated], err)
	}

	return model.Account{
		ID:        record[acctColID],
		UserID:    record[acctColUser],
		Name:      record[acctColName],
		Type:      model.AccountType(record[acctColType]),
		Balance:   record[acctColBalance],
		Mask:      record[acctColMask],
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, txnNumFields)
	row[txnColID] = t.ID
	row[txnColUser] = t.UserID
	row[txnColAccount] = t.AccountID
	row[txnColType] = string(t.Type)
	row[txnColAmount] = t.Amount.String()
	row[txnColDate] = t.Date.Format(time.RFC3339)
	row[txnColDesc] = t.Description
	row[txnColCategory] = t.Category
	row[txnColParentCat] = t.ParentCategory
	row[txnColNote] = t.Note
	row[txnColTags] = t.Tags
	row[txnColMask] = t.AccountMask
	row[txnColStatus] = t.Status
	row[txnColRef] = t.Reference
	row[txnColRecurring] = strconv.FormatBool(t.Recurring)
	row[txnColExcluded] = strconv.FormatBool(t.Excluded)
	row[txnColCreated] = t.CreatedAt.Format(time.RFC3339)
	row[txnColUpdated] = t.UpdatedAt.Format(time.RFC3339)
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != txnNumFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", txnNumFields, len(record))
	}

	amount, err := decimal.NewFromString(record[txnColAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[txnColAmount], err)
	}
	date, err := time.Parse(time.RFC3339, record[txnColDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[txnColDate], err)
	}
	created, err := time.Parse(time.RFC3339, record[txnColCreated])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing created_at %q: %w", record[txnColCreated], err)
	}
	updated, err := time.Parse(time.RFC3339, record[txnColUpdated])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing updated_at %q: %w", record[txnColUpdated], err)
	}

	return model.Transaction{
		ID:             record[txnColID],
		UserID:         record[txnColUser],
		AccountID:      record[txnColAccount],
		Type:           model.TransactionType(record[txnColType]),
		Amount:         amount,
		Date:           date,
		Description:    record[txnColDesc],
		Category:       record[txnColCategory],
		ParentCategory: record[txnColParentCat],
		Note:           record[txnColNote],
		Tags:           record[txnColTags],
		AccountMask:    record[txnColMask],
		Status:         record[txnColStatus],
		Reference:      record[txnColRef],
		Recurring:      record[txnColRecurring] == "true",
		Excluded:       record[txnColExcluded] == "true",
		CreatedAt:      created,
		UpdatedAt:      updated,
	}, nil
}
