package csvfile

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florin-dev/florin/internal/accounts"
	"github.com/florin-dev/florin/internal/model"
)

var testTime = time.Date(2023, 10, 26, 12, 0, 0, 0, time.UTC)

func testAccount(id, name string) model.Account {
	return model.Account{
		ID:        id,
		UserID:    "u1",
		Name:      name,
		Type:      model.AccountTypeChecking,
		Balance:   "0",
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}

func testTransaction(id string) model.Transaction {
	return model.Transaction{
		ID:          id,
		UserID:      "u1",
		AccountID:   "a1",
		Type:        model.TypeExpense,
		Amount:      decimal.RequireFromString("-123.45"),
		Date:        testTime,
		Description: "Grocery Store",
		Category:    "Groceries",
		Status:      "posted",
		Reference:   "copilot_20231026_GROCERYSTO",
		CreatedAt:   testTime,
		UpdatedAt:   testTime,
	}
}

func TestCreateMany_ThenFind(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	_, err = s.CreateMany(context.Background(), []model.Account{
		testAccount("a1", "Checking"),
		testAccount("a2", "Savings"),
	})
	require.NoError(t, err)

	found, err := s.FindByNames(context.Background(), "u1", []string{"Savings"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "a2", found[0].ID)
	assert.Equal(t, model.AccountTypeChecking, found[0].Type)
}

func TestCreateMany_Conflict(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	_, err = s.CreateMany(context.Background(), []model.Account{testAccount("a1", "Checking")})
	require.NoError(t, err)

	_, err = s.CreateMany(context.Background(), []model.Account{testAccount("a2", "Checking")})
	require.Error(t, err)
	assert.ErrorIs(t, err, accounts.ErrNameTaken)
}

func TestInsertMany_RoundTrip(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	n, err := s.InsertMany(context.Background(), []model.Transaction{testTransaction("t1")})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	txns, err := s.ReadTransactions()
	require.NoError(t, err)
	require.Len(t, txns, 1)

	got := txns[0]
	assert.Equal(t, "t1", got.ID)
	assert.Equal(t, model.TypeExpense, got.Type)
	assert.Equal(t, "-123.45", got.Amount.StringFixed(2))
	assert.True(t, testTime.Equal(got.Date))
	assert.Equal(t, "Grocery Store", got.Description)
	assert.Equal(t, "copilot_20231026_GROCERYSTO", got.Reference)
}

func TestInsertMany_AppendsAcrossCalls(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	_, err = s.InsertMany(context.Background(), []model.Transaction{testTransaction("t1")})
	require.NoError(t, err)
	_, err = s.InsertMany(context.Background(), []model.Transaction{testTransaction("t2")})
	require.NoError(t, err)

	txns, err := s.ReadTransactions()
	require.NoError(t, err)
	assert.Len(t, txns, 2)
}

func TestInsertMany_SkipsExistingReference(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	_, err = s.InsertMany(context.Background(), []model.Transaction{testTransaction("t1")})
	require.NoError(t, err)

	// Same (UserID, Reference), different row ID: already imported.
	n, err := s.InsertMany(context.Background(), []model.Transaction{testTransaction("t2")})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	txns, err := s.ReadTransactions()
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "t1", txns[0].ID)
}

func TestFindByNames_EmptyStore(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	found, err := s.FindByNames(context.Background(), "u1", []string{"Checking"})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestReadTransactions_NoFile(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	txns, err := s.ReadTransactions()
	require.NoError(t, err)
	assert.Nil(t, txns)
}
