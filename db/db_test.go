package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nemopss/financas/backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to POSTGRES_TEST_URL, migrates, and empties every table.
// Tests are skipped when no test database is configured.
func setupTestDB(t *testing.T) *Storage {
	t.Helper()

	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}

	require.NoError(t, RunMigrations(connStr))

	store, err := NewStorage(context.Background(), connStr)
	require.NoError(t, err, "connect to test database")
	t.Cleanup(func() { store.Close() })

	_, err = store.DB.Exec("TRUNCATE TABLE budgets, transactions, categories CASCADE")
	require.NoError(t, err, "truncate tables")

	return store
}

func createCategory(t *testing.T, store *Storage, name string) models.Category {
	t.Helper()
	c := models.CategoryInput{Name: name}.Category()
	require.NoError(t, store.CreateCategory(context.Background(), c))
	return *c
}

func createTransaction(t *testing.T, store *Storage, typ models.TransactionType, amount int64, categoryID *uuid.UUID, date models.Date) models.Transaction {
	t.Helper()
	tx := &models.Transaction{Type: typ, Amount: decimal.NewFromInt(amount), CategoryID: categoryID, Date: date}
	require.NoError(t, store.CreateTransaction(context.Background(), tx))
	return *tx
}

func TestCategories(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	food := createCategory(t, store, "Food")
	assert.NotEqual(t, uuid.Nil, food.ID)
	assert.Equal(t, models.DefaultCategoryIcon, food.Icon)
	createCategory(t, store, "Bills")

	categories, err := store.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Bills", categories[0].Name)
	assert.Equal(t, "Food", categories[1].Name)

	fetched, err := store.GetCategory(ctx, food.ID)
	require.NoError(t, err)
	assert.Equal(t, "Food", fetched.Name)

	_, err = store.GetCategory(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCategoryRestrictedWhileReferenced(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	transport := createCategory(t, store, "Transport")
	tx := createTransaction(t, store, models.TransactionExpense, 100, &transport.ID, models.Today())

	assert.ErrorIs(t, store.DeleteCategory(ctx, transport.ID), ErrCategoryInUse)

	require.NoError(t, store.DeleteTransaction(ctx, tx.ID))
	require.NoError(t, store.DeleteCategory(ctx, transport.ID))
	assert.ErrorIs(t, store.DeleteCategory(ctx, transport.ID), ErrNotFound)
}

func TestCreateAndGetTransactions(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	food := createCategory(t, store, "Food")
	tx := &models.Transaction{
		Type:        models.TransactionExpense,
		Amount:      decimal.RequireFromString("200.50"),
		CategoryID:  &food.ID,
		Date:        models.NewDate(2024, time.March, 10),
		Description: "Market",
	}
	require.NoError(t, store.CreateTransaction(ctx, tx))
	assert.NotEqual(t, uuid.Nil, tx.ID)
	require.NotNil(t, tx.Category)
	assert.Equal(t, "Food", tx.Category.Name)

	fetched, err := store.GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Amount.Equal(decimal.RequireFromString("200.50")))
	assert.Equal(t, "2024-03-10", fetched.Date.String())
	assert.Equal(t, "Market", fetched.Description)

	income := createTransaction(t, store, models.TransactionIncome, 1000, nil, models.NewDate(2024, time.March, 1))
	assert.Nil(t, income.CategoryID)
	assert.Nil(t, income.Category)

	_, err = store.GetTransaction(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateTransactionUnknownCategory(t *testing.T) {
	store := setupTestDB(t)
	missing := uuid.New()

	err := store.CreateTransaction(context.Background(), &models.Transaction{
		Type: models.TransactionExpense, Amount: decimal.NewFromInt(5), CategoryID: &missing, Date: models.Today(),
	})
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestGetTransactionsFilterAndOrder(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	food := createCategory(t, store, "Food")
	fun := createCategory(t, store, "Fun")
	day := models.NewDate(2024, time.May, 10)

	older := createTransaction(t, store, models.TransactionExpense, 10, &food.ID, models.NewDate(2024, time.May, 1))
	first := createTransaction(t, store, models.TransactionExpense, 20, &food.ID, day)
	second := createTransaction(t, store, models.TransactionExpense, 30, &fun.ID, day)
	createTransaction(t, store, models.TransactionIncome, 500, nil, day)

	expenses, err := store.GetTransactions(ctx, models.TransactionFilter{Type: models.TransactionExpense})
	require.NoError(t, err)
	require.Len(t, expenses, 3)
	assert.Equal(t, second.ID, expenses[0].ID, "same date: most recently created first")
	assert.Equal(t, first.ID, expenses[1].ID)
	assert.Equal(t, older.ID, expenses[2].ID)
	for _, tx := range expenses {
		assert.Equal(t, models.TransactionExpense, tx.Type)
	}

	byCategory, err := store.GetTransactions(ctx, models.TransactionFilter{CategoryID: &food.ID})
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	limited, err := store.GetTransactions(ctx, models.TransactionFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestUpdateAndDeleteTransaction(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	food := createCategory(t, store, "Food")
	tx := createTransaction(t, store, models.TransactionExpense, 10, &food.ID, models.Today())

	tx.Type = models.TransactionIncome
	tx.Amount = decimal.NewFromInt(99)
	tx.CategoryID = nil
	tx.Description = "refund"
	tx.Date = models.NewDate(2023, time.December, 24)
	require.NoError(t, store.UpdateTransaction(ctx, &tx))
	assert.Equal(t, models.TransactionIncome, tx.Type)
	assert.Nil(t, tx.Category)
	assert.Equal(t, "2023-12-24", tx.Date.String())

	missing := models.Transaction{ID: uuid.New(), Type: models.TransactionIncome, Amount: decimal.NewFromInt(1), Date: models.Today()}
	assert.ErrorIs(t, store.UpdateTransaction(ctx, &missing), ErrNotFound)

	require.NoError(t, store.DeleteTransaction(ctx, tx.ID))
	assert.ErrorIs(t, store.DeleteTransaction(ctx, tx.ID), ErrNotFound)
}

func TestUpsertBudget(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	food := createCategory(t, store, "Food")

	b := &models.Budget{CategoryID: food.ID, Amount: decimal.NewFromInt(100), Month: 3, Year: 2024}
	created, err := store.UpsertBudget(ctx, b)
	require.NoError(t, err)
	assert.True(t, created)
	firstID := b.ID

	again := &models.Budget{CategoryID: food.ID, Amount: decimal.NewFromInt(250), Month: 3, Year: 2024}
	created, err = store.UpsertBudget(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, firstID, again.ID)
	assert.True(t, again.Amount.Equal(decimal.NewFromInt(250)))

	budgets, err := store.GetBudgets(ctx, models.BudgetFilter{Month: 3, Year: 2024})
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.True(t, budgets[0].Amount.Equal(decimal.NewFromInt(250)))
	require.NotNil(t, budgets[0].Category)
	assert.Equal(t, "Food", budgets[0].Category.Name)
}

func TestGetBudgetsFilter(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	food := createCategory(t, store, "Food")
	for _, period := range []struct{ month, year int }{{5, 2024}, {6, 2024}, {5, 2023}} {
		_, err := store.UpsertBudget(ctx, &models.Budget{CategoryID: food.ID, Amount: decimal.NewFromInt(10), Month: period.month, Year: period.year})
		require.NoError(t, err)
	}

	budgets, err := store.GetBudgets(ctx, models.BudgetFilter{Month: 5, Year: 2024})
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, 5, budgets[0].Month)
	assert.Equal(t, 2024, budgets[0].Year)

	all, err := store.GetBudgets(ctx, models.BudgetFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, store.DeleteBudget(ctx, budgets[0].ID))
	assert.ErrorIs(t, store.DeleteBudget(ctx, budgets[0].ID), ErrNotFound)
}

func TestGetDashboardStats(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	a := createCategory(t, store, "A")
	b := createCategory(t, store, "B")
	day := models.NewDate(2024, time.March, 12)

	createTransaction(t, store, models.TransactionIncome, 100, nil, day)
	createTransaction(t, store, models.TransactionExpense, 30, &a.ID, day)
	createTransaction(t, store, models.TransactionExpense, 20, &b.ID, day)
	// Outside the target month.
	createTransaction(t, store, models.TransactionExpense, 999, &a.ID, models.NewDate(2024, time.April, 1))

	_, err := store.UpsertBudget(ctx, &models.Budget{CategoryID: a.ID, Amount: decimal.NewFromInt(50), Month: 3, Year: 2024})
	require.NoError(t, err)

	stats, err := store.GetDashboardStats(ctx, 3, 2024)
	require.NoError(t, err)
	assert.True(t, stats.Income.Equal(decimal.NewFromInt(100)), "income %s", stats.Income)
	assert.True(t, stats.Expenses.Equal(decimal.NewFromInt(50)), "expenses %s", stats.Expenses)
	assert.True(t, stats.Balance.Equal(decimal.NewFromInt(50)), "balance %s", stats.Balance)

	require.Len(t, stats.Budgets, 1)
	assert.Equal(t, a.ID, stats.Budgets[0].CategoryID)
	assert.True(t, stats.Budgets[0].Spent.Equal(decimal.NewFromInt(30)))
	assert.True(t, stats.Budgets[0].Amount.Equal(decimal.NewFromInt(50)))

	empty, err := store.GetDashboardStats(ctx, 1, 2000)
	require.NoError(t, err)
	assert.True(t, empty.Income.IsZero())
	assert.True(t, empty.Balance.IsZero())
	assert.Empty(t, empty.Budgets)
}
