package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/nemopss/financas/backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asError(t *testing.T, err error) *Error {
	t.Helper()
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr), "expected *client.Error, got %T", err)
	return apiErr
}

func TestCreateTransactionRejectsNonPositiveAmountWithoutRequest(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		_, err := c.CreateTransaction(context.Background(), models.TransactionInput{Type: models.TransactionIncome, Amount: amount})
		apiErr := asError(t, err)
		assert.Equal(t, 0, apiErr.Status)
		assert.Equal(t, models.ErrAmountNotPositive.Error(), apiErr.Message)
	}
	assert.Equal(t, int32(0), calls.Load())
}

func TestCreateTransaction(t *testing.T) {
	cat := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/transactions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var in models.TransactionInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, models.TransactionExpense, in.Type)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Transaction{ID: uuid.New(), Type: in.Type, Amount: in.Amount, CategoryID: in.CategoryID})
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/", WithToken("tok"))
	tx, err := c.CreateTransaction(context.Background(), models.TransactionInput{
		Type: models.TransactionExpense, Amount: decimal.NewFromInt(30), CategoryID: &cat,
	})
	require.NoError(t, err)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(30)))
	require.NotNil(t, tx.CategoryID)
	assert.Equal(t, cat, *tx.CategoryID)
}

func TestErrorNormalization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/transactions/" + uuid.Nil.String():
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Transaction not found"}`))
		case "/api/budgets":
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`<html>bad gateway</html>`))
		case "/api/categories":
			_, _ = w.Write([]byte(`{not json`))
		}
	}))
	defer srv.Close()
	c := New(srv.URL + "/api")
	ctx := context.Background()

	apiErr := asError(t, c.DeleteTransaction(ctx, uuid.Nil))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Transaction not found", apiErr.Message)

	_, err := c.Budgets(ctx, models.BudgetFilter{})
	apiErr = asError(t, err)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Unknown error", apiErr.Message)

	_, err = c.Categories(ctx)
	apiErr = asError(t, err)
	assert.Equal(t, http.StatusOK, apiErr.Status)
	assert.Contains(t, apiErr.Message, "decode response")
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url + "/api").DashboardStats(context.Background(), 0, 0)
	apiErr := asError(t, err)
	assert.Equal(t, 0, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
}

func TestQueryParameters(t *testing.T) {
	cat := uuid.New()
	seen := make(chan string, 3)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.URL.Path + "?" + r.URL.RawQuery
		switch r.URL.Path {
		case "/api/dashboard/stats":
			_, _ = w.Write([]byte(`{"income":100,"expenses":50,"balance":50,"budgets":[]}`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	defer srv.Close()
	c := New(srv.URL + "/api")
	ctx := context.Background()

	_, err := c.Transactions(ctx, models.TransactionFilter{Type: models.TransactionExpense, CategoryID: &cat, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, "/api/transactions?category_id="+cat.String()+"&limit=5&type=expense", <-seen)

	_, err = c.Budgets(ctx, models.BudgetFilter{Month: 5, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, "/api/budgets?month=5&year=2024", <-seen)

	stats, err := c.DashboardStats(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "/api/dashboard/stats?", <-seen)
	assert.True(t, stats.Balance.Equal(decimal.NewFromInt(50)))
}

func TestSetBudgetReportsCreation(t *testing.T) {
	status := http.StatusCreated
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"id":"` + uuid.NewString() + `","amount":50,"month":3,"year":2024}`))
	}))
	defer srv.Close()
	c := New(srv.URL + "/api")
	in := models.BudgetInput{CategoryID: uuid.New(), Amount: decimal.NewFromInt(50), Month: 3, Year: 2024}

	_, created, err := c.SetBudget(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, created)

	status = http.StatusOK
	_, created, err = c.SetBudget(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, created)

	in.Month = 0
	_, _, err = c.SetBudget(context.Background(), in)
	assert.Equal(t, 0, asError(t, err).Status)
}

func TestCategory(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/categories/"+id.String() {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Category not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"` + id.String() + `","name":"Lazer","icon":"🎮","is_default":true}`))
	}))
	defer srv.Close()
	c := New(srv.URL + "/api")

	category, err := c.Category(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Lazer", category.Name)
	assert.True(t, category.IsDefault)

	_, err = c.Category(context.Background(), uuid.New())
	apiErr := asError(t, err)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Category not found", apiErr.Message)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"ok","timestamp":"2024-03-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	h, err := New(srv.URL + "/api").Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", h.Status)
}
