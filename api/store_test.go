package api

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nemopss/financas/backend/db"
	"github.com/nemopss/financas/backend/models"
	"github.com/shopspring/decimal"
)

// memoryStore is an in-memory Store with the same ordering and aggregation rules as the SQL.
type memoryStore struct {
	mu           sync.Mutex
	clock        time.Time
	categories   []models.Category
	transactions []models.Transaction
	budgets      []models.Budget
	// failWith, when set, is returned by every call.
	failWith error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{clock: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)}
}

// tick returns a strictly increasing creation timestamp.
func (m *memoryStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memoryStore) category(id uuid.UUID) *models.Category {
	for i := range m.categories {
		if m.categories[i].ID == id {
			c := m.categories[i]
			return &c
		}
	}
	return nil
}

func (m *memoryStore) GetCategories(context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := append([]models.Category{}, m.categories...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryStore) GetCategory(_ context.Context, id uuid.UUID) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	if c := m.category(id); c != nil {
		return c, nil
	}
	return nil, db.ErrNotFound
}

func (m *memoryStore) CreateCategory(_ context.Context, c *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	c.ID = uuid.New()
	c.CreatedAt = m.tick()
	m.categories = append(m.categories, *c)
	return nil
}

func (m *memoryStore) DeleteCategory(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	for _, t := range m.transactions {
		if t.CategoryID != nil && *t.CategoryID == id {
			return db.ErrCategoryInUse
		}
	}
	for _, b := range m.budgets {
		if b.CategoryID == id {
			return db.ErrCategoryInUse
		}
	}
	for i, c := range m.categories {
		if c.ID == id {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

func (m *memoryStore) GetTransactions(_ context.Context, f models.TransactionFilter) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := []models.Transaction{}
	for _, t := range m.transactions {
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *f.CategoryID) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memoryStore) GetTransaction(_ context.Context, id uuid.UUID) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, t := range m.transactions {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *memoryStore) checkCategory(id *uuid.UUID) error {
	if id != nil && m.category(*id) == nil {
		return db.ErrUnknownCategory
	}
	return nil
}

func (m *memoryStore) CreateTransaction(_ context.Context, t *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if err := m.checkCategory(t.CategoryID); err != nil {
		return err
	}
	t.ID = uuid.New()
	t.CreatedAt = m.tick()
	if t.CategoryID != nil {
		t.Category = m.category(*t.CategoryID)
	}
	m.transactions = append(m.transactions, *t)
	return nil
}

func (m *memoryStore) UpdateTransaction(_ context.Context, t *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	for i := range m.transactions {
		if m.transactions[i].ID != t.ID {
			continue
		}
		if err := m.checkCategory(t.CategoryID); err != nil {
			return err
		}
		t.CreatedAt = m.transactions[i].CreatedAt
		t.Category = nil
		if t.CategoryID != nil {
			t.Category = m.category(*t.CategoryID)
		}
		m.transactions[i] = *t
		return nil
	}
	return db.ErrNotFound
}

func (m *memoryStore) DeleteTransaction(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	for i, t := range m.transactions {
		if t.ID == id {
			m.transactions = append(m.transactions[:i], m.transactions[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

func (m *memoryStore) GetBudgets(_ context.Context, f models.BudgetFilter) ([]models.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.budgetsFor(f), nil
}

func (m *memoryStore) budgetsFor(f models.BudgetFilter) []models.Budget {
	out := []models.Budget{}
	for _, b := range m.budgets {
		if (f.Month == 0 || b.Month == f.Month) && (f.Year == 0 || b.Year == f.Year) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memoryStore) UpsertBudget(_ context.Context, b *models.Budget) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return false, m.failWith
	}
	if err := m.checkCategory(&b.CategoryID); err != nil {
		return false, err
	}
	for i := range m.budgets {
		existing := &m.budgets[i]
		if existing.CategoryID == b.CategoryID && existing.Month == b.Month && existing.Year == b.Year {
			existing.Amount = b.Amount
			*b = *existing
			return false, nil
		}
	}
	b.ID = uuid.New()
	b.CreatedAt = m.tick()
	b.Category = m.category(b.CategoryID)
	m.budgets = append(m.budgets, *b)
	return true, nil
}

func (m *memoryStore) DeleteBudget(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	for i, b := range m.budgets {
		if b.ID == id {
			m.budgets = append(m.budgets[:i], m.budgets[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

func (m *memoryStore) GetDashboardStats(_ context.Context, month, year int) (*models.DashboardStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}

	inMonth := func(d models.Date) bool { return int(d.Month()) == month && d.Year() == year }

	totals := map[models.TransactionType]decimal.Decimal{}
	for _, t := range m.transactions {
		if inMonth(t.Date) {
			totals[t.Type] = totals[t.Type].Add(t.Amount)
		}
	}

	var progress []models.BudgetProgress
	for _, b := range m.budgetsFor(models.BudgetFilter{Month: month, Year: year}) {
		spent := decimal.Zero
		for _, t := range m.transactions {
			if t.Type == models.TransactionExpense && t.CategoryID != nil && *t.CategoryID == b.CategoryID && inMonth(t.Date) {
				spent = spent.Add(t.Amount)
			}
		}
		progress = append(progress, models.BudgetProgress{Budget: b, Spent: spent})
	}
	return models.NewDashboardStats(month, year, totals, progress), nil
}

var errStoreDown = errors.New("connection refused")
