package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is a spending cap for one category in one calendar month.
// At most one budget exists per (category, month, year).
type Budget struct {
	ID         uuid.UUID       `json:"id" swaggertype:"string"`
	CategoryID uuid.UUID       `json:"category_id" swaggertype:"string"`
	Amount     decimal.Decimal `json:"amount" swaggertype:"number"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	CreatedAt  time.Time       `json:"created_at"`
	Category   *Category       `json:"category"`
}

type BudgetFilter struct {
	Month int
	Year  int
}

// BudgetProgress is a budget together with the expenses booked against it in its month.
type BudgetProgress struct {
	Budget
	Spent decimal.Decimal `json:"spent" swaggertype:"number"`
}

type DashboardStats struct {
	Month    int              `json:"month"`
	Year     int              `json:"year"`
	Income   decimal.Decimal  `json:"income" swaggertype:"number"`
	Expenses decimal.Decimal  `json:"expenses" swaggertype:"number"`
	Balance  decimal.Decimal  `json:"balance" swaggertype:"number"`
	Budgets  []BudgetProgress `json:"budgets"`
}

// NewDashboardStats builds the monthly summary from per-type totals.
// Types missing from totals count as zero.
func NewDashboardStats(month, year int, totals map[TransactionType]decimal.Decimal, budgets []BudgetProgress) *DashboardStats {
	income := totals[TransactionIncome]
	expenses := totals[TransactionExpense]
	if budgets == nil {
		budgets = []BudgetProgress{}
	}
	return &DashboardStats{
		Month:    month,
		Year:     year,
		Income:   income,
		Expenses: expenses,
		Balance:  income.Sub(expenses),
		Budgets:  budgets,
	}
}
