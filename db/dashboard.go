package db

import (
	"context"
	"fmt"

	"github.com/nemopss/financas/backend/models"
	"github.com/shopspring/decimal"
)

// GetDashboardStats aggregates one calendar month: income and expense totals,
// and for every budget of that month the expenses booked against its category.
func (s *Storage) GetDashboardStats(ctx context.Context, month, year int) (*models.DashboardStats, error) {
	totals, err := s.monthTotals(ctx, month, year)
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT `+budgetColumns+`, COALESCE(SUM(t.amount), 0) AS spent
		FROM budgets b
		LEFT JOIN categories c ON b.category_id = c.id
		LEFT JOIN transactions t ON t.category_id = b.category_id
			AND t.type = 'expense'
			AND EXTRACT(MONTH FROM t.date) = b.month
			AND EXTRACT(YEAR FROM t.date) = b.year
		WHERE b.month = $1 AND b.year = $2
		GROUP BY b.id, c.id
		ORDER BY b.created_at DESC`, month, year)
	if err != nil {
		return nil, fmt.Errorf("query budget progress: %w", err)
	}
	defer rows.Close()

	progress := []models.BudgetProgress{}
	for rows.Next() {
		var spent decimal.Decimal
		b, err := scanBudget(rows, &spent)
		if err != nil {
			return nil, fmt.Errorf("scan budget progress: %w", err)
		}
		progress = append(progress, models.BudgetProgress{Budget: b, Spent: spent})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budget progress: %w", err)
	}

	return models.NewDashboardStats(month, year, totals, progress), nil
}

func (s *Storage) monthTotals(ctx context.Context, month, year int) (map[models.TransactionType]decimal.Decimal, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT type, SUM(amount)
		FROM transactions
		WHERE EXTRACT(MONTH FROM date) = $1
			AND EXTRACT(YEAR FROM date) = $2
		GROUP BY type`, month, year)
	if err != nil {
		return nil, fmt.Errorf("query month totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[models.TransactionType]decimal.Decimal, 2)
	for rows.Next() {
		var (
			typ   models.TransactionType
			total decimal.Decimal
		)
		if err := rows.Scan(&typ, &total); err != nil {
			return nil, fmt.Errorf("scan month total: %w", err)
		}
		totals[typ] = total
	}
	return totals, rows.Err()
}
