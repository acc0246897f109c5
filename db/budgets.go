package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nemopss/financas/backend/models"
)

const budgetColumns = `b.id, b.category_id, b.amount, b.month, b.year, b.created_at, ` + joinedCategoryColumns

func scanBudget(row rowScanner, extra ...any) (models.Budget, error) {
	var (
		b   models.Budget
		cat nullCategory
	)
	dest := append([]any{&b.ID, &b.CategoryID, &b.Amount, &b.Month, &b.Year, &b.CreatedAt}, cat.dest()...)
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return b, err
	}
	b.Category = cat.category()
	return b, nil
}

// GetBudgets lists budgets, most recently created first.
func (s *Storage) GetBudgets(ctx context.Context, filter models.BudgetFilter) ([]models.Budget, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Month > 0 {
		args = append(args, filter.Month)
		conds = append(conds, fmt.Sprintf("b.month = $%d", len(args)))
	}
	if filter.Year > 0 {
		args = append(args, filter.Year)
		conds = append(conds, fmt.Sprintf("b.year = $%d", len(args)))
	}

	query := `SELECT ` + budgetColumns + `
		FROM budgets b
		LEFT JOIN categories c ON b.category_id = c.id`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY b.created_at DESC"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// UpsertBudget inserts b, or overwrites the amount of the existing budget for
// the same (category, month, year). created reports which of the two happened.
func (s *Storage) UpsertBudget(ctx context.Context, b *models.Budget) (created bool, err error) {
	row := s.DB.QueryRowContext(ctx, `WITH b AS (
			INSERT INTO budgets (category_id, amount, month, year)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (category_id, month, year)
			DO UPDATE SET amount = EXCLUDED.amount
			RETURNING *, (xmax = 0) AS inserted
		)
		SELECT `+budgetColumns+`, b.inserted
		FROM b
		LEFT JOIN categories c ON b.category_id = c.id`,
		b.CategoryID, b.Amount, b.Month, b.Year,
	)
	stored, err := scanBudget(row, &created)
	if err != nil {
		return false, fmt.Errorf("upsert budget: %w", translate(err))
	}
	*b = stored
	return created, nil
}

func (s *Storage) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return affectedOrNotFound(res)
}
