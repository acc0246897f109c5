package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nemopss/financas/backend/models"
)

const transactionColumns = `t.id, t.type, t.amount, t.category_id, t.date, COALESCE(t.description, ''), t.created_at, ` +
	joinedCategoryColumns

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var (
		t          models.Transaction
		categoryID uuid.NullUUID
		cat        nullCategory
	)
	dest := append([]any{&t.ID, &t.Type, &t.Amount, &categoryID, &t.Date, &t.Description, &t.CreatedAt}, cat.dest()...)
	if err := row.Scan(dest...); err != nil {
		return t, err
	}
	if categoryID.Valid {
		t.CategoryID = &categoryID.UUID
	}
	t.Category = cat.category()
	return t, nil
}

func nullableCategory(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

// GetTransactions lists transactions newest first: by date, then by insertion time.
func (s *Storage) GetTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	var (
		conds []string
		args  []any
	)
	where := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Type != "" {
		where("t.type = $%d", string(filter.Type))
	}
	if filter.CategoryID != nil {
		where("t.category_id = $%d", *filter.CategoryID)
	}

	query := `SELECT ` + transactionColumns + `
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY t.date DESC, t.created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (s *Storage) GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+transactionColumns+`
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.id = $1`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

// CreateTransaction inserts t and replaces it with the stored row, category included.
func (s *Storage) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	row := s.DB.QueryRowContext(ctx, `WITH t AS (
			INSERT INTO transactions (type, amount, category_id, date, description)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''))
			RETURNING *
		)
		SELECT `+transactionColumns+`
		FROM t
		LEFT JOIN categories c ON t.category_id = c.id`,
		string(t.Type), t.Amount, nullableCategory(t.CategoryID), t.Date, t.Description,
	)
	created, err := scanTransaction(row)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", translate(err))
	}
	*t = created
	return nil
}

// UpdateTransaction replaces every mutable field of the transaction with id t.ID.
func (s *Storage) UpdateTransaction(ctx context.Context, t *models.Transaction) error {
	row := s.DB.QueryRowContext(ctx, `WITH t AS (
			UPDATE transactions
			SET type = $1, amount = $2, category_id = $3, date = $4, description = NULLIF($5, '')
			WHERE id = $6
			RETURNING *
		)
		SELECT `+transactionColumns+`
		FROM t
		LEFT JOIN categories c ON t.category_id = c.id`,
		string(t.Type), t.Amount, nullableCategory(t.CategoryID), t.Date, t.Description, t.ID,
	)
	updated, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update transaction: %w", translate(err))
	}
	*t = updated
	return nil
}

func (s *Storage) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return affectedOrNotFound(res)
}
