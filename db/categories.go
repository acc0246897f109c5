package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/nemopss/financas/backend/models"
)

const categoryColumns = `id, name, icon, is_default, created_at`

// joinedCategoryColumns selects the category side of a LEFT JOIN aliased as c.
const joinedCategoryColumns = `c.id, c.name, c.icon, c.is_default, c.created_at`

// nullCategory receives the nullable columns of a LEFT JOIN on categories.
type nullCategory struct {
	ID        uuid.NullUUID
	Name      sql.NullString
	Icon      sql.NullString
	IsDefault sql.NullBool
	CreatedAt sql.NullTime
}

func (n *nullCategory) dest() []any {
	return []any{&n.ID, &n.Name, &n.Icon, &n.IsDefault, &n.CreatedAt}
}

func (n *nullCategory) category() *models.Category {
	if !n.ID.Valid {
		return nil
	}
	return &models.Category{
		ID:        n.ID.UUID,
		Name:      n.Name.String,
		Icon:      n.Icon.String,
		IsDefault: n.IsDefault.Bool,
		CreatedAt: n.CreatedAt.Time,
	}
}

func scanCategory(row rowScanner) (models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.Name, &c.Icon, &c.IsDefault, &c.CreatedAt)
	return c, err
}

// GetCategories returns every category ordered by name.
func (s *Storage) GetCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Storage) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// CreateCategory inserts c and fills in the generated id and timestamp.
func (s *Storage) CreateCategory(ctx context.Context, c *models.Category) error {
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO categories (name, icon, is_default) VALUES ($1, $2, $3) RETURNING id, created_at`,
		c.Name, c.Icon, c.IsDefault,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert category: %w", translate(err))
	}
	return nil
}

// DeleteCategory removes a category that nothing references.
func (s *Storage) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			return ErrCategoryInUse
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return affectedOrNotFound(res)
}
