package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrCategoryInUse is returned when deleting a category still referenced by transactions or budgets.
	ErrCategoryInUse = errors.New("category is used in transactions or budgets")
	// ErrUnknownCategory is returned when a write references a category that does not exist.
	ErrUnknownCategory = errors.New("category does not exist")
	// ErrConstraint wraps check-constraint failures surfaced by the store.
	ErrConstraint = errors.New("constraint violation")
)

// Postgres error class 23, integrity constraint violations.
const (
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

type Storage struct {
	DB *sql.DB
}

// NewStorage opens a Postgres connection pool and verifies it is reachable.
// The schema is managed separately by RunMigrations.
func NewStorage(ctx context.Context, connStr string) (*Storage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// translate maps driver errors onto the package sentinels.
func translate(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case pqForeignKeyViolation:
		return fmt.Errorf("%w: %s", ErrUnknownCategory, pqErr.Message)
	case pqCheckViolation:
		return fmt.Errorf("%w: %s", ErrConstraint, pqErr.Message)
	}
	return err
}

func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
