package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
	ErrAmountPrecision   = errors.New("amount must have at most two decimal places")
	ErrCategoryRequired  = errors.New("category_id is required for expenses")
	ErrInvalidType       = errors.New("type must be income or expense")
	ErrDateRequired      = errors.New("date is required")
	ErrNameRequired      = errors.New("name is required")
	ErrInvalidMonth      = errors.New("month must be between 1 and 12")
	ErrInvalidYear       = errors.New("year must be between 1900 and 9999")
)

// TransactionInput is the body of POST /api/transactions and PUT /api/transactions/:id.
// validateAmount accepts positive amounts that fit a NUMERIC(12, 2) column without rounding.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}
	if !amount.Equal(amount.Truncate(2)) {
		return ErrAmountPrecision
	}
	return nil
}

type TransactionInput struct {
	Type        TransactionType `json:"type" example:"expense"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"number" example:"42.5"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty" swaggertype:"string" example:"3f0c1c8e-8d7a-4a53-9d0e-6f1b7c1d2a10"`
	Date        *Date           `json:"date,omitempty" swaggertype:"string" example:"2024-03-15"`
	Description string          `json:"description" example:"Groceries"`
}

func (in TransactionInput) Validate() error {
	if !in.Type.Valid() {
		return ErrInvalidType
	}
	if err := validateAmount(in.Amount); err != nil {
		return err
	}
	if in.Type == TransactionExpense && (in.CategoryID == nil || *in.CategoryID == uuid.Nil) {
		return ErrCategoryRequired
	}
	return nil
}

// Transaction converts the input into an entity. A missing date falls back to today.
func (in TransactionInput) Transaction() *Transaction {
	t := &Transaction{
		Type:        in.Type,
		Amount:      in.Amount,
		CategoryID:  in.CategoryID,
		Description: in.Description,
		Date:        Today(),
	}
	if t.CategoryID != nil && *t.CategoryID == uuid.Nil {
		t.CategoryID = nil
	}
	if in.Date != nil {
		t.Date = *in.Date
	}
	return t
}

// BudgetInput is the body of POST /api/budgets.
type BudgetInput struct {
	CategoryID uuid.UUID       `json:"category_id" swaggertype:"string" example:"3f0c1c8e-8d7a-4a53-9d0e-6f1b7c1d2a10"`
	Amount     decimal.Decimal `json:"amount" swaggertype:"number" example:"500"`
	Month      int             `json:"month" example:"3"`
	Year       int             `json:"year" example:"2024"`
}

func (in BudgetInput) Validate() error {
	if in.CategoryID == uuid.Nil {
		return errors.New("category_id is required")
	}
	if err := validateAmount(in.Amount); err != nil {
		return err
	}
	if in.Month < 1 || in.Month > 12 {
		return ErrInvalidMonth
	}
	if in.Year < 1900 || in.Year > 9999 {
		return ErrInvalidYear
	}
	return nil
}

func (in BudgetInput) Budget() *Budget {
	return &Budget{
		CategoryID: in.CategoryID,
		Amount:     in.Amount,
		Month:      in.Month,
		Year:       in.Year,
	}
}

// CategoryInput is the body of POST /api/categories.
type CategoryInput struct {
	Name      string `json:"name" example:"Food"`
	Icon      string `json:"icon,omitempty" example:"🍔"`
	IsDefault bool   `json:"is_default,omitempty"`
}

func (in CategoryInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

func (in CategoryInput) Category() *Category {
	icon := in.Icon
	if icon == "" {
		icon = DefaultCategoryIcon
	}
	return &Category{
		Name:      strings.TrimSpace(in.Name),
		Icon:      icon,
		IsDefault: in.IsDefault,
	}
}
