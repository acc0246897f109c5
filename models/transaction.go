package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Amounts go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

type Transaction struct {
	ID          uuid.UUID       `json:"id" swaggertype:"string"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"number"`
	CategoryID  *uuid.UUID      `json:"category_id" swaggertype:"string"`
	Date        Date            `json:"date" swaggertype:"string"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	Category    *Category       `json:"category"`
}

// TransactionFilter narrows a transaction listing. Zero values mean "no filter".
type TransactionFilter struct {
	Type       TransactionType
	CategoryID *uuid.UUID
	Limit      int
}
