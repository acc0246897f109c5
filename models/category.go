package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategoryIcon is applied when a category is created without one.
const DefaultCategoryIcon = "💰"

type Category struct {
	ID        uuid.UUID `json:"id" swaggertype:"string"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}
