package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product pertenece exactamente a una Category.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	CategoryID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
