package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest entrada de create y update: los cinco campos son obligatorios.
type ProductRequest struct {
	Name        string           `json:"name" validate:"required,max=200"`
	Description string           `json:"description" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	ImageURL    string           `json:"imageUrl" validate:"required"`
	Category    string           `json:"category" validate:"required"`
}

// CategoryRef categoría poblada dentro de un producto (solo id y nombre).
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductResponse salida de un producto. Category es nil si la categoría ya no existe.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	Category    *CategoryRef    `json:"category"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// DeleteAllProductsResponse salida de DELETE /products/deleteall.
type DeleteAllProductsResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deleteCount"`
}

// PriceList documento de lista de precios exportable.
type PriceList struct {
	Title       string
	GeneratedAt time.Time
	Lines       []PriceListLine
}

// PriceListLine una fila de la lista de precios.
type PriceListLine struct {
	Category    string
	Name        string
	Description string
	Price       decimal.Decimal
}
