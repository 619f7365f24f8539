package dto

import "time"

// AddCartItemRequest entrada para agregar un producto al carrito.
type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0,max=1000000"`
}

// UpdateCartItemRequest entrada para fijar la cantidad; <= 0 elimina la línea.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// CartItemResponse línea del carrito. Product va poblado en el listado.
type CartItemResponse struct {
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	Product   *ProductResponse `json:"product,omitempty"`
}

// CartResponse salida del carrito.
type CartResponse struct {
	ID        string             `json:"id"`
	UserID    string             `json:"userId"`
	Items     []CartItemResponse `json:"items"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
