package entity

import (
	"fmt"
	"slices"
	"time"

	"github.com/jhoicas/catalog-admin-api/internal/domain"
)

// MaxCartQuantity tope de unidades por línea.
const MaxCartQuantity = 1_000_000

// CartItem línea del carrito. Quantity siempre es positiva.
type CartItem struct {
	ProductID string
	Quantity  int
}

// Cart carrito de un usuario: como máximo una línea por producto.
type Cart struct {
	ID        string
	UserID    string
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Cart) indexOf(productID string) int {
	return slices.IndexFunc(c.Items, func(it CartItem) bool { return it.ProductID == productID })
}

// Add suma quantity a la línea existente o agrega una nueva al final.
// Rechaza cantidades no positivas y totales por encima de MaxCartQuantity.
func (c *Cart) Add(productID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be greater than 0", domain.ErrInvalidInput)
	}
	i := c.indexOf(productID)
	current := 0
	if i >= 0 {
		current = c.Items[i].Quantity
	}
	if quantity > MaxCartQuantity-current {
		return fmt.Errorf("%w: quantity cannot exceed %d", domain.ErrInvalidInput, MaxCartQuantity)
	}
	if i >= 0 {
		c.Items[i].Quantity += quantity
		return nil
	}
	c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: quantity})
	return nil
}

// Remove filtra la línea del producto; si no existe el carrito queda igual.
func (c *Cart) Remove(productID string) {
	c.Items = slices.DeleteFunc(c.Items, func(it CartItem) bool { return it.ProductID == productID })
}

// SetQuantity sobreescribe la cantidad; quantity <= 0 elimina la línea.
func (c *Cart) SetQuantity(productID string, quantity int) error {
	i := c.indexOf(productID)
	if i < 0 {
		return domain.ErrCartItemNotFound
	}
	if quantity <= 0 {
		c.Items = slices.Delete(c.Items, i, i+1)
		return nil
	}
	if quantity > MaxCartQuantity {
		return fmt.Errorf("%w: quantity cannot exceed %d", domain.ErrInvalidInput, MaxCartQuantity)
	}
	c.Items[i].Quantity = quantity
	return nil
}

// Quantity devuelve la cantidad del producto (0 si no está).
func (c *Cart) Quantity(productID string) int {
	if i := c.indexOf(productID); i >= 0 {
		return c.Items[i].Quantity
	}
	return 0
}
