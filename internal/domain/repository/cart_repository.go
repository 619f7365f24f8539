package repository

import (
	"context"

	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
)

// CartRepository define el puerto de persistencia para Cart (uno por usuario).
type CartRepository interface {
	GetByUser(ctx context.Context, userID string) (*entity.Cart, error)
	// Save inserta o reemplaza el carrito del usuario.
	Save(ctx context.Context, cart *entity.Cart) error
}
