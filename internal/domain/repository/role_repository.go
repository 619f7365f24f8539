package repository

import (
	"context"

	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
)

// RoleRepository define el puerto de persistencia para Role (DIP).
type RoleRepository interface {
	// Create y Update devuelven domain.ErrDuplicate si el nombre ya existe.
	Create(ctx context.Context, role *entity.Role) error
	GetByID(ctx context.Context, id string) (*entity.Role, error)
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	// GetByIDs ignora los ids que no existen.
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Role, error)
	List(ctx context.Context) ([]*entity.Role, error)
	Update(ctx context.Context, role *entity.Role) error
	// Delete devuelve domain.ErrNotFound si no se borró nada.
	Delete(ctx context.Context, id string) error
}
