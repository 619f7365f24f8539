package repository

import (
	"context"

	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	// Create y Update devuelven domain.ErrDuplicate si el índice único (name, slug) lo rechaza.
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	// FindConflict busca otra categoría (id distinto de excludeID) con el mismo name o slug.
	FindConflict(ctx context.Context, name, slug, excludeID string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
}
