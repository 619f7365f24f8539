package repository

import (
	"context"

	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
)

// ProductFilter filtros opcionales del listado.
type ProductFilter struct {
	CategoryID string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	// CountPerCategory devuelve categoryID -> cantidad de productos.
	CountPerCategory(ctx context.Context) (map[string]int64, error)
}
