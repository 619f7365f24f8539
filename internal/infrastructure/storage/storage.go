// Package storage elige el adaptador de persistencia según STORE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalog-admin-api/internal/domain/repository"
	"github.com/jhoicas/catalog-admin-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalog-admin-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/catalog-admin-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalog-admin-api/pkg/config"
)

// Repositories agrupa los puertos de persistencia de un mismo almacén.
type Repositories struct {
	Users      repository.UserRepository
	Roles      repository.RoleRepository
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	Carts      repository.CartRepository

	close func(context.Context) error
}

// Close libera las conexiones del almacén.
func (r *Repositories) Close(ctx context.Context) error {
	if r.close == nil {
		return nil
	}
	return r.close(ctx)
}

// Open conecta con el almacén configurado y prepara índices o esquema.
func Open(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		return FromMemory(memory.NewStore()), nil

	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Repositories{
			Users:      postgres.NewUserRepository(pool),
			Roles:      postgres.NewRoleRepository(pool),
			Categories: postgres.NewCategoryRepository(pool),
			Products:   postgres.NewProductRepository(pool),
			Carts:      postgres.NewCartRepository(pool),
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case config.StoreMongo:
		client, db, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &Repositories{
			Users:      mongodb.NewUserRepository(db),
			Roles:      mongodb.NewRoleRepository(db),
			Categories: mongodb.NewCategoryRepository(db),
			Products:   mongodb.NewProductRepository(db),
			Carts:      mongodb.NewCartRepository(db),
			close:      client.Disconnect,
		}, nil
	}
	return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Store.Driver)
}

// FromMemory expone un store en memoria como Repositories (tests y desarrollo).
func FromMemory(s *memory.Store) *Repositories {
	return &Repositories{
		Users:      s.Users(),
		Roles:      s.Roles(),
		Categories: s.Categories(),
		Products:   s.Products(),
		Carts:      s.Carts(),
	}
}
