package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/catalog-admin-api/internal/application/dto"
	"github.com/jhoicas/catalog-admin-api/internal/domain"
	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalog-admin-api/internal/domain/repository"
)

// CartUseCase carrito por usuario. El carrito se crea en el primer uso.
type CartUseCase struct {
	repo         repository.CartRepository
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(repo repository.CartRepository, productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *CartUseCase {
	return &CartUseCase{repo: repo, productRepo: productRepo, categoryRepo: categoryRepo}
}

// AddItem suma la cantidad a la línea del producto o la agrega.
func (uc *CartUseCase) AddItem(ctx context.Context, userID string, in dto.AddCartItemRequest) (*dto.CartResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	cart, err := uc.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := cart.Add(product.ID, in.Quantity); err != nil {
		return nil, err
	}
	return uc.save(ctx, cart)
}

// RemoveItem quita la línea del producto; quitar algo ausente no es error.
func (uc *CartUseCase) RemoveItem(ctx context.Context, userID, productID string) (*dto.CartResponse, error) {
	cart, err := uc.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Remove(productID)
	return uc.save(ctx, cart)
}

// SetQuantity fija la cantidad; <= 0 elimina la línea. ErrCartItemNotFound si no está.
func (uc *CartUseCase) SetQuantity(ctx context.Context, userID, productID string, in dto.UpdateCartItemRequest) (*dto.CartResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	cart, err := uc.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, domain.ErrCartItemNotFound
	}
	if err := cart.SetQuantity(productID, *in.Quantity); err != nil {
		return nil, err
	}
	return uc.save(ctx, cart)
}

// ListItems devuelve el carrito con los productos poblados; lo crea vacío si no existe.
func (uc *CartUseCase) ListItems(ctx context.Context, userID string) (*dto.CartResponse, error) {
	cart, err := uc.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(cart.Items))
	for _, it := range cart.Items {
		ids = append(ids, it.ProductID)
	}
	populated := make(map[string]dto.ProductResponse, len(ids))
	if len(ids) > 0 {
		products, err := uc.productRepo.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		categories := make(map[string]*entity.Category)
		for _, p := range products {
			c, seen := categories[p.CategoryID]
			if !seen {
				if c, err = uc.categoryRepo.GetByID(ctx, p.CategoryID); err != nil {
					return nil, err
				}
				categories[p.CategoryID] = c
			}
			populated[p.ID] = dto.FromProduct(p, c)
		}
	}
	out := dto.FromCart(cart, populated)
	return &out, nil
}

func (uc *CartUseCase) getOrCreate(ctx context.Context, userID string) (*entity.Cart, error) {
	cart, err := uc.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	now := time.Now().UTC()
	cart = &entity.Cart{
		ID:        uuid.New().String(),
		UserID:    userID,
		Items:     []entity.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (uc *CartUseCase) save(ctx context.Context, cart *entity.Cart) (*dto.CartResponse, error) {
	cart.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	out := dto.FromCart(cart, nil)
	return &out, nil
}
