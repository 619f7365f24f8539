package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/catalog-admin-api/internal/application/dto"
	"github.com/jhoicas/catalog-admin-api/internal/domain"
	"github.com/jhoicas/catalog-admin-api/internal/domain/catalog"
	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalog-admin-api/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías con slug derivado y guarda referencial de borrado.
type CategoryUseCase struct {
	repo        repository.CategoryRepository
	productRepo repository.ProductRepository
	events      *ChangeDispatcher
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, productRepo repository.ProductRepository, events *ChangeDispatcher) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, productRepo: productRepo, events: events}
}

var errCategoryExists = fmt.Errorf("%w: Category with this name already exists", domain.ErrDuplicate)

// Create crea la categoría. Rechaza si otra ya tiene el mismo nombre o el mismo slug.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	slug := catalog.Slugify(in.Name)
	if slug == "" {
		return nil, fmt.Errorf("%w: name must contain at least one letter or digit", domain.ErrInvalidInput)
	}
	conflict, err := uc.repo.FindConflict(ctx, in.Name, slug, "")
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, errCategoryExists
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now().UTC()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Slug:        slug,
		Description: in.Description,
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	out := dto.FromCategory(category, 0)
	uc.events.Dispatch(ctx, ChannelCategories, EventCategoryCreated, out)
	return &out, nil
}

// Update actualización parcial; el slug se recalcula si cambia el nombre.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		in.Name = &trimmed
	}
	if in.Description != nil {
		trimmed := strings.TrimSpace(*in.Description)
		in.Description = &trimmed
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrCategoryNotFound
	}
	if in.Name != nil && *in.Name != "" && *in.Name != category.Name {
		slug := catalog.Slugify(*in.Name)
		if slug == "" {
			return nil, fmt.Errorf("%w: name must contain at least one letter or digit", domain.ErrInvalidInput)
		}
		conflict, err := uc.repo.FindConflict(ctx, *in.Name, slug, category.ID)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			return nil, errCategoryExists
		}
		category.Name = *in.Name
		category.Slug = slug
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}
	category.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	count, err := uc.productRepo.CountByCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	out := dto.FromCategory(category, count)
	uc.events.Dispatch(ctx, ChannelCategories, EventCategoryUpdated, out)
	return &out, nil
}

// Delete se niega si algún producto referencia la categoría. El conteo y el borrado son
// dos operaciones separadas: no hay transacción entre ellas.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrCategoryNotFound
	}
	count, err := uc.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrCategoryInUse
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.events.Dispatch(ctx, ChannelCategories, EventCategoryDeleted, dto.DeletedRef{ID: id})
	return nil
}

// List devuelve todas las categorías con su conteo de productos.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	var (
		categories []*entity.Category
		counts     map[string]int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = uc.repo.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = uc.productRepo.CountPerCategory(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.FromCategory(c, counts[c.ID]))
	}
	return out, nil
}

// GetBySlug obtiene una categoría por slug.
func (uc *CategoryUseCase) GetBySlug(ctx context.Context, slug string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return uc.withCount(ctx, category)
}

// GetByID obtiene una categoría por id.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.withCount(ctx, category)
}

func (uc *CategoryUseCase) withCount(ctx context.Context, category *entity.Category) (*dto.CategoryResponse, error) {
	if category == nil {
		return nil, domain.ErrCategoryNotFound
	}
	count, err := uc.productRepo.CountByCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	out := dto.FromCategory(category, count)
	return &out, nil
}
