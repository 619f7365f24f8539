package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalog-admin-api/internal/application/dto"
	"github.com/jhoicas/catalog-admin-api/internal/application/ports"
	"github.com/jhoicas/catalog-admin-api/internal/domain"
	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalog-admin-api/internal/domain/repository"
)

// El precio se persiste como NUMERIC(14,2).
const priceDecimals = 2

var maxPrice = decimal.New(1, 12)

// ProductUseCase CRUD de productos. Todo producto referencia una categoría existente
// al momento de escribir.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	events       *ChangeDispatcher
	pdf          ports.PriceListGenerator
}

// NewProductUseCase construye el caso de uso. pdf puede ser nil si no se exporta.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, events *ChangeDispatcher, pdf ports.PriceListGenerator) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, events: events, pdf: pdf}
}

// Create valida los cinco campos y la categoría antes de cualquier escritura.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	category, err := uc.validate(ctx, &in)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Price:       *in.Price,
		ImageURL:    in.ImageURL,
		CategoryID:  category.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	out := dto.FromProduct(product, category)
	uc.events.Dispatch(ctx, ChannelProducts, EventProductCreated, out)
	return &out, nil
}

// Update reemplaza todos los campos del producto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	category, err := uc.validate(ctx, &in)
	if err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	product.Name = in.Name
	product.Description = in.Description
	product.Price = *in.Price
	product.ImageURL = in.ImageURL
	product.CategoryID = category.ID
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	out := dto.FromProduct(product, category)
	uc.events.Dispatch(ctx, ChannelProducts, EventProductUpdated, out)
	return &out, nil
}

func (uc *ProductUseCase) validate(ctx context.Context, in *dto.ProductRequest) (*entity.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.Category = strings.TrimSpace(in.Category)
	if err := dto.Validate(*in); err != nil {
		return nil, err
	}
	if !in.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be greater than 0", domain.ErrInvalidInput)
	}
	if !in.Price.Equal(in.Price.Round(priceDecimals)) {
		return nil, fmt.Errorf("%w: price must have at most %d decimals", domain.ErrInvalidInput, priceDecimals)
	}
	if in.Price.GreaterThanOrEqual(maxPrice) {
		return nil, fmt.Errorf("%w: price must be less than %s", domain.ErrInvalidInput, maxPrice.String())
	}
	category, err := uc.categoryRepo.GetByID(ctx, in.Category)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: Selected category does not exist", domain.ErrInvalidInput)
	}
	return category, nil
}

// GetByID obtiene un producto con su categoría poblada.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	category, err := uc.categoryRepo.GetByID(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	out := dto.FromProduct(product, category)
	return &out, nil
}

// List lista productos, opcionalmente filtrados por categoría.
func (uc *ProductUseCase) List(ctx context.Context, categoryID string) ([]dto.ProductResponse, error) {
	products, err := uc.repo.List(ctx, repository.ProductFilter{CategoryID: categoryID})
	if err != nil {
		return nil, err
	}
	categories, err := uc.categoriesByID(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.FromProduct(p, categories[p.CategoryID]))
	}
	return out, nil
}

// Delete borra el producto sin revisar carritos que lo referencian.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.events.Dispatch(ctx, ChannelProducts, EventProductDeleted, dto.DeletedRef{ID: id})
	return nil
}

// DeleteAll borra todos los productos y devuelve cuántos. No publica eventos.
func (uc *ProductUseCase) DeleteAll(ctx context.Context) (int64, error) {
	return uc.repo.DeleteAll(ctx)
}

// ExportPriceList genera el PDF de lista de precios, ordenado por categoría y nombre.
func (uc *ProductUseCase) ExportPriceList(ctx context.Context, categoryID string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("product: exportación PDF no configurada")
	}
	products, err := uc.repo.List(ctx, repository.ProductFilter{CategoryID: categoryID})
	if err != nil {
		return nil, err
	}
	categories, err := uc.categoriesByID(ctx)
	if err != nil {
		return nil, err
	}
	list := dto.PriceList{Title: "Price list", GeneratedAt: time.Now().UTC()}
	for _, p := range products {
		name := "-"
		if c := categories[p.CategoryID]; c != nil {
			name = c.Name
		}
		list.Lines = append(list.Lines, dto.PriceListLine{
			Category:    name,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
		})
	}
	sort.SliceStable(list.Lines, func(i, j int) bool {
		if list.Lines[i].Category != list.Lines[j].Category {
			return list.Lines[i].Category < list.Lines[j].Category
		}
		return list.Lines[i].Name < list.Lines[j].Name
	})
	return uc.pdf.GeneratePriceList(ctx, list)
}

func (uc *ProductUseCase) categoriesByID(ctx context.Context) (map[string]*entity.Category, error) {
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	return byID, nil
}
