package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-admin-api/internal/application/dto"
	"github.com/jhoicas/catalog-admin-api/internal/application/usecase"
	"github.com/jhoicas/catalog-admin-api/internal/domain"
)

func TestCategory_CreateDerivaSlugYPublica(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	out, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "  Home & Garden "})
	require.NoError(t, err)
	assert.Equal(t, "Home & Garden", out.Name)
	assert.Equal(t, "home-garden", out.Slug)
	assert.True(t, out.IsActive)

	f.dispatcher.Wait()
	events := f.notifier.all()
	require.Len(t, events, 1)
	assert.Equal(t, usecase.ChannelCategories, events[0].Channel)
	assert.Equal(t, usecase.EventCategoryCreated, events[0].Event)
}

func TestCategory_CreateRechazaNombreOSlugRepetido(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Tools"})
	require.NoError(t, err)

	_, err = f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Tools"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// mismo slug con otro nombre
	_, err = f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "tools!"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCategory_CreateValidaLongitud(t *testing.T) {
	f := newFixture()
	_, err := f.categories.Create(context.Background(), dto.CreateCategoryRequest{Name: "A"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategory_UpdateParcialRecalculaSlug(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Old Name", Description: "desc"})
	require.NoError(t, err)

	out, err := f.categories.Update(ctx, c.ID, dto.UpdateCategoryRequest{Name: strPtr("New Name"), IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, "new-name", out.Slug)
	assert.Equal(t, "desc", out.Description)
	assert.False(t, out.IsActive)

	got, err := f.categories.GetBySlug(ctx, "new-name")
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
}

func TestCategory_UpdateConflictoConOtra(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Books"})
	require.NoError(t, err)
	music, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Music"})
	require.NoError(t, err)

	_, err = f.categories.Update(ctx, music.ID, dto.UpdateCategoryRequest{Name: strPtr("Books")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.categories.Update(ctx, "missing", dto.UpdateCategoryRequest{Name: strPtr("Other")})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCategory_DeleteConProductosFalla(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Phones"})
	require.NoError(t, err)
	price := decimal.RequireFromString("10.50")
	p, err := f.products.Create(ctx, dto.ProductRequest{Name: "X", Description: "d", Price: &price, ImageURL: "http://img", Category: c.ID})
	require.NoError(t, err)

	err = f.categories.Delete(ctx, c.ID)
	require.ErrorIs(t, err, domain.ErrCategoryInUse)
	assert.Equal(t, "Cannot delete category: There are products associated with this category. Please reassign or delete the products first.", err.Error())

	require.NoError(t, f.products.Delete(ctx, p.ID))
	require.NoError(t, f.categories.Delete(ctx, c.ID))
	_, err = f.categories.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCategory_ListIncluyeConteo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Alpha"})
	require.NoError(t, err)
	_, err = f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Beta"})
	require.NoError(t, err)
	price := decimal.NewFromInt(3)
	for _, name := range []string{"one", "two"} {
		_, err := f.products.Create(ctx, dto.ProductRequest{Name: name, Description: "d", Price: &price, ImageURL: "u", Category: a.ID})
		require.NoError(t, err)
	}

	list, err := f.categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	counts := map[string]int64{}
	for _, c := range list {
		counts[c.Name] = c.ProductCount
	}
	assert.Equal(t, int64(2), counts["Alpha"])
	assert.Equal(t, int64(0), counts["Beta"])
}
