package usecase_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-admin-api/internal/application/dto"
	"github.com/jhoicas/catalog-admin-api/internal/domain"
	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
)

func TestCart_ListCreaCarritoVacio(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	out, err := f.carts.ListItems(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, "user-1", out.UserID)

	again, err := f.carts.ListItems(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, out.ID, again.ID)
}

func TestCart_AddSumaCantidades(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p, err := f.products.Create(ctx, productReq(seedCategory(t, f, "Misc"), "p", "1"))
	require.NoError(t, err)

	_, err = f.carts.AddItem(ctx, "u", dto.AddCartItemRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	out, err := f.carts.AddItem(ctx, "u", dto.AddCartItemRequest{ProductID: p.ID, Quantity: 3})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 5, out.Items[0].Quantity)
}

func TestCart_AddValida(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.carts.AddItem(ctx, "u", dto.AddCartItemRequest{ProductID: "nope", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = f.carts.AddItem(ctx, "u", dto.AddCartItemRequest{ProductID: "nope", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCart_SetQuantityYRemove(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p, err := f.products.Create(ctx, productReq(seedCategory(t, f, "Misc"), "p", "1"))
	require.NoError(t, err)

	_, err = f.carts.SetQuantity(ctx, "u", p.ID, dto.UpdateCartItemRequest{Quantity: intPtr(4)})
	assert.ErrorIs(t, err, domain.ErrCartItemNotFound)

	_, err = f.carts.AddItem(ctx, "u", dto.AddCartItemRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)
	out, err := f.carts.SetQuantity(ctx, "u", p.ID, dto.UpdateCartItemRequest{Quantity: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, out.Items[0].Quantity)

	out, err = f.carts.SetQuantity(ctx, "u", p.ID, dto.UpdateCartItemRequest{Quantity: intPtr(0)})
	require.NoError(t, err)
	assert.Empty(t, out.Items)

	// quitar algo ausente no es error
	out, err = f.carts.RemoveItem(ctx, "u", "ghost")
	require.NoError(t, err)
	assert.Empty(t, out.Items)
}

func TestCart_ListOmiteProductosBorrados(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cat := seedCategory(t, f, "Misc")
	keep, err := f.products.Create(ctx, productReq(cat, "keep", "1"))
	require.NoError(t, err)
	gone, err := f.products.Create(ctx, productReq(cat, "gone", "1"))
	require.NoError(t, err)
	for _, id := range []string{keep.ID, gone.ID} {
		_, err := f.carts.AddItem(ctx, "u", dto.AddCartItemRequest{ProductID: id, Quantity: 1})
		require.NoError(t, err)
	}
	require.NoError(t, f.products.Delete(ctx, gone.ID))

	out, err := f.carts.ListItems(ctx, "u")
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	require.NotNil(t, out.Items[0].Product)
	assert.Equal(t, "keep", out.Items[0].Product.Name)
	assert.Equal(t, "Misc", out.Items[0].Product.Category.Name)
}

func TestCart_AddNoDesbordaLaCantidad(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p, err := f.products.Create(ctx, productReq(seedCategory(t, f, "Misc"), "p", "1"))
	require.NoError(t, err)

	_, err = f.carts.AddItem(ctx, "u", dto.AddCartItemRequest{ProductID: p.ID, Quantity: math.MaxInt})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.carts.AddItem(ctx, "u", dto.AddCartItemRequest{ProductID: p.ID, Quantity: entity.MaxCartQuantity})
	require.NoError(t, err)
	_, err = f.carts.AddItem(ctx, "u", dto.AddCartItemRequest{ProductID: p.ID, Quantity: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := f.carts.ListItems(ctx, "u")
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, entity.MaxCartQuantity, out.Items[0].Quantity)
}
