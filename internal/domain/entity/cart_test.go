package entity_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-admin-api/internal/domain"
	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
)

func TestCart_AddAcumulaEnUnaSolaLinea(t *testing.T) {
	c := &entity.Cart{}
	c.Add("p1", 2)
	c.Add("p1", 3)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Quantity("p1"))
}

func TestCart_AddConservaOrden(t *testing.T) {
	c := &entity.Cart{}
	c.Add("p1", 1)
	c.Add("p2", 1)
	c.Add("p1", 1)

	require.Len(t, c.Items, 2)
	assert.Equal(t, "p1", c.Items[0].ProductID)
	assert.Equal(t, "p2", c.Items[1].ProductID)
}

func TestCart_SetQuantityCeroEliminaLinea(t *testing.T) {
	c := &entity.Cart{}
	c.Add("p1", 4)
	c.Add("p2", 1)

	require.NoError(t, c.SetQuantity("p1", 0))
	assert.Len(t, c.Items, 1)
	assert.Equal(t, 0, c.Quantity("p1"))

	require.NoError(t, c.SetQuantity("p2", -3))
	assert.Empty(t, c.Items)
}

func TestCart_SetQuantitySobreescribe(t *testing.T) {
	c := &entity.Cart{}
	c.Add("p1", 4)

	require.NoError(t, c.SetQuantity("p1", 9))
	assert.Equal(t, 9, c.Quantity("p1"))
}

func TestCart_SetQuantityProductoAusente(t *testing.T) {
	c := &entity.Cart{}
	err := c.SetQuantity("nope", 2)
	assert.ErrorIs(t, err, domain.ErrCartItemNotFound)
}

func TestCart_RemoveAusenteNoCambiaNada(t *testing.T) {
	c := &entity.Cart{}
	c.Add("p1", 2)
	c.Remove("nope")

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Quantity("p1"))
}

func TestUser_RolesHelpers(t *testing.T) {
	u := &entity.User{RoleIDs: []string{"r1", "r2"}}
	assert.True(t, u.HasRole("r1"))
	u.RemoveRole("r1")
	u.RemoveRole("r9")
	assert.False(t, u.HasRole("r1"))
	assert.Equal(t, []string{"r2"}, u.RoleIDs)
}

func TestCart_AddRechazaDesbordeYNoModifica(t *testing.T) {
	c := &entity.Cart{}
	require.NoError(t, c.Add("p1", entity.MaxCartQuantity))

	err := c.Add("p1", 2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.MaxCartQuantity, c.Quantity("p1"), "la línea queda como estaba")

	assert.ErrorIs(t, c.Add("p2", math.MaxInt), domain.ErrInvalidInput)
	assert.ErrorIs(t, c.Add("p2", 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, c.Add("p2", -3), domain.ErrInvalidInput)
	assert.Len(t, c.Items, 1)
}

func TestCart_SetQuantityRechazaExceso(t *testing.T) {
	c := &entity.Cart{}
	require.NoError(t, c.Add("p1", 1))

	assert.ErrorIs(t, c.SetQuantity("p1", entity.MaxCartQuantity+1), domain.ErrInvalidInput)
	assert.Equal(t, 1, c.Quantity("p1"))
}
