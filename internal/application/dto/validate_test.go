package dto_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-admin-api/internal/application/dto"
	"github.com/jhoicas/catalog-admin-api/internal/domain"
)

func TestValidate_ProductoSinImageURL(t *testing.T) {
	price := decimal.NewFromInt(10)
	err := dto.Validate(dto.ProductRequest{Name: "Mouse", Description: "USB", Price: &price, Category: "c1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "imageUrl is required")
}

func TestValidate_ProductoSinPrecio(t *testing.T) {
	err := dto.Validate(dto.ProductRequest{Name: "Mouse", Description: "USB", ImageURL: "x.png", Category: "c1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price is required")
}

func TestValidate_CategoriaNombreCorto(t *testing.T) {
	err := dto.Validate(dto.CreateCategoryRequest{Name: "A"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name must be at least 2 characters")
}

func TestValidate_RegistroEmailInvalido(t *testing.T) {
	err := dto.Validate(dto.RegisterRequest{Name: "Ana", Email: "no-es-email", Password: "12345678"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email must be a valid email")
}

func TestValidate_CantidadPositiva(t *testing.T) {
	err := dto.Validate(dto.AddCartItemRequest{ProductID: "p1", Quantity: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity must be greater than 0")

	assert.NoError(t, dto.Validate(dto.AddCartItemRequest{ProductID: "p1", Quantity: 1}))
}

func TestValidate_RolPermisosVacios(t *testing.T) {
	err := dto.Validate(dto.CreateRoleRequest{Name: "editor", Permissions: []string{"create:product", ""}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
