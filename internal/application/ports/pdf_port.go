package ports

import (
	"context"

	"github.com/jhoicas/catalog-admin-api/internal/application/dto"
)

// PriceListGenerator genera el PDF de la lista de precios del catálogo.
type PriceListGenerator interface {
	GeneratePriceList(ctx context.Context, list dto.PriceList) ([]byte, error)
}
