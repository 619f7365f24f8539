// Package pdf genera la lista de precios del catálogo en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título            │  fecha de generación           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CATEGORÍA                                                  │
//	│  TABLA: Producto | Descripción | Precio                     │
//	│  ... una sección por categoría ...                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: cantidad de productos                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalog-admin-api/internal/application/dto"
	"github.com/jhoicas/catalog-admin-api/internal/application/ports"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// PriceListGenerator implementa ports.PriceListGenerator con Maroto v2.
type PriceListGenerator struct{}

var _ ports.PriceListGenerator = (*PriceListGenerator)(nil)

// NewPriceListGenerator construye el generador.
func NewPriceListGenerator() *PriceListGenerator { return &PriceListGenerator{} }

// GeneratePriceList arma el documento. Las líneas llegan ordenadas por categoría.
func (g *PriceListGenerator) GeneratePriceList(ctx context.Context, list dto.PriceList) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(list.Title, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(list))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(list.Lines) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No products in the catalog.", props.Text{Size: 9, Top: 3, Color: colorGray}),
		)))
	}
	current := ""
	for i, l := range list.Lines {
		if i == 0 || l.Category != current {
			current = l.Category
			m.AddRows(categoryRow(current), tableHeaderRow())
		}
		m.AddRows(productRow(l))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%d products", len(list.Lines)), props.Text{Size: 7, Align: align.Right, Color: colorGray, Top: 1}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(list dto.PriceList) core.Row {
	return row.New(14).Add(
		col.New(8).Add(text.New(list.Title, props.Text{
			Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New("Generated "+list.GeneratedAt.Format("2006-01-02 15:04 MST"), props.Text{
			Size: 8, Align: align.Right, Top: 5, Color: colorGray,
		})),
	)
}

func categoryRow(name string) core.Row {
	return row.New(9).Add(col.New(12).Add(text.New(strings.ToUpper(name), props.Text{
		Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 3,
	})))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Product", 4, align.Left),
		h("Description", 6, align.Left),
		h("Price", 2, align.Right),
	)
}

func productRow(l dto.PriceListLine) core.Row {
	return row.New(7).Add(
		col.New(4).Add(text.New(l.Name, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(6).Add(text.New(truncate(l.Description, 90), props.Text{Size: 7.5, Top: 1, Left: 1, Color: colorGray})),
		col.New(2).Add(text.New("$"+formatMoney(l.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

// formatMoney dos decimales con separador de miles. Ej: 1234.5 -> "1,234.50".
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "." + frac
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
