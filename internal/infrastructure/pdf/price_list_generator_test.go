package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-admin-api/internal/application/dto"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "0.00",
		"5.5":       "5.50",
		"999.999":   "1,000.00",
		"1234567.8": "1,234,567.80",
		"-1500":     "-1,500.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}

func TestGeneratePriceList(t *testing.T) {
	g := NewPriceListGenerator()
	out, err := g.GeneratePriceList(context.Background(), dto.PriceList{
		Title:       "Price list",
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC),
		Lines: []dto.PriceListLine{
			{Category: "Books", Name: "Go in Action", Description: "Paperback", Price: decimal.RequireFromString("39.90")},
			{Category: "Music", Name: "Vinyl", Description: "LP", Price: decimal.RequireFromString("25")},
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGeneratePriceList_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewPriceListGenerator().GeneratePriceList(ctx, dto.PriceList{Title: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
