package mongodb

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
)

func TestCartUpsert_NoReemplazaElID(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	cart := &entity.Cart{
		ID:        "c1",
		UserID:    "u1",
		Items:     []entity.CartItem{{ProductID: "p1", Quantity: 2}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	update := cartUpsert(cart)

	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	assert.NotContains(t, set, "_id", "_id es inmutable: solo va en $setOnInsert")
	assert.NotContains(t, set, "created_at")
	assert.Equal(t, []cartItemDoc{{ProductID: "p1", Quantity: 2}}, set["items"])

	onInsert, ok := update["$setOnInsert"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "c1", onInsert["_id"])
	assert.Equal(t, now, onInsert["created_at"])
}

func TestProductDoc_ConservaPrecio(t *testing.T) {
	p := &entity.Product{ID: "p1", Name: "x", Price: decimal.RequireFromString("12.34"), CategoryID: "c1"}
	doc, err := toProductDoc(p)
	require.NoError(t, err)
	got, err := doc.entity()
	require.NoError(t, err)
	assert.True(t, p.Price.Equal(got.Price))
}
