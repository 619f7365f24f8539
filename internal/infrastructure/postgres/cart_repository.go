package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalog-admin-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación del puerto CartRepository. Las líneas van en una columna JSONB.
type CartRepo struct {
	pool *pgxpool.Pool
}

// NewCartRepository construye el adaptador.
func NewCartRepository(pool *pgxpool.Pool) *CartRepo {
	return &CartRepo{pool: pool}
}

type cartLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (r *CartRepo) GetByUser(ctx context.Context, userID string) (*entity.Cart, error) {
	var (
		c   entity.Cart
		raw []byte
	)
	err := r.pool.QueryRow(ctx, `SELECT id, user_id, items, created_at, updated_at FROM carts WHERE user_id = $1`, userID).
		Scan(&c.ID, &c.UserID, &raw, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	var lines []cartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("decode cart items: %w", err)
	}
	c.Items = make([]entity.CartItem, 0, len(lines))
	for _, l := range lines {
		c.Items = append(c.Items, entity.CartItem{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return &c, nil
}

func (r *CartRepo) Save(ctx context.Context, cart *entity.Cart) error {
	lines := make([]cartLine, 0, len(cart.Items))
	for _, it := range cart.Items {
		lines = append(lines, cartLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO carts (id, user_id, items, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET items = EXCLUDED.items, updated_at = EXCLUDED.updated_at`,
		cart.ID, cart.UserID, raw, cart.CreatedAt, cart.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
