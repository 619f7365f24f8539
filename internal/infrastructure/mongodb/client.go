// Package mongodb implementa los puertos de persistencia sobre MongoDB (driver por defecto).
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/catalog-admin-api/pkg/config"
)

// Nombres de colección.
const (
	colUsers      = "users"
	colRoles      = "roles"
	colCategories = "categories"
	colProducts   = "products"
	colCarts      = "carts"
)

// Connect abre el cliente, verifica con Ping y devuelve la base configurada.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes crea los índices únicos de los que dependen las invariantes
// (email, nombre de rol, nombre y slug de categoría, un carrito por usuario).
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	specs := map[string][]mongo.IndexModel{
		colUsers: {{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		colRoles: {{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique}},
		colCategories: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
		},
		colProducts: {{Keys: bson.D{{Key: "category_id", Value: 1}}}},
		colCarts:    {{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique}},
	}
	for col, models := range specs {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("mongo índices %s: %w", col, err)
		}
	}
	return nil
}

// findOne decodifica un documento en out; devuelve (false, nil) si no existe.
func findOne(ctx context.Context, col *mongo.Collection, filter any, out any) (bool, error) {
	err := col.FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
