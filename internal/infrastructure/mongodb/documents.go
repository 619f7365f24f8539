package mongodb

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
)

// Documentos BSON. Los ids son UUID en string, igual que en los demás adaptadores.

type userDoc struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password"`
	IsAdmin      bool      `bson:"is_admin"`
	Roles        []string  `bson:"roles"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func toUserDoc(u *entity.User) userDoc {
	roles := u.RoleIDs
	if roles == nil {
		roles = []string{}
	}
	return userDoc{ID: u.ID, Name: u.Name, Email: u.Email, PasswordHash: u.PasswordHash, IsAdmin: u.IsAdmin, Roles: roles, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

func (d userDoc) entity() *entity.User {
	roles := d.Roles
	if roles == nil {
		roles = []string{}
	}
	return &entity.User{ID: d.ID, Name: d.Name, Email: d.Email, PasswordHash: d.PasswordHash, IsAdmin: d.IsAdmin, RoleIDs: roles, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}

type roleDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	Permissions []string  `bson:"permissions"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func toRoleDoc(r *entity.Role) roleDoc {
	perms := r.Permissions
	if perms == nil {
		perms = []string{}
	}
	return roleDoc{ID: r.ID, Name: r.Name, Description: r.Description, Permissions: perms, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

func (d roleDoc) entity() *entity.Role {
	return &entity.Role{ID: d.ID, Name: d.Name, Description: d.Description, Permissions: d.Permissions, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}

type categoryDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Slug        string    `bson:"slug"`
	Description string    `bson:"description"`
	IsActive    bool      `bson:"is_active"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func toCategoryDoc(c *entity.Category) categoryDoc {
	return categoryDoc{ID: c.ID, Name: c.Name, Slug: c.Slug, Description: c.Description, IsActive: c.IsActive, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func (d categoryDoc) entity() *entity.Category {
	return &entity.Category{ID: d.ID, Name: d.Name, Slug: d.Slug, Description: d.Description, IsActive: d.IsActive, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}

type productDoc struct {
	ID          string               `bson:"_id"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Price       primitive.Decimal128 `bson:"price"`
	ImageURL    string               `bson:"image_url"`
	CategoryID  string               `bson:"category_id"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

func toProductDoc(p *entity.Product) (productDoc, error) {
	price, err := primitive.ParseDecimal128(p.Price.String())
	if err != nil {
		return productDoc{}, err
	}
	return productDoc{ID: p.ID, Name: p.Name, Description: p.Description, Price: price, ImageURL: p.ImageURL, CategoryID: p.CategoryID, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}, nil
}

func (d productDoc) entity() (*entity.Product, error) {
	price, err := decimal.NewFromString(d.Price.String())
	if err != nil {
		return nil, err
	}
	return &entity.Product{ID: d.ID, Name: d.Name, Description: d.Description, Price: price, ImageURL: d.ImageURL, CategoryID: d.CategoryID, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}, nil
}

type cartItemDoc struct {
	ProductID string `bson:"product_id"`
	Quantity  int    `bson:"quantity"`
}

type cartDoc struct {
	ID        string        `bson:"_id"`
	UserID    string        `bson:"user_id"`
	Items     []cartItemDoc `bson:"items"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

func toCartDoc(c *entity.Cart) cartDoc {
	items := make([]cartItemDoc, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, cartItemDoc{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return cartDoc{ID: c.ID, UserID: c.UserID, Items: items, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

// cartUpsert actualiza por user_id sin tocar _id: en una carrera de primer uso el
// segundo Save modifica el documento del primero en vez de intentar cambiar su _id.
func cartUpsert(c *entity.Cart) bson.M {
	d := toCartDoc(c)
	return bson.M{
		"$set": bson.M{
			"items":      d.Items,
			"updated_at": d.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":        d.ID,
			"created_at": d.CreatedAt,
		},
	}
}

func (d cartDoc) entity() *entity.Cart {
	items := make([]entity.CartItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, entity.CartItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return &entity.Cart{ID: d.ID, UserID: d.UserID, Items: items, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}
