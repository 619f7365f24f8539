package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/catalog-admin-api/internal/domain"
	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalog-admin-api/internal/domain/repository"
)

var byCreation = options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

// dupOr traduce la violación de índice único al error de dominio dado.
func dupOr(err error, dup error) error {
	if mongo.IsDuplicateKeyError(err) {
		return dup
	}
	return err
}

// decodeAll recorre el cursor y convierte cada documento.
func decodeAll[D any, E any](ctx context.Context, cur *mongo.Cursor, conv func(D) (E, error)) ([]E, error) {
	defer cur.Close(ctx)
	var out []E
	for cur.Next(ctx) {
		var d D
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		e, err := conv(d)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, cur.Err()
}

// ---- users ----

// UserRepository implementa repository.UserRepository.
type UserRepository struct{ col *mongo.Collection }

// NewUserRepository construye el repositorio.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(colUsers)}
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	_, err := r.col.InsertOne(ctx, toUserDoc(user))
	return dupOr(err, domain.ErrEmailAlreadyExists)
}

func (r *UserRepository) get(ctx context.Context, filter bson.M) (*entity.User, error) {
	var d userDoc
	ok, err := findOne(ctx, r.col, filter, &d)
	if err != nil || !ok {
		return nil, err
	}
	return d.entity(), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.get(ctx, bson.M{"_id": id})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.get(ctx, bson.M{"email": email})
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": user.ID}, toUserDoc(user))
	if err != nil {
		return dupOr(err, domain.ErrEmailAlreadyExists)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	cur, err := r.col.Find(ctx, bson.M{}, byCreation)
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, func(d userDoc) (*entity.User, error) { return d.entity(), nil })
}

// ---- roles ----

// RoleRepository implementa repository.RoleRepository.
type RoleRepository struct{ col *mongo.Collection }

// NewRoleRepository construye el repositorio.
func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{col: db.Collection(colRoles)}
}

var _ repository.RoleRepository = (*RoleRepository)(nil)

func (r *RoleRepository) Create(ctx context.Context, role *entity.Role) error {
	_, err := r.col.InsertOne(ctx, toRoleDoc(role))
	return dupOr(err, domain.ErrDuplicate)
}

func (r *RoleRepository) get(ctx context.Context, filter bson.M) (*entity.Role, error) {
	var d roleDoc
	ok, err := findOne(ctx, r.col, filter, &d)
	if err != nil || !ok {
		return nil, err
	}
	return d.entity(), nil
}

func (r *RoleRepository) GetByID(ctx context.Context, id string) (*entity.Role, error) {
	return r.get(ctx, bson.M{"_id": id})
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	return r.get(ctx, bson.M{"name": name})
}

func (r *RoleRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.Role, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, func(d roleDoc) (*entity.Role, error) { return d.entity(), nil })
}

func (r *RoleRepository) List(ctx context.Context) ([]*entity.Role, error) {
	cur, err := r.col.Find(ctx, bson.M{}, byCreation)
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, func(d roleDoc) (*entity.Role, error) { return d.entity(), nil })
}

func (r *RoleRepository) Update(ctx context.Context, role *entity.Role) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": role.ID}, toRoleDoc(role))
	if err != nil {
		return dupOr(err, domain.ErrDuplicate)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}

func (r *RoleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ---- categories ----

// CategoryRepository implementa repository.CategoryRepository.
type CategoryRepository struct{ col *mongo.Collection }

// NewCategoryRepository construye el repositorio.
func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{col: db.Collection(colCategories)}
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	_, err := r.col.InsertOne(ctx, toCategoryDoc(category))
	return dupOr(err, domain.ErrDuplicate)
}

func (r *CategoryRepository) get(ctx context.Context, filter bson.M) (*entity.Category, error) {
	var d categoryDoc
	ok, err := findOne(ctx, r.col, filter, &d)
	if err != nil || !ok {
		return nil, err
	}
	return d.entity(), nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.get(ctx, bson.M{"_id": id})
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return r.get(ctx, bson.M{"slug": slug})
}

func (r *CategoryRepository) FindConflict(ctx context.Context, name, slug, excludeID string) (*entity.Category, error) {
	filter := bson.M{"$or": bson.A{bson.M{"name": name}, bson.M{"slug": slug}}}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	return r.get(ctx, filter)
}

func (r *CategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	cur, err := r.col.Find(ctx, bson.M{}, byCreation)
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, func(d categoryDoc) (*entity.Category, error) { return d.entity(), nil })
}

func (r *CategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": category.ID}, toCategoryDoc(category))
	if err != nil {
		return dupOr(err, domain.ErrDuplicate)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// ---- products ----

// ProductRepository implementa repository.ProductRepository.
type ProductRepository struct{ col *mongo.Collection }

// NewProductRepository construye el repositorio.
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(colProducts)}
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	d, err := toProductDoc(product)
	if err != nil {
		return err
	}
	_, err = r.col.InsertOne(ctx, d)
	return err
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var d productDoc
	ok, err := findOne(ctx, r.col, bson.M{"_id": id}, &d)
	if err != nil || !ok {
		return nil, err
	}
	return d.entity()
}

func (r *ProductRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, productDoc.entity)
}

func (r *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	q := bson.M{}
	if filter.CategoryID != "" {
		q["category_id"] = filter.CategoryID
	}
	cur, err := r.col.Find(ctx, q, byCreation)
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, productDoc.entity)
}

func (r *ProductRepository) Update(ctx context.Context, product *entity.Product) error {
	d, err := toProductDoc(product)
	if err != nil {
		return err
	}
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": product.ID}, d)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"category_id": categoryID})
}

func (r *ProductRepository) CountPerCategory(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$category_id"}, {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("conteo por categoría: %w", err)
	}
	defer cur.Close(ctx)
	out := map[string]int64{}
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[row.ID] = row.Count
	}
	return out, cur.Err()
}

// ---- carts ----

// CartRepository implementa repository.CartRepository.
type CartRepository struct{ col *mongo.Collection }

// NewCartRepository construye el repositorio.
func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{col: db.Collection(colCarts)}
}

var _ repository.CartRepository = (*CartRepository)(nil)

func (r *CartRepository) GetByUser(ctx context.Context, userID string) (*entity.Cart, error) {
	var d cartDoc
	ok, err := findOne(ctx, r.col, bson.M{"user_id": userID}, &d)
	if err != nil || !ok {
		return nil, err
	}
	return d.entity(), nil
}

func (r *CartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	filter := bson.M{"user_id": cart.UserID}
	update := cartUpsert(cart)
	_, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		// dos upserts insertaron a la vez: el segundo ya encuentra el documento
		_, err = r.col.UpdateOne(ctx, filter, update)
	}
	return err
}
