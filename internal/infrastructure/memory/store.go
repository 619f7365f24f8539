// Package memory implementa los puertos de persistencia en memoria (desarrollo y tests).
package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/catalog-admin-api/internal/domain"
	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalog-admin-api/internal/domain/repository"
)

// Store guarda todas las colecciones bajo un único mutex. Lee y escribe copias:
// nadie fuera del store comparte memoria con él.
type Store struct {
	mu         sync.RWMutex
	users      map[string]entity.User
	roles      map[string]entity.Role
	categories map[string]entity.Category
	products   map[string]entity.Product
	carts      map[string]entity.Cart // por userID
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		users:      map[string]entity.User{},
		roles:      map[string]entity.Role{},
		categories: map[string]entity.Category{},
		products:   map[string]entity.Product{},
		carts:      map[string]entity.Cart{},
	}
}

// Users, Roles, Categories, Products y Carts exponen cada puerto.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }
func (s *Store) Roles() repository.RoleRepository { return roleRepo{s} }
func (s *Store) Categories() repository.CategoryRepository { return categoryRepo{s} }
func (s *Store) Products() repository.ProductRepository { return productRepo{s} }
func (s *Store) Carts() repository.CartRepository { return cartRepo{s} }

func sortedByCreation[T any](m map[string]T, key func(T) (int64, string)) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		ti, ii := key(out[i])
		tj, ij := key(out[j])
		if ti != tj {
			return ti < tj
		}
		return ii < ij
	})
	return out
}

// ---- users ----

type userRepo struct{ s *Store }

func copyUser(u entity.User) *entity.User {
	u.RoleIDs = slices.Clone(u.RoleIDs)
	return &u
}

func (r userRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[user.ID] = *copyUser(*user)
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r userRepo) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.s.users[user.ID] = *copyUser(*user)
	return nil
}

func (r userRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := sortedByCreation(r.s.users, func(u entity.User) (int64, string) { return u.CreatedAt.UnixNano(), u.ID })
	out := make([]*entity.User, 0, len(all))
	for _, u := range all {
		out = append(out, copyUser(u))
	}
	return out, nil
}

// ---- roles ----

type roleRepo struct{ s *Store }

func copyRole(r entity.Role) *entity.Role {
	r.Permissions = slices.Clone(r.Permissions)
	return &r
}

func (r roleRepo) nameTaken(name, excludeID string) bool {
	for _, existing := range r.s.roles {
		if existing.ID != excludeID && existing.Name == name {
			return true
		}
	}
	return false
}

func (r roleRepo) Create(_ context.Context, role *entity.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(role.Name, "") {
		return domain.ErrDuplicate
	}
	r.s.roles[role.ID] = *copyRole(*role)
	return nil
}

func (r roleRepo) GetByID(_ context.Context, id string) (*entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	role, ok := r.s.roles[id]
	if !ok {
		return nil, nil
	}
	return copyRole(role), nil
}

func (r roleRepo) GetByName(_ context.Context, name string) (*entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, role := range r.s.roles {
		if role.Name == name {
			return copyRole(role), nil
		}
	}
	return nil, nil
}

func (r roleRepo) GetByIDs(_ context.Context, ids []string) ([]*entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Role, 0, len(ids))
	for _, id := range ids {
		if role, ok := r.s.roles[id]; ok {
			out = append(out, copyRole(role))
		}
	}
	return out, nil
}

func (r roleRepo) List(_ context.Context) ([]*entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := sortedByCreation(r.s.roles, func(x entity.Role) (int64, string) { return x.CreatedAt.UnixNano(), x.ID })
	out := make([]*entity.Role, 0, len(all))
	for _, role := range all {
		out = append(out, copyRole(role))
	}
	return out, nil
}

func (r roleRepo) Update(_ context.Context, role *entity.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.roles[role.ID]; !ok {
		return domain.ErrRoleNotFound
	}
	if r.nameTaken(role.Name, role.ID) {
		return domain.ErrDuplicate
	}
	r.s.roles[role.ID] = *copyRole(*role)
	return nil
}

func (r roleRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.roles[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.roles, id)
	return nil
}

// ---- categories ----

type categoryRepo struct{ s *Store }

func (r categoryRepo) conflict(name, slug, excludeID string) *entity.Category {
	for _, c := range r.s.categories {
		if c.ID != excludeID && (c.Name == name || c.Slug == slug) {
			c := c
			return &c
		}
	}
	return nil
}

func (r categoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.conflict(category.Name, category.Slug, "") != nil {
		return domain.ErrDuplicate
	}
	r.s.categories[category.ID] = *category
	return nil
}

func (r categoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r categoryRepo) GetBySlug(_ context.Context, slug string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.categories {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, nil
}

func (r categoryRepo) FindConflict(_ context.Context, name, slug, excludeID string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.conflict(name, slug, excludeID), nil
}

func (r categoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := sortedByCreation(r.s.categories, func(c entity.Category) (int64, string) { return c.CreatedAt.UnixNano(), c.ID })
	out := make([]*entity.Category, 0, len(all))
	for i := range all {
		out = append(out, &all[i])
	}
	return out, nil
}

func (r categoryRepo) Update(_ context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[category.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	if r.conflict(category.Name, category.Slug, category.ID) != nil {
		return domain.ErrDuplicate
	}
	r.s.categories[category.ID] = *category
	return nil
}

func (r categoryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.s.categories, id)
	return nil
}

// ---- products ----

type productRepo struct{ s *Store }

func (r productRepo) Create(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[product.ID] = *product
	return nil
}

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r productRepo) GetByIDs(_ context.Context, ids []string) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r productRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := sortedByCreation(r.s.products, func(p entity.Product) (int64, string) { return p.CreatedAt.UnixNano(), p.ID })
	out := make([]*entity.Product, 0, len(all))
	for i := range all {
		if filter.CategoryID != "" && all[i].CategoryID != filter.CategoryID {
			continue
		}
		out = append(out, &all[i])
	}
	return out, nil
}

func (r productRepo) Update(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r productRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r productRepo) DeleteAll(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := int64(len(r.s.products))
	r.s.products = map[string]entity.Product{}
	return n, nil
}

func (r productRepo) CountByCategory(_ context.Context, categoryID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, p := range r.s.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r productRepo) CountPerCategory(_ context.Context) (map[string]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := map[string]int64{}
	for _, p := range r.s.products {
		out[p.CategoryID]++
	}
	return out, nil
}

// ---- carts ----

type cartRepo struct{ s *Store }

func (r cartRepo) GetByUser(_ context.Context, userID string) (*entity.Cart, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.carts[userID]
	if !ok {
		return nil, nil
	}
	c.Items = slices.Clone(c.Items)
	return &c, nil
}

func (r cartRepo) Save(_ context.Context, cart *entity.Cart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *cart
	c.Items = slices.Clone(cart.Items)
	r.s.carts[cart.UserID] = c
	return nil
}
