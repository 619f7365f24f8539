package dto

import (
	"github.com/jhoicas/catalog-admin-api/internal/domain/authz"
	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
)

// FromRole convierte la entidad a su respuesta. Permissions nunca sale como null.
func FromRole(r *entity.Role) RoleResponse {
	perms := r.Permissions
	if perms == nil {
		perms = []string{}
	}
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Permissions: perms,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// FromUser convierte el usuario con sus roles ya resueltos. withPermissions agrega
// el conjunto efectivo (perfil propio).
func FromUser(u *entity.User, roles []entity.Role, withPermissions bool) UserResponse {
	out := UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		Roles:     make([]RoleResponse, 0, len(roles)),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	for i := range roles {
		out.Roles = append(out.Roles, FromRole(&roles[i]))
	}
	if withPermissions {
		out.Permissions = authz.EffectivePermissions(roles)
	}
	return out
}

// FromCategory convierte la categoría con su conteo de productos.
func FromCategory(c *entity.Category, productCount int64) CategoryResponse {
	return CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         c.Slug,
		Description:  c.Description,
		IsActive:     c.IsActive,
		ProductCount: productCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// FromProduct convierte el producto; category puede ser nil (referencia colgante).
func FromProduct(p *entity.Product, category *entity.Category) ProductResponse {
	out := ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if category != nil {
		out.Category = &CategoryRef{ID: category.ID, Name: category.Name}
	}
	return out
}

// FromCart convierte el carrito; products (opcional) puebla cada línea.
// Las líneas cuyo producto ya no existe se omiten cuando se pasa el mapa.
func FromCart(c *entity.Cart, products map[string]ProductResponse) CartResponse {
	out := CartResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Items:     make([]CartItemResponse, 0, len(c.Items)),
		UpdatedAt: c.UpdatedAt,
	}
	for _, it := range c.Items {
		item := CartItemResponse{ProductID: it.ProductID, Quantity: it.Quantity}
		if products != nil {
			p, ok := products[it.ProductID]
			if !ok {
				continue
			}
			item.Product = &p
		}
		out.Items = append(out.Items, item)
	}
	return out
}
