package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/catalog-admin-api/internal/domain/authz"
	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
)

var (
	editor  = entity.Role{ID: "r1", Name: "editor", Permissions: []string{authz.CreateProduct, authz.UpdateProduct}}
	curator = entity.Role{ID: "r2", Name: "curator", Permissions: []string{authz.ManageCategories, authz.UpdateProduct}}
)

func TestAuthorize_UnionDeRoles(t *testing.T) {
	id := authz.Identity{UserID: "u1", Roles: []entity.Role{editor, curator}}

	cases := map[string]authz.Decision{
		authz.CreateProduct:    authz.Allow,
		authz.UpdateProduct:    authz.Allow,
		authz.ManageCategories: authz.Allow,
		authz.DeleteProduct:    authz.Deny,
		authz.ManageUsers:      authz.Deny,
	}
	for perm, want := range cases {
		assert.Equal(t, want, authz.Authorize(id, perm), perm)
	}
}

func TestAuthorize_SinRolesDeniega(t *testing.T) {
	assert.Equal(t, authz.Deny, authz.Authorize(authz.Identity{UserID: "u1"}, authz.CreateProduct))
}

func TestAuthorize_AdminSiemprePermitido(t *testing.T) {
	admin := authz.Identity{UserID: "root", IsAdmin: true}
	assert.Equal(t, authz.Allow, authz.Authorize(admin, authz.DeleteProduct))
	assert.Equal(t, authz.Allow, authz.Authorize(admin, "permiso:que-no-existe-en-ningun-rol"))
}

func TestAuthorize_ComparacionExacta(t *testing.T) {
	id := authz.Identity{Roles: []entity.Role{{Permissions: []string{"create:*", "CREATE:PRODUCT", "create"}}}}
	assert.Equal(t, authz.Deny, authz.Authorize(id, authz.CreateProduct))
}

func TestEffectivePermissions_OrdenadoSinDuplicados(t *testing.T) {
	got := authz.EffectivePermissions([]entity.Role{editor, curator, editor})
	assert.Equal(t, []string{authz.CreateProduct, authz.ManageCategories, authz.UpdateProduct}, got)
	assert.Empty(t, authz.EffectivePermissions(nil))
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "allow", authz.Allow.String())
	assert.Equal(t, "deny", authz.Deny.String())
}
