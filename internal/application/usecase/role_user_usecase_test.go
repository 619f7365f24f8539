package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-admin-api/internal/application/dto"
	"github.com/jhoicas/catalog-admin-api/internal/domain"
	"github.com/jhoicas/catalog-admin-api/internal/domain/authz"
	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
)

func seedUser(t *testing.T, f *fixture, email string, admin bool) *entity.User {
	t.Helper()
	u := &entity.User{ID: "u-" + email, Name: email, Email: email, PasswordHash: "x", IsAdmin: admin, RoleIDs: []string{}, CreatedAt: time.Now()}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u
}

func TestRole_CreateDuplicado(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.roles.Create(ctx, dto.CreateRoleRequest{Name: "editor", Permissions: []string{authz.UpdateProduct}})
	require.NoError(t, err)
	_, err = f.roles.Create(ctx, dto.CreateRoleRequest{Name: "editor"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRole_UpdateParcial(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	r, err := f.roles.Create(ctx, dto.CreateRoleRequest{Name: "editor", Description: "edits", Permissions: []string{authz.UpdateProduct}})
	require.NoError(t, err)
	other, err := f.roles.Create(ctx, dto.CreateRoleRequest{Name: "viewer"})
	require.NoError(t, err)

	out, err := f.roles.Update(ctx, r.ID, dto.UpdateRoleRequest{Name: ""})
	require.NoError(t, err)
	assert.Equal(t, "editor", out.Name)
	assert.Equal(t, "edits", out.Description)
	assert.Equal(t, []string{authz.UpdateProduct}, out.Permissions)

	out, err = f.roles.Update(ctx, r.ID, dto.UpdateRoleRequest{Permissions: []string{}})
	require.NoError(t, err)
	assert.Empty(t, out.Permissions)

	_, err = f.roles.Update(ctx, other.ID, dto.UpdateRoleRequest{Name: "editor"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUser_AssignYRemoveRole(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := seedUser(t, f, "ana@example.com", false)
	r, err := f.roles.Create(ctx, dto.CreateRoleRequest{Name: "editor", Permissions: []string{authz.UpdateProduct}})
	require.NoError(t, err)

	out, err := f.users.AssignRole(ctx, dto.RoleAssignmentRequest{UserID: u.ID, RoleID: r.ID})
	require.NoError(t, err)
	require.Len(t, out.Roles, 1)
	assert.Equal(t, "editor", out.Roles[0].Name)

	_, err = f.users.AssignRole(ctx, dto.RoleAssignmentRequest{UserID: u.ID, RoleID: r.ID})
	assert.ErrorIs(t, err, domain.ErrRoleAlreadyAssigned)
	_, err = f.users.AssignRole(ctx, dto.RoleAssignmentRequest{UserID: u.ID, RoleID: "nope"})
	assert.ErrorIs(t, err, domain.ErrRoleNotFound)
	_, err = f.users.AssignRole(ctx, dto.RoleAssignmentRequest{UserID: "nope", RoleID: r.ID})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	out, err = f.users.RemoveRole(ctx, dto.RoleAssignmentRequest{UserID: u.ID, RoleID: r.ID})
	require.NoError(t, err)
	assert.Empty(t, out.Roles)
	_, err = f.users.RemoveRole(ctx, dto.RoleAssignmentRequest{UserID: u.ID, RoleID: r.ID})
	assert.NoError(t, err)
}

func TestAuthorization_RolesSeLeenEnCadaPeticion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := seedUser(t, f, "bob@example.com", false)
	r, err := f.roles.Create(ctx, dto.CreateRoleRequest{Name: "editor", Permissions: []string{authz.UpdateProduct}})
	require.NoError(t, err)
	_, err = f.users.AssignRole(ctx, dto.RoleAssignmentRequest{UserID: u.ID, RoleID: r.ID})
	require.NoError(t, err)
	user, err := f.store.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)

	assert.NoError(t, f.authz.Authorize(ctx, user, authz.UpdateProduct))
	assert.ErrorIs(t, f.authz.Authorize(ctx, user, authz.DeleteProduct), domain.ErrForbidden)

	// el cambio de permisos aplica sin reemitir token
	_, err = f.roles.Update(ctx, r.ID, dto.UpdateRoleRequest{Permissions: []string{authz.DeleteProduct}})
	require.NoError(t, err)
	assert.ErrorIs(t, f.authz.Authorize(ctx, user, authz.UpdateProduct), domain.ErrForbidden)
	assert.NoError(t, f.authz.Authorize(ctx, user, authz.DeleteProduct))

	// rol borrado: referencia colgante ignorada
	require.NoError(t, f.roles.Delete(ctx, r.ID))
	assert.ErrorIs(t, f.authz.Authorize(ctx, user, authz.DeleteProduct), domain.ErrForbidden)
	list, err := f.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Roles)
}

func TestAuthorization_AdminSiemprePasa(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	admin := seedUser(t, f, "root@example.com", true)

	assert.NoError(t, f.authz.Authorize(ctx, admin, "anything:custom"))
	assert.NoError(t, f.authz.RequireAdmin(ctx, admin))
	assert.ErrorIs(t, f.authz.Authorize(ctx, nil, authz.ReadProduct), domain.ErrUnauthenticated)

	plain := seedUser(t, f, "plain@example.com", false)
	assert.ErrorIs(t, f.authz.RequireAdmin(ctx, plain), domain.ErrForbidden)
}
