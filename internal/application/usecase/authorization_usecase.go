package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalog-admin-api/internal/domain"
	"github.com/jhoicas/catalog-admin-api/internal/domain/authz"
	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalog-admin-api/internal/domain/repository"
)

// AuthorizationUseCase aplica el evaluador de permisos a un usuario ya autenticado.
// Los roles se leen SIEMPRE del almacén en el momento de autorizar: un cambio de
// permisos aplica desde la siguiente petición sin reemitir tokens.
type AuthorizationUseCase struct {
	roleRepo repository.RoleRepository
}

// NewAuthorizationUseCase construye el caso de uso.
func NewAuthorizationUseCase(roleRepo repository.RoleRepository) *AuthorizationUseCase {
	return &AuthorizationUseCase{roleRepo: roleRepo}
}

// Identity resuelve los roles vigentes del usuario.
func (uc *AuthorizationUseCase) Identity(ctx context.Context, user *entity.User) (authz.Identity, error) {
	roles, err := ResolveRoles(ctx, uc.roleRepo, user.RoleIDs)
	if err != nil {
		return authz.Identity{}, err
	}
	return authz.Identity{UserID: user.ID, IsAdmin: user.IsAdmin, Roles: roles}, nil
}

// Authorize devuelve nil si el usuario tiene el permiso, ErrForbidden si no,
// ErrUnauthenticated si no hay usuario.
func (uc *AuthorizationUseCase) Authorize(ctx context.Context, user *entity.User, permission string) error {
	if user == nil {
		return domain.ErrUnauthenticated
	}
	id := authz.Identity{UserID: user.ID, IsAdmin: true}
	if !user.IsAdmin {
		var err error
		if id, err = uc.Identity(ctx, user); err != nil {
			return err
		}
	}
	if authz.Authorize(id, permission) == authz.Allow {
		return nil
	}
	return fmt.Errorf("%w: %s is required", domain.ErrForbidden, permission)
}

// RequireAdmin solo deja pasar administradores (gestión de roles).
func (uc *AuthorizationUseCase) RequireAdmin(_ context.Context, user *entity.User) error {
	if user == nil {
		return domain.ErrUnauthenticated
	}
	if !user.IsAdmin {
		return fmt.Errorf("%w: not authorized as an admin", domain.ErrForbidden)
	}
	return nil
}

// ResolveRoles carga los roles referenciados en el orden de ids.
// Los ids que ya no existen se omiten (referencias colgantes toleradas).
func ResolveRoles(ctx context.Context, repo repository.RoleRepository, ids []string) ([]entity.Role, error) {
	if len(ids) == 0 {
		return []entity.Role{}, nil
	}
	found, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Role, len(found))
	for _, r := range found {
		byID[r.ID] = r
	}
	roles := make([]entity.Role, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			roles = append(roles, *r)
		}
	}
	return roles, nil
}
