package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/catalog-admin-api/internal/application/dto"
	"github.com/jhoicas/catalog-admin-api/internal/domain"
	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalog-admin-api/internal/domain/repository"
)

// UserUseCase administración de usuarios: listado y asignación de roles.
type UserUseCase struct {
	repo     repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, roleRepo repository.RoleRepository) *UserUseCase {
	return &UserUseCase{repo: repo, roleRepo: roleRepo}
}

// List devuelve todos los usuarios con sus roles poblados (nunca el hash).
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	roles, err := uc.roleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]entity.Role, len(roles))
	for _, r := range roles {
		byID[r.ID] = *r
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		userRoles := make([]entity.Role, 0, len(u.RoleIDs))
		for _, id := range u.RoleIDs {
			if r, ok := byID[id]; ok {
				userRoles = append(userRoles, r)
			}
		}
		out = append(out, dto.FromUser(u, userRoles, false))
	}
	return out, nil
}

// AssignRole agrega el rol al usuario. El rol debe existir y no estar ya asignado.
func (uc *UserUseCase) AssignRole(ctx context.Context, in dto.RoleAssignmentRequest) (*dto.UserResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	user, err := uc.load(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user.HasRole(in.RoleID) {
		return nil, domain.ErrRoleAlreadyAssigned
	}
	role, err := uc.roleRepo.GetByID(ctx, in.RoleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}
	user.RoleIDs = append(user.RoleIDs, in.RoleID)
	return uc.save(ctx, user)
}

// RemoveRole quita el rol; si no estaba asignado el usuario queda igual.
func (uc *UserUseCase) RemoveRole(ctx context.Context, in dto.RoleAssignmentRequest) (*dto.UserResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	user, err := uc.load(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	user.RemoveRole(in.RoleID)
	return uc.save(ctx, user)
}

func (uc *UserUseCase) load(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (uc *UserUseCase) save(ctx context.Context, user *entity.User) (*dto.UserResponse, error) {
	user.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	roles, err := ResolveRoles(ctx, uc.roleRepo, user.RoleIDs)
	if err != nil {
		return nil, err
	}
	out := dto.FromUser(user, roles, false)
	return &out, nil
}
