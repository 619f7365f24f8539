package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/catalog-admin-api/internal/application/dto"
	"github.com/jhoicas/catalog-admin-api/internal/domain"
	"github.com/jhoicas/catalog-admin-api/internal/domain/authz"
	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalog-admin-api/internal/domain/repository"
)

// RoleUseCase CRUD de roles. Borrar un rol no toca a los usuarios que lo tienen asignado.
type RoleUseCase struct {
	repo repository.RoleRepository
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(repo repository.RoleRepository) *RoleUseCase {
	return &RoleUseCase{repo: repo}
}

// Create crea un rol; ErrDuplicate si el nombre ya existe.
func (uc *RoleUseCase) Create(ctx context.Context, in dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: role already exists", domain.ErrDuplicate)
	}
	perms := in.Permissions
	if perms == nil {
		perms = []string{}
	}
	now := time.Now().UTC()
	role := &entity.Role{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Permissions: perms,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, role); err != nil {
		return nil, err
	}
	out := dto.FromRole(role)
	return &out, nil
}

// List devuelve todos los roles.
func (uc *RoleUseCase) List(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, dto.FromRole(r))
	}
	return out, nil
}

// GetByID obtiene un rol.
func (uc *RoleUseCase) GetByID(ctx context.Context, id string) (*dto.RoleResponse, error) {
	role, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}
	out := dto.FromRole(role)
	return &out, nil
}

// Update actualización parcial; renombrar a un nombre de otro rol es ErrDuplicate.
func (uc *RoleUseCase) Update(ctx context.Context, id string, in dto.UpdateRoleRequest) (*dto.RoleResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	role, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}
	if in.Name != "" && in.Name != role.Name {
		other, err := uc.repo.GetByName(ctx, in.Name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != role.ID {
			return nil, fmt.Errorf("%w: role already exists", domain.ErrDuplicate)
		}
		role.Name = in.Name
	}
	if in.Description != "" {
		role.Description = in.Description
	}
	if in.Permissions != nil {
		role.Permissions = in.Permissions
	}
	role.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, role); err != nil {
		return nil, err
	}
	out := dto.FromRole(role)
	return &out, nil
}

// Delete borra el rol sin revisar usuarios que lo referencian.
func (uc *RoleUseCase) Delete(ctx context.Context, id string) error {
	role, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.ErrRoleNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// Permissions catálogo de permisos conocidos.
func (uc *RoleUseCase) Permissions() []dto.PermissionResponse {
	out := make([]dto.PermissionResponse, 0, len(authz.Catalog))
	for _, p := range authz.Catalog {
		out = append(out, dto.PermissionResponse{Name: p.Name, Description: p.Description})
	}
	return out
}
