package dto

import "time"

// CreateRoleRequest entrada para crear un rol.
type CreateRoleRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description" validate:"max=500"`
	Permissions []string `json:"permissions" validate:"dive,required"`
}

// UpdateRoleRequest actualización parcial: campos vacíos conservan el valor actual.
// Permissions nil conserva; una lista (aunque vacía) reemplaza.
type UpdateRoleRequest struct {
	Name        string   `json:"name" validate:"max=100"`
	Description string   `json:"description" validate:"max=500"`
	Permissions []string `json:"permissions" validate:"omitempty,dive,required"`
}

// RoleResponse salida de un rol.
type RoleResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PermissionResponse entrada del catálogo de permisos.
type PermissionResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
