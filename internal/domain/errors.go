package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// Taxonomía: validación, conflicto, no encontrado, no autenticado, no autorizado.
// Cualquier otro error se considera de infraestructura.
var (
	// Validación
	ErrInvalidInput = errors.New("invalid input")

	// Conflicto
	ErrDuplicate           = errors.New("resource already exists")
	ErrConflict            = errors.New("conflict with current state")
	ErrEmailAlreadyExists  = errors.New("user already exists")
	ErrRoleAlreadyAssigned = errors.New("role already assigned to user")
	ErrCategoryInUse       = errors.New("Cannot delete category: There are products associated with this category. Please reassign or delete the products first.")

	// No encontrado
	ErrNotFound         = errors.New("resource not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrRoleNotFound     = errors.New("role not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("product not in cart")

	// No autenticado
	ErrUnauthenticated    = errors.New("not authorized")
	ErrTokenMissing       = errors.New("not authorized, no token")
	ErrTokenInvalid       = errors.New("not authorized, token failed")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// No autorizado
	ErrForbidden = errors.New("permission denied")
)
