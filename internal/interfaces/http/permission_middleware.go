package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-admin-api/internal/application/dto"
	"github.com/jhoicas/catalog-admin-api/internal/domain"
	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
)

// Authorizer contrato mínimo que necesitan los middlewares de autorización.
// Lo implementa *usecase.AuthorizationUseCase.
type Authorizer interface {
	Authorize(ctx context.Context, user *entity.User, permission string) error
	RequireAdmin(ctx context.Context, user *entity.User) error
}

// RequirePermission verifica que el usuario tenga el permiso (los admin siempre pasan).
// Debe usarse DESPUÉS de AuthMiddleware.
//
//   - 401 si no hay usuario en el contexto.
//   - 403 con "Permission denied: <perm> is required" si ningún rol lo otorga.
//   - 500 si falla la lectura de roles.
func RequirePermission(permission string, authz Authorizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := authz.Authorize(c.UserContext(), GetUser(c), permission)
		if err == nil {
			return c.Next()
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: fmt.Sprintf("Permission denied: %s is required", permission),
			})
		}
		return respondError(c, err)
	}
}

// RequireAdmin solo deja pasar administradores.
func RequireAdmin(authz Authorizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := authz.RequireAdmin(c.UserContext(), GetUser(c)); err != nil {
			if errors.Is(err, domain.ErrForbidden) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "not authorized as an admin"})
			}
			return respondError(c, err)
		}
		return c.Next()
	}
}
