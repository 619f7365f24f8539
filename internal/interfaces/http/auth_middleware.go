package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-admin-api/internal/domain"
	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
)

// LocalUser key de Fiber Locals para el usuario autenticado.
const LocalUser = "user"

// TokenResolver valida el token y carga el usuario vigente (lo implementa auth.AuthUseCase).
type TokenResolver interface {
	ResolveToken(ctx context.Context, raw string) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token y deja el usuario recargado del almacén en c.Locals.
func AuthMiddleware(resolver TokenResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return respondError(c, domain.ErrTokenMissing)
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return respondError(c, domain.ErrTokenInvalid)
		}
		user, err := resolver.ResolveToken(c.UserContext(), strings.TrimSpace(parts[1]))
		if err != nil {
			return respondError(c, err)
		}
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// GetUser devuelve el usuario del contexto (después del middleware de auth).
func GetUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalUser).(*entity.User)
	return u
}

// GetUserID devuelve el id del usuario autenticado o "".
func GetUserID(c *fiber.Ctx) string {
	if u := GetUser(c); u != nil {
		return u.ID
	}
	return ""
}
