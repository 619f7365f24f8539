package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	zlog "github.com/rs/zerolog/log"

	"github.com/jhoicas/catalog-admin-api/internal/application/dto"
	"github.com/jhoicas/catalog-admin-api/internal/domain"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa: los sentinels específicos van antes que los genéricos.
var errorMappings = []errorMapping{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrCategoryInUse, fiber.StatusBadRequest, "CATEGORY_IN_USE"},
	{domain.ErrEmailAlreadyExists, fiber.StatusBadRequest, "USER_EXISTS"},
	{domain.ErrRoleAlreadyAssigned, fiber.StatusBadRequest, "ROLE_ALREADY_ASSIGNED"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrRoleNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrCategoryNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrProductNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrCartItemNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrTokenMissing, fiber.StatusUnauthorized, "MISSING_TOKEN"},
	{domain.ErrTokenInvalid, fiber.StatusUnauthorized, "INVALID_TOKEN"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrUnauthenticated, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// classify devuelve status y código HTTP de un error de dominio; ok=false si es de infraestructura.
func classify(err error) (status int, code string, ok bool) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code, true
		}
	}
	return fiber.StatusInternalServerError, "INTERNAL", false
}

// respondError traduce err a la respuesta JSON. Los errores de infraestructura se
// registran y salen con un mensaje genérico.
func respondError(c *fiber.Ctx, err error) error {
	status, code, ok := classify(err)
	if !ok {
		zlog.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Msg("error interno")
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: "server error"})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message(err)})
}

// message quita el prefijo genérico de los errores de validación envueltos
// ("invalid input: name is required" -> "name is required").
func message(err error) string {
	msg := err.Error()
	for _, generic := range []error{domain.ErrInvalidInput, domain.ErrDuplicate, domain.ErrConflict} {
		if rest, found := strings.CutPrefix(msg, generic.Error()+": "); found {
			return rest
		}
	}
	return msg
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
}
