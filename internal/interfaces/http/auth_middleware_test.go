package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-admin-api/internal/domain"
	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
	apphttp "github.com/jhoicas/catalog-admin-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test
// ──────────────────────────────────────────────────────────────────────────────

const testToken = "token-valido"

// stubResolver acepta solo testToken y devuelve user.
type stubResolver struct {
	user *entity.User
}

func (r stubResolver) ResolveToken(_ context.Context, raw string) (*entity.User, error) {
	if raw == "" {
		return nil, domain.ErrTokenMissing
	}
	if raw != testToken {
		return nil, domain.ErrTokenInvalid
	}
	return r.user, nil
}

// stubAuthorizer otorga los permisos listados; admin pasa siempre.
type stubAuthorizer struct {
	perms map[string]bool
	err   error
}

func (a stubAuthorizer) Authorize(_ context.Context, user *entity.User, permission string) error {
	if a.err != nil {
		return a.err
	}
	if user == nil {
		return domain.ErrUnauthenticated
	}
	if user.IsAdmin || a.perms[permission] {
		return nil
	}
	return domain.ErrForbidden
}

func (a stubAuthorizer) RequireAdmin(_ context.Context, user *entity.User) error {
	if user == nil {
		return domain.ErrUnauthenticated
	}
	if !user.IsAdmin {
		return domain.ErrForbidden
	}
	return nil
}

// buildTestApp arma Fiber con AuthMiddleware + RequirePermission sobre un handler dummy.
func buildTestApp(user *entity.User, authz stubAuthorizer) *fiber.App {
	app := fiber.New()
	ok := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "user_id": apphttp.GetUserID(c)})
	}
	auth := apphttp.AuthMiddleware(stubResolver{user: user})
	app.Get("/protected", auth, apphttp.RequirePermission("create:product", authz), ok)
	app.Get("/admin", auth, apphttp.RequireAdmin(authz), ok)
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(body)
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	app := buildTestApp(&entity.User{ID: "u1"}, stubAuthorizer{})
	resp, body := doRequest(t, app, "/protected", "")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "MISSING_TOKEN")
	assert.Contains(t, body, "not authorized, no token")
}

func TestAuthMiddleware_SinBearer_Retorna401(t *testing.T) {
	app := buildTestApp(&entity.User{ID: "u1"}, stubAuthorizer{})
	resp, body := doRequest(t, app, "/protected", "Basic abc")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(&entity.User{ID: "u1"}, stubAuthorizer{})
	resp, body := doRequest(t, app, "/protected", "Bearer token.invalido.aqui")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "not authorized, token failed")
}

func TestAuthMiddleware_CargaUsuario(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(stubResolver{user: &entity.User{ID: "u1", Email: "a@b.co"}}), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c), "email": apphttp.GetUser(c).Email})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "bearer "+testToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "el esquema Bearer no distingue mayúsculas")
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "u1", body["user_id"])
	assert.Equal(t, "a@b.co", body["email"])
}

// ──────────────────────────────────────────────────────────────────────────────
// RequirePermission / RequireAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_ConPermiso_Pasa(t *testing.T) {
	app := buildTestApp(&entity.User{ID: "u1"}, stubAuthorizer{perms: map[string]bool{"create:product": true}})
	resp, body := doRequest(t, app, "/protected", "Bearer "+testToken)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"user_id":"u1"`)
}

func TestRequirePermission_AdminPasaSinRoles(t *testing.T) {
	app := buildTestApp(&entity.User{ID: "u1", IsAdmin: true}, stubAuthorizer{})
	resp, _ := doRequest(t, app, "/protected", "Bearer "+testToken)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermission_SinPermiso_Retorna403(t *testing.T) {
	app := buildTestApp(&entity.User{ID: "u1"}, stubAuthorizer{perms: map[string]bool{"update:product": true}})
	resp, body := doRequest(t, app, "/protected", "Bearer "+testToken)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "FORBIDDEN")
	assert.Contains(t, body, "Permission denied: create:product is required")
}

func TestRequirePermission_FallaAlmacen_Retorna500(t *testing.T) {
	app := buildTestApp(&entity.User{ID: "u1"}, stubAuthorizer{err: assert.AnError})
	resp, body := doRequest(t, app, "/protected", "Bearer "+testToken)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, "server error")
	assert.NotContains(t, body, assert.AnError.Error(), "el detalle interno no se expone")
}

func TestRequireAdmin(t *testing.T) {
	app := buildTestApp(&entity.User{ID: "u1"}, stubAuthorizer{})
	resp, body := doRequest(t, app, "/admin", "Bearer "+testToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "not authorized as an admin")

	app = buildTestApp(&entity.User{ID: "u1", IsAdmin: true}, stubAuthorizer{})
	resp, _ = doRequest(t, app, "/admin", "Bearer "+testToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
