package http

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/catalog-admin-api/internal/application/auth"
	"github.com/jhoicas/catalog-admin-api/internal/application/dto"
	"github.com/jhoicas/catalog-admin-api/internal/application/ports"
	"github.com/jhoicas/catalog-admin-api/internal/application/usecase"
	"github.com/jhoicas/catalog-admin-api/internal/domain/authz"
	"github.com/jhoicas/catalog-admin-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	AuthzUC    Authorizer
	RoleUC     *usecase.RoleUseCase
	UserUC     *usecase.UserUseCase
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
	CartUC     *usecase.CartUseCase
	Subscriber ports.ChangeSubscriber // nil: /api/events responde 501
	StreamCtx  context.Context        // al cancelarse cierra los streams SSE
	Logger     *logger.Logger

	CORSOrigins   string
	AuthRateLimit int // por minuto e IP; 0 desactiva
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(deps.CORSOrigins),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(RequestLogger(log.Named("http")))

	api := app.Group("/api")
	authn := AuthMiddleware(deps.AuthUC)
	perm := func(p string) fiber.Handler { return RequirePermission(p, deps.AuthzUC) }
	admin := RequireAdmin(deps.AuthzUC)

	// Users
	users := api.Group("/users")
	userHandler := NewUserHandler(deps.AuthUC, deps.UserUC)
	rate := authLimiter(deps.AuthRateLimit)
	users.Post("/register", rate, userHandler.Register)
	users.Post("/login", rate, userHandler.Login)
	users.Get("/profile", authn, userHandler.Profile)
	users.Get("/all", authn, perm(authz.ManageUsers), userHandler.List)
	users.Post("/role/assign", authn, perm(authz.ManageUsers), userHandler.AssignRole)
	users.Post("/role/remove", authn, perm(authz.ManageUsers), userHandler.RemoveRole)

	// Roles (mutaciones solo admin)
	roles := api.Group("/roles")
	roleHandler := NewRoleHandler(deps.RoleUC)
	roles.Get("/", authn, roleHandler.List)
	roles.Post("/create", authn, admin, roleHandler.Create)
	roles.Put("/:id", authn, admin, roleHandler.Update)
	roles.Delete("/:id", authn, admin, roleHandler.Delete)
	api.Get("/permissions", authn, roleHandler.Permissions)

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/slug/:slug", categoryHandler.GetBySlug)
	categories.Post("/create", authn, perm(authz.ManageCategories), categoryHandler.Create)
	categories.Put("/:id", authn, perm(authz.ManageCategories), categoryHandler.Update)
	categories.Delete("/:id", authn, perm(authz.ManageCategories), categoryHandler.Delete)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/get", productHandler.List)
	products.Get("/get/:id", productHandler.GetByID)
	products.Get("/export.pdf", authn, productHandler.ExportPDF)
	products.Post("/create", authn, perm(authz.CreateProduct), productHandler.Create)
	products.Put("/update/:id", authn, perm(authz.UpdateProduct), productHandler.Update)
	products.Delete("/deleteall", authn, perm(authz.DeleteProduct), productHandler.DeleteAll)
	products.Delete("/delete/:id", authn, perm(authz.DeleteProduct), productHandler.Delete)

	// Cart (usuario autenticado)
	cart := api.Group("/cart", authn)
	cartHandler := NewCartHandler(deps.CartUC)
	cart.Get("/", cartHandler.List)
	cart.Post("/items", cartHandler.Add)
	cart.Put("/items/:productId", cartHandler.SetQuantity)
	cart.Delete("/items/:productId", cartHandler.Remove)

	// Relay SSE (público, igual que los canales de Pusher)
	eventsHandler := NewEventsHandler(deps.StreamCtx, deps.Subscriber, log)
	api.Get("/events/:channel", eventsHandler.Stream)
}

func corsOrigins(raw string) string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return "*"
	}
	return strings.Join(out, ",")
}

func authLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "too many requests, try again later",
			})
		},
	})
}
