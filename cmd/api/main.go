package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"

	"github.com/jhoicas/catalog-admin-api/docs"
	"github.com/jhoicas/catalog-admin-api/internal/application/auth"
	"github.com/jhoicas/catalog-admin-api/internal/application/usecase"
	"github.com/jhoicas/catalog-admin-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/catalog-admin-api/internal/infrastructure/pdf"
	"github.com/jhoicas/catalog-admin-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/catalog-admin-api/internal/interfaces/http"
	"github.com/jhoicas/catalog-admin-api/pkg/config"
	"github.com/jhoicas/catalog-admin-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("notifier", cfg.Notifier.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		// Solo posible con STORE_DRIVER=memory: los tokens no sobreviven al reinicio.
		cfg.JWT.Secret = "dev-only-secret"
		log.Warn().Msg("JWT_SECRET vacío; usando secreto de desarrollo")
	}

	ctx := context.Background()
	repos, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}

	relay, err := notify.New(ctx, cfg, log.Named("notify"))
	if err != nil {
		log.Fatal().Err(err).Msg("iniciar notificador")
	}
	dispatcher := usecase.NewChangeDispatcher(relay.Notifier, log.Named("events"))

	authUC := auth.NewAuthUseCase(repos.Users, repos.Roles, auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
	})
	authzUC := usecase.NewAuthorizationUseCase(repos.Roles)
	roleUC := usecase.NewRoleUseCase(repos.Roles)
	userUC := usecase.NewUserUseCase(repos.Users, repos.Roles)
	categoryUC := usecase.NewCategoryUseCase(repos.Categories, repos.Products, dispatcher)
	productUC := usecase.NewProductUseCase(repos.Products, repos.Categories, dispatcher, infrapdf.NewPriceListGenerator())
	cartUC := usecase.NewCartUseCase(repos.Carts, repos.Products, repos.Categories)

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		// Sin WriteTimeout: /api/events mantiene la respuesta abierta.
		IdleTimeout: time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	streamCtx, stopStreams := context.WithCancel(ctx)
	defer stopStreams()

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		AuthzUC:       authzUC,
		RoleUC:        roleUC,
		UserUC:        userUC,
		CategoryUC:    categoryUC,
		ProductUC:     productUC,
		CartUC:        cartUC,
		Subscriber:    relay.Subscriber,
		StreamCtx:     streamCtx,
		Logger:        log,
		CORSOrigins:   cfg.HTTP.CORSOrigins,
		AuthRateLimit: cfg.HTTP.AuthRateLimit,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	// Los streams SSE no terminan solos; sin esto el apagado espera el timeout completo.
	stopStreams()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	dispatcher.Wait()
	if err := relay.Close(); err != nil {
		log.Error().Err(err).Msg("cerrar notificador")
	}
	if err := repos.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cerrar almacenamiento")
	}

	log.Info().Msg("aplicación detenida")
}
