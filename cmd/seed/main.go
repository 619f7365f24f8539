// seed crea los roles por defecto y el primer administrador.
//
// Uso: SEED_ADMIN_EMAIL=... SEED_ADMIN_PASSWORD=... go run ./cmd/seed
// Es idempotente: los roles y el usuario que ya existen no se tocan.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/catalog-admin-api/internal/application/auth"
	"github.com/jhoicas/catalog-admin-api/internal/application/dto"
	"github.com/jhoicas/catalog-admin-api/internal/application/usecase"
	"github.com/jhoicas/catalog-admin-api/internal/domain/authz"
	"github.com/jhoicas/catalog-admin-api/internal/infrastructure/storage"
	"github.com/jhoicas/catalog-admin-api/pkg/config"
	"github.com/jhoicas/catalog-admin-api/pkg/logger"
)

// defaultRoles roles con los que arranca un despliegue nuevo.
var defaultRoles = []dto.CreateRoleRequest{
	{
		Name:        "catalog-manager",
		Description: "Gestiona categorías y productos",
		Permissions: []string{authz.ManageCategories, authz.CreateProduct, authz.ReadProduct, authz.UpdateProduct, authz.DeleteProduct},
	},
	{
		Name:        "product-editor",
		Description: "Crea y edita productos",
		Permissions: []string{authz.CreateProduct, authz.ReadProduct, authz.UpdateProduct},
	},
	{
		Name:        "user-manager",
		Description: "Lista usuarios y asigna roles",
		Permissions: []string{authz.ManageUsers},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("seed")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	repos, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer repos.Close(context.Background())

	if err := seed(ctx, repos, cfg, log); err != nil {
		log.Error().Err(err).Msg("seed incompleto")
		os.Exit(1)
	}
	log.Info().Msg("seed terminado")
}

func seed(ctx context.Context, repos *storage.Repositories, cfg *config.Config, log *logger.Logger) error {
	roleUC := usecase.NewRoleUseCase(repos.Roles)
	for _, r := range defaultRoles {
		existing, err := repos.Roles.GetByName(ctx, r.Name)
		if err != nil {
			return fmt.Errorf("buscar rol %s: %w", r.Name, err)
		}
		if existing != nil {
			log.Info().Str("role", r.Name).Msg("rol ya existe")
			continue
		}
		if _, err := roleUC.Create(ctx, r); err != nil {
			return fmt.Errorf("crear rol %s: %w", r.Name, err)
		}
		log.Info().Str("role", r.Name).Msg("rol creado")
	}

	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		log.Warn().Msg("SEED_ADMIN_EMAIL o SEED_ADMIN_PASSWORD vacíos; no se crea administrador")
		return nil
	}
	email := auth.NormalizeEmail(cfg.Seed.AdminEmail)
	existing, err := repos.Users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("buscar administrador: %w", err)
	}
	if existing != nil {
		log.Info().Str("email", email).Msg("administrador ya existe")
		return nil
	}

	secret := cfg.JWT.Secret
	if secret == "" {
		secret = "seed"
	}
	authUC := auth.NewAuthUseCase(repos.Users, repos.Roles, auth.JWTConfig{Secret: secret, Issuer: cfg.JWT.Issuer})
	if _, err := authUC.Register(ctx, dto.RegisterRequest{
		Name:     cfg.Seed.AdminName,
		Email:    email,
		Password: cfg.Seed.AdminPassword,
		IsAdmin:  true,
	}); err != nil {
		return fmt.Errorf("crear administrador: %w", err)
	}
	log.Info().Str("email", email).Msg("administrador creado")
	return nil
}
