package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/catalog-admin-api/internal/application/dto"
	"github.com/jhoicas/catalog-admin-api/internal/application/usecase"
	"github.com/jhoicas/catalog-admin-api/internal/domain"
	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalog-admin-api/internal/domain/repository"
	"github.com/jhoicas/catalog-admin-api/pkg/jwt"
)

// TokenTTL vigencia fija del token de sesión.
const TokenTTL = 30 * 24 * time.Hour

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret string
	Issuer string
}

// AuthUseCase casos de uso de autenticación: registro, login y resolución de token.
type AuthUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, roleRepo repository.RoleRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, roleRepo: roleRepo, jwtCfg: jwtCfg}
}

// NormalizeEmail recorta y pasa a minúsculas; es la forma en que se guarda y se busca.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

const maxPasswordBytes = 72

// Register crea un usuario sin roles y devuelve su token. ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = NormalizeEmail(in.Email)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	// bcrypt solo admite 72 bytes; el tag max cuenta runas.
	if len(in.Password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", domain.ErrInvalidInput, maxPasswordBytes)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", domain.ErrInvalidInput, maxPasswordBytes)
	}
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		IsAdmin:      in.IsAdmin,
		RoleIDs:      []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		// carrera entre dos registros: el índice único resuelve
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, TokenTTL)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: dto.FromUser(user, nil, false), Token: token}, nil
}

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// dummy mantiene el costo de bcrypt cuando el email no existe.
func dummy() []byte {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("catalog-admin-dummy"), bcrypt.DefaultCost)
	})
	return dummyHash
}

// Login verifica email/password y retorna token + usuario. Email desconocido y password
// incorrecta devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	in.Email = NormalizeEmail(in.Email)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummy(), []byte(in.Password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	roles, err := usecase.ResolveRoles(ctx, uc.roleRepo, user.RoleIDs)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, TokenTTL)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: dto.FromUser(user, roles, false), Token: token}, nil
}

// ResolveToken valida el token y recarga el usuario desde el almacén.
func (uc *AuthUseCase) ResolveToken(ctx context.Context, raw string) (*entity.User, error) {
	if raw == "" {
		return nil, domain.ErrTokenMissing
	}
	userID, err := jwt.Parse(uc.jwtCfg.Secret, raw)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrTokenInvalid
	}
	return user, nil
}

// Profile devuelve el usuario con roles poblados y permisos efectivos.
func (uc *AuthUseCase) Profile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	roles, err := usecase.ResolveRoles(ctx, uc.roleRepo, user.RoleIDs)
	if err != nil {
		return nil, err
	}
	out := dto.FromUser(user, roles, true)
	return &out, nil
}
