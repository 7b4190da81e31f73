package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ServiOrden-api/internal/application/dto"
	"github.com/jhoicas/ServiOrden-api/internal/domain"
	"github.com/jhoicas/ServiOrden-api/internal/domain/authz"
	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
	"github.com/jhoicas/ServiOrden-api/pkg/jwt"
	"github.com/jhoicas/ServiOrden-api/pkg/logger"
)

// TokenConfig parámetros de emisión de tokens.
type TokenConfig struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// UseCase casos de uso de autenticación y gestión de usuarios.
type UseCase struct {
	users  repository.UserRepository
	cache  PrincipalCache
	tokens TokenConfig
	log    *logger.Logger
}

// NewUseCase crea el caso de uso de auth.
func NewUseCase(users repository.UserRepository, cache PrincipalCache, tokens TokenConfig, log *logger.Logger) *UseCase {
	return &UseCase{users: users, cache: cache, tokens: tokens, log: log}
}

// Login valida credenciales y emite un JWT. Credenciales inválidas y usuario
// inexistente devuelven el mismo error para no revelar qué emails existen;
// un usuario desactivado sí se distingue (403).
func (uc *UseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, domain.NewValidation("email y contraseña son obligatorios")
	}

	user, err := uc.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}

	token, err := jwt.Generate(uc.tokens.Secret, user.ID, user.CompanyID, user.Role, uc.tokens.Issuer, uc.tokens.ExpMinutes)
	if err != nil {
		return nil, err
	}

	if err := uc.users.UpdateLastLogin(user.ID); err != nil {
		// No bloquea el login; last_login es informativo.
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo actualizar last_login")
	}

	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login exitoso")
	return &dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

// CreateUser registra un usuario nuevo. SUPERADMIN crea cualquier rol en
// cualquier empresa; ADMIN solo CLIENT/EMPLOYEE en la suya.
func (uc *UseCase) CreateUser(ctx context.Context, p authz.Principal, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	targetRole, err := authz.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	companyID := req.CompanyID
	if p.Role == authz.RoleAdmin {
		// Los admins siempre crean dentro de su propia empresa.
		companyID = p.CompanyID
	}
	if targetRole != authz.RoleSuperAdmin && companyID == "" {
		return nil, domain.NewValidation("company_id es obligatorio para roles de empresa")
	}

	decision := authz.Decide(p, authz.OpCreateUser, authz.Resource{
		CompanyID:  companyID,
		TargetRole: targetRole,
	})
	if !decision.Allowed() {
		return nil, decision.Err
	}

	if req.Email == "" || req.Password == "" {
		return nil, domain.NewValidation("email y contraseña son obligatorios")
	}
	if len(req.Password) < 8 {
		return nil, domain.NewValidation("la contraseña debe tener al menos 8 caracteres")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := uc.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.NewString(),
		CompanyID:    companyID,
		Role:         string(targetRole),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		DisplayName:  req.DisplayName,
		ClientID:     req.ClientID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if targetRole == authz.RoleSuperAdmin {
		user.CompanyID = ""
	}

	if err := uc.users.Create(user); err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Str("company_id", user.CompanyID).Msg("usuario creado")
	resp := toUserResponse(user)
	return &resp, nil
}

// ListUsers lista usuarios. SUPERADMIN ve todos; el resto solo su empresa.
func (uc *UseCase) ListUsers(ctx context.Context, p authz.Principal) ([]dto.UserResponse, error) {
	companyID := p.CompanyID
	if p.Role == authz.RoleSuperAdmin {
		companyID = ""
	}
	users, err := uc.users.List(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// GetUser lee un usuario. Fuera del tenant del solicitante el resultado es
// indistinguible de inexistente.
func (uc *UseCase) GetUser(ctx context.Context, p authz.Principal, id string) (*dto.UserResponse, error) {
	user, err := uc.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	decision := authz.Decide(p, authz.OpReadUser, authz.Resource{CompanyID: user.CompanyID})
	if !decision.Allowed() {
		return nil, domain.ErrNotFound
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// DeleteUser elimina un usuario e invalida su principal cacheado. Borrarse a
// uno mismo se rechaza siempre, incluso para SUPERADMIN.
func (uc *UseCase) DeleteUser(ctx context.Context, p authz.Principal, id string) error {
	user, err := uc.users.FindByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}

	decision := authz.Decide(p, authz.OpDeleteUser, authz.Resource{
		CompanyID:    user.CompanyID,
		TargetUserID: user.ID,
	})
	if !decision.Allowed() {
		return decision.Err
	}

	if err := uc.users.Delete(id); err != nil {
		return err
	}
	if err := uc.cache.Invalidate(ctx, id); err != nil {
		uc.log.Warn().Err(err).Str("user_id", id).Msg("no se pudo invalidar principal en caché")
	}
	uc.log.Info().Str("user_id", id).Str("deleted_by", p.UserID).Msg("usuario eliminado")
	return nil
}

// Me devuelve el usuario autenticado.
func (uc *UseCase) Me(ctx context.Context, p authz.Principal) (*dto.UserResponse, error) {
	user, err := uc.users.FindByID(p.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		Role:        u.Role,
		Email:       u.Email,
		Phone:       u.Phone,
		DisplayName: u.DisplayName,
		ClientID:    u.ClientID,
		IsActive:    u.IsActive,
		LastLogin:   u.LastLogin,
		CreatedAt:   u.CreatedAt,
	}
}
