package auth

import (
	"context"
	"time"

	"github.com/jhoicas/ServiOrden-api/internal/domain"
	"github.com/jhoicas/ServiOrden-api/internal/domain/authz"
	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
	"github.com/jhoicas/ServiOrden-api/pkg/jwt"
	"github.com/jhoicas/ServiOrden-api/pkg/logger"
)

// Resolver convierte un token Bearer en un authz.Principal. Lee primero la
// caché de principals; en miss (o fallo de caché) consulta el repositorio,
// que es la fuente de verdad, y repuebla la caché.
type Resolver struct {
	secret string
	ttl    time.Duration
	users  repository.UserRepository
	cache  PrincipalCache
	log    *logger.Logger
}

// NewResolver crea el resolver de identidad.
func NewResolver(secret string, ttl time.Duration, users repository.UserRepository, cache PrincipalCache, log *logger.Logger) *Resolver {
	return &Resolver{secret: secret, ttl: ttl, users: users, cache: cache, log: log}
}

// Resolve valida el token y materializa el Principal de la request.
// Un usuario desactivado después de emitido su token recibe ErrForbidden:
// la desactivación vence al token aunque este siga criptográficamente válido.
func (r *Resolver) Resolve(ctx context.Context, token string) (authz.Principal, error) {
	userID, _, _, err := jwt.Parse(r.secret, token)
	if err != nil {
		return authz.Principal{}, domain.ErrUnauthorized
	}

	snap, err := r.lookup(ctx, userID)
	if err != nil {
		return authz.Principal{}, err
	}
	if !snap.IsActive {
		return authz.Principal{}, domain.ErrForbidden
	}

	role, err := authz.ParseRole(snap.Role)
	if err != nil {
		return authz.Principal{}, domain.ErrUnauthorized
	}
	return authz.Principal{
		UserID:    userID,
		CompanyID: snap.CompanyID,
		Role:      role,
		ClientID:  snap.ClientID,
	}, nil
}

// Invalidate expulsa un principal de la caché (borrado o desactivación de
// usuario).
func (r *Resolver) Invalidate(ctx context.Context, userID string) {
	if err := r.cache.Invalidate(ctx, userID); err != nil {
		r.log.Warn().Err(err).Str("user_id", userID).Msg("no se pudo invalidar principal en caché")
	}
}

func (r *Resolver) lookup(ctx context.Context, userID string) (*PrincipalSnapshot, error) {
	snap, err := r.cache.Get(ctx, userID)
	if err != nil {
		r.log.Warn().Err(err).Msg("fallo de caché de principals, usando repositorio")
	}
	if snap != nil {
		return snap, nil
	}

	user, err := r.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}

	fresh := PrincipalSnapshot{
		Role:      user.Role,
		CompanyID: user.CompanyID,
		ClientID:  user.ClientID,
		IsActive:  user.IsActive,
	}
	if err := r.cache.Put(ctx, userID, fresh, r.ttl); err != nil {
		r.log.Warn().Err(err).Str("user_id", userID).Msg("no se pudo poblar caché de principals")
	}
	return &fresh, nil
}
