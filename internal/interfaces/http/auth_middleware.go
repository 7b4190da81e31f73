package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ServiOrden-api/internal/application/dto"
	"github.com/jhoicas/ServiOrden-api/internal/domain"
	"github.com/jhoicas/ServiOrden-api/internal/domain/authz"
)

// LocalPrincipal es la key del Principal en c.Locals tras el middleware de auth.
const LocalPrincipal = "principal"

// PrincipalResolver convierte un Bearer token en el Principal de la request.
type PrincipalResolver interface {
	Resolve(ctx context.Context, token string) (authz.Principal, error)
}

// AuthMiddleware valida el Bearer Token, resuelve el Principal (caché o
// repositorio) y lo deja en c.Locals.
func AuthMiddleware(resolver PrincipalResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}

		principal, err := resolver.Resolve(c.UserContext(), tokenString)
		if err != nil {
			if errors.Is(err, domain.ErrForbidden) {
				// Usuario desactivado: la desactivación vence al token.
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "usuario desactivado"})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}

		c.Locals(LocalPrincipal, principal)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Requiere AuthMiddleware antes.
func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token sin rol"})
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta ruta"})
	}
}

// GetPrincipal devuelve el Principal del contexto (después del middleware de auth).
func GetPrincipal(c *fiber.Ctx) authz.Principal {
	v := c.Locals(LocalPrincipal)
	if v == nil {
		return authz.Principal{}
	}
	p, _ := v.(authz.Principal)
	return p
}

// GetUserID devuelve el UserID del Principal.
func GetUserID(c *fiber.Ctx) string {
	return GetPrincipal(c).UserID
}

// GetCompanyID devuelve el CompanyID del Principal.
func GetCompanyID(c *fiber.Ctx) string {
	return GetPrincipal(c).CompanyID
}

// GetRole devuelve el rol del Principal como string.
func GetRole(c *fiber.Ctx) string {
	return string(GetPrincipal(c).Role)
}
