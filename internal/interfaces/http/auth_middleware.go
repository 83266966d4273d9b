package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/daemlu/convivencia-api/internal/application/dto"
	"github.com/daemlu/convivencia-api/internal/domain"
	"github.com/daemlu/convivencia-api/pkg/jwt"
)

// Locals keys para la identidad de la sesión en Fiber.
const (
	LocalUserID          = "user_id"
	LocalRole            = "role"
	LocalEstablecimiento = "establecimiento"
)

// AuthMiddleware valida el Bearer Token JWT y extrae la identidad a c.Locals.
// El rol y el establecimiento asignado viajan en el token, así que el scoping
// no necesita consultar la DB por request.
func AuthMiddleware(jwtSecret string) fiber.Handler {
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
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalEstablecimiento, claims.Establecimiento)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados (comparación case-insensitive).
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		for _, allowed := range allowedRoles {
			if strings.EqualFold(role, allowed) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

// RequireAdmin restringe la ruta a administradores distritales.
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

// GetEstablecimiento devuelve el establecimiento asignado del contexto.
func GetEstablecimiento(c *fiber.Ctx) string {
	return localString(c, LocalEstablecimiento)
}

// GetScope construye el scope de visibilidad de la sesión autenticada.
func GetScope(c *fiber.Ctx) domain.Scope {
	return domain.NewScope(GetRole(c), GetEstablecimiento(c))
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
