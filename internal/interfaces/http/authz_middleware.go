package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// RequireAuth rechaza con 401 los requests sin identidad adjunta
// (el SessionMiddleware no encontró una sesión válida).
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetIdentity(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "AUTH_REQUIRED", Message: "se requiere sesión activa",
			})
		}
		return c.Next()
	}
}

// RequirePermission exige que el rol del usuario permita el acceso. El rol se
// consulta fresco en cada request (sin cache): una edición de permisos aplica
// de inmediato. Regla de acceso (espacio de nombres compartido a propósito):
//   - permiso comodín "*" → pasa siempre;
//   - nombre del rol igual a alguno de allowed → pasa;
//   - algún valor de allowed presente como permiso literal del rol → pasa;
//   - si no → 403.
//
// Rol inexistente es misconfiguración del servidor (500), no denegación.
// A diferencia del cargador de sesión, aquí los errores de storage SÍ se
// propagan: este middleware custodia acciones protegidas.
func RequirePermission(roles repository.RoleRepository, allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := GetIdentity(c)
		if identity == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "AUTH_REQUIRED", Message: "se requiere sesión activa",
			})
		}

		role, err := roles.GetByID(c.Context(), identity.RoleID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Code: "ROLE_CHECK_FAILED", Message: "no se pudo verificar el rol",
			})
		}
		if role == nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Code: "ROLE_NOT_FOUND", Message: "el usuario no tiene rol configurado",
			})
		}

		if !role.Allows(allowed...) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code: "FORBIDDEN", Message: "permisos insuficientes",
			})
		}
		return c.Next()
	}
}
