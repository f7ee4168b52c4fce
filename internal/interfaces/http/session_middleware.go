package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/pkg/logger"
)

// LocalIdentity key de c.Locals donde se adjunta la identidad del request.
const LocalIdentity = "identity"

// IdentityResolver es el contrato mínimo que necesita el middleware para
// recargar la identidad de una sesión. Lo implementa *auth.AuthUseCase.
type IdentityResolver interface {
	ResolveByID(ctx context.Context, userID string) (*entity.AuthenticatedIdentity, error)
}

// SessionMiddleware es el cargador de contexto por request: resuelve el cookie
// de sesión a una identidad fresca (user+organization re-leídos en cada request)
// y la adjunta a c.Locals. Nunca falla el request:
//   - sin cookie o binding inexistente → sigue anónimo (cookie stale se limpia);
//   - usuario inexistente o cuenta/organización inactiva → invalida la sesión y sigue anónimo;
//   - error de storage → se registra y sigue anónimo.
func SessionMiddleware(sessions *SessionManager, resolver IdentityResolver, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := sessions.Token(c)
		if token == "" {
			return c.Next()
		}

		userID, err := sessions.Lookup(c.Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				sessions.ClearCookie(c)
			} else {
				log.Warn().Err(err).Msg("lookup de sesión falló, request sigue anónimo")
			}
			return c.Next()
		}

		identity, err := resolver.ResolveByID(c.Context(), userID)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrInactiveAccount):
				// Sesión stale: el usuario ya no es válido, destruir el binding.
				if derr := sessions.Discard(c); derr != nil {
					log.Warn().Err(derr).Str("user_id", userID).Msg("no se pudo descartar sesión stale")
				}
			default:
				log.Warn().Err(err).Str("user_id", userID).Msg("carga de identidad falló, request sigue anónimo")
			}
			return c.Next()
		}

		c.Locals(LocalIdentity, identity)
		return c.Next()
	}
}

// GetIdentity devuelve la identidad del contexto (después del SessionMiddleware),
// o nil si el request es anónimo.
func GetIdentity(c *fiber.Ctx) *entity.AuthenticatedIdentity {
	v := c.Locals(LocalIdentity)
	if v == nil {
		return nil
	}
	id, _ := v.(*entity.AuthenticatedIdentity)
	return id
}
