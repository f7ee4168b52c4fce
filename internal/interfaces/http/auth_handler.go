package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/pkg/logger"
)

// authService es el contrato mínimo del handler hacia el caso de uso de auth.
// Lo implementa *auth.AuthUseCase; la interfaz permite fakes en tests.
type authService interface {
	Authenticate(ctx context.Context, email, password string) (*entity.AuthenticatedIdentity, error)
	Register(ctx context.Context, in dto.RegisterRequest) (*entity.AuthenticatedIdentity, error)
}

// AuthHandler maneja registro, login, logout y /me.
type AuthHandler struct {
	svc      authService
	sessions *SessionManager
	log      *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(svc authService, sessions *SessionManager, log *logger.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, sessions: sessions, log: log}
}

// Register godoc
// @Summary      Registrar usuario con organización nueva
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, username, organization_name, organization_subdomain"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" || in.Username == "" ||
		in.OrganizationName == "" || in.OrganizationSubdomain == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "email, password, username, organization_name y organization_subdomain son requeridos",
		})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}

	identity, err := h.svc.Register(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		case errors.Is(err, domain.ErrSubdomainAlreadyExists):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "SUBDOMAIN_EXISTS", Message: "el subdominio ya está en uso"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos de registro incompletos"})
		}
		h.log.Error().Err(err).Msg("registro falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}

	if err := h.sessions.Issue(c, identity.UserID); err != nil {
		h.log.Error().Err(err).Str("user_id", identity.UserID).Msg("no se pudo emitir sesión tras registro")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "SESSION_FAILED", Message: "no se pudo crear la sesión"})
	}
	return c.JSON(dto.AuthResponse{User: dto.NewUserResponse(identity)})
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.AuthResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}

	identity, err := h.svc.Authenticate(c.Context(), in.Email, in.Password)
	if err != nil {
		// Respuesta única para usuario inexistente, inactivo o password incorrecto:
		// no dar pistas de enumeración de cuentas. La causa real queda en el log.
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidCredentials) {
			h.log.Debug().Err(err).Str("email", in.Email).Msg("login rechazado")
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		h.log.Error().Err(err).Msg("login falló por error de storage")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}

	if err := h.sessions.Issue(c, identity.UserID); err != nil {
		h.log.Error().Err(err).Str("user_id", identity.UserID).Msg("no se pudo emitir sesión tras login")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "SESSION_FAILED", Message: "no se pudo crear la sesión"})
	}
	return c.JSON(dto.AuthResponse{User: dto.NewUserResponse(identity)})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200   {object}  map[string]bool
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Destroy(c); err != nil {
		h.log.Error().Err(err).Msg("no se pudo destruir la sesión")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "LOGOUT_FAILED", Message: "no se pudo cerrar la sesión"})
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Me godoc
// @Summary      Identidad del usuario autenticado
// @Tags         auth
// @Produce      json
// @Success      200   {object}  dto.AuthResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity := GetIdentity(c)
	if identity == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "AUTH_REQUIRED", Message: "se requiere sesión activa"})
	}
	return c.JSON(dto.AuthResponse{User: dto.NewUserResponse(identity)})
}
