package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/config"
)

// SessionManager emite y destruye el binding sesión↔usuario y su cookie.
// Cookie http-only, SameSite Lax, Secure en producción, vigencia = TTL del binding.
type SessionManager struct {
	store      repository.SessionStore
	cookieName string
	ttl        time.Duration
	secure     bool
}

// NewSessionManager construye el manager. secure debe ser true cuando se sirve sobre TLS.
func NewSessionManager(store repository.SessionStore, cfg config.SessionConfig, secure bool) *SessionManager {
	return &SessionManager{
		store:      store,
		cookieName: cfg.CookieName,
		ttl:        time.Duration(cfg.TTLHours) * time.Hour,
		secure:     secure,
	}
}

// Issue genera un token opaco, persiste el binding y emite el cookie al cliente.
func (m *SessionManager) Issue(c *fiber.Ctx, userID string) error {
	token, err := newSessionToken()
	if err != nil {
		return err
	}
	if err := m.store.Create(c.Context(), token, userID, m.ttl); err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(m.ttl),
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// Token devuelve el token de sesión del request, o vacío si no hay cookie.
func (m *SessionManager) Token(c *fiber.Ctx) string {
	return c.Cookies(m.cookieName)
}

// Lookup resuelve el user id de un token contra el store.
func (m *SessionManager) Lookup(ctx context.Context, token string) (string, error) {
	return m.store.Get(ctx, token)
}

// Destroy invalida el binding servidor y limpia el cookie. El error del store
// se propaga: fallar al destruir una sesión no se silencia.
func (m *SessionManager) Destroy(c *fiber.Ctx) error {
	token := m.Token(c)
	if token != "" {
		if err := m.store.Delete(c.Context(), token); err != nil {
			return err
		}
	}
	m.ClearCookie(c)
	return nil
}

// Discard elimina el binding best-effort y limpia el cookie (sesiones stale).
func (m *SessionManager) Discard(c *fiber.Ctx) error {
	token := m.Token(c)
	m.ClearCookie(c)
	if token == "" {
		return nil
	}
	return m.store.Delete(c.Context(), token)
}

// ClearCookie instruye al cliente a borrar el cookie de sesión.
func (m *SessionManager) ClearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// newSessionToken genera 32 bytes aleatorios (CSPRNG) en hex: token opaco,
// sin estructura ni información del usuario.
func newSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
