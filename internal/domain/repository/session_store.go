package repository

import (
	"context"
	"time"
)

// SessionStore binding servidor entre token opaco (cookie) y user id.
// Creado en login/registro, destruido en logout o por expiración (TTL).
type SessionStore interface {
	Create(ctx context.Context, token, userID string, ttl time.Duration) error
	// Get devuelve domain.ErrSessionNotFound si el binding no existe o expiró;
	// cualquier otro error es fallo de infraestructura.
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}
