package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/config"
	"github.com/redis/go-redis/v9"
)

var _ repository.SessionStore = (*SessionStore)(nil)

// keyPrefix evita colisiones con otras llaves en la misma instancia Redis.
const keyPrefix = "session:"

// SessionStore binding token de sesión → user id sobre Redis, con TTL.
// La expiración la maneja Redis; no hay barrido propio.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore construye el store y verifica conectividad con un PING.
func NewSessionStore(ctx context.Context, cfg config.RedisConfig) (*SessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &SessionStore{client: client}, nil
}

// NewSessionStoreWithClient permite inyectar un cliente ya construido (tests).
func NewSessionStoreWithClient(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Create guarda el binding token → userID con vigencia ttl.
func (s *SessionStore) Create(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, keyPrefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// Get devuelve el user id asociado al token. domain.ErrSessionNotFound si el
// binding no existe o ya expiró; otro error es fallo de infraestructura.
func (s *SessionStore) Get(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrSessionNotFound
		}
		return "", fmt.Errorf("get session: %w", err)
	}
	return userID, nil
}

// Delete invalida el binding. Borrar un token inexistente no es error.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Close cierra la conexión con Redis.
func (s *SessionStore) Close() error {
	return s.client.Close()
}
