package repository

import (
	"context"
	"time"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos *WithOrganization devuelven el join user+organization en una sola consulta.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetActiveByEmailWithOrganization filtra users.is_active AND organizations.is_active.
	// Devuelve (nil, nil, nil) si no hay match.
	GetActiveByEmailWithOrganization(ctx context.Context, email string) (*entity.User, *entity.Organization, error)
	// GetByIDWithOrganization NO filtra por activo: el caller decide qué hacer
	// con cuentas u organizaciones desactivadas.
	GetByIDWithOrganization(ctx context.Context, id string) (*entity.User, *entity.Organization, error)
	// UpdateLastLogin registra el último inicio de sesión (best-effort en auth).
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}
