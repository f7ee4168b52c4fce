package repository

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// RoleRepository define el puerto de persistencia para Role (DIP).
// El rol lleva su propia referencia de organización, así el lookup de
// autorización queda implícitamente acotado al tenant del usuario.
type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	// GetByID devuelve (nil, nil) si el rol no existe.
	GetByID(ctx context.Context, id string) (*entity.Role, error)
}
