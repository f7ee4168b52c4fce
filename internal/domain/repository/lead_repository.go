package repository

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// LeadRepository define el puerto de persistencia para Lead (DIP).
type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	GetByID(ctx context.Context, orgID, id string) (*entity.Lead, error)
	ListByOrganization(ctx context.Context, orgID string, limit, offset int) ([]*entity.Lead, error)
	Update(ctx context.Context, lead *entity.Lead) error
	Delete(ctx context.Context, orgID, id string) error
}
