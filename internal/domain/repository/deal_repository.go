package repository

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// DealRepository define el puerto de persistencia para Deal (DIP).
type DealRepository interface {
	Create(ctx context.Context, deal *entity.Deal) error
	GetByID(ctx context.Context, orgID, id string) (*entity.Deal, error)
	ListByOrganization(ctx context.Context, orgID string, limit, offset int) ([]*entity.Deal, error)
	Update(ctx context.Context, deal *entity.Deal) error
	Delete(ctx context.Context, orgID, id string) error
}
