package repository

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// OrganizationRepository define el puerto de persistencia para Organization (DIP).
// La implementación vive en infrastructure.
type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*entity.Organization, error)
}
