package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

// OrganizationRepo implementación del puerto OrganizationRepository sobre PostgreSQL.
type OrganizationRepo struct {
	q Querier
}

// NewOrganizationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

// Create persiste una nueva organización.
func (r *OrganizationRepo) Create(ctx context.Context, org *entity.Organization) error {
	query := `
		INSERT INTO organizations (id, name, subdomain, settings, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		org.ID, org.Name, org.Subdomain, org.Settings, org.IsActive, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return domain.ErrSubdomainAlreadyExists
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

// GetByID obtiene una organización por ID.
func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	return r.getBy(ctx, "id", id)
}

// GetBySubdomain obtiene una organización por subdominio.
func (r *OrganizationRepo) GetBySubdomain(ctx context.Context, subdomain string) (*entity.Organization, error) {
	return r.getBy(ctx, "subdomain", subdomain)
}

func (r *OrganizationRepo) getBy(ctx context.Context, column, value string) (*entity.Organization, error) {
	query := `
		SELECT id, name, subdomain, settings, is_active, created_at, updated_at
		FROM organizations WHERE ` + column + ` = $1`
	var o entity.Organization
	err := r.q.QueryRow(ctx, query, value).Scan(
		&o.ID, &o.Name, &o.Subdomain, &o.Settings, &o.IsActive, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization by %s: %w", column, err)
	}
	return &o, nil
}
