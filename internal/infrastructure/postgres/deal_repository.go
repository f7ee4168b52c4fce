package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.DealRepository = (*DealRepo)(nil)

// DealRepo implementación del puerto DealRepository sobre PostgreSQL.
// amount es NUMERIC; el codec pgx-shopspring-decimal lo mapea a decimal.Decimal.
type DealRepo struct {
	q Querier
}

// NewDealRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDealRepository(q Querier) *DealRepo {
	return &DealRepo{q: q}
}

const dealColumns = `id, organization_id, owner_id, lead_id, title, amount, currency, stage, created_at, updated_at`

// Create persiste un nuevo deal.
func (r *DealRepo) Create(ctx context.Context, deal *entity.Deal) error {
	query := `
		INSERT INTO deals (` + dealColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		deal.ID, deal.OrganizationID, deal.OwnerID, deal.LeadID, deal.Title,
		deal.Amount, deal.Currency, deal.Stage, deal.CreatedAt, deal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert deal: %w", err)
	}
	return nil
}

// GetByID obtiene un deal por ID dentro de la organización.
func (r *DealRepo) GetByID(ctx context.Context, orgID, id string) (*entity.Deal, error) {
	query := `
		SELECT ` + dealColumns + `
		FROM deals WHERE organization_id = $1 AND id = $2`
	var d entity.Deal
	err := r.q.QueryRow(ctx, query, orgID, id).Scan(
		&d.ID, &d.OrganizationID, &d.OwnerID, &d.LeadID, &d.Title,
		&d.Amount, &d.Currency, &d.Stage, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deal by id: %w", err)
	}
	return &d, nil
}

// ListByOrganization lista deals de la organización con paginación.
func (r *DealRepo) ListByOrganization(ctx context.Context, orgID string, limit, offset int) ([]*entity.Deal, error) {
	query := `
		SELECT ` + dealColumns + `
		FROM deals WHERE organization_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, orgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	defer rows.Close()
	var list []*entity.Deal
	for rows.Next() {
		var d entity.Deal
		if err := rows.Scan(&d.ID, &d.OrganizationID, &d.OwnerID, &d.LeadID, &d.Title,
			&d.Amount, &d.Currency, &d.Stage, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Update actualiza un deal (dentro de su organización).
func (r *DealRepo) Update(ctx context.Context, deal *entity.Deal) error {
	query := `
		UPDATE deals SET owner_id = $3, lead_id = $4, title = $5, amount = $6,
			currency = $7, stage = $8, updated_at = $9
		WHERE organization_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query,
		deal.OrganizationID, deal.ID, deal.OwnerID, deal.LeadID, deal.Title,
		deal.Amount, deal.Currency, deal.Stage, deal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update deal: %w", err)
	}
	return nil
}

// Delete elimina un deal por ID dentro de la organización.
func (r *DealRepo) Delete(ctx context.Context, orgID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM deals WHERE organization_id = $1 AND id = $2`, orgID, id)
	if err != nil {
		return fmt.Errorf("delete deal: %w", err)
	}
	return nil
}
