package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

// LeadRepo implementación del puerto LeadRepository sobre PostgreSQL.
type LeadRepo struct {
	q Querier
}

// NewLeadRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLeadRepository(q Querier) *LeadRepo {
	return &LeadRepo{q: q}
}

const leadColumns = `id, organization_id, owner_id, name, email, phone, company, status, source, created_at, updated_at`

// Create persiste un nuevo lead.
func (r *LeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		lead.ID, lead.OrganizationID, lead.OwnerID, lead.Name, lead.Email, lead.Phone,
		lead.Company, lead.Status, lead.Source, lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// GetByID obtiene un lead por ID dentro de la organización.
func (r *LeadRepo) GetByID(ctx context.Context, orgID, id string) (*entity.Lead, error) {
	query := `
		SELECT ` + leadColumns + `
		FROM leads WHERE organization_id = $1 AND id = $2`
	var l entity.Lead
	err := r.q.QueryRow(ctx, query, orgID, id).Scan(
		&l.ID, &l.OrganizationID, &l.OwnerID, &l.Name, &l.Email, &l.Phone,
		&l.Company, &l.Status, &l.Source, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead by id: %w", err)
	}
	return &l, nil
}

// ListByOrganization lista leads de la organización con paginación.
func (r *LeadRepo) ListByOrganization(ctx context.Context, orgID string, limit, offset int) ([]*entity.Lead, error) {
	query := `
		SELECT ` + leadColumns + `
		FROM leads WHERE organization_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, orgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lead
	for rows.Next() {
		var l entity.Lead
		if err := rows.Scan(&l.ID, &l.OrganizationID, &l.OwnerID, &l.Name, &l.Email, &l.Phone,
			&l.Company, &l.Status, &l.Source, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Update actualiza un lead (dentro de su organización).
func (r *LeadRepo) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads SET owner_id = $3, name = $4, email = $5, phone = $6, company = $7,
			status = $8, source = $9, updated_at = $10
		WHERE organization_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query,
		lead.OrganizationID, lead.ID, lead.OwnerID, lead.Name, lead.Email, lead.Phone,
		lead.Company, lead.Status, lead.Source, lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	return nil
}

// Delete elimina un lead por ID dentro de la organización.
func (r *LeadRepo) Delete(ctx context.Context, orgID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM leads WHERE organization_id = $1 AND id = $2`, orgID, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	return nil
}
