package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// LeadUseCase casos de uso CRUD para leads (con alcance de organización).
type LeadUseCase struct {
	repo repository.LeadRepository
}

// NewLeadUseCase construye el caso de uso.
func NewLeadUseCase(repo repository.LeadRepository) *LeadUseCase {
	return &LeadUseCase{repo: repo}
}

// Create crea un lead asignado al usuario que lo registra.
func (uc *LeadUseCase) Create(ctx context.Context, orgID, ownerID string, in dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.LeadStatusNew
	}
	now := time.Now()
	lead := &entity.Lead{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		OwnerID:        ownerID,
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		Company:        in.Company,
		Status:         status,
		Source:         in.Source,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, lead); err != nil {
		return nil, err
	}
	return dto.NewLeadResponse(lead), nil
}

// GetByID obtiene un lead de la organización.
func (uc *LeadUseCase) GetByID(ctx context.Context, orgID, id string) (*dto.LeadResponse, error) {
	lead, err := uc.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewLeadResponse(lead), nil
}

// List lista leads de la organización.
func (uc *LeadUseCase) List(ctx context.Context, orgID string, page dto.PageRequest) ([]*dto.LeadResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByOrganization(ctx, orgID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LeadResponse, 0, len(list))
	for _, l := range list {
		out = append(out, dto.NewLeadResponse(l))
	}
	return out, nil
}

// Update actualiza un lead existente de la organización.
func (uc *LeadUseCase) Update(ctx context.Context, orgID, id string, in dto.UpdateLeadRequest) (*dto.LeadResponse, error) {
	lead, err := uc.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	if in.OwnerID != "" {
		lead.OwnerID = in.OwnerID
	}
	if in.Name != "" {
		lead.Name = in.Name
	}
	if in.Email != "" {
		lead.Email = in.Email
	}
	if in.Phone != "" {
		lead.Phone = in.Phone
	}
	if in.Company != "" {
		lead.Company = in.Company
	}
	if in.Status != "" {
		lead.Status = in.Status
	}
	if in.Source != "" {
		lead.Source = in.Source
	}
	lead.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, lead); err != nil {
		return nil, err
	}
	return dto.NewLeadResponse(lead), nil
}

// Delete elimina un lead de la organización.
func (uc *LeadUseCase) Delete(ctx context.Context, orgID, id string) error {
	lead, err := uc.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return err
	}
	if lead == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, orgID, id)
}
