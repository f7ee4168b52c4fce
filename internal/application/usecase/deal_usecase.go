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

// DealUseCase casos de uso CRUD para deals (con alcance de organización).
type DealUseCase struct {
	repo repository.DealRepository
}

// NewDealUseCase construye el caso de uso.
func NewDealUseCase(repo repository.DealRepository) *DealUseCase {
	return &DealUseCase{repo: repo}
}

// Create crea un deal asignado al usuario que lo registra.
func (uc *DealUseCase) Create(ctx context.Context, orgID, ownerID string, in dto.CreateDealRequest) (*dto.DealResponse, error) {
	if in.Title == "" || in.Amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	stage := in.Stage
	if stage == "" {
		stage = entity.DealStageProspecting
	}
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}
	now := time.Now()
	deal := &entity.Deal{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		OwnerID:        ownerID,
		LeadID:         in.LeadID,
		Title:          in.Title,
		Amount:         in.Amount,
		Currency:       currency,
		Stage:          stage,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, deal); err != nil {
		return nil, err
	}
	return dto.NewDealResponse(deal), nil
}

// GetByID obtiene un deal de la organización.
func (uc *DealUseCase) GetByID(ctx context.Context, orgID, id string) (*dto.DealResponse, error) {
	deal, err := uc.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewDealResponse(deal), nil
}

// List lista deals de la organización.
func (uc *DealUseCase) List(ctx context.Context, orgID string, page dto.PageRequest) ([]*dto.DealResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByOrganization(ctx, orgID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DealResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.NewDealResponse(d))
	}
	return out, nil
}

// Update actualiza un deal existente de la organización.
func (uc *DealUseCase) Update(ctx context.Context, orgID, id string, in dto.UpdateDealRequest) (*dto.DealResponse, error) {
	deal, err := uc.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, domain.ErrNotFound
	}
	if in.OwnerID != "" {
		deal.OwnerID = in.OwnerID
	}
	if in.LeadID != "" {
		deal.LeadID = in.LeadID
	}
	if in.Title != "" {
		deal.Title = in.Title
	}
	if !in.Amount.IsZero() {
		if in.Amount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		deal.Amount = in.Amount
	}
	if in.Currency != "" {
		deal.Currency = in.Currency
	}
	if in.Stage != "" {
		deal.Stage = in.Stage
	}
	deal.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, deal); err != nil {
		return nil, err
	}
	return dto.NewDealResponse(deal), nil
}

// Delete elimina un deal de la organización.
func (uc *DealUseCase) Delete(ctx context.Context, orgID, id string) error {
	deal, err := uc.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return err
	}
	if deal == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, orgID, id)
}
