package dto

import (
	"time"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateDealRequest entrada para crear un deal. Amount como string decimal ("1500.00").
type CreateDealRequest struct {
	LeadID   string          `json:"lead_id"`
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Stage    string          `json:"stage"`
}

// UpdateDealRequest entrada para actualizar un deal.
type UpdateDealRequest struct {
	OwnerID  string          `json:"owner_id"`
	LeadID   string          `json:"lead_id"`
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Stage    string          `json:"stage"`
}

// DealResponse salida de un deal.
type DealResponse struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	OwnerID        string          `json:"owner_id"`
	LeadID         string          `json:"lead_id,omitempty"`
	Title          string          `json:"title"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	Stage          string          `json:"stage"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NewDealResponse mapea la entidad al DTO de salida.
func NewDealResponse(d *entity.Deal) *DealResponse {
	if d == nil {
		return nil
	}
	return &DealResponse{
		ID:             d.ID,
		OrganizationID: d.OrganizationID,
		OwnerID:        d.OwnerID,
		LeadID:         d.LeadID,
		Title:          d.Title,
		Amount:         d.Amount,
		Currency:       d.Currency,
		Stage:          d.Stage,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
