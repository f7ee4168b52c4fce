package dto

import (
	"time"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// CreateLeadRequest entrada para crear un lead.
type CreateLeadRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Status  string `json:"status"`
	Source  string `json:"source"`
}

// UpdateLeadRequest entrada para actualizar un lead.
type UpdateLeadRequest struct {
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Status  string `json:"status"`
	Source  string `json:"source"`
}

// LeadResponse salida de un lead.
type LeadResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	OwnerID        string    `json:"owner_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Company        string    `json:"company,omitempty"`
	Status         string    `json:"status"`
	Source         string    `json:"source,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewLeadResponse mapea la entidad al DTO de salida.
func NewLeadResponse(l *entity.Lead) *LeadResponse {
	if l == nil {
		return nil
	}
	return &LeadResponse{
		ID:             l.ID,
		OrganizationID: l.OrganizationID,
		OwnerID:        l.OwnerID,
		Name:           l.Name,
		Email:          l.Email,
		Phone:          l.Phone,
		Company:        l.Company,
		Status:         l.Status,
		Source:         l.Source,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}
