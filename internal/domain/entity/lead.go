package entity

import "time"

// Estados válidos para Lead.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusLost      = "lost"
)

// Lead prospecto comercial, con alcance de una organización.
type Lead struct {
	ID             string
	OrganizationID string
	OwnerID        string // usuario asignado
	Name           string
	Email          string
	Phone          string
	Company        string
	Status         string // ver constantes LeadStatus*
	Source         string // web, referral, cold_call, ...
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
