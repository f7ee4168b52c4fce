package entity

import "time"

// Organization representa un tenant del sistema: usuarios y roles
// pertenecen exactamente a una organización.
type Organization struct {
	ID        string
	Name      string
	Subdomain string         // único
	Settings  map[string]any // blob JSONB de preferencias del tenant
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
