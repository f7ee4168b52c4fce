package entity

import "time"

// AuthenticatedIdentity es el usuario autenticado enriquecido con su organización,
// sin hash de password. Derivado: vive solo durante un request o una llamada de
// autenticación, jamás se persiste.
type AuthenticatedIdentity struct {
	UserID         string
	OrganizationID string
	RoleID         string
	Username       string
	Email          string
	FullName       string
	Phone          string
	AvatarURL      string
	LastLoginAt    *time.Time
	Organization   Organization
}

// NewAuthenticatedIdentity construye la identidad a partir del par user+org,
// descartando el hash de password.
func NewAuthenticatedIdentity(u *User, org *Organization) *AuthenticatedIdentity {
	return &AuthenticatedIdentity{
		UserID:         u.ID,
		OrganizationID: u.OrganizationID,
		RoleID:         u.RoleID,
		Username:       u.Username,
		Email:          u.Email,
		FullName:       u.FullName,
		Phone:          u.Phone,
		AvatarURL:      u.AvatarURL,
		LastLoginAt:    u.LastLoginAt,
		Organization:   *org,
	}
}
