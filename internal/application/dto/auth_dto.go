package dto

import (
	"time"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// RegisterRequest entrada para registro: crea organización + rol admin + usuario.
// organization_name y organization_subdomain son obligatorios; nunca se infiere
// ni se crea una organización por defecto.
type RegisterRequest struct {
	Email                 string `json:"email"`
	Password              string `json:"password"`
	Username              string `json:"username"`
	FullName              string `json:"full_name"`
	OrganizationName      string `json:"organization_name"`
	OrganizationSubdomain string `json:"organization_subdomain"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OrganizationResponse salida de la organización del usuario.
type OrganizationResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
}

// UserResponse salida de un usuario autenticado (sin password hash).
type UserResponse struct {
	ID             string               `json:"id"`
	OrganizationID string               `json:"organization_id"`
	RoleID         string               `json:"role_id"`
	Username       string               `json:"username"`
	Email          string               `json:"email"`
	FullName       string               `json:"full_name"`
	Phone          string               `json:"phone,omitempty"`
	AvatarURL      string               `json:"avatar_url,omitempty"`
	LastLoginAt    *time.Time           `json:"last_login_at,omitempty"`
	Organization   OrganizationResponse `json:"organization"`
}

// AuthResponse envoltorio {user} para register/login/me.
type AuthResponse struct {
	User UserResponse `json:"user"`
}

// NewUserResponse mapea la identidad autenticada al DTO de salida.
func NewUserResponse(id *entity.AuthenticatedIdentity) UserResponse {
	return UserResponse{
		ID:             id.UserID,
		OrganizationID: id.OrganizationID,
		RoleID:         id.RoleID,
		Username:       id.Username,
		Email:          id.Email,
		FullName:       id.FullName,
		Phone:          id.Phone,
		AvatarURL:      id.AvatarURL,
		LastLoginAt:    id.LastLoginAt,
		Organization: OrganizationResponse{
			ID:        id.Organization.ID,
			Name:      id.Organization.Name,
			Subdomain: id.Organization.Subdomain,
		},
	}
}
