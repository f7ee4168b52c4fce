package entity

import "time"

// User representa un usuario del sistema (pertenece a una Organization y tiene un Role).
type User struct {
	ID             string
	OrganizationID string
	RoleID         string
	Username       string
	Email          string     // único a nivel global
	PasswordHash   string     // bcrypt hash, nunca plano en dominio después de persistir
	FullName       string
	Phone          string     // opcional
	AvatarURL      string     // opcional
	IsActive       bool
	LastLoginAt    *time.Time // nil = nunca ha iniciado sesión
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
