package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `u.id, u.organization_id, u.role_id, u.username, u.email, u.password_hash,
		u.full_name, u.phone, u.avatar_url, u.is_active, u.last_login_at, u.created_at, u.updated_at`

const orgColumns = `o.id, o.name, o.subdomain, o.settings, o.is_active, o.created_at, o.updated_at`

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, organization_id, role_id, username, email, password_hash,
			full_name, phone, avatar_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.OrganizationID, user.RoleID, user.Username, user.Email, user.PasswordHash,
		user.FullName, user.Phone, user.AvatarURL, user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail obtiene un usuario por email (sin join, para chequeo de duplicados).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u WHERE u.email = $1 LIMIT 1`
	u, err := r.scanUser(r.q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// GetActiveByEmailWithOrganization obtiene user+organization por email,
// filtrando usuario y organización activos. (nil, nil, nil) si no hay match.
func (r *UserRepo) GetActiveByEmailWithOrganization(ctx context.Context, email string) (*entity.User, *entity.Organization, error) {
	query := `
		SELECT ` + userColumns + `, ` + orgColumns + `
		FROM users u
		JOIN organizations o ON o.id = u.organization_id
		WHERE u.email = $1 AND u.is_active = true AND o.is_active = true`
	u, org, err := r.scanUserWithOrg(r.q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get active user by email: %w", err)
	}
	return u, org, nil
}

// GetByIDWithOrganization obtiene user+organization por id SIN filtrar por activo;
// el caller detecta cuentas desactivadas después del fetch.
func (r *UserRepo) GetByIDWithOrganization(ctx context.Context, id string) (*entity.User, *entity.Organization, error) {
	query := `
		SELECT ` + userColumns + `, ` + orgColumns + `
		FROM users u
		JOIN organizations o ON o.id = u.organization_id
		WHERE u.id = $1`
	u, org, err := r.scanUserWithOrg(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, org, nil
}

// UpdateLastLogin registra el último inicio de sesión.
func (r *UserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE users SET last_login_at = $2, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

func (r *UserRepo) scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.OrganizationID, &u.RoleID, &u.Username, &u.Email, &u.PasswordHash,
		&u.FullName, &u.Phone, &u.AvatarURL, &u.IsActive, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) scanUserWithOrg(row pgx.Row) (*entity.User, *entity.Organization, error) {
	var u entity.User
	var o entity.Organization
	err := row.Scan(
		&u.ID, &u.OrganizationID, &u.RoleID, &u.Username, &u.Email, &u.PasswordHash,
		&u.FullName, &u.Phone, &u.AvatarURL, &u.IsActive, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
		&o.ID, &o.Name, &o.Subdomain, &o.Settings, &o.IsActive, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, nil, err
	}
	return &u, &o, nil
}
