package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/logger"
	"github.com/jhoicas/crm-api/pkg/password"
)

// RegistrationTxRunner ejecuta el flujo de escritura del registro
// (organización → rol → usuario) como una sola transacción.
type RegistrationTxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		orgRepo repository.OrganizationRepository,
		roleRepo repository.RoleRepository,
		userRepo repository.UserRepository,
	) error) error
}

// AuthUseCase resuelve identidades: login, registro y recarga por id de sesión.
// Mantiene causas de fallo distinguibles (ErrUserNotFound vs ErrInvalidCredentials
// vs error de storage); la capa HTTP decide qué colapsar en la respuesta.
type AuthUseCase struct {
	userRepo repository.UserRepository
	tx       RegistrationTxRunner
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tx RegistrationTxRunner, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tx: tx, log: log}
}

// Authenticate verifica email/password contra el join user+organization activo
// y devuelve la identidad sin hash. La actualización de last_login es best-effort:
// su fallo se registra pero no tumba el login.
func (uc *AuthUseCase) Authenticate(ctx context.Context, email, plain string) (*entity.AuthenticatedIdentity, error) {
	user, org, err := uc.userRepo.GetActiveByEmailWithOrganization(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !password.Verify(plain, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	if err := uc.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo registrar last_login")
	} else {
		user.LastLoginAt = &now
	}

	return entity.NewAuthenticatedIdentity(user, org), nil
}

// Register crea organización, rol admin (comodín) y usuario en UNA transacción,
// y devuelve la identidad recién creada (join re-leído tras el commit).
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*entity.AuthenticatedIdentity, error) {
	if in.Email == "" || in.Password == "" || in.Username == "" ||
		in.OrganizationName == "" || in.OrganizationSubdomain == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	// Hashear fuera de la transacción: bcrypt cost 12 tarda cientos de ms.
	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	fullName := in.FullName
	if fullName == "" {
		fullName = in.Username
	}

	now := time.Now()
	orgID := uuid.New().String()
	roleID := uuid.New().String()
	userID := uuid.New().String()

	err = uc.tx.RunRegistration(ctx, func(
		orgRepo repository.OrganizationRepository,
		roleRepo repository.RoleRepository,
		userRepo repository.UserRepository,
	) error {
		org := &entity.Organization{
			ID:        orgID,
			Name:      in.OrganizationName,
			Subdomain: in.OrganizationSubdomain,
			Settings:  map[string]any{},
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := orgRepo.Create(ctx, org); err != nil {
			return err
		}
		// El rol admin se crea antes que el usuario: el usuario referencia un rol válido.
		role := &entity.Role{
			ID:             roleID,
			OrganizationID: orgID,
			Name:           entity.DefaultAdminRole,
			Description:    "Rol administrador por defecto",
			Permissions:    []string{entity.PermissionWildcard},
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := roleRepo.Create(ctx, role); err != nil {
			return err
		}
		user := &entity.User{
			ID:             userID,
			OrganizationID: orgID,
			RoleID:         roleID,
			Username:       in.Username,
			Email:          in.Email,
			PasswordHash:   hash,
			FullName:       fullName,
			IsActive:       true,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		return userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	user, org, err := uc.userRepo.GetByIDWithOrganization(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %s no encontrado tras el registro", userID)
	}
	return entity.NewAuthenticatedIdentity(user, org), nil
}

// ResolveByID recarga la identidad para una sesión vigente. El fetch NO filtra
// por activo: una cuenta u organización desactivada se reporta como
// ErrInactiveAccount para que el caller invalide la sesión.
func (uc *AuthUseCase) ResolveByID(ctx context.Context, userID string) (*entity.AuthenticatedIdentity, error) {
	user, org, err := uc.userRepo.GetByIDWithOrganization(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.IsActive || !org.IsActive {
		return nil, domain.ErrInactiveAccount
	}
	return entity.NewAuthenticatedIdentity(user, org), nil
}
