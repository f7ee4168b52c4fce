package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/logger"
	"github.com/jhoicas/crm-api/pkg/password"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	users map[string]*entity.User
	orgs  map[string]*entity.Organization
	roles map[string]*entity.Role
}

func newMemState() *memState {
	return &memState{
		users: map[string]*entity.User{},
		orgs:  map[string]*entity.Organization{},
		roles: map[string]*entity.Role{},
	}
}

func (st *memState) snapshot() *memState {
	cp := newMemState()
	for k, v := range st.users {
		cp.users[k] = v
	}
	for k, v := range st.orgs {
		cp.orgs[k] = v
	}
	for k, v := range st.roles {
		cp.roles[k] = v
	}
	return cp
}

func (st *memState) restore(from *memState) {
	st.users = from.users
	st.orgs = from.orgs
	st.roles = from.roles
}

type memUserRepo struct {
	st             *memState
	failCreate     bool
	failFetch      bool
	failLastLogin  bool
	lastLoginCalls int
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	if r.failCreate {
		return errors.New("insert user: db down")
	}
	for _, u := range r.st.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	// El usuario referencia rol y organización ya existentes (orden del registro).
	if _, ok := r.st.roles[user.RoleID]; !ok {
		return errors.New("insert user: rol inexistente")
	}
	if _, ok := r.st.orgs[user.OrganizationID]; !ok {
		return errors.New("insert user: organización inexistente")
	}
	cp := *user
	r.st.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if r.failFetch {
		return nil, errors.New("get user by email: db down")
	}
	for _, u := range r.st.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetActiveByEmailWithOrganization(_ context.Context, email string) (*entity.User, *entity.Organization, error) {
	if r.failFetch {
		return nil, nil, errors.New("get active user by email: db down")
	}
	for _, u := range r.st.users {
		if u.Email != email {
			continue
		}
		org, ok := r.st.orgs[u.OrganizationID]
		if !ok || !u.IsActive || !org.IsActive {
			return nil, nil, nil
		}
		ucp, ocp := *u, *org
		return &ucp, &ocp, nil
	}
	return nil, nil, nil
}

func (r *memUserRepo) GetByIDWithOrganization(_ context.Context, id string) (*entity.User, *entity.Organization, error) {
	if r.failFetch {
		return nil, nil, errors.New("get user by id: db down")
	}
	u, ok := r.st.users[id]
	if !ok {
		return nil, nil, nil
	}
	org := r.st.orgs[u.OrganizationID]
	ucp, ocp := *u, *org
	return &ucp, &ocp, nil
}

func (r *memUserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	r.lastLoginCalls++
	if r.failLastLogin {
		return errors.New("update last login: db down")
	}
	if u, ok := r.st.users[id]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

type memOrgRepo struct{ st *memState }

func (r *memOrgRepo) Create(_ context.Context, org *entity.Organization) error {
	for _, o := range r.st.orgs {
		if o.Subdomain == org.Subdomain {
			return domain.ErrSubdomainAlreadyExists
		}
	}
	cp := *org
	r.st.orgs[org.ID] = &cp
	return nil
}

func (r *memOrgRepo) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	if o, ok := r.st.orgs[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (r *memOrgRepo) GetBySubdomain(_ context.Context, subdomain string) (*entity.Organization, error) {
	for _, o := range r.st.orgs {
		if o.Subdomain == subdomain {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

type memRoleRepo struct{ st *memState }

func (r *memRoleRepo) Create(_ context.Context, role *entity.Role) error {
	// El rol referencia una organización ya creada (orden del registro).
	if _, ok := r.st.orgs[role.OrganizationID]; !ok {
		return errors.New("insert role: organización inexistente")
	}
	cp := *role
	r.st.roles[role.ID] = &cp
	return nil
}

func (r *memRoleRepo) GetByID(_ context.Context, id string) (*entity.Role, error) {
	if role, ok := r.st.roles[id]; ok {
		cp := *role
		return &cp, nil
	}
	return nil, nil
}

// memTxRunner aplica fn sobre el estado compartido y lo restaura si fn falla,
// imitando el rollback de la transacción real.
type memTxRunner struct {
	st    *memState
	users *memUserRepo
	orgs  *memOrgRepo
	roles *memRoleRepo
	runs  int
}

func (t *memTxRunner) RunRegistration(ctx context.Context, fn func(
	orgRepo repository.OrganizationRepository,
	roleRepo repository.RoleRepository,
	userRepo repository.UserRepository,
) error) error {
	t.runs++
	snap := t.st.snapshot()
	if err := fn(t.orgs, t.roles, t.users); err != nil {
		t.st.restore(snap)
		return err
	}
	return nil
}

func newFixture() (*auth.AuthUseCase, *memState, *memUserRepo, *memTxRunner) {
	st := newMemState()
	users := &memUserRepo{st: st}
	tx := &memTxRunner{st: st, users: users, orgs: &memOrgRepo{st: st}, roles: &memRoleRepo{st: st}}
	uc := auth.NewAuthUseCase(users, tx, logger.Nop())
	return uc, st, users, tx
}

func registerAcme(t *testing.T, uc *auth.AuthUseCase) *entity.AuthenticatedIdentity {
	t.Helper()
	identity, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:                 "a@x.com",
		Password:              "pw123456",
		Username:              "a",
		OrganizationName:      "Acme",
		OrganizationSubdomain: "acme",
	})
	require.NoError(t, err)
	return identity
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaOrganizacionRolYUsuario(t *testing.T) {
	uc, st, _, tx := newFixture()

	identity := registerAcme(t, uc)

	require.Len(t, st.orgs, 1)
	require.Len(t, st.roles, 1)
	require.Len(t, st.users, 1)
	assert.Equal(t, 1, tx.runs, "las tres escrituras van en una sola transacción")

	org := st.orgs[identity.OrganizationID]
	require.NotNil(t, org)
	assert.Equal(t, "Acme", org.Name)
	assert.Equal(t, "acme", org.Subdomain)
	assert.True(t, org.IsActive)

	role := st.roles[identity.RoleID]
	require.NotNil(t, role)
	assert.Equal(t, "admin", role.Name)
	assert.Equal(t, []string{"*"}, role.Permissions)
	assert.Equal(t, org.ID, role.OrganizationID, "el rol queda acotado a la organización nueva")

	user := st.users[identity.UserID]
	require.NotNil(t, user)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "a", user.Username)
	assert.True(t, user.IsActive)
	assert.True(t, password.Verify("pw123456", user.PasswordHash), "el hash persistido debe verificar el password")

	// La identidad devuelta lleva la organización resuelta y ningún hash.
	assert.Equal(t, "acme", identity.Organization.Subdomain)
	assert.Equal(t, "a", identity.FullName, "sin full_name explícito se usa el username")
}

func TestRegister_SinOrganizacion_Rechazado(t *testing.T) {
	uc, st, _, _ := newFixture()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "a@x.com",
		Password: "pw123456",
		Username: "a",
		// sin organization_name ni organization_subdomain: jamás se infiere una
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, st.orgs)
	assert.Empty(t, st.users)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, st, _, _ := newFixture()
	registerAcme(t, uc)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:                 "a@x.com",
		Password:              "otropw99",
		Username:              "otro",
		OrganizationName:      "Beta",
		OrganizationSubdomain: "beta",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	// El intento duplicado no deja rastro: ni segunda organización ni segundo rol/usuario.
	assert.Len(t, st.orgs, 1)
	assert.Len(t, st.roles, 1)
	assert.Len(t, st.users, 1)
}

func TestRegister_FallaUsuario_RollbackCompleto(t *testing.T) {
	uc, st, users, _ := newFixture()
	users.failCreate = true

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:                 "a@x.com",
		Password:              "pw123456",
		Username:              "a",
		OrganizationName:      "Acme",
		OrganizationSubdomain: "acme",
	})
	require.Error(t, err)

	// Rollback: no quedan organización ni rol huérfanos.
	assert.Empty(t, st.orgs)
	assert.Empty(t, st.roles)
	assert.Empty(t, st.users)
}

// ──────────────────────────────────────────────────────────────────────────────
// Authenticate
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthenticate_OK(t *testing.T) {
	uc, st, _, _ := newFixture()
	reg := registerAcme(t, uc)

	identity, err := uc.Authenticate(context.Background(), "a@x.com", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, identity.UserID)
	assert.Equal(t, "acme", identity.Organization.Subdomain)

	// Side effect: last_login registrado.
	require.NotNil(t, st.users[reg.UserID].LastLoginAt)
}

func TestAuthenticate_PasswordIncorrecto(t *testing.T) {
	uc, _, _, _ := newFixture()
	registerAcme(t, uc)

	_, err := uc.Authenticate(context.Background(), "a@x.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticate_UsuarioInexistente(t *testing.T) {
	uc, _, _, _ := newFixture()

	_, err := uc.Authenticate(context.Background(), "nadie@x.com", "pw123456")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAuthenticate_CuentaInactiva(t *testing.T) {
	uc, st, _, _ := newFixture()
	reg := registerAcme(t, uc)
	st.users[reg.UserID].IsActive = false

	// El join filtra por activo: cuenta inactiva equivale a no encontrada.
	_, err := uc.Authenticate(context.Background(), "a@x.com", "pw123456")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAuthenticate_OrganizacionInactiva(t *testing.T) {
	uc, st, _, _ := newFixture()
	reg := registerAcme(t, uc)
	st.orgs[reg.OrganizationID].IsActive = false

	_, err := uc.Authenticate(context.Background(), "a@x.com", "pw123456")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAuthenticate_LastLoginFalla_NoRompeElLogin(t *testing.T) {
	uc, _, users, _ := newFixture()
	registerAcme(t, uc)
	users.failLastLogin = true

	identity, err := uc.Authenticate(context.Background(), "a@x.com", "pw123456")
	require.NoError(t, err, "registrar last_login es best-effort")
	require.NotNil(t, identity)
	assert.Equal(t, 1, users.lastLoginCalls)
}

func TestAuthenticate_ErrorDeStorage_SePropaga(t *testing.T) {
	uc, _, users, _ := newFixture()
	users.failFetch = true

	// Error de infraestructura ≠ credenciales inválidas: el caller decide cómo responder.
	_, err := uc.Authenticate(context.Background(), "a@x.com", "pw123456")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUserNotFound)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

// ──────────────────────────────────────────────────────────────────────────────
// ResolveByID (recarga por sesión)
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveByID_OK(t *testing.T) {
	uc, _, _, _ := newFixture()
	reg := registerAcme(t, uc)

	identity, err := uc.ResolveByID(context.Background(), reg.UserID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", identity.Email)
}

func TestResolveByID_Inexistente(t *testing.T) {
	uc, _, _, _ := newFixture()

	_, err := uc.ResolveByID(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestResolveByID_CuentaInactiva(t *testing.T) {
	uc, st, _, _ := newFixture()
	reg := registerAcme(t, uc)
	st.users[reg.UserID].IsActive = false

	// Distinto de "no encontrado": el caller invalida la sesión stale.
	_, err := uc.ResolveByID(context.Background(), reg.UserID)
	assert.ErrorIs(t, err, domain.ErrInactiveAccount)
}

func TestResolveByID_OrganizacionInactiva(t *testing.T) {
	uc, st, _, _ := newFixture()
	reg := registerAcme(t, uc)
	st.orgs[reg.OrganizationID].IsActive = false

	_, err := uc.ResolveByID(context.Background(), reg.UserID)
	assert.ErrorIs(t, err, domain.ErrInactiveAccount)
}
