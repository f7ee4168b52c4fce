package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	apphttp "github.com/jhoicas/crm-api/internal/interfaces/http"
)

// fakeRoleRepo devuelve siempre el mismo rol (o error), suficiente para el gate.
type fakeRoleRepo struct {
	role *entity.Role
	err  error
}

func (f *fakeRoleRepo) Create(_ context.Context, _ *entity.Role) error { return nil }

func (f *fakeRoleRepo) GetByID(_ context.Context, _ string) (*entity.Role, error) {
	return f.role, f.err
}

// buildAuthzApp arma una app con una ruta protegida por RequirePermission.
// Si identity no es nil, un middleware previo la adjunta (emulando al SessionMiddleware).
func buildAuthzApp(identity *entity.AuthenticatedIdentity, roles *fakeRoleRepo, allowed ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		func(c *fiber.Ctx) error {
			if identity != nil {
				c.Locals(apphttp.LocalIdentity, identity)
			}
			return c.Next()
		},
		apphttp.RequirePermission(roles, allowed...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true})
		},
	)
	return app
}

func testIdentity() *entity.AuthenticatedIdentity {
	return &entity.AuthenticatedIdentity{
		UserID:         "00000000-0000-0000-0000-000000000001",
		OrganizationID: "00000000-0000-0000-0000-000000000002",
		RoleID:         "00000000-0000-0000-0000-000000000003",
		Email:          "a@x.com",
	}
}

func doGet(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequirePermission_ComodinPasaSinImportarElNombre(t *testing.T) {
	// Rol con permiso "*" pasa aunque su nombre no esté en los permitidos.
	roles := &fakeRoleRepo{role: &entity.Role{ID: "r", Name: "cualquier-cosa", Permissions: []string{"*"}}}
	app := buildAuthzApp(testIdentity(), roles, "admin")

	resp := doGet(t, app)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermission_NombreDeRolCoincide(t *testing.T) {
	roles := &fakeRoleRepo{role: &entity.Role{ID: "r", Name: "admin", Permissions: []string{}}}
	app := buildAuthzApp(testIdentity(), roles, "admin")

	resp := doGet(t, app)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermission_PermisoLiteralCoincide(t *testing.T) {
	// Nombre de rol y permiso comparten espacio de nombres: un rol "support"
	// con el permiso "sales" pasa una ruta que exige admin o sales.
	roles := &fakeRoleRepo{role: &entity.Role{ID: "r", Name: "support", Permissions: []string{"sales"}}}
	app := buildAuthzApp(testIdentity(), roles, "admin", "sales")

	resp := doGet(t, app)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermission_SinCoincidencia_403(t *testing.T) {
	roles := &fakeRoleRepo{role: &entity.Role{ID: "r", Name: "viewer", Permissions: []string{"read"}}}
	app := buildAuthzApp(testIdentity(), roles, "admin")

	resp := doGet(t, app)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequirePermission_SinIdentidad_401(t *testing.T) {
	roles := &fakeRoleRepo{role: &entity.Role{ID: "r", Name: "admin"}}
	app := buildAuthzApp(nil, roles, "admin")

	resp := doGet(t, app)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequirePermission_RolInexistente_500(t *testing.T) {
	// Usuario sin rol configurado es misconfiguración del servidor, no denegación.
	roles := &fakeRoleRepo{role: nil}
	app := buildAuthzApp(testIdentity(), roles, "admin")

	resp := doGet(t, app)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "ROLE_NOT_FOUND")
}

func TestRequirePermission_ErrorDeStorage_500(t *testing.T) {
	// A diferencia del cargador de sesión, el gate propaga errores de storage.
	roles := &fakeRoleRepo{err: errors.New("db down")}
	app := buildAuthzApp(testIdentity(), roles, "admin")

	resp := doGet(t, app)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "ROLE_CHECK_FAILED")
}

func TestRequireAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/me",
		apphttp.RequireAuth(),
		func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) },
	)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "sin identidad adjunta debe responder 401")
}
