package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/gar-aguas/control-rf29/internal/interfaces/http"
	pkgjwt "github.com/gar-aguas/control-rf29/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "control-rf29-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar el rol
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	app.Get("/opcional", apphttp.OptionalAuth(testJWTSecret), func(c *fiber.Ctx) error {
		return c.SendString(apphttp.GetRole(c))
	})
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET a path y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware / RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_DashboardAccede(t *testing.T) {
	app := buildTestApp(pkgjwt.RoleDashboard)
	resp := doRequest(t, app, "/protected", tokenForRole(t, pkgjwt.RoleDashboard))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_OtroRolEsProhibido(t *testing.T) {
	app := buildTestApp(pkgjwt.RoleDashboard)
	resp := doRequest(t, app, "/protected", tokenForRole(t, "visitante"))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decodeCode(t, resp))
}

func TestAuthMiddleware_SinToken(t *testing.T) {
	app := buildTestApp(pkgjwt.RoleDashboard)
	resp := doRequest(t, app, "/protected", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", decodeCode(t, resp))
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildTestApp(pkgjwt.RoleDashboard)
	resp := doRequest(t, app, "/protected", "Token abc")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decodeCode(t, resp))
}

func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	app := buildTestApp(pkgjwt.RoleDashboard)
	tok, err := pkgjwt.Generate("otro-secreto", pkgjwt.RoleDashboard, testIssuer, testExpMin)
	require.NoError(t, err)
	resp := doRequest(t, app, "/protected", "Bearer "+tok)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenPorQuery(t *testing.T) {
	app := buildTestApp(pkgjwt.RoleDashboard)
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.RoleDashboard, testIssuer, testExpMin)
	require.NoError(t, err)
	resp := doRequest(t, app, "/protected?token="+tok, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "el websocket envía el token por query")
}

func TestOptionalAuth_SinTokenSigueAnonimo(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/opcional", "Bearer basura")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Empty(t, string(body))

	resp = doRequest(t, app, "/opcional", tokenForRole(t, pkgjwt.RoleDashboard))
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, pkgjwt.RoleDashboard, string(body))
}
