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

	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/domain/authz"
	apphttp "github.com/jhoicas/logistica-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/logistica-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testBaseID    = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "logistica-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con AuthMiddleware, RequireCapability
// y un handler que devuelve la identidad si pasa los middlewares.
func buildTestApp(capability authz.Capability) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireCapability(capability),
		func(c *fiber.Ctx) error {
			id, _ := apphttp.GetIdentity(c)
			return c.JSON(fiber.Map{"role": id.Role, "base_id": id.BaseID, "user_id": apphttp.GetUserID(c)})
		},
	)
	return app
}

func tokenFor(t *testing.T, role, baseID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Subject{
		UserID: testUserID, Username: "tester", Role: role, BaseID: baseID,
	}, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e), string(body))
	return e.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// Casos
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_CargaIdentidad(t *testing.T) {
	app := buildTestApp(authz.CanViewInventory)
	resp := doRequest(t, app, tokenFor(t, "BASE_COMMANDER", testBaseID))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "BASE_COMMANDER", body["role"])
	assert.Equal(t, testBaseID, body["base_id"])
	assert.Equal(t, testUserID, body["user_id"])
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	app := buildTestApp(authz.CanViewInventory)
	expired, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Subject{UserID: testUserID, Role: "ADMIN"}, testIssuer, -1)
	require.NoError(t, err)
	foreign, err := pkgjwt.Generate("otro-secret", pkgjwt.Subject{UserID: testUserID, Role: "ADMIN"}, testIssuer, testExpMin)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"sin Bearer", "Token abc", "INVALID_TOKEN"},
		{"malformado", "Bearer esto.no.es.jwt", "INVALID_TOKEN"},
		{"expirado", "Bearer " + expired, "INVALID_TOKEN"},
		{"firma ajena", "Bearer " + foreign, "INVALID_TOKEN"},
		{"rol desconocido", tokenFor(t, "GUEST", testBaseID), "INVALID_TOKEN"},
		{"rol con base sin base", tokenFor(t, "LOGISTICS_OFFICER", ""), "MISSING_BASE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, tc.header)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tc.code, errorCode(t, resp))
		})
	}
}

func TestRequireCapability(t *testing.T) {
	cases := []struct {
		capability authz.Capability
		role       string
		want       int
	}{
		{authz.CanManageUsers, "ADMIN", http.StatusOK},
		{authz.CanManageUsers, "BASE_COMMANDER", http.StatusForbidden},
		{authz.CanViewAuditLogs, "BASE_COMMANDER", http.StatusOK},
		{authz.CanViewAuditLogs, "LOGISTICS_OFFICER", http.StatusForbidden},
		{authz.CanViewReports, "PERSONNEL", http.StatusForbidden},
		{authz.CanRequestAssets, "PERSONNEL", http.StatusOK},
		{authz.CanRequestAssets, "ADMIN", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(string(tc.capability)+"/"+tc.role, func(t *testing.T) {
			base := testBaseID
			if tc.role == "ADMIN" {
				base = ""
			}
			resp := doRequest(t, buildTestApp(tc.capability), tokenFor(t, tc.role, base))
			assert.Equal(t, tc.want, resp.StatusCode)
			if tc.want == http.StatusForbidden {
				assert.Equal(t, "FORBIDDEN", errorCode(t, resp))
			}
		})
	}
}

func TestRequireCapability_SinIdentidad(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", apphttp.RequireCapability(authz.CanViewInventory), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	resp := doRequest(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHENTICATED", errorCode(t, resp))
}
