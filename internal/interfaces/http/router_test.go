package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appanalytics "github.com/jhoicas/logistica-api/internal/application/analytics"
	"github.com/jhoicas/logistica-api/internal/application/audit"
	"github.com/jhoicas/logistica-api/internal/application/auth"
	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/application/inventory"
	"github.com/jhoicas/logistica-api/internal/application/movement"
	"github.com/jhoicas/logistica-api/internal/application/usecase"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/infrastructure/memory"
	"github.com/jhoicas/logistica-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/logistica-api/internal/interfaces/http"
	"github.com/jhoicas/logistica-api/pkg/logger"
)

const (
	alphaID  = "base-alpha"
	password = "secreto123"
)

// newAPI arma la app completa sobre el almacén en memoria con un ADMIN y un BASE_COMMANDER de alpha.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	r := store.Repos()
	now := time.Now().UTC()

	require.NoError(t, r.Bases.Create(ctx, &entity.Base{ID: alphaID, Name: "Alpha", Location: "Norte", CreatedAt: now}))
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	base := alphaID
	require.NoError(t, r.Users.Create(ctx, &entity.User{
		ID: "u-admin", Username: "admin", PasswordHash: string(hash), FullName: "Admin", Role: entity.RoleAdmin, CreatedAt: now,
	}))
	require.NoError(t, r.Users.Create(ctx, &entity.User{
		ID: "u-cmd", Username: "commander1", PasswordHash: string(hash), FullName: "Cmdr", Role: entity.RoleBaseCommander, BaseID: &base, CreatedAt: now,
	}))

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(apphttp.RequestLogger(logger.Nop(), nil))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(r.Users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		UserUC:      usecase.NewUserUseCase(store),
		BaseUC:      usecase.NewBaseUseCase(store),
		PersonnelUC: usecase.NewPersonnelUseCase(store),
		AssetUC:     inventory.NewAssetUseCase(store, nil),
		PurchaseUC:  inventory.NewPurchaseUseCase(store, nil),
		HistoryUC:   inventory.NewHistoryUseCase(store),
		Movement:    movement.NewService(store, nil, nil),
		DashboardUC: appanalytics.NewDashboardUseCase(store),
		ReportUC:    appanalytics.NewReportUseCase(store, pdf.NewMarotoReportGenerator()),
		AuditUC:     audit.NewUseCase(store),
		JWTSecret:   testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func login(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	resp, raw := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func codeOf(t *testing.T, raw []byte) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &e), string(raw))
	return e.Code
}

func TestLogin(t *testing.T) {
	app := newAPI(t)

	resp, raw := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "COMMANDER1", Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "BASE_COMMANDER", out.User.Role)
	assert.True(t, out.Capabilities["canApproveTransfers"])
	assert.False(t, out.Capabilities["canManageUsers"])

	resp, raw = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "admin", Password: "mal"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHENTICATED", codeOf(t, raw))

	resp, raw = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "nadie", Password: password})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "usuario inexistente responde igual que password incorrecta")
	assert.Equal(t, "UNAUTHENTICATED", codeOf(t, raw))

	resp, raw = call(t, app, http.MethodPost, "/api/auth/login", "", "{")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", codeOf(t, raw))
}

func TestMeYRoles(t *testing.T) {
	app := newAPI(t)
	token := login(t, app, "commander1")

	resp, raw := call(t, app, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me dto.MeResponse
	require.NoError(t, json.Unmarshal(raw, &me))
	assert.Equal(t, "u-cmd", me.User.ID)
	require.NotNil(t, me.User.BaseID)
	assert.Equal(t, alphaID, *me.User.BaseID)

	resp, raw = call(t, app, http.MethodGet, "/api/roles", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var roles []dto.RoleCapabilities
	require.NoError(t, json.Unmarshal(raw, &roles))
	assert.Len(t, roles, 4)

	resp, _ = call(t, app, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_FlujoActivoYTraslado(t *testing.T) {
	app := newAPI(t)
	adminTok := login(t, app, "admin")

	resp, raw := call(t, app, http.MethodPost, "/api/bases", adminTok, dto.CreateBaseRequest{Name: "Beta", Location: "Sur"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var beta dto.BaseResponse
	require.NoError(t, json.Unmarshal(raw, &beta))

	resp, raw = call(t, app, http.MethodPost, "/api/assets", adminTok, dto.CreateAssetRequest{
		Name: "Humvee", EquipmentType: "vehicle", BaseID: alphaID, Quantity: 5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var asset dto.AssetResponse
	require.NoError(t, json.Unmarshal(raw, &asset))
	assert.Equal(t, "VEHICLE", asset.EquipmentType)
	assert.Equal(t, 5, asset.Quantity)

	// la cantidad inicial queda registrada como compra
	resp, raw = call(t, app, http.MethodGet, "/api/purchases?asset_id="+asset.ID, adminTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var purchases []dto.PurchaseResponse
	require.NoError(t, json.Unmarshal(raw, &purchases))
	require.Len(t, purchases, 1)
	assert.Equal(t, 5, purchases[0].Quantity)

	resp, raw = call(t, app, http.MethodPost, "/api/transfers", adminTok, dto.CreateTransferRequest{
		AssetID: asset.ID, FromBaseID: alphaID, ToBaseID: beta.ID, Quantity: 9,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", codeOf(t, raw))

	resp, raw = call(t, app, http.MethodPost, "/api/transfers", adminTok, dto.CreateTransferRequest{
		AssetID: asset.ID, FromBaseID: alphaID, ToBaseID: beta.ID, Quantity: 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var tr dto.TransferResponse
	require.NoError(t, json.Unmarshal(raw, &tr))
	assert.Equal(t, "APPROVED", tr.Status)

	resp, raw = call(t, app, http.MethodGet, "/api/assets/"+asset.ID, adminTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &asset))
	assert.Equal(t, 3, asset.Quantity)

	// una segunda aprobación es transición inválida
	resp, raw = call(t, app, http.MethodPost, "/api/transfers/"+tr.ID+"/approve", adminTok, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_STATE", codeOf(t, raw))

	// el comandante de alpha ve el traslado y su bitácora
	cmdTok := login(t, app, "commander1")
	resp, raw = call(t, app, http.MethodGet, "/api/transfers", cmdTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var transfers []dto.TransferResponse
	require.NoError(t, json.Unmarshal(raw, &transfers))
	assert.Len(t, transfers, 1)

	resp, raw = call(t, app, http.MethodGet, "/api/audit", cmdTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []dto.AuditLogResponse
	require.NoError(t, json.Unmarshal(raw, &entries))
	assert.NotEmpty(t, entries)
}

func TestRouter_MapeoDeErrores(t *testing.T) {
	app := newAPI(t)
	adminTok := login(t, app, "admin")
	cmdTok := login(t, app, "commander1")

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		status int
		code   string
	}{
		{"activo inexistente", http.MethodGet, "/api/assets/no-existe", adminTok, nil, http.StatusNotFound, "NOT_FOUND"},
		{"json inválido", http.MethodPost, "/api/assets", adminTok, "{", http.StatusBadRequest, "INVALID_BODY"},
		{"tipo inválido", http.MethodPost, "/api/assets", adminTok, dto.CreateAssetRequest{Name: "X", EquipmentType: "TANKETTE", BaseID: alphaID}, http.StatusBadRequest, "VALIDATION"},
		{"cantidad negativa", http.MethodPost, "/api/assets", adminTok, dto.CreateAssetRequest{Name: "X", EquipmentType: "OTHER", BaseID: alphaID, Quantity: -1}, http.StatusBadRequest, "INVALID_QUANTITY"},
		{"usuarios sin capacidad", http.MethodGet, "/api/auth/users", cmdTok, nil, http.StatusForbidden, "FORBIDDEN"},
		{"alta de activo sin capacidad", http.MethodPost, "/api/assets", cmdTok, dto.CreateAssetRequest{Name: "X", EquipmentType: "OTHER", BaseID: alphaID}, http.StatusForbidden, "FORBIDDEN"},
		{"sin token", http.MethodGet, "/api/assets", "", nil, http.StatusUnauthorized, "MISSING_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, raw := call(t, app, tc.method, tc.path, tc.token, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode, string(raw))
			assert.Equal(t, tc.code, codeOf(t, raw))
		})
	}
}

func TestRouter_ReportePDF(t *testing.T) {
	app := newAPI(t)
	adminTok := login(t, app, "admin")

	resp, raw := call(t, app, http.MethodGet, "/api/reports/inventory.pdf", adminTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}
