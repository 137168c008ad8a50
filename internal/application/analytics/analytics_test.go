package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/logistica-api/internal/application/analytics"
	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/application/inventory"
	"github.com/jhoicas/logistica-api/internal/application/movement"
	"github.com/jhoicas/logistica-api/internal/domain"
	"github.com/jhoicas/logistica-api/internal/domain/authz"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/infrastructure/memory"
	"github.com/jhoicas/logistica-api/pkg/logger"
)

const (
	alpha = "base-alpha"
	beta  = "base-beta"
)

var (
	admin     = authz.Identity{UserID: "u-admin", Role: entity.RoleAdmin}
	commander = authz.Identity{UserID: "u-cmd", Username: "commander1", Role: entity.RoleBaseCommander, BaseID: alpha}
	officer   = authz.Identity{UserID: "u-lo", Role: entity.RoleLogisticsOfficer, BaseID: alpha}
	soldier   = authz.Identity{UserID: "u-p", Role: entity.RolePersonnel, BaseID: alpha}
)

// newScenario deja en alpha una radio comprada (10 a 100.00), trasladada (4 a beta),
// entregada (2 al soldado), un traslado pendiente de 1 hacia beta y una solicitud pendiente.
func newScenario(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	r := store.Repos()
	now := time.Now().UTC()
	require.NoError(t, r.Bases.Create(ctx, &entity.Base{ID: alpha, Name: "Alpha", CreatedAt: now}))
	require.NoError(t, r.Bases.Create(ctx, &entity.Base{ID: beta, Name: "Beta", CreatedAt: now}))
	for _, id := range []authz.Identity{admin, commander, officer, soldier} {
		u := &entity.User{ID: id.UserID, Username: id.UserID, PasswordHash: "x", Role: id.Role, CreatedAt: now}
		if id.BaseID != "" {
			b := id.BaseID
			u.BaseID = &b
		}
		require.NoError(t, r.Users.Create(ctx, u))
	}
	uid := soldier.UserID
	require.NoError(t, r.Personnel.Create(ctx, &entity.Personnel{ID: "p-1", Name: "Soldado", UserID: &uid, BaseID: alpha, CreatedAt: now}))

	cost := decimal.NewFromInt(100)
	radio, err := inventory.NewAssetUseCase(store, nil).Create(ctx, admin, dto.CreateAssetRequest{
		Name: "Radio", EquipmentType: "EQUIPMENT", BaseID: alpha, Quantity: 10, UnitCost: &cost,
	})
	require.NoError(t, err)

	svc := movement.NewService(store, logger.Nop(), nil)
	_, err = svc.CreateTransfer(ctx, admin, dto.CreateTransferRequest{AssetID: radio.ID, FromBaseID: alpha, ToBaseID: beta, Quantity: 4})
	require.NoError(t, err)
	_, err = svc.IssueAsset(ctx, officer, dto.IssueAssetRequest{AssetID: radio.ID, PersonnelID: "p-1", Quantity: 2})
	require.NoError(t, err)
	_, err = svc.CreateTransfer(ctx, commander, dto.CreateTransferRequest{AssetID: radio.ID, FromBaseID: alpha, ToBaseID: beta, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.CreateRequest(ctx, soldier, dto.CreateAssetRequestRequest{AssetID: radio.ID, Quantity: 1, Reason: "patrulla"})
	require.NoError(t, err)
	return store
}

// ── Tablero ──────────────────────────────────────────────────────────────────

func TestDashboard_BaseDelComandante(t *testing.T) {
	uc := analytics.NewDashboardUseCase(newScenario(t))

	d, err := uc.Get(context.Background(), commander, dto.DashboardQuery{BaseID: beta})
	require.NoError(t, err)
	require.NotNil(t, d.Summary)
	assert.Nil(t, d.Personal)

	s := d.Summary
	assert.Equal(t, 4, s.ClosingBalance, "base_id ajeno se ignora para no-ADMIN")
	assert.Equal(t, 10, s.Purchases)
	assert.True(t, decimal.NewFromInt(1000).Equal(s.PurchaseSpend))
	assert.Equal(t, 0, s.TransfersIn)
	assert.Equal(t, 4, s.TransfersOut)
	assert.Equal(t, 6, s.NetMovement)
	assert.Equal(t, s.ClosingBalance-s.NetMovement, s.OpeningBalance)
	assert.Equal(t, 2, s.Assigned)
	assert.Equal(t, 0, s.PendingTransfers, "el pendiente va hacia beta")
	assert.Zero(t, s.PendingRequests, "BASE_COMMANDER no entrega activos")
	require.Len(t, s.Assets, 1)
}

func TestDashboard_AdminFiltraPorBase(t *testing.T) {
	uc := analytics.NewDashboardUseCase(newScenario(t))

	d, err := uc.Get(context.Background(), admin, dto.DashboardQuery{BaseID: beta})
	require.NoError(t, err)
	s := d.Summary
	assert.Equal(t, 4, s.ClosingBalance)
	assert.Equal(t, 4, s.TransfersIn)
	assert.Equal(t, 0, s.Purchases)
	assert.Equal(t, 0, s.OpeningBalance)
	assert.Equal(t, 1, s.PendingTransfers)
}

func TestDashboard_OficialVeSolicitudes(t *testing.T) {
	uc := analytics.NewDashboardUseCase(newScenario(t))

	d, err := uc.Get(context.Background(), officer, dto.DashboardQuery{EquipmentType: "equipment"})
	require.NoError(t, err)
	assert.Equal(t, 1, d.Summary.PendingRequests)
	assert.Equal(t, 0, d.Summary.PendingTransfers)

	d, err = uc.Get(context.Background(), officer, dto.DashboardQuery{EquipmentType: "WEAPON"})
	require.NoError(t, err)
	assert.Zero(t, d.Summary.ClosingBalance)
	assert.Empty(t, d.Summary.Assets)
}

func TestDashboard_RangoDeFechas(t *testing.T) {
	uc := analytics.NewDashboardUseCase(newScenario(t))

	d, err := uc.Get(context.Background(), commander, dto.DashboardQuery{StartDate: "2999-01-01"})
	require.NoError(t, err)
	assert.Equal(t, 4, d.Summary.ClosingBalance, "el saldo final no depende del rango")
	assert.Zero(t, d.Summary.Purchases)
	assert.Zero(t, d.Summary.TransfersOut)
	assert.Equal(t, 4, d.Summary.OpeningBalance)
}

func TestDashboard_FiltrosInvalidos(t *testing.T) {
	uc := analytics.NewDashboardUseCase(newScenario(t))
	ctx := context.Background()

	tests := []dto.DashboardQuery{
		{EquipmentType: "TANK"},
		{StartDate: "ayer"},
		{StartDate: "2024-02-01", EndDate: "2024-01-01"},
	}
	for _, q := range tests {
		_, err := uc.Get(ctx, commander, q)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", q)
	}
}

func TestDashboard_Personal(t *testing.T) {
	uc := analytics.NewDashboardUseCase(newScenario(t))
	ctx := context.Background()

	d, err := uc.Get(ctx, soldier, dto.DashboardQuery{})
	require.NoError(t, err)
	require.NotNil(t, d.Personal)
	assert.Nil(t, d.Summary)
	assert.Equal(t, 1, d.Personal.Assigned)
	assert.Equal(t, 1, d.Personal.MyRequests)
	require.Len(t, d.Personal.Assets, 1)
	assert.Equal(t, "Radio", d.Personal.Assets[0].Name)
	assert.Equal(t, 2, d.Personal.Assets[0].Quantity)

	// Sin ficha de personal el resumen viene vacío.
	d, err = uc.Get(ctx, authz.Identity{UserID: "u-x", Role: entity.RolePersonnel, BaseID: alpha}, dto.DashboardQuery{})
	require.NoError(t, err)
	assert.Zero(t, d.Personal.Assigned)
	assert.Empty(t, d.Personal.Assets)
}

// ── Reporte ──────────────────────────────────────────────────────────────────

type captureGenerator struct {
	got *analytics.InventoryReport
}

func (g *captureGenerator) GenerateInventoryReport(_ context.Context, r *analytics.InventoryReport) ([]byte, error) {
	g.got = r
	return []byte("%PDF-fake"), nil
}

func TestInventoryReport_Comandante(t *testing.T) {
	gen := &captureGenerator{}
	uc := analytics.NewReportUseCase(newScenario(t), gen)

	pdf, name, err := uc.InventoryPDF(context.Background(), commander, beta)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Regexp(t, `^inventario-\d{8}-\d{4}\.pdf$`, name)

	r := gen.got
	require.NotNil(t, r)
	assert.Equal(t, "Alpha", r.Scope)
	assert.Equal(t, "commander1", r.GeneratedBy)
	require.Len(t, r.Rows, 1)
	assert.Equal(t, 4, r.Rows[0].Quantity)
	require.True(t, r.Rows[0].UnitCost.Valid)
	assert.True(t, decimal.NewFromInt(100).Equal(r.Rows[0].UnitCost.Decimal))
	assert.True(t, decimal.NewFromInt(400).Equal(r.TotalValue))
	assert.Equal(t, 2, r.Assigned)
}

func TestInventoryReport_AdminTodasLasBases(t *testing.T) {
	gen := &captureGenerator{}
	uc := analytics.NewReportUseCase(newScenario(t), gen)

	_, _, err := uc.InventoryPDF(context.Background(), admin, "")
	require.NoError(t, err)

	r := gen.got
	assert.Equal(t, "Todas las bases", r.Scope)
	require.Len(t, r.Rows, 2)
	assert.Equal(t, "Alpha", r.Rows[0].BaseName)
	assert.Equal(t, "Beta", r.Rows[1].BaseName)
	assert.False(t, r.Rows[1].UnitCost.Valid, "la fila destino no tiene compras")
	assert.Equal(t, 8, r.TotalQuantity)
	assert.True(t, decimal.NewFromInt(400).Equal(r.TotalValue))
}

func TestInventoryReport_SinPermiso(t *testing.T) {
	gen := &captureGenerator{}
	uc := analytics.NewReportUseCase(newScenario(t), gen)

	_, _, err := uc.InventoryPDF(context.Background(), officer, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, gen.got)
}
