package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/application/inventory"
	"github.com/jhoicas/logistica-api/internal/application/ports"
	"github.com/jhoicas/logistica-api/internal/domain"
	"github.com/jhoicas/logistica-api/internal/domain/authz"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
	"github.com/jhoicas/logistica-api/internal/infrastructure/memory"
)

const (
	alpha = "base-alpha"
	beta  = "base-beta"
)

var (
	admin     = authz.Identity{UserID: "u-admin", Role: entity.RoleAdmin}
	commander = authz.Identity{UserID: "u-cmd", Role: entity.RoleBaseCommander, BaseID: alpha}
	officer   = authz.Identity{UserID: "u-lo", Role: entity.RoleLogisticsOfficer, BaseID: alpha}
	officerB  = authz.Identity{UserID: "u-lo-b", Role: entity.RoleLogisticsOfficer, BaseID: beta}
	soldier   = authz.Identity{UserID: "u-p", Role: entity.RolePersonnel, BaseID: alpha}
	other     = authz.Identity{UserID: "u-p2", Role: entity.RolePersonnel, BaseID: alpha}
)

func newStore(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	r := store.Repos()
	now := time.Now().UTC()
	for _, b := range []string{alpha, beta} {
		require.NoError(t, r.Bases.Create(ctx, &entity.Base{ID: b, Name: b, CreatedAt: now}))
	}
	for _, id := range []authz.Identity{admin, commander, officer, officerB, soldier, other} {
		u := &entity.User{ID: id.UserID, Username: id.UserID, PasswordHash: "x", Role: id.Role, CreatedAt: now}
		if id.BaseID != "" {
			b := id.BaseID
			u.BaseID = &b
		}
		require.NoError(t, r.Users.Create(ctx, u))
	}
	uid := soldier.UserID
	require.NoError(t, r.Personnel.Create(ctx, &entity.Personnel{ID: "p-1", Name: "Soldado", UserID: &uid, BaseID: alpha, CreatedAt: now}))
	return store
}

func createAsset(t *testing.T, store *memory.Store, qty int) *dto.AssetResponse {
	t.Helper()
	uc := inventory.NewAssetUseCase(store, nil)
	cost := decimal.RequireFromString("1250.50")
	a, err := uc.Create(context.Background(), admin, dto.CreateAssetRequest{
		Name: " Humvee ", EquipmentType: "vehicle", BaseID: alpha, Quantity: qty, UnitCost: &cost,
	})
	require.NoError(t, err)
	return a
}

// ── Libro de inventario ──────────────────────────────────────────────────────

func TestLedger_IncreaseDecrease(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	a := createAsset(t, store, 5)

	err := store.Run(ctx, func(r ports.Repos) error {
		got, err := inventory.Increase(ctx, r.Assets, a.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, 8, got.Quantity)

		got, err = inventory.Decrease(ctx, r.Assets, a.ID, 8)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Quantity)
		return nil
	})
	require.NoError(t, err)

	err = store.Run(ctx, func(r ports.Repos) error {
		_, err := inventory.Decrease(ctx, r.Assets, a.ID, 1)
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	for _, qty := range []int{0, -2} {
		err = store.Run(ctx, func(r ports.Repos) error {
			_, err := inventory.Increase(ctx, r.Assets, a.ID, qty)
			return err
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}

	got, err := store.Repos().Assets.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
}

func TestLedger_FindOrCreateAtBase(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	a := createAsset(t, store, 1)

	err := store.Run(ctx, func(r ports.Repos) error {
		same, err := inventory.FindOrCreateAtBase(ctx, r.Assets, "Humvee", entity.EquipmentVehicle, entity.ConditionFair, alpha)
		require.NoError(t, err)
		assert.Equal(t, a.ID, same.ID)

		created, err := inventory.FindOrCreateAtBase(ctx, r.Assets, "Humvee", entity.EquipmentVehicle, "", beta)
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, created.ID)
		assert.Equal(t, 0, created.Quantity)
		assert.Equal(t, entity.ConditionGood, created.Condition)

		_, err = inventory.FindOrCreateAtBase(ctx, r.Assets, " ", entity.EquipmentVehicle, "", beta)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		return nil
	})
	require.NoError(t, err)
}

// ── Activos y compras ────────────────────────────────────────────────────────

func TestAssetCreate_CantidadInicialComoCompra(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	a := createAsset(t, store, 7)

	assert.Equal(t, "Humvee", a.Name)
	assert.Equal(t, "VEHICLE", a.EquipmentType)
	assert.Equal(t, "GOOD", a.Condition)
	assert.Equal(t, 7, a.Quantity)

	purchases, err := store.Repos().Purchases.List(ctx, repository.PurchaseFilter{AssetID: a.ID})
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, 7, purchases[0].Quantity)
	assert.True(t, decimal.RequireFromString("8753.5").Equal(purchases[0].TotalCost()))

	// sin cantidad no hay compra
	uc := inventory.NewAssetUseCase(store, nil)
	empty, err := uc.Create(ctx, admin, dto.CreateAssetRequest{Name: "Radio", EquipmentType: "EQUIPMENT", BaseID: alpha})
	require.NoError(t, err)
	purchases, err = store.Repos().Purchases.List(ctx, repository.PurchaseFilter{AssetID: empty.ID})
	require.NoError(t, err)
	assert.Empty(t, purchases)

	_, err = uc.Create(ctx, admin, dto.CreateAssetRequest{Name: "Humvee", EquipmentType: "VEHICLE", BaseID: alpha})
	assert.ErrorIs(t, err, domain.ErrConflict, "mismo (base, nombre, tipo)")
}

func TestAssetCreate_Rechazos(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	uc := inventory.NewAssetUseCase(store, nil)
	neg := decimal.NewFromInt(-1)

	cases := []struct {
		name string
		id   authz.Identity
		in   dto.CreateAssetRequest
		want error
	}{
		{"sin capacidad", commander, dto.CreateAssetRequest{Name: "X", EquipmentType: "OTHER", BaseID: alpha}, domain.ErrForbidden},
		{"sin nombre", admin, dto.CreateAssetRequest{EquipmentType: "OTHER", BaseID: alpha}, domain.ErrInvalidInput},
		{"tipo desconocido", admin, dto.CreateAssetRequest{Name: "X", EquipmentType: "SPACESHIP", BaseID: alpha}, domain.ErrInvalidInput},
		{"condición desconocida", admin, dto.CreateAssetRequest{Name: "X", EquipmentType: "OTHER", Condition: "SHINY", BaseID: alpha}, domain.ErrInvalidInput},
		{"cantidad negativa", admin, dto.CreateAssetRequest{Name: "X", EquipmentType: "OTHER", BaseID: alpha, Quantity: -1}, domain.ErrInvalidQuantity},
		{"costo negativo", admin, dto.CreateAssetRequest{Name: "X", EquipmentType: "OTHER", BaseID: alpha, Quantity: 1, UnitCost: &neg}, domain.ErrInvalidInput},
		{"base inexistente", admin, dto.CreateAssetRequest{Name: "X", EquipmentType: "OTHER", BaseID: "nope"}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tc.id, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAssetList_AlcancePorBase(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	uc := inventory.NewAssetUseCase(store, nil)
	createAsset(t, store, 1)
	_, err := uc.Create(ctx, admin, dto.CreateAssetRequest{Name: "Tank", EquipmentType: "VEHICLE", BaseID: beta, Quantity: 2})
	require.NoError(t, err)

	all, err := uc.List(ctx, admin, dto.AssetQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// un comandante no puede ampliar su alcance con base_id
	mine, err := uc.List(ctx, commander, dto.AssetQuery{BaseID: beta})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, alpha, mine[0].BaseID)

	_, err = uc.List(ctx, soldier, dto.AssetQuery{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAssetDelete_ConHistorialEsConflicto(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	uc := inventory.NewAssetUseCase(store, nil)

	withHistory := createAsset(t, store, 3)
	assert.ErrorIs(t, uc.Delete(ctx, admin, withHistory.ID), domain.ErrConflict)

	clean, err := uc.Create(ctx, admin, dto.CreateAssetRequest{Name: "Radio", EquipmentType: "EQUIPMENT", BaseID: alpha})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, admin, clean.ID))
	_, err = uc.Get(ctx, admin, clean.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetCondition_Alcance(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	uc := inventory.NewAssetUseCase(store, nil)
	a := createAsset(t, store, 3)

	_, err := uc.SetCondition(ctx, officerB, a.ID, dto.SetConditionRequest{Condition: "POOR"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.SetCondition(ctx, officer, a.ID, dto.SetConditionRequest{Condition: "broken"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.SetCondition(ctx, officer, a.ID, dto.SetConditionRequest{Condition: "needs_repair"})
	require.NoError(t, err)
	assert.Equal(t, "NEEDS_REPAIR", got.Condition)
	assert.Equal(t, 3, got.Quantity, "la condición no toca la cantidad")
}

func TestPurchase_IncrementaExactamente(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	a := createAsset(t, store, 2)
	uc := inventory.NewPurchaseUseCase(store, nil)

	p, err := uc.Create(ctx, admin, dto.CreatePurchaseRequest{AssetID: a.ID, Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, alpha, p.BaseID)

	got, err := store.Repos().Assets.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Quantity)

	_, err = uc.Create(ctx, admin, dto.CreatePurchaseRequest{AssetID: a.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = uc.Create(ctx, admin, dto.CreatePurchaseRequest{AssetID: "nope", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Create(ctx, officer, dto.CreatePurchaseRequest{AssetID: a.ID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := uc.List(ctx, commander, dto.PurchaseQuery{})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = uc.List(ctx, commander, dto.PurchaseQuery{StartDate: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Mantenimiento y daños ────────────────────────────────────────────────────

func TestMaintenance(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	a := createAsset(t, store, 1)
	uc := inventory.NewHistoryUseCase(store)

	_, err := uc.CreateMaintenance(ctx, officerB, dto.CreateMaintenanceRequest{AssetID: a.ID, Description: "aceite", MaintenanceType: "PREVENTIVE"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.CreateMaintenance(ctx, officer, dto.CreateMaintenanceRequest{AssetID: a.ID, MaintenanceType: "PREVENTIVE"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateMaintenance(ctx, officer, dto.CreateMaintenanceRequest{AssetID: a.ID, Description: "aceite", MaintenanceType: "PREVENTIVE"})
	require.NoError(t, err)

	list, err := uc.ListMaintenance(ctx, commander, a.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	list, err = uc.ListMaintenance(ctx, officerB, "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReportDamage_PersonnelSoloSobreAsignacionPropia(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	a := createAsset(t, store, 2)
	uc := inventory.NewHistoryUseCase(store)

	asg := &entity.Assignment{ID: "asg-1", AssetID: a.ID, PersonnelID: "p-1", Quantity: 1, IssuedBy: officer.UserID, IssuedAt: time.Now().UTC()}
	require.NoError(t, store.Repos().Assignments.Create(ctx, asg))
	asgID := asg.ID

	_, err := uc.ReportDamage(ctx, soldier, dto.CreateDamageReportRequest{AssetID: a.ID, Description: "rayón"})
	assert.ErrorIs(t, err, domain.ErrForbidden, "sin asignación no hay titularidad")

	_, err = uc.ReportDamage(ctx, other, dto.CreateDamageReportRequest{AssetID: a.ID, AssignmentID: &asgID, Description: "rayón"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.ReportDamage(ctx, soldier, dto.CreateDamageReportRequest{AssetID: a.ID, AssignmentID: &asgID, Description: "rayón", Severity: "catastrophic"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	d, err := uc.ReportDamage(ctx, soldier, dto.CreateDamageReportRequest{AssetID: a.ID, AssignmentID: &asgID, Description: "rayón"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.SeverityMinor), d.Severity)

	_, err = uc.ReportDamage(ctx, officer, dto.CreateDamageReportRequest{AssetID: a.ID, Description: "abolladura", Severity: "severe"})
	require.NoError(t, err)

	mine, err := uc.ListDamage(ctx, soldier, "")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	base, err := uc.ListDamage(ctx, commander, a.ID)
	require.NoError(t, err)
	assert.Len(t, base, 2)
}
