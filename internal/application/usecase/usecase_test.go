package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/application/inventory"
	"github.com/jhoicas/logistica-api/internal/application/usecase"
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
	soldier   = authz.Identity{UserID: "u-p", Role: entity.RolePersonnel, BaseID: alpha}
)

func strPtr(s string) *string { return &s }

func newStore(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	r := store.Repos()
	now := time.Now().UTC()
	require.NoError(t, r.Bases.Create(ctx, &entity.Base{ID: alpha, Name: "Alpha", CreatedAt: now}))
	require.NoError(t, r.Bases.Create(ctx, &entity.Base{ID: beta, Name: "Beta", CreatedAt: now}))
	for _, id := range []authz.Identity{admin, commander, officer, soldier} {
		u := &entity.User{ID: id.UserID, Username: id.UserID, PasswordHash: "x", FullName: id.UserID, Role: id.Role, CreatedAt: now}
		if id.BaseID != "" {
			u.BaseID = strPtr(id.BaseID)
		}
		require.NoError(t, r.Users.Create(ctx, u))
	}
	require.NoError(t, r.Personnel.Create(ctx, &entity.Personnel{
		ID: "p-1", Name: "Soldado Pérez", Rank: "Soldado", UserID: strPtr(soldier.UserID), BaseID: alpha, CreatedAt: now,
	}))
	require.NoError(t, r.Personnel.Create(ctx, &entity.Personnel{
		ID: "p-2", Name: "Cabo Ruiz", Rank: "Cabo", BaseID: beta, CreatedAt: now,
	}))
	return store
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

func TestUserCreate_HasheaYNormaliza(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	uc := usecase.NewUserUseCase(store)

	u, err := uc.Create(ctx, admin, dto.CreateUserRequest{
		Username: " officer2 ", Password: "secreto123", FullName: "Oficial Dos",
		Role: "logistics_officer", BaseID: strPtr(beta),
	})
	require.NoError(t, err)
	assert.Equal(t, "officer2", u.Username)
	assert.Equal(t, string(entity.RoleLogisticsOfficer), u.Role)
	require.NotNil(t, u.BaseID)
	assert.Equal(t, beta, *u.BaseID)

	stored, err := store.Repos().Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto123")))

	// ADMIN con base vacía queda sin base.
	a, err := uc.Create(ctx, admin, dto.CreateUserRequest{
		Username: "admin2", Password: "secreto123", FullName: "Admin Dos", Role: "ADMIN", BaseID: strPtr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, a.BaseID)

	_, err = uc.Create(ctx, admin, dto.CreateUserRequest{
		Username: "OFFICER2", Password: "secreto123", FullName: "Otro", Role: "PERSONNEL", BaseID: strPtr(alpha),
	})
	assert.ErrorIs(t, err, domain.ErrConflict, "username se compara sin mayúsculas")
}

func TestUserCreate_Rechazos(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewUserUseCase(newStore(t))

	tests := []struct {
		name string
		who  authz.Identity
		in   dto.CreateUserRequest
		want error
	}{
		{"sin permiso", commander, dto.CreateUserRequest{Username: "x1", Password: "secreto123", FullName: "X", Role: "PERSONNEL", BaseID: strPtr(alpha)}, domain.ErrForbidden},
		{"rol desconocido", admin, dto.CreateUserRequest{Username: "x2", Password: "secreto123", FullName: "X", Role: "GENERAL"}, domain.ErrInvalidInput},
		{"rol sin base", admin, dto.CreateUserRequest{Username: "x3", Password: "secreto123", FullName: "X", Role: "BASE_COMMANDER"}, domain.ErrInvalidInput},
		{"password corta", admin, dto.CreateUserRequest{Username: "x4", Password: "123", FullName: "X", Role: "ADMIN"}, domain.ErrInvalidInput},
		{"sin nombre", admin, dto.CreateUserRequest{Username: "x5", Password: "secreto123", Role: "ADMIN"}, domain.ErrInvalidInput},
		{"base inexistente", admin, dto.CreateUserRequest{Username: "x6", Password: "secreto123", FullName: "X", Role: "PERSONNEL", BaseID: strPtr("base-zeta")}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tt.who, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUserUpdate_RolYBaseJuntos(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewUserUseCase(newStore(t))

	// Pasar a ADMIN conserva la base actual; pasar a un rol con base exige una.
	u, err := uc.Update(ctx, admin, officer.UserID, dto.UpdateUserRequest{Role: strPtr("ADMIN")})
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", u.Role)

	u, err = uc.Update(ctx, admin, officer.UserID, dto.UpdateUserRequest{BaseID: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, u.BaseID)

	_, err = uc.Update(ctx, admin, officer.UserID, dto.UpdateUserRequest{Role: strPtr("PERSONNEL")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	u, err = uc.Update(ctx, admin, officer.UserID, dto.UpdateUserRequest{Role: strPtr("PERSONNEL"), BaseID: strPtr(beta)})
	require.NoError(t, err)
	require.NotNil(t, u.BaseID)
	assert.Equal(t, beta, *u.BaseID)

	_, err = uc.Update(ctx, admin, "u-nadie", dto.UpdateUserRequest{FullName: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserDelete(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	uc := usecase.NewUserUseCase(store)

	assert.ErrorIs(t, uc.Delete(ctx, admin, admin.UserID), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.Delete(ctx, commander, soldier.UserID), domain.ErrForbidden)

	// El personal vinculado se conserva sin usuario.
	require.NoError(t, uc.Delete(ctx, admin, soldier.UserID))
	p, err := store.Repos().Personnel.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Nil(t, p.UserID)
	_, err = store.Repos().Users.GetByID(ctx, soldier.UserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	audit, err := store.Repos().Audit.List(ctx, repository.AuditFilter{Action: entity.ActionDeleteUser})
	require.NoError(t, err)
	assert.Len(t, audit, 1)
}

func TestUserDelete_ConHistorial(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	_, err := inventory.NewAssetUseCase(store, nil).Create(ctx, admin, dto.CreateAssetRequest{
		Name: "Radio", EquipmentType: "EQUIPMENT", BaseID: alpha, Quantity: 2,
	})
	require.NoError(t, err)

	other := authz.Identity{UserID: "u-admin-2", Role: entity.RoleAdmin}
	require.NoError(t, store.Repos().Users.Create(ctx, &entity.User{
		ID: other.UserID, Username: "admin2", PasswordHash: "x", Role: entity.RoleAdmin, CreatedAt: time.Now().UTC(),
	}))
	err = usecase.NewUserUseCase(store).Delete(ctx, other, admin.UserID)
	assert.ErrorIs(t, err, domain.ErrConflict, "la compra inicial quedó a nombre del admin")
}

// ── Bases ────────────────────────────────────────────────────────────────────

func TestBase_CRUD(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	uc := usecase.NewBaseUseCase(store)

	b, err := uc.Create(ctx, admin, dto.CreateBaseRequest{Name: " Gamma ", Location: "Norte"})
	require.NoError(t, err)
	assert.Equal(t, "Gamma", b.Name)

	_, err = uc.Create(ctx, admin, dto.CreateBaseRequest{Name: "Gamma"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = uc.Create(ctx, admin, dto.CreateBaseRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, commander, dto.CreateBaseRequest{Name: "Delta"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	upd, err := uc.Update(ctx, admin, b.ID, dto.UpdateBaseRequest{Location: strPtr("Sur")})
	require.NoError(t, err)
	assert.Equal(t, "Gamma", upd.Name)
	assert.Equal(t, "Sur", upd.Location)
	_, err = uc.Update(ctx, admin, b.ID, dto.UpdateBaseRequest{Name: strPtr("Alpha")})
	assert.ErrorIs(t, err, domain.ErrConflict)

	all, err := uc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	own, err := uc.List(ctx, commander)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, alpha, own[0].ID)

	require.NoError(t, uc.Delete(ctx, admin, b.ID))
	assert.ErrorIs(t, uc.Delete(ctx, admin, b.ID), domain.ErrNotFound)
}

func TestBaseDelete_Referenciada(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	err := usecase.NewBaseUseCase(store).Delete(ctx, admin, alpha)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = store.Repos().Bases.GetByID(ctx, alpha)
	assert.NoError(t, err)
}

// ── Personal ─────────────────────────────────────────────────────────────────

func TestPersonnelCreate(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	uc := usecase.NewPersonnelUseCase(store)

	p, err := uc.Create(ctx, officer, dto.CreatePersonnelRequest{Name: "Sargento Gil", Rank: "Sargento"})
	require.NoError(t, err)
	assert.Equal(t, alpha, p.BaseID, "sin base_id usa la del creador")

	_, err = uc.Create(ctx, officer, dto.CreatePersonnelRequest{Name: "Otro", BaseID: beta})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Create(ctx, soldier, dto.CreatePersonnelRequest{Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Create(ctx, admin, dto.CreatePersonnelRequest{Name: "Sin base"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, admin, dto.CreatePersonnelRequest{Name: "X", BaseID: beta, UserID: strPtr("u-nadie")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPersonnelUpdate_SoloMando(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewPersonnelUseCase(newStore(t))

	_, err := uc.Update(ctx, officer, "p-1", dto.UpdatePersonnelRequest{Rank: strPtr("Cabo")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	p, err := uc.Update(ctx, commander, "p-1", dto.UpdatePersonnelRequest{Rank: strPtr("Cabo"), UserID: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "Cabo", p.Rank)
	assert.Nil(t, p.UserID)

	_, err = uc.Update(ctx, commander, "p-2", dto.UpdatePersonnelRequest{Rank: strPtr("Sargento")})
	assert.ErrorIs(t, err, domain.ErrNotFound, "otra base no es visible")

	_, err = uc.Update(ctx, commander, "p-1", dto.UpdatePersonnelRequest{BaseID: strPtr(beta)})
	assert.ErrorIs(t, err, domain.ErrForbidden, "mover a otra base exige alcance sobre ella")

	moved, err := uc.Update(ctx, admin, "p-1", dto.UpdatePersonnelRequest{BaseID: strPtr(beta)})
	require.NoError(t, err)
	assert.Equal(t, beta, moved.BaseID)
}

func TestPersonnelVinculo_MismaBaseYRol(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	r := store.Repos()
	require.NoError(t, r.Users.Create(ctx, &entity.User{
		ID: "u-beta", Username: "u-beta", PasswordHash: "x", Role: entity.RolePersonnel, BaseID: strPtr(beta), CreatedAt: time.Now().UTC(),
	}))
	uc := usecase.NewPersonnelUseCase(store)

	// Alta: usuario de otra base o sin rol PERSONNEL.
	_, err := uc.Create(ctx, officer, dto.CreatePersonnelRequest{Name: "Cruzado", UserID: strPtr("u-beta")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, officer, dto.CreatePersonnelRequest{Name: "Oficial", UserID: strPtr(officer.UserID)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ok, err := uc.Create(ctx, admin, dto.CreatePersonnelRequest{Name: "Cabo Beta", BaseID: beta, UserID: strPtr("u-beta")})
	require.NoError(t, err)
	require.NotNil(t, ok.UserID)

	// Edición: vincular a p-2 (beta) el soldado de alpha.
	_, err = uc.Update(ctx, admin, "p-2", dto.UpdatePersonnelRequest{UserID: strPtr(soldier.UserID)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Edición: mover de base un registro que sigue vinculado.
	_, err = uc.Update(ctx, admin, "p-1", dto.UpdatePersonnelRequest{BaseID: strPtr(beta)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p1, err := r.Personnel.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, alpha, p1.BaseID)
	require.NotNil(t, p1.UserID)
	assert.Equal(t, soldier.UserID, *p1.UserID)
	p2, err := r.Personnel.GetByID(ctx, "p-2")
	require.NoError(t, err)
	assert.Nil(t, p2.UserID)
}

func TestUserUpdate_NoRompeVinculoDePersonal(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewUserUseCase(newStore(t))

	_, err := uc.Update(ctx, admin, soldier.UserID, dto.UpdateUserRequest{BaseID: strPtr(beta)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Update(ctx, admin, soldier.UserID, dto.UpdateUserRequest{Role: strPtr("LOGISTICS_OFFICER")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	u, err := uc.Update(ctx, admin, soldier.UserID, dto.UpdateUserRequest{FullName: strPtr("Soldado Pérez")})
	require.NoError(t, err)
	require.NotNil(t, u.BaseID)
	assert.Equal(t, alpha, *u.BaseID)
}

func TestPersonnelList_Alcance(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewPersonnelUseCase(newStore(t))

	all, err := uc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	base, err := uc.List(ctx, officer)
	require.NoError(t, err)
	require.Len(t, base, 1)
	assert.Equal(t, "p-1", base[0].ID)

	self, err := uc.List(ctx, soldier)
	require.NoError(t, err)
	require.Len(t, self, 1)
	assert.Equal(t, "p-1", self[0].ID)

	unlinked := authz.Identity{UserID: "u-sin-ficha", Role: entity.RolePersonnel, BaseID: alpha}
	none, err := uc.List(ctx, unlinked)
	require.NoError(t, err)
	assert.Empty(t, none)
}
