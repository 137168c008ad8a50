package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/logistica-api/internal/application/audit"
	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/application/ports"
	"github.com/jhoicas/logistica-api/internal/domain"
	"github.com/jhoicas/logistica-api/internal/domain/authz"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
	"github.com/jhoicas/logistica-api/pkg/metrics"
)

// AssetUseCase alta, edición, baja y consulta de activos.
type AssetUseCase struct {
	tx      ports.TxRunner
	repos   ports.Repos
	metrics *metrics.Metrics
}

// NewAssetUseCase construye el caso de uso. m puede ser nil.
func NewAssetUseCase(store ports.Store, m *metrics.Metrics) *AssetUseCase {
	return &AssetUseCase{tx: store, repos: store.Repos(), metrics: m}
}

// List lista activos. Fuera de ADMIN siempre se limita a la base propia.
func (uc *AssetUseCase) List(ctx context.Context, id authz.Identity, q dto.AssetQuery) ([]dto.AssetResponse, error) {
	if err := authz.Check(id, authz.HasCapability(authz.CanViewInventory)); err != nil {
		return nil, err
	}
	f := repository.AssetFilter{Search: strings.TrimSpace(q.Search)}
	if q.EquipmentType != "" {
		t := entity.EquipmentType(strings.ToUpper(q.EquipmentType))
		if !t.Valid() {
			return nil, fmt.Errorf("%w: equipment_type %q", domain.ErrInvalidInput, q.EquipmentType)
		}
		f.EquipmentType = t
	}
	if id.IsAdmin() {
		f.BaseID = q.BaseID
	} else {
		f.BaseID = id.BaseID
	}
	list, err := uc.repos.Assets.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.NewAssetResponses(list), nil
}

// Get devuelve un activo. Un activo de otra base se reporta como inexistente.
func (uc *AssetUseCase) Get(ctx context.Context, id authz.Identity, assetID string) (*dto.AssetResponse, error) {
	if err := authz.Check(id, authz.HasCapability(authz.CanViewInventory)); err != nil {
		return nil, err
	}
	a, err := uc.repos.Assets.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if !id.InScope(a.BaseID) {
		return nil, domain.ErrNotFound
	}
	out := dto.NewAssetResponse(a)
	return &out, nil
}

// Create crea la fila con cantidad cero y, si hay cantidad inicial, la registra como compra.
func (uc *AssetUseCase) Create(ctx context.Context, id authz.Identity, in dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	if err := authz.Check(id, authz.HasCapability(authz.CanAddAssets)); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	t := entity.EquipmentType(strings.ToUpper(in.EquipmentType))
	cond := entity.ConditionGood
	if in.Condition != "" {
		cond = entity.Condition(strings.ToUpper(in.Condition))
	}
	switch {
	case name == "" || in.BaseID == "":
		return nil, fmt.Errorf("%w: name y base_id son obligatorios", domain.ErrInvalidInput)
	case !t.Valid():
		return nil, fmt.Errorf("%w: equipment_type %q", domain.ErrInvalidInput, in.EquipmentType)
	case !cond.Valid():
		return nil, fmt.Errorf("%w: condition %q", domain.ErrInvalidInput, in.Condition)
	case in.Quantity < 0:
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, in.Quantity)
	case in.UnitCost != nil && in.UnitCost.IsNegative():
		return nil, fmt.Errorf("%w: unit_cost negativo", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	asset := &entity.Asset{
		ID:            uuid.New().String(),
		Name:          name,
		EquipmentType: t,
		Condition:     cond,
		BaseID:        in.BaseID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		if _, err := r.Bases.GetByID(ctx, in.BaseID); err != nil {
			return err
		}
		if err := r.Assets.Create(ctx, asset); err != nil {
			return err
		}
		if in.Quantity > 0 {
			if err := recordPurchase(ctx, r, asset, in.Quantity, in.UnitCost, id.UserID, now); err != nil {
				return err
			}
			asset.Quantity = in.Quantity
		}
		return audit.Record(ctx, r.Audit, audit.Entry{
			Action:     entity.ActionCreateAsset,
			EntityType: entity.EntityAsset,
			EntityID:   asset.ID,
			Details:    fmt.Sprintf("Activo %s (%s) creado con %d unidades", asset.Name, asset.EquipmentType, in.Quantity),
			UserID:     id.UserID,
			BaseID:     asset.BaseID,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.AddStock("in", in.Quantity)
	out := dto.NewAssetResponse(asset)
	return &out, nil
}

// Update edita nombre, tipo o condición. La cantidad solo cambia por el libro.
func (uc *AssetUseCase) Update(ctx context.Context, id authz.Identity, assetID string, in dto.UpdateAssetRequest) (*dto.AssetResponse, error) {
	if err := authz.Check(id, authz.HasCapability(authz.CanEditAssets)); err != nil {
		return nil, err
	}
	var updated *entity.Asset
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		a, err := r.Assets.GetForUpdate(ctx, assetID)
		if err != nil {
			return err
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return fmt.Errorf("%w: name vacío", domain.ErrInvalidInput)
			}
			a.Name = name
		}
		if in.EquipmentType != nil {
			t := entity.EquipmentType(strings.ToUpper(*in.EquipmentType))
			if !t.Valid() {
				return fmt.Errorf("%w: equipment_type %q", domain.ErrInvalidInput, *in.EquipmentType)
			}
			a.EquipmentType = t
		}
		if in.Condition != nil {
			c := entity.Condition(strings.ToUpper(*in.Condition))
			if !c.Valid() {
				return fmt.Errorf("%w: condition %q", domain.ErrInvalidInput, *in.Condition)
			}
			a.Condition = c
		}
		a.UpdatedAt = time.Now().UTC()
		if err := r.Assets.Update(ctx, a); err != nil {
			return err
		}
		updated = a
		return audit.Record(ctx, r.Audit, audit.Entry{
			Action:     entity.ActionUpdateAsset,
			EntityType: entity.EntityAsset,
			EntityID:   a.ID,
			Details:    fmt.Sprintf("Activo %s actualizado", a.Name),
			UserID:     id.UserID,
			BaseID:     a.BaseID,
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewAssetResponse(updated)
	return &out, nil
}

// Delete elimina un activo sin historial. Con referencias devuelve ErrConflict.
func (uc *AssetUseCase) Delete(ctx context.Context, id authz.Identity, assetID string) error {
	if err := authz.Check(id, authz.HasCapability(authz.CanDeleteAssets)); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		a, err := r.Assets.GetForUpdate(ctx, assetID)
		if err != nil {
			return err
		}
		if err := r.Assets.Delete(ctx, a.ID); err != nil {
			return err
		}
		return audit.Record(ctx, r.Audit, audit.Entry{
			Action:     entity.ActionDeleteAsset,
			EntityType: entity.EntityAsset,
			EntityID:   a.ID,
			Details:    fmt.Sprintf("Activo %s eliminado (%d unidades)", a.Name, a.Quantity),
			UserID:     id.UserID,
			BaseID:     a.BaseID,
		})
	})
}

// SetCondition cambia la condición de un activo de la base propia.
func (uc *AssetUseCase) SetCondition(ctx context.Context, id authz.Identity, assetID string, in dto.SetConditionRequest) (*dto.AssetResponse, error) {
	if err := authz.Check(id, authz.HasCapability(authz.CanUpdateCondition)); err != nil {
		return nil, err
	}
	cond := entity.Condition(strings.ToUpper(in.Condition))
	var updated *entity.Asset
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		a, err := r.Assets.GetForUpdate(ctx, assetID)
		if err != nil {
			return err
		}
		if err := authz.Check(id, authz.Scoped(authz.CanUpdateCondition, a.BaseID)); err != nil {
			return err
		}
		prev := a.Condition
		a, err = SetCondition(ctx, r.Assets, a.ID, cond)
		if err != nil {
			return err
		}
		updated = a
		return audit.Record(ctx, r.Audit, audit.Entry{
			Action:     entity.ActionUpdateCondition,
			EntityType: entity.EntityAsset,
			EntityID:   a.ID,
			Details:    fmt.Sprintf("Condición de %s: %s -> %s", a.Name, prev, cond),
			UserID:     id.UserID,
			BaseID:     a.BaseID,
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewAssetResponse(updated)
	return &out, nil
}

// recordPurchase crea la compra e incrementa el activo en la misma unidad de trabajo.
func recordPurchase(ctx context.Context, r ports.Repos, a *entity.Asset, qty int, unitCost *decimal.Decimal, userID string, now time.Time) error {
	p := &entity.Purchase{
		ID:        uuid.New().String(),
		AssetID:   a.ID,
		BaseID:    a.BaseID,
		Quantity:  qty,
		UnitCost:  unitCost,
		CreatedBy: userID,
		CreatedAt: now,
	}
	if err := r.Purchases.Create(ctx, p); err != nil {
		return err
	}
	_, err := Increase(ctx, r.Assets, a.ID, qty)
	return err
}
