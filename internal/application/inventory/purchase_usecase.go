package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/logistica-api/internal/application/audit"
	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/application/ports"
	"github.com/jhoicas/logistica-api/internal/domain"
	"github.com/jhoicas/logistica-api/internal/domain/authz"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
	"github.com/jhoicas/logistica-api/pkg/metrics"
)

// PurchaseUseCase registro y consulta de compras.
type PurchaseUseCase struct {
	tx      ports.TxRunner
	repos   ports.Repos
	metrics *metrics.Metrics
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(store ports.Store, m *metrics.Metrics) *PurchaseUseCase {
	return &PurchaseUseCase{tx: store, repos: store.Repos(), metrics: m}
}

// Create registra una compra e incrementa el activo en exactamente la cantidad comprada.
func (uc *PurchaseUseCase) Create(ctx context.Context, id authz.Identity, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if err := authz.Check(id, authz.HasCapability(authz.CanAddAssets)); err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, in.Quantity)
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: unit_cost negativo", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	p := &entity.Purchase{
		ID:        uuid.New().String(),
		AssetID:   in.AssetID,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		CreatedBy: id.UserID,
		CreatedAt: now,
	}
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		a, err := r.Assets.GetForUpdate(ctx, in.AssetID)
		if err != nil {
			return err
		}
		if err := authz.Check(id, authz.Scoped(authz.CanAddAssets, a.BaseID)); err != nil {
			return err
		}
		p.BaseID = a.BaseID
		if err := r.Purchases.Create(ctx, p); err != nil {
			return err
		}
		if _, err := Increase(ctx, r.Assets, a.ID, in.Quantity); err != nil {
			return err
		}
		return audit.Record(ctx, r.Audit, audit.Entry{
			Action:     entity.ActionPurchase,
			EntityType: entity.EntityPurchase,
			EntityID:   p.ID,
			Details:    fmt.Sprintf("Compra de %d %s", in.Quantity, a.Name),
			UserID:     id.UserID,
			BaseID:     a.BaseID,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.AddStock("in", in.Quantity)
	out := dto.NewPurchaseResponse(p)
	return &out, nil
}

// List lista compras; fuera de ADMIN solo las de la base propia.
func (uc *PurchaseUseCase) List(ctx context.Context, id authz.Identity, q dto.PurchaseQuery) ([]dto.PurchaseResponse, error) {
	if err := authz.Check(id, authz.HasCapability(authz.CanViewInventory)); err != nil {
		return nil, err
	}
	from, to, err := dto.ParseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	f := repository.PurchaseFilter{AssetID: q.AssetID, From: from, To: to}
	if q.EquipmentType != "" {
		f.EquipmentType = entity.EquipmentType(strings.ToUpper(q.EquipmentType))
	}
	if id.IsAdmin() {
		f.BaseID = q.BaseID
	} else {
		f.BaseID = id.BaseID
	}
	list, err := uc.repos.Purchases.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NewPurchaseResponse(p))
	}
	return out, nil
}
