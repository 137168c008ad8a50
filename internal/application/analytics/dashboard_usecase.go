// Package analytics contiene los casos de uso de lectura agregada: el tablero de inventario
// y el reporte PDF de existencias.
package analytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/application/ports"
	"github.com/jhoicas/logistica-api/internal/domain"
	"github.com/jhoicas/logistica-api/internal/domain/authz"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

// DashboardUseCase arma el tablero según el rol del usuario.
//
// Fuente de datos: los repositorios de lectura; no hay tablas agregadas.
type DashboardUseCase struct {
	repos ports.Repos
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(store ports.Store) *DashboardUseCase {
	return &DashboardUseCase{repos: store.Repos()}
}

// Dashboard resultado del tablero: exactamente uno de los dos campos viene informado.
type Dashboard struct {
	Summary  *dto.DashboardResponse
	Personal *dto.PersonalDashboardResponse
}

// Get devuelve el resumen de inventario para roles con canViewInventory y el resumen
// personal para PERSONNEL.
func (uc *DashboardUseCase) Get(ctx context.Context, id authz.Identity, q dto.DashboardQuery) (*Dashboard, error) {
	if err := authz.Check(id, authz.HasCapability(authz.CanViewAssignedAssets)); err != nil {
		return nil, err
	}
	if !authz.Can(id.Role, authz.CanViewInventory) {
		p, err := uc.personal(ctx, id)
		if err != nil {
			return nil, err
		}
		return &Dashboard{Personal: p}, nil
	}
	s, err := uc.summary(ctx, id, q)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Summary: s}, nil
}

// summary calcula los saldos en paralelo:
//
//	closing = Σ cantidades actuales
//	net     = compras + entradas - salidas (traslados aprobados)
//	opening = closing - net
func (uc *DashboardUseCase) summary(ctx context.Context, id authz.Identity, q dto.DashboardQuery) (*dto.DashboardResponse, error) {
	from, to, err := dto.ParseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	var eqType entity.EquipmentType
	if q.EquipmentType != "" {
		eqType = entity.EquipmentType(strings.ToUpper(q.EquipmentType))
		if !eqType.Valid() {
			return nil, fmt.Errorf("%w: equipment_type %q", domain.ErrInvalidInput, q.EquipmentType)
		}
	}
	baseID := id.BaseID
	if id.IsAdmin() {
		baseID = q.BaseID
	}

	var (
		res    = &dto.DashboardResponse{PurchaseSpend: decimal.Zero}
		assets []*entity.Asset
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := uc.repos.Assets.List(gctx, repository.AssetFilter{BaseID: baseID, EquipmentType: eqType})
		if err != nil {
			return fmt.Errorf("dashboard activos: %w", err)
		}
		assets = list
		return nil
	})
	g.Go(func() error {
		list, err := uc.repos.Assignments.List(gctx, repository.AssignmentFilter{BaseID: baseID, OpenOnly: true})
		if err != nil {
			return fmt.Errorf("dashboard asignaciones: %w", err)
		}
		for _, a := range list {
			res.Assigned += a.Quantity
		}
		return nil
	})
	g.Go(func() error {
		list, err := uc.repos.Purchases.List(gctx, repository.PurchaseFilter{
			BaseID: baseID, EquipmentType: eqType, From: from, To: to,
		})
		if err != nil {
			return fmt.Errorf("dashboard compras: %w", err)
		}
		for _, p := range list {
			res.Purchases += p.Quantity
			res.PurchaseSpend = res.PurchaseSpend.Add(p.TotalCost())
		}
		return nil
	})
	g.Go(func() error {
		list, err := uc.repos.Transfers.List(gctx, repository.TransferFilter{
			ToBaseID: baseID, Status: entity.StatusApproved, From: from, To: to,
		})
		if err != nil {
			return fmt.Errorf("dashboard entradas: %w", err)
		}
		res.TransfersIn = sumTransfers(list)
		return nil
	})
	g.Go(func() error {
		list, err := uc.repos.Transfers.List(gctx, repository.TransferFilter{
			FromBaseID: baseID, Status: entity.StatusApproved, From: from, To: to,
		})
		if err != nil {
			return fmt.Errorf("dashboard salidas: %w", err)
		}
		res.TransfersOut = sumTransfers(list)
		return nil
	})
	if authz.Can(id.Role, authz.CanApproveTransfers) {
		g.Go(func() error {
			list, err := uc.repos.Transfers.List(gctx, repository.TransferFilter{
				ToBaseID: baseID, Status: entity.StatusPending,
			})
			if err != nil {
				return fmt.Errorf("dashboard traslados pendientes: %w", err)
			}
			res.PendingTransfers = len(list)
			return nil
		})
	}
	if authz.Can(id.Role, authz.CanIssueAssets) {
		g.Go(func() error {
			list, err := uc.repos.Requests.List(gctx, repository.AssetRequestFilter{
				BaseID: baseID, Status: entity.StatusPending,
			})
			if err != nil {
				return fmt.Errorf("dashboard solicitudes pendientes: %w", err)
			}
			res.PendingRequests = len(list)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, a := range assets {
		res.ClosingBalance += a.Quantity
	}
	res.NetMovement = res.Purchases + res.TransfersIn - res.TransfersOut
	res.OpeningBalance = res.ClosingBalance - res.NetMovement
	res.Assets = dto.NewAssetResponses(assets)
	return res, nil
}

// personal resume las asignaciones abiertas y solicitudes pendientes del usuario.
func (uc *DashboardUseCase) personal(ctx context.Context, id authz.Identity) (*dto.PersonalDashboardResponse, error) {
	res := &dto.PersonalDashboardResponse{Assets: []dto.AssignedAssetDTO{}}

	pending, err := uc.repos.Requests.List(ctx, repository.AssetRequestFilter{
		RequestedBy: id.UserID, Status: entity.StatusPending,
	})
	if err != nil {
		return nil, err
	}
	res.MyRequests = len(pending)

	p, err := uc.repos.Personnel.GetByUserID(ctx, id.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			return res, nil
		}
		return nil, err
	}
	open, err := uc.repos.Assignments.List(ctx, repository.AssignmentFilter{PersonnelID: p.ID, OpenOnly: true})
	if err != nil {
		return nil, err
	}
	res.Assigned = len(open)
	for _, a := range open {
		line := dto.AssignedAssetDTO{AssignmentID: a.ID, AssetID: a.AssetID, Quantity: a.Quantity}
		if asset, err := uc.repos.Assets.GetByID(ctx, a.AssetID); err == nil {
			line.Name = asset.Name
			line.EquipmentType = string(asset.EquipmentType)
		} else if !domain.IsNotFound(err) {
			return nil, err
		}
		res.Assets = append(res.Assets, line)
	}
	return res, nil
}

func sumTransfers(list []*entity.Transfer) int {
	total := 0
	for _, t := range list {
		total += t.Quantity
	}
	return total
}
