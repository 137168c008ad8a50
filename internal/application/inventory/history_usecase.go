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
)

// HistoryUseCase mantenimientos y reportes de daño sobre activos.
type HistoryUseCase struct {
	tx    ports.TxRunner
	repos ports.Repos
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(store ports.Store) *HistoryUseCase {
	return &HistoryUseCase{tx: store, repos: store.Repos()}
}

// CreateMaintenance registra un mantenimiento sobre un activo de la base propia.
func (uc *HistoryUseCase) CreateMaintenance(ctx context.Context, id authz.Identity, in dto.CreateMaintenanceRequest) (*dto.MaintenanceResponse, error) {
	if err := authz.Check(id, authz.HasCapability(authz.CanCreateMaintenance)); err != nil {
		return nil, err
	}
	desc := strings.TrimSpace(in.Description)
	kind := strings.TrimSpace(in.MaintenanceType)
	if in.AssetID == "" || desc == "" || kind == "" {
		return nil, fmt.Errorf("%w: asset_id, description y maintenance_type son obligatorios", domain.ErrInvalidInput)
	}
	m := &entity.MaintenanceRecord{
		ID:              uuid.New().String(),
		AssetID:         in.AssetID,
		Description:     desc,
		MaintenanceType: kind,
		CreatedBy:       id.UserID,
		CreatedAt:       time.Now().UTC(),
	}
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		a, err := r.Assets.GetByID(ctx, in.AssetID)
		if err != nil {
			return err
		}
		if err := authz.Check(id, authz.Scoped(authz.CanCreateMaintenance, a.BaseID)); err != nil {
			return err
		}
		if err := r.Maintenance.Create(ctx, m); err != nil {
			return err
		}
		return audit.Record(ctx, r.Audit, audit.Entry{
			Action:     entity.ActionCreateMaintenance,
			EntityType: entity.EntityMaintenance,
			EntityID:   m.ID,
			Details:    fmt.Sprintf("Mantenimiento de %s: %s", a.Name, kind),
			UserID:     id.UserID,
			BaseID:     a.BaseID,
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewMaintenanceResponse(m)
	return &out, nil
}

// ListMaintenance lista mantenimientos de los activos visibles.
func (uc *HistoryUseCase) ListMaintenance(ctx context.Context, id authz.Identity, assetID string) ([]dto.MaintenanceResponse, error) {
	if err := authz.Check(id, authz.HasCapability(authz.CanViewInventory)); err != nil {
		return nil, err
	}
	f := repository.HistoryFilter{AssetID: assetID}
	if !id.IsAdmin() {
		f.BaseID = id.BaseID
	}
	list, err := uc.repos.Maintenance.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaintenanceResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.NewMaintenanceResponse(m))
	}
	return out, nil
}

// ReportDamage registra un daño. Quien puede cambiar la condición del activo puede reportar;
// PERSONNEL solo sobre una asignación propia del mismo activo.
func (uc *HistoryUseCase) ReportDamage(ctx context.Context, id authz.Identity, in dto.CreateDamageReportRequest) (*dto.DamageReportResponse, error) {
	desc := strings.TrimSpace(in.Description)
	if in.AssetID == "" || desc == "" {
		return nil, fmt.Errorf("%w: asset_id y description son obligatorios", domain.ErrInvalidInput)
	}
	sev := entity.SeverityMinor
	if in.Severity != "" {
		sev = entity.Severity(strings.ToUpper(in.Severity))
		if !sev.Valid() {
			return nil, fmt.Errorf("%w: severity %q", domain.ErrInvalidInput, in.Severity)
		}
	}
	var assignmentID *string
	if in.AssignmentID != nil && *in.AssignmentID != "" {
		v := *in.AssignmentID
		assignmentID = &v
	}
	d := &entity.DamageReport{
		ID:           uuid.New().String(),
		AssetID:      in.AssetID,
		AssignmentID: assignmentID,
		Description:  desc,
		Severity:     sev,
		ReportedBy:   id.UserID,
		ReportedAt:   time.Now().UTC(),
	}
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		a, err := r.Assets.GetByID(ctx, in.AssetID)
		if err != nil {
			return err
		}
		var holder *string
		if assignmentID != nil {
			asg, err := r.Assignments.GetByID(ctx, *assignmentID)
			if err != nil {
				return err
			}
			if asg.AssetID != a.ID {
				return fmt.Errorf("%w: la asignación no corresponde al activo", domain.ErrInvalidInput)
			}
			p, err := r.Personnel.GetByID(ctx, asg.PersonnelID)
			if err != nil {
				return err
			}
			holder = p.UserID
		}
		rule := authz.AnyOf(
			authz.Scoped(authz.CanUpdateCondition, a.BaseID),
			authz.AllOf(authz.HasCapability(authz.CanRequestAssets), authz.Self(holder)),
		)
		if err := authz.Check(id, rule); err != nil {
			return err
		}
		if err := r.Damage.Create(ctx, d); err != nil {
			return err
		}
		return audit.Record(ctx, r.Audit, audit.Entry{
			Action:     entity.ActionDamageReport,
			EntityType: entity.EntityDamageReport,
			EntityID:   d.ID,
			Details:    fmt.Sprintf("Daño reportado en %s: %s", a.Name, sev),
			UserID:     id.UserID,
			BaseID:     a.BaseID,
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewDamageReportResponse(d)
	return &out, nil
}

// ListDamage lista reportes: PERSONNEL ve los propios; el resto, los de activos de su base.
func (uc *HistoryUseCase) ListDamage(ctx context.Context, id authz.Identity, assetID string) ([]dto.DamageReportResponse, error) {
	if err := authz.Check(id, authz.HasCapability(authz.CanViewAssignedAssets)); err != nil {
		return nil, err
	}
	f := repository.HistoryFilter{AssetID: assetID}
	switch {
	case id.IsAdmin():
	case authz.Can(id.Role, authz.CanViewInventory):
		f.BaseID = id.BaseID
	default:
		f.ReportedBy = id.UserID
	}
	list, err := uc.repos.Damage.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DamageReportResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.NewDamageReportResponse(d))
	}
	return out, nil
}
