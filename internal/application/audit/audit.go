// Package audit registra y consulta la bitácora de operaciones.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/application/ports"
	"github.com/jhoicas/logistica-api/internal/domain/authz"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

// Entry datos de una entrada nueva; el ID y el timestamp se asignan al registrar.
type Entry struct {
	Action     string
	EntityType string
	EntityID   string
	Details    string
	UserID     string
	BaseID     string // base afectada; vacío para operaciones globales
}

// Record añade la entrada usando el repo de la unidad de trabajo en curso.
// Un error aquí debe abortar la transacción del llamador.
func Record(ctx context.Context, repo repository.AuditRepository, e Entry) error {
	entry := &entity.AuditLogEntry{
		ID:         uuid.New().String(),
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Details:    e.Details,
		UserID:     e.UserID,
		Timestamp:  time.Now().UTC(),
	}
	if e.BaseID != "" {
		b := e.BaseID
		entry.BaseID = &b
	}
	if err := repo.Append(ctx, entry); err != nil {
		return fmt.Errorf("registrar auditoría %s: %w", e.Action, err)
	}
	return nil
}

// UseCase consulta la bitácora.
type UseCase struct {
	repos ports.Repos
}

// NewUseCase construye el caso de uso de consulta.
func NewUseCase(store ports.Store) *UseCase {
	return &UseCase{repos: store.Repos()}
}

// List devuelve las entradas más recientes. BASE_COMMANDER solo ve las de su base.
func (uc *UseCase) List(ctx context.Context, id authz.Identity, in dto.AuditQuery) ([]dto.AuditLogResponse, error) {
	if err := authz.Check(id, authz.HasCapability(authz.CanViewAuditLogs)); err != nil {
		return nil, err
	}
	f := repository.AuditFilter{
		Action:     in.Action,
		EntityType: in.EntityType,
		UserID:     in.UserID,
		Limit:      in.Limit,
	}
	if !id.IsAdmin() {
		if id.BaseID == "" {
			return []dto.AuditLogResponse{}, nil
		}
		f.BaseID = id.BaseID
	}
	if f.Limit <= 0 || f.Limit > repository.DefaultAuditLimit {
		f.Limit = repository.DefaultAuditLimit
	}
	list, err := uc.repos.Audit.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditLogResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.NewAuditLogResponse(e))
	}
	return out, nil
}
