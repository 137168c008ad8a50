package repository

import (
	"context"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

// AuditFilter criterios de listado de la bitácora. Limit <= 0 usa el valor por defecto del adaptador.
type AuditFilter struct {
	BaseID     string
	UserID     string
	Action     string
	EntityType string
	Limit      int
}

// DefaultAuditLimit cantidad de entradas devueltas cuando no se indica límite.
const DefaultAuditLimit = 100

// AuditRepository bitácora append-only; List devuelve las más recientes primero.
type AuditRepository interface {
	Append(ctx context.Context, e *entity.AuditLogEntry) error
	List(ctx context.Context, f AuditFilter) ([]*entity.AuditLogEntry, error)
}
