package repository

import (
	"context"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

// HistoryFilter criterios comunes para mantenimiento y reportes de daño.
// BaseID filtra por la base del activo.
type HistoryFilter struct {
	BaseID     string
	AssetID    string
	ReportedBy string // solo aplica a reportes de daño
}

// MaintenanceRepository registro de mantenimientos.
type MaintenanceRepository interface {
	Create(ctx context.Context, m *entity.MaintenanceRecord) error
	List(ctx context.Context, f HistoryFilter) ([]*entity.MaintenanceRecord, error)
}

// DamageRepository registro de reportes de daño.
type DamageRepository interface {
	Create(ctx context.Context, d *entity.DamageReport) error
	List(ctx context.Context, f HistoryFilter) ([]*entity.DamageReport, error)
}
