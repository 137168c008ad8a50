package postgres

import (
	"context"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

var (
	_ repository.MaintenanceRepository = (*MaintenanceRepo)(nil)
	_ repository.DamageRepository      = (*DamageRepo)(nil)
)

// MaintenanceRepo registro de mantenimientos sobre PostgreSQL.
type MaintenanceRepo struct {
	q Querier
}

// NewMaintenanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaintenanceRepository(q Querier) *MaintenanceRepo {
	return &MaintenanceRepo{q: q}
}

func (r *MaintenanceRepo) Create(ctx context.Context, m *entity.MaintenanceRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO maintenance_records (id, asset_id, description, maintenance_type, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.AssetID, m.Description, m.MaintenanceType, m.CreatedBy, m.CreatedAt)
	return classifyInsert(err, "insert maintenance record")
}

func (r *MaintenanceRepo) List(ctx context.Context, f repository.HistoryFilter) ([]*entity.MaintenanceRecord, error) {
	var w where
	if f.BaseID != "" {
		w.add("a.base_id = $%d", f.BaseID)
	}
	if f.AssetID != "" {
		w.add("m.asset_id = $%d", f.AssetID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT m.id, m.asset_id, m.description, m.maintenance_type, m.created_by, m.created_at
		FROM maintenance_records m JOIN assets a ON a.id = m.asset_id`+w.sql()+`
		ORDER BY m.created_at DESC`, w.args...)
	if err != nil {
		return nil, classify(err, "list maintenance records")
	}
	defer rows.Close()
	var list []*entity.MaintenanceRecord
	for rows.Next() {
		var m entity.MaintenanceRecord
		if err := rows.Scan(&m.ID, &m.AssetID, &m.Description, &m.MaintenanceType, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, classify(err, "scan maintenance record")
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// DamageRepo reportes de daño sobre PostgreSQL.
type DamageRepo struct {
	q Querier
}

// NewDamageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDamageRepository(q Querier) *DamageRepo {
	return &DamageRepo{q: q}
}

func (r *DamageRepo) Create(ctx context.Context, d *entity.DamageReport) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO damage_reports (id, asset_id, assignment_id, description, severity, reported_by, reported_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.AssetID, d.AssignmentID, d.Description, d.Severity, d.ReportedBy, d.ReportedAt)
	return classifyInsert(err, "insert damage report")
}

func (r *DamageRepo) List(ctx context.Context, f repository.HistoryFilter) ([]*entity.DamageReport, error) {
	var w where
	if f.BaseID != "" {
		w.add("a.base_id = $%d", f.BaseID)
	}
	if f.AssetID != "" {
		w.add("d.asset_id = $%d", f.AssetID)
	}
	if f.ReportedBy != "" {
		w.add("d.reported_by = $%d", f.ReportedBy)
	}
	rows, err := r.q.Query(ctx, `
		SELECT d.id, d.asset_id, d.assignment_id, d.description, d.severity, d.reported_by, d.reported_at
		FROM damage_reports d JOIN assets a ON a.id = d.asset_id`+w.sql()+`
		ORDER BY d.reported_at DESC`, w.args...)
	if err != nil {
		return nil, classify(err, "list damage reports")
	}
	defer rows.Close()
	var list []*entity.DamageReport
	for rows.Next() {
		var d entity.DamageReport
		if err := rows.Scan(&d.ID, &d.AssetID, &d.AssignmentID, &d.Description, &d.Severity, &d.ReportedBy, &d.ReportedAt); err != nil {
			return nil, classify(err, "scan damage report")
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
