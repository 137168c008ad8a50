package postgres

import (
	"context"
	"strconv"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo bitácora append-only sobre PostgreSQL.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

func (r *AuditRepo) Append(ctx context.Context, e *entity.AuditLogEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO audit_logs (id, action, entity_type, entity_id, details, user_id, base_id, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.Action, e.EntityType, e.EntityID, e.Details, e.UserID, e.BaseID, e.Timestamp)
	return classifyInsert(err, "append audit log")
}

func (r *AuditRepo) List(ctx context.Context, f repository.AuditFilter) ([]*entity.AuditLogEntry, error) {
	var w where
	if f.BaseID != "" {
		w.add("base_id = $%d", f.BaseID)
	}
	if f.UserID != "" {
		w.add("user_id = $%d", f.UserID)
	}
	if f.Action != "" {
		w.add("action = $%d", f.Action)
	}
	if f.EntityType != "" {
		w.add("entity_type = $%d", f.EntityType)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = repository.DefaultAuditLimit
	}
	args := append(w.args, limit)
	rows, err := r.q.Query(ctx, `
		SELECT id, action, entity_type, entity_id, details, user_id, base_id, timestamp
		FROM audit_logs`+w.sql()+`
		ORDER BY timestamp DESC
		LIMIT $`+strconv.Itoa(len(args)), args...)
	if err != nil {
		return nil, classify(err, "list audit logs")
	}
	defer rows.Close()
	var list []*entity.AuditLogEntry
	for rows.Next() {
		var e entity.AuditLogEntry
		if err := rows.Scan(&e.ID, &e.Action, &e.EntityType, &e.EntityID, &e.Details,
			&e.UserID, &e.BaseID, &e.Timestamp); err != nil {
			return nil, classify(err, "scan audit log")
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
