package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

var _ repository.AssetRequestRepository = (*AssetRequestRepo)(nil)

// AssetRequestRepo implementación de AssetRequestRepository sobre PostgreSQL.
type AssetRequestRepo struct {
	q Querier
}

// NewAssetRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssetRequestRepository(q Querier) *AssetRequestRepo {
	return &AssetRequestRepo{q: q}
}

const requestColumns = `id, asset_id, requested_by, quantity, reason, status, reviewed_by, reviewed_at, review_note, assignment_id, created_at`

func scanRequest(row pgx.Row) (*entity.AssetRequest, error) {
	var q entity.AssetRequest
	if err := row.Scan(&q.ID, &q.AssetID, &q.RequestedBy, &q.Quantity, &q.Reason, &q.Status,
		&q.ReviewedBy, &q.ReviewedAt, &q.ReviewNote, &q.AssignmentID, &q.CreatedAt); err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *AssetRequestRepo) Create(ctx context.Context, q *entity.AssetRequest) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO asset_requests (`+requestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		q.ID, q.AssetID, q.RequestedBy, q.Quantity, q.Reason, q.Status,
		q.ReviewedBy, q.ReviewedAt, q.ReviewNote, q.AssignmentID, q.CreatedAt)
	return classifyInsert(err, "insert asset request")
}

func (r *AssetRequestRepo) GetByID(ctx context.Context, id string) (*entity.AssetRequest, error) {
	q, err := scanRequest(r.q.QueryRow(ctx, `SELECT `+requestColumns+` FROM asset_requests WHERE id = $1`, id))
	if err != nil {
		return nil, classify(err, "get asset request "+id)
	}
	return q, nil
}

func (r *AssetRequestRepo) GetForUpdate(ctx context.Context, id string) (*entity.AssetRequest, error) {
	q, err := scanRequest(r.q.QueryRow(ctx, `SELECT `+requestColumns+` FROM asset_requests WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, classify(err, "lock asset request "+id)
	}
	return q, nil
}

func (r *AssetRequestRepo) UpdateReview(ctx context.Context, q *entity.AssetRequest) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE asset_requests
		SET status = $2, reviewed_by = $3, reviewed_at = $4, review_note = $5, assignment_id = $6
		WHERE id = $1`,
		q.ID, q.Status, q.ReviewedBy, q.ReviewedAt, q.ReviewNote, q.AssignmentID)
	if err != nil {
		return classify(err, "update asset request review")
	}
	return affected(tag, "update asset request "+q.ID)
}

func (r *AssetRequestRepo) List(ctx context.Context, f repository.AssetRequestFilter) ([]*entity.AssetRequest, error) {
	var w where
	if f.BaseID != "" {
		w.add("u.base_id = $%d", f.BaseID)
	}
	if f.RequestedBy != "" {
		w.add("r.requested_by = $%d", f.RequestedBy)
	}
	if f.Status != "" {
		w.add("r.status = $%d", f.Status)
	}
	rows, err := r.q.Query(ctx, `
		SELECT r.id, r.asset_id, r.requested_by, r.quantity, r.reason, r.status,
		       r.reviewed_by, r.reviewed_at, r.review_note, r.assignment_id, r.created_at
		FROM asset_requests r JOIN users u ON u.id = r.requested_by`+w.sql()+`
		ORDER BY r.created_at DESC`, w.args...)
	if err != nil {
		return nil, classify(err, "list asset requests")
	}
	defer rows.Close()
	var list []*entity.AssetRequest
	for rows.Next() {
		q, err := scanRequest(rows)
		if err != nil {
			return nil, classify(err, "scan asset request")
		}
		list = append(list, q)
	}
	return list, rows.Err()
}
