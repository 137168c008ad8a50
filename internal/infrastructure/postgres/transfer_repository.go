package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, asset_id, from_base_id, to_base_id, quantity, status, requested_by, approved_by, approved_at, created_at`

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	if err := row.Scan(&t.ID, &t.AssetID, &t.FromBaseID, &t.ToBaseID, &t.Quantity, &t.Status,
		&t.RequestedBy, &t.ApprovedBy, &t.ApprovedAt, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransferRepo) Create(ctx context.Context, t *entity.Transfer) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO transfers (`+transferColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		t.ID, t.AssetID, t.FromBaseID, t.ToBaseID, t.Quantity, t.Status,
		t.RequestedBy, t.ApprovedBy, t.ApprovedAt, t.CreatedAt)
	return classifyInsert(err, "insert transfer")
}

func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.Transfer, error) {
	t, err := scanTransfer(r.q.QueryRow(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1`, id))
	if err != nil {
		return nil, classify(err, "get transfer "+id)
	}
	return t, nil
}

// GetForUpdate bloquea la fila: dos aprobaciones concurrentes se serializan y la segunda ve el estado final.
func (r *TransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error) {
	t, err := scanTransfer(r.q.QueryRow(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, classify(err, "lock transfer "+id)
	}
	return t, nil
}

func (r *TransferRepo) UpdateStatus(ctx context.Context, t *entity.Transfer) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE transfers SET status = $2, approved_by = $3, approved_at = $4
		WHERE id = $1`,
		t.ID, t.Status, t.ApprovedBy, t.ApprovedAt)
	if err != nil {
		return classify(err, "update transfer status")
	}
	return affected(tag, "update transfer "+t.ID)
}

func (r *TransferRepo) List(ctx context.Context, f repository.TransferFilter) ([]*entity.Transfer, error) {
	var w where
	if f.BaseID != "" {
		w.add("(from_base_id = $%[1]d OR to_base_id = $%[1]d)", f.BaseID)
	}
	if f.FromBaseID != "" {
		w.add("from_base_id = $%d", f.FromBaseID)
	}
	if f.ToBaseID != "" {
		w.add("to_base_id = $%d", f.ToBaseID)
	}
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}
	if f.From != nil {
		w.add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("created_at <= $%d", *f.To)
	}
	rows, err := r.q.Query(ctx, `SELECT `+transferColumns+` FROM transfers`+w.sql()+` ORDER BY created_at DESC`, w.args...)
	if err != nil {
		return nil, classify(err, "list transfers")
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, classify(err, "scan transfer")
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
