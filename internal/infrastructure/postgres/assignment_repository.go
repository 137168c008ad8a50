package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo implementación de AssignmentRepository sobre PostgreSQL.
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

const assignmentColumns = `id, asset_id, personnel_id, quantity, issued_by, issued_at, returned_at, returned_to`

func scanAssignment(row pgx.Row) (*entity.Assignment, error) {
	var a entity.Assignment
	if err := row.Scan(&a.ID, &a.AssetID, &a.PersonnelID, &a.Quantity, &a.IssuedBy,
		&a.IssuedAt, &a.ReturnedAt, &a.ReturnedTo); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepo) Create(ctx context.Context, a *entity.Assignment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO assignments (`+assignmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.AssetID, a.PersonnelID, a.Quantity, a.IssuedBy, a.IssuedAt, a.ReturnedAt, a.ReturnedTo)
	return classifyInsert(err, "insert assignment")
}

func (r *AssignmentRepo) GetByID(ctx context.Context, id string) (*entity.Assignment, error) {
	a, err := scanAssignment(r.q.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE id = $1`, id))
	if err != nil {
		return nil, classify(err, "get assignment "+id)
	}
	return a, nil
}

func (r *AssignmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Assignment, error) {
	a, err := scanAssignment(r.q.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, classify(err, "lock assignment "+id)
	}
	return a, nil
}

func (r *AssignmentRepo) MarkReturned(ctx context.Context, a *entity.Assignment) error {
	tag, err := r.q.Exec(ctx, `UPDATE assignments SET returned_at = $2, returned_to = $3 WHERE id = $1`,
		a.ID, a.ReturnedAt, a.ReturnedTo)
	if err != nil {
		return classify(err, "mark assignment returned")
	}
	return affected(tag, "mark assignment returned "+a.ID)
}

func (r *AssignmentRepo) List(ctx context.Context, f repository.AssignmentFilter) ([]*entity.Assignment, error) {
	var w where
	if f.BaseID != "" {
		w.add("p.base_id = $%d", f.BaseID)
	}
	if f.PersonnelID != "" {
		w.add("s.personnel_id = $%d", f.PersonnelID)
	}
	if f.AssetID != "" {
		w.add("s.asset_id = $%d", f.AssetID)
	}
	if f.OpenOnly {
		w.clauses = append(w.clauses, "s.returned_at IS NULL")
	}
	rows, err := r.q.Query(ctx, `
		SELECT s.id, s.asset_id, s.personnel_id, s.quantity, s.issued_by, s.issued_at, s.returned_at, s.returned_to
		FROM assignments s JOIN personnel p ON p.id = s.personnel_id`+w.sql()+`
		ORDER BY s.issued_at DESC`, w.args...)
	if err != nil {
		return nil, classify(err, "list assignments")
	}
	defer rows.Close()
	var list []*entity.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, classify(err, "scan assignment")
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
