package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

var _ repository.PersonnelRepository = (*PersonnelRepo)(nil)

// PersonnelRepo implementación de PersonnelRepository sobre PostgreSQL.
type PersonnelRepo struct {
	q Querier
}

// NewPersonnelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPersonnelRepository(q Querier) *PersonnelRepo {
	return &PersonnelRepo{q: q}
}

const personnelColumns = `id, name, rank, user_id, base_id, created_at`

func scanPersonnel(row pgx.Row) (*entity.Personnel, error) {
	var p entity.Personnel
	if err := row.Scan(&p.ID, &p.Name, &p.Rank, &p.UserID, &p.BaseID, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PersonnelRepo) Create(ctx context.Context, p *entity.Personnel) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO personnel (`+personnelColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.Rank, p.UserID, p.BaseID, p.CreatedAt)
	return classifyInsert(err, "insert personnel")
}

func (r *PersonnelRepo) GetByID(ctx context.Context, id string) (*entity.Personnel, error) {
	p, err := scanPersonnel(r.q.QueryRow(ctx, `SELECT `+personnelColumns+` FROM personnel WHERE id = $1`, id))
	if err != nil {
		return nil, classify(err, "get personnel "+id)
	}
	return p, nil
}

func (r *PersonnelRepo) GetByUserID(ctx context.Context, userID string) (*entity.Personnel, error) {
	p, err := scanPersonnel(r.q.QueryRow(ctx, `SELECT `+personnelColumns+` FROM personnel WHERE user_id = $1`, userID))
	if err != nil {
		return nil, classify(err, "get personnel by user "+userID)
	}
	return p, nil
}

func (r *PersonnelRepo) List(ctx context.Context, f repository.PersonnelFilter) ([]*entity.Personnel, error) {
	var w where
	if f.BaseID != "" {
		w.add("base_id = $%d", f.BaseID)
	}
	if f.UserID != "" {
		w.add("user_id = $%d", f.UserID)
	}
	rows, err := r.q.Query(ctx, `SELECT `+personnelColumns+` FROM personnel`+w.sql()+` ORDER BY name`, w.args...)
	if err != nil {
		return nil, classify(err, "list personnel")
	}
	defer rows.Close()
	var list []*entity.Personnel
	for rows.Next() {
		p, err := scanPersonnel(rows)
		if err != nil {
			return nil, classify(err, "scan personnel")
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PersonnelRepo) Update(ctx context.Context, p *entity.Personnel) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE personnel SET name = $2, rank = $3, user_id = $4, base_id = $5
		WHERE id = $1`,
		p.ID, p.Name, p.Rank, p.UserID, p.BaseID)
	if err != nil {
		return classifyInsert(err, "update personnel")
	}
	return affected(tag, "update personnel "+p.ID)
}

func (r *PersonnelRepo) UnlinkUser(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx, `UPDATE personnel SET user_id = NULL WHERE user_id = $1`, userID)
	return classify(err, "unlink personnel user")
}
