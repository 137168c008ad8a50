package postgres

import (
	"context"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

var _ repository.BaseRepository = (*BaseRepo)(nil)

// BaseRepo implementación de BaseRepository sobre PostgreSQL.
type BaseRepo struct {
	q Querier
}

// NewBaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBaseRepository(q Querier) *BaseRepo {
	return &BaseRepo{q: q}
}

func (r *BaseRepo) Create(ctx context.Context, b *entity.Base) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO bases (id, name, location, created_at) VALUES ($1, $2, $3, $4)`,
		b.ID, b.Name, b.Location, b.CreatedAt)
	return classifyInsert(err, "insert base")
}

func (r *BaseRepo) GetByID(ctx context.Context, id string) (*entity.Base, error) {
	var b entity.Base
	err := r.q.QueryRow(ctx,
		`SELECT id, name, location, created_at FROM bases WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name, &b.Location, &b.CreatedAt)
	if err != nil {
		return nil, classify(err, "get base "+id)
	}
	return &b, nil
}

func (r *BaseRepo) List(ctx context.Context) ([]*entity.Base, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, location, created_at FROM bases ORDER BY name`)
	if err != nil {
		return nil, classify(err, "list bases")
	}
	defer rows.Close()
	var list []*entity.Base
	for rows.Next() {
		var b entity.Base
		if err := rows.Scan(&b.ID, &b.Name, &b.Location, &b.CreatedAt); err != nil {
			return nil, classify(err, "scan base")
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

func (r *BaseRepo) Update(ctx context.Context, b *entity.Base) error {
	tag, err := r.q.Exec(ctx, `UPDATE bases SET name = $2, location = $3 WHERE id = $1`, b.ID, b.Name, b.Location)
	if err != nil {
		return classify(err, "update base")
	}
	return affected(tag, "update base "+b.ID)
}

func (r *BaseRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM bases WHERE id = $1`, id)
	if err != nil {
		return classify(err, "delete base")
	}
	return affected(tag, "delete base "+id)
}
