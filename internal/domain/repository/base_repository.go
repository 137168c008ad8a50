package repository

import (
	"context"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

// BaseRepository define el puerto de persistencia para Base.
// Las lecturas de una fila inexistente devuelven domain.ErrNotFound.
type BaseRepository interface {
	Create(ctx context.Context, base *entity.Base) error
	GetByID(ctx context.Context, id string) (*entity.Base, error)
	List(ctx context.Context) ([]*entity.Base, error)
	Update(ctx context.Context, base *entity.Base) error
	// Delete devuelve domain.ErrConflict si la base está referenciada.
	Delete(ctx context.Context, id string) error
}
