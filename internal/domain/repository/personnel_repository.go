package repository

import (
	"context"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

// PersonnelFilter criterios de listado; campos vacíos no filtran.
type PersonnelFilter struct {
	BaseID string
	UserID string
}

// PersonnelRepository define el puerto de persistencia para Personnel.
type PersonnelRepository interface {
	// Create devuelve domain.ErrConflict si el usuario ya está vinculado a otro registro.
	Create(ctx context.Context, p *entity.Personnel) error
	GetByID(ctx context.Context, id string) (*entity.Personnel, error)
	// GetByUserID devuelve el registro vinculado al usuario o domain.ErrNotFound.
	GetByUserID(ctx context.Context, userID string) (*entity.Personnel, error)
	List(ctx context.Context, f PersonnelFilter) ([]*entity.Personnel, error)
	Update(ctx context.Context, p *entity.Personnel) error
	// UnlinkUser pone user_id en NULL en el registro vinculado, si existe.
	UnlinkUser(ctx context.Context, userID string) error
}
