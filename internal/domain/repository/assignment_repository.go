package repository

import (
	"context"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

// AssignmentFilter criterios de listado. BaseID filtra por la base del personal.
type AssignmentFilter struct {
	BaseID      string
	PersonnelID string
	AssetID     string
	OpenOnly    bool
}

// AssignmentRepository define el puerto de persistencia para Assignment.
type AssignmentRepository interface {
	Create(ctx context.Context, a *entity.Assignment) error
	GetByID(ctx context.Context, id string) (*entity.Assignment, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Assignment, error)
	// MarkReturned persiste returned_at y returned_to.
	MarkReturned(ctx context.Context, a *entity.Assignment) error
	List(ctx context.Context, f AssignmentFilter) ([]*entity.Assignment, error)
}
