package repository

import (
	"context"
	"time"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

// TransferFilter criterios de listado de traslados.
// BaseID coincide con la base de origen o de destino; FromBaseID/ToBaseID filtran un solo lado.
type TransferFilter struct {
	BaseID     string
	FromBaseID string
	ToBaseID   string
	Status     entity.Status
	From       *time.Time
	To         *time.Time
}

// TransferRepository define el puerto de persistencia para Transfer.
type TransferRepository interface {
	Create(ctx context.Context, t *entity.Transfer) error
	GetByID(ctx context.Context, id string) (*entity.Transfer, error)
	// GetForUpdate bloquea la fila antes de evaluar el estado.
	GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error)
	// UpdateStatus persiste status, approved_by y approved_at.
	UpdateStatus(ctx context.Context, t *entity.Transfer) error
	List(ctx context.Context, f TransferFilter) ([]*entity.Transfer, error)
}
