package repository

import (
	"context"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

// AssetRequestFilter criterios de listado. BaseID filtra por la base del usuario solicitante.
type AssetRequestFilter struct {
	BaseID      string
	RequestedBy string
	Status      entity.Status
}

// AssetRequestRepository define el puerto de persistencia para AssetRequest.
type AssetRequestRepository interface {
	Create(ctx context.Context, r *entity.AssetRequest) error
	GetByID(ctx context.Context, id string) (*entity.AssetRequest, error)
	GetForUpdate(ctx context.Context, id string) (*entity.AssetRequest, error)
	// UpdateReview persiste status, reviewed_by, reviewed_at, review_note y assignment_id.
	UpdateReview(ctx context.Context, r *entity.AssetRequest) error
	List(ctx context.Context, f AssetRequestFilter) ([]*entity.AssetRequest, error)
}
