package repository

import (
	"context"
	"time"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

// PurchaseFilter criterios de listado de compras. From/To acotan created_at (inclusive).
type PurchaseFilter struct {
	BaseID        string
	AssetID       string
	EquipmentType entity.EquipmentType
	From          *time.Time
	To            *time.Time
}

// PurchaseRepository registro append-only de compras.
type PurchaseRepository interface {
	Create(ctx context.Context, p *entity.Purchase) error
	List(ctx context.Context, f PurchaseFilter) ([]*entity.Purchase, error)
}
