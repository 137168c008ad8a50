package repository

import (
	"context"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

// AssetFilter criterios de listado de activos.
type AssetFilter struct {
	BaseID        string
	EquipmentType entity.EquipmentType
	Search        string // coincidencia parcial sin mayúsculas en el nombre
}

// AssetRepository define el puerto de persistencia para Asset.
// Las escrituras de cantidad las hace solo el libro de inventario.
type AssetRepository interface {
	// Create devuelve domain.ErrConflict si ya existe (base, nombre, tipo).
	Create(ctx context.Context, asset *entity.Asset) error
	GetByID(ctx context.Context, id string) (*entity.Asset, error)
	// GetForUpdate obtiene el activo y bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Asset, error)
	// GetOrCreateAtBase busca por (base, nombre, tipo) y bloquea la fila; si no existe la crea
	// a partir de candidate con cantidad cero. created indica si se insertó.
	GetOrCreateAtBase(ctx context.Context, candidate *entity.Asset) (asset *entity.Asset, created bool, err error)
	List(ctx context.Context, f AssetFilter) ([]*entity.Asset, error)
	// Update persiste nombre, tipo y condición. No toca la cantidad.
	Update(ctx context.Context, asset *entity.Asset) error
	SetQuantity(ctx context.Context, id string, quantity int) error
	SetCondition(ctx context.Context, id string, condition entity.Condition) error
	// Delete devuelve domain.ErrConflict si el activo está referenciado.
	Delete(ctx context.Context, id string) error
}
