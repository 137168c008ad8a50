package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/logistica-api/internal/domain"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

// Primitivas del libro de inventario. Son las únicas que cambian Asset.Quantity.
// Se ejecutan con el repo de la unidad de trabajo en curso (TxRunner.Run) y bloquean la fila
// del activo (GetForUpdate) antes de leer la cantidad.

// Increase suma qty al activo. Usado por compras, entrada de traslados y devoluciones.
func Increase(ctx context.Context, assets repository.AssetRepository, assetID string, qty int) (*entity.Asset, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, qty)
	}
	a, err := assets.GetForUpdate(ctx, assetID)
	if err != nil {
		return nil, err
	}
	a.Quantity += qty
	if err := assets.SetQuantity(ctx, a.ID, a.Quantity); err != nil {
		return nil, err
	}
	a.UpdatedAt = time.Now().UTC()
	return a, nil
}

// Decrease resta qty al activo; falla con ErrInsufficientStock sin modificar nada si no alcanza.
func Decrease(ctx context.Context, assets repository.AssetRepository, assetID string, qty int) (*entity.Asset, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, qty)
	}
	a, err := assets.GetForUpdate(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if a.Quantity < qty {
		return nil, fmt.Errorf("%w: %s tiene %d, se requieren %d", domain.ErrInsufficientStock, a.Name, a.Quantity, qty)
	}
	a.Quantity -= qty
	if err := assets.SetQuantity(ctx, a.ID, a.Quantity); err != nil {
		return nil, err
	}
	a.UpdatedAt = time.Now().UTC()
	return a, nil
}

// EnsureStock bloquea el activo y verifica que tenga al menos qty, sin modificarlo.
func EnsureStock(ctx context.Context, assets repository.AssetRepository, assetID string, qty int) (*entity.Asset, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, qty)
	}
	a, err := assets.GetForUpdate(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if a.Quantity < qty {
		return nil, fmt.Errorf("%w: %s tiene %d, se requieren %d", domain.ErrInsufficientStock, a.Name, a.Quantity, qty)
	}
	return a, nil
}

// FindOrCreateAtBase devuelve la fila (nombre, tipo) de la base o la crea con cantidad cero.
func FindOrCreateAtBase(ctx context.Context, assets repository.AssetRepository, name string, t entity.EquipmentType, c entity.Condition, baseID string) (*entity.Asset, error) {
	name = strings.TrimSpace(name)
	if name == "" || !t.Valid() || baseID == "" {
		return nil, fmt.Errorf("%w: activo destino incompleto", domain.ErrInvalidInput)
	}
	if !c.Valid() {
		c = entity.ConditionGood
	}
	now := time.Now().UTC()
	a, _, err := assets.GetOrCreateAtBase(ctx, &entity.Asset{
		ID:            uuid.New().String(),
		Name:          name,
		EquipmentType: t,
		Quantity:      0,
		Condition:     c,
		BaseID:        baseID,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	return a, err
}

// SetCondition cambia la condición del activo; no afecta la cantidad.
func SetCondition(ctx context.Context, assets repository.AssetRepository, assetID string, c entity.Condition) (*entity.Asset, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: condición %q", domain.ErrInvalidInput, c)
	}
	a, err := assets.GetForUpdate(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if err := assets.SetCondition(ctx, a.ID, c); err != nil {
		return nil, err
	}
	a.Condition = c
	a.UpdatedAt = time.Now().UTC()
	return a, nil
}
