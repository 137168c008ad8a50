package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase compra registrada (append-only). Al crearse incrementa el activo en Quantity.
type Purchase struct {
	ID        string
	AssetID   string
	BaseID    string
	Quantity  int
	UnitCost  *decimal.Decimal // opcional
	CreatedBy string
	CreatedAt time.Time
}

// TotalCost devuelve Quantity * UnitCost, o cero si no hay costo.
func (p *Purchase) TotalCost() decimal.Decimal {
	if p.UnitCost == nil {
		return decimal.Zero
	}
	return p.UnitCost.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
