// Package inventory contiene servicios de dominio puros sobre existencias.
package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

// WeightedAverageCost costo promedio ponderado tras una entrada.
// nuevo = ((stock * costo) + (entrada * costoEntrada)) / (stock + entrada)
func WeightedAverageCost(stockQty, stockCost, inQty, inCost decimal.Decimal) decimal.Decimal {
	sum := stockQty.Add(inQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockQty.Mul(stockCost).Add(inQty.Mul(inCost))
	return num.Div(sum)
}

// AverageUnitCosts recorre las compras en orden cronológico y devuelve el costo promedio
// ponderado por activo. Las compras sin costo unitario no participan.
func AverageUnitCosts(purchases []*entity.Purchase) map[string]decimal.Decimal {
	ordered := make([]*entity.Purchase, 0, len(purchases))
	for _, p := range purchases {
		if p.UnitCost != nil && p.Quantity > 0 {
			ordered = append(ordered, p)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].CreatedAt.Before(ordered[j].CreatedAt) })

	type acc struct{ qty, cost decimal.Decimal }
	running := make(map[string]acc)
	for _, p := range ordered {
		in := decimal.NewFromInt(int64(p.Quantity))
		a := running[p.AssetID]
		a.cost = WeightedAverageCost(a.qty, a.cost, in, *p.UnitCost)
		a.qty = a.qty.Add(in)
		running[p.AssetID] = a
	}
	out := make(map[string]decimal.Decimal, len(running))
	for id, a := range running {
		out[id] = a.cost.Round(2)
	}
	return out
}
