package postgres

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo registro de compras sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	cost := decimal.NullDecimal{}
	if p.UnitCost != nil {
		cost = decimal.NewNullDecimal(*p.UnitCost)
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchases (id, asset_id, base_id, quantity, unit_cost, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.AssetID, p.BaseID, p.Quantity, cost, p.CreatedBy, p.CreatedAt)
	return classifyInsert(err, "insert purchase")
}

func (r *PurchaseRepo) List(ctx context.Context, f repository.PurchaseFilter) ([]*entity.Purchase, error) {
	var w where
	if f.BaseID != "" {
		w.add("p.base_id = $%d", f.BaseID)
	}
	if f.AssetID != "" {
		w.add("p.asset_id = $%d", f.AssetID)
	}
	if f.EquipmentType != "" {
		w.add("a.equipment_type = $%d", f.EquipmentType)
	}
	if f.From != nil {
		w.add("p.created_at >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("p.created_at <= $%d", *f.To)
	}
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.asset_id, p.base_id, p.quantity, p.unit_cost, p.created_by, p.created_at
		FROM purchases p JOIN assets a ON a.id = p.asset_id`+w.sql()+`
		ORDER BY p.created_at DESC`, w.args...)
	if err != nil {
		return nil, classify(err, "list purchases")
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		var cost decimal.NullDecimal
		if err := rows.Scan(&p.ID, &p.AssetID, &p.BaseID, &p.Quantity, &cost, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, classify(err, "scan purchase")
		}
		if cost.Valid {
			c := cost.Decimal
			p.UnitCost = &c
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
