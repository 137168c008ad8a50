package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
	"github.com/jhoicas/logistica-api/internal/domain/repository"
)

var _ repository.AssetRepository = (*AssetRepo)(nil)

// AssetRepo implementación de AssetRepository sobre PostgreSQL (usable con pool o tx).
type AssetRepo struct {
	q Querier
}

// NewAssetRepository construye el adaptador de activos. Pasar pool o tx (Querier).
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

const assetColumns = `id, name, equipment_type, quantity, condition, base_id, created_at, updated_at`

func scanAsset(row pgx.Row) (*entity.Asset, error) {
	var a entity.Asset
	if err := row.Scan(&a.ID, &a.Name, &a.EquipmentType, &a.Quantity, &a.Condition,
		&a.BaseID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssetRepo) Create(ctx context.Context, a *entity.Asset) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO assets (`+assetColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.Name, a.EquipmentType, a.Quantity, a.Condition, a.BaseID, a.CreatedAt, a.UpdatedAt)
	return classifyInsert(err, "insert asset")
}

func (r *AssetRepo) GetByID(ctx context.Context, id string) (*entity.Asset, error) {
	a, err := scanAsset(r.q.QueryRow(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id))
	if err != nil {
		return nil, classify(err, "get asset "+id)
	}
	return a, nil
}

// GetForUpdate obtiene el activo y bloquea la fila (SELECT FOR UPDATE).
func (r *AssetRepo) GetForUpdate(ctx context.Context, id string) (*entity.Asset, error) {
	a, err := scanAsset(r.q.QueryRow(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, classify(err, "lock asset "+id)
	}
	return a, nil
}

// GetOrCreateAtBase inserta candidate si no existe (base, nombre, tipo) y luego bloquea la fila.
// ON CONFLICT DO NOTHING evita que dos traslados concurrentes al mismo destino choquen.
func (r *AssetRepo) GetOrCreateAtBase(ctx context.Context, candidate *entity.Asset) (*entity.Asset, bool, error) {
	var insertedID string
	err := r.q.QueryRow(ctx, `
		INSERT INTO assets (`+assetColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (base_id, name, equipment_type) DO NOTHING
		RETURNING id`,
		candidate.ID, candidate.Name, candidate.EquipmentType, candidate.Quantity, candidate.Condition,
		candidate.BaseID, candidate.CreatedAt, candidate.UpdatedAt,
	).Scan(&insertedID)
	created := true
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, false, classifyInsert(err, "get or create asset")
		}
		created = false
	}

	a, err := scanAsset(r.q.QueryRow(ctx, `
		SELECT `+assetColumns+` FROM assets
		WHERE base_id = $1 AND name = $2 AND equipment_type = $3
		FOR UPDATE`,
		candidate.BaseID, candidate.Name, candidate.EquipmentType))
	if err != nil {
		return nil, false, classify(err, "lock asset at base")
	}
	return a, created, nil
}

func (r *AssetRepo) List(ctx context.Context, f repository.AssetFilter) ([]*entity.Asset, error) {
	var w where
	if f.BaseID != "" {
		w.add("base_id = $%d", f.BaseID)
	}
	if f.EquipmentType != "" {
		w.add("equipment_type = $%d", f.EquipmentType)
	}
	if f.Search != "" {
		w.add("name ILIKE '%%' || $%d || '%%'", f.Search)
	}
	rows, err := r.q.Query(ctx, `SELECT `+assetColumns+` FROM assets`+w.sql()+` ORDER BY name, base_id`, w.args...)
	if err != nil {
		return nil, classify(err, "list assets")
	}
	defer rows.Close()
	var list []*entity.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, classify(err, "scan asset")
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Update persiste nombre, tipo y condición. No toca la cantidad.
func (r *AssetRepo) Update(ctx context.Context, a *entity.Asset) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE assets SET name = $2, equipment_type = $3, condition = $4, updated_at = now()
		WHERE id = $1`,
		a.ID, a.Name, a.EquipmentType, a.Condition)
	if err != nil {
		return classify(err, "update asset")
	}
	return affected(tag, "update asset "+a.ID)
}

// SetQuantity la restricción CHECK (quantity >= 0) respalda al libro de inventario.
func (r *AssetRepo) SetQuantity(ctx context.Context, id string, quantity int) error {
	tag, err := r.q.Exec(ctx, `UPDATE assets SET quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return classify(err, "set asset quantity")
	}
	return affected(tag, "set asset quantity "+id)
}

func (r *AssetRepo) SetCondition(ctx context.Context, id string, condition entity.Condition) error {
	tag, err := r.q.Exec(ctx, `UPDATE assets SET condition = $2, updated_at = now() WHERE id = $1`, id, condition)
	if err != nil {
		return classify(err, "set asset condition")
	}
	return affected(tag, "set asset condition "+id)
}

func (r *AssetRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return classify(err, "delete asset")
	}
	return affected(tag, "delete asset "+id)
}
