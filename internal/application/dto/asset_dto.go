package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetQuery filtros de listado de activos (query string).
type AssetQuery struct {
	BaseID        string `query:"base_id"`
	EquipmentType string `query:"equipment_type"`
	Search        string `query:"search"`
}

// CreateAssetRequest alta de activo. Quantity inicial se registra como compra.
type CreateAssetRequest struct {
	Name          string           `json:"name" validate:"required"`
	EquipmentType string           `json:"equipment_type" validate:"required"`
	Condition     string           `json:"condition"`
	BaseID        string           `json:"base_id" validate:"required"`
	Quantity      int              `json:"quantity" validate:"min=0"`
	UnitCost      *decimal.Decimal `json:"unit_cost"`
}

// UpdateAssetRequest edición de activo; la cantidad no se edita por aquí.
type UpdateAssetRequest struct {
	Name          *string `json:"name"`
	EquipmentType *string `json:"equipment_type"`
	Condition     *string `json:"condition"`
}

// SetConditionRequest cambio de condición.
type SetConditionRequest struct {
	Condition string `json:"condition" validate:"required"`
}

// AssetResponse salida de un activo.
type AssetResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	EquipmentType string    `json:"equipment_type"`
	Quantity      int       `json:"quantity"`
	Condition     string    `json:"condition"`
	BaseID        string    `json:"base_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreatePurchaseRequest registro de compra.
type CreatePurchaseRequest struct {
	AssetID  string           `json:"asset_id" validate:"required"`
	Quantity int              `json:"quantity" validate:"required,gt=0"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
}

// PurchaseQuery filtros de listado de compras (fechas RFC3339 o YYYY-MM-DD).
type PurchaseQuery struct {
	BaseID        string `query:"base_id"`
	AssetID       string `query:"asset_id"`
	EquipmentType string `query:"equipment_type"`
	StartDate     string `query:"start_date"`
	EndDate       string `query:"end_date"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID        string           `json:"id"`
	AssetID   string           `json:"asset_id"`
	BaseID    string           `json:"base_id"`
	Quantity  int              `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	TotalCost decimal.Decimal  `json:"total_cost"`
	CreatedBy string           `json:"created_by"`
	CreatedAt time.Time        `json:"created_at"`
}

// CreateMaintenanceRequest registro de mantenimiento.
type CreateMaintenanceRequest struct {
	AssetID         string `json:"asset_id" validate:"required"`
	Description     string `json:"description" validate:"required"`
	MaintenanceType string `json:"maintenance_type" validate:"required"`
}

// MaintenanceResponse salida de un mantenimiento.
type MaintenanceResponse struct {
	ID              string    `json:"id"`
	AssetID         string    `json:"asset_id"`
	Description     string    `json:"description"`
	MaintenanceType string    `json:"maintenance_type"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateDamageReportRequest reporte de daño. Severity vacío equivale a MINOR.
type CreateDamageReportRequest struct {
	AssetID      string  `json:"asset_id" validate:"required"`
	AssignmentID *string `json:"assignment_id"`
	Description  string  `json:"description" validate:"required"`
	Severity     string  `json:"severity"`
}

// DamageReportResponse salida de un reporte de daño.
type DamageReportResponse struct {
	ID           string    `json:"id"`
	AssetID      string    `json:"asset_id"`
	AssignmentID *string   `json:"assignment_id"`
	Description  string    `json:"description"`
	Severity     string    `json:"severity"`
	ReportedBy   string    `json:"reported_by"`
	ReportedAt   time.Time `json:"reported_at"`
}
