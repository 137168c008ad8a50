package dto

import "github.com/shopspring/decimal"

// DashboardQuery filtros del tablero. BaseID solo lo respeta ADMIN.
type DashboardQuery struct {
	BaseID        string `query:"base_id"`
	EquipmentType string `query:"equipment_type"`
	StartDate     string `query:"start_date"`
	EndDate       string `query:"end_date"`
}

// DashboardResponse métricas de inventario para ADMIN, BASE_COMMANDER y LOGISTICS_OFFICER.
// OpeningBalance = ClosingBalance - NetMovement; NetMovement = Purchases + TransfersIn - TransfersOut.
type DashboardResponse struct {
	OpeningBalance   int             `json:"opening_balance"`
	ClosingBalance   int             `json:"closing_balance"`
	NetMovement      int             `json:"net_movement"`
	Assigned         int             `json:"assigned"`
	Purchases        int             `json:"purchases"`
	PurchaseSpend    decimal.Decimal `json:"purchase_spend"`
	TransfersIn      int             `json:"transfers_in"`
	TransfersOut     int             `json:"transfers_out"`
	PendingTransfers int             `json:"pending_transfers"`
	PendingRequests  int             `json:"pending_requests"`
	Assets           []AssetResponse `json:"assets"`
}

// AssignedAssetDTO línea del resumen personal.
type AssignedAssetDTO struct {
	AssignmentID  string `json:"assignment_id"`
	AssetID       string `json:"asset_id"`
	Name          string `json:"name"`
	EquipmentType string `json:"equipment_type"`
	Quantity      int    `json:"quantity"`
}

// PersonalDashboardResponse resumen para PERSONNEL.
type PersonalDashboardResponse struct {
	Assigned   int                `json:"assigned"`
	MyRequests int                `json:"my_requests"`
	Assets     []AssignedAssetDTO `json:"assets"`
}
