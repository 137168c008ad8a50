package dto

import "time"

// CreateTransferRequest solicitud de traslado entre bases.
type CreateTransferRequest struct {
	AssetID    string `json:"asset_id" validate:"required"`
	FromBaseID string `json:"from_base_id" validate:"required"`
	ToBaseID   string `json:"to_base_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
}

// TransferQuery filtros de listado de traslados.
type TransferQuery struct {
	Status string `query:"status"`
	BaseID string `query:"base_id"`
}

// TransferResponse salida de un traslado.
type TransferResponse struct {
	ID          string     `json:"id"`
	AssetID     string     `json:"asset_id"`
	FromBaseID  string     `json:"from_base_id"`
	ToBaseID    string     `json:"to_base_id"`
	Quantity    int        `json:"quantity"`
	Status      string     `json:"status"`
	RequestedBy string     `json:"requested_by"`
	ApprovedBy  *string    `json:"approved_by"`
	ApprovedAt  *time.Time `json:"approved_at"`
	CreatedAt   time.Time  `json:"created_at"`
	// DestinationAssetID fila del activo en la base destino, presente cuando el traslado se ejecutó.
	DestinationAssetID string `json:"destination_asset_id,omitempty"`
}

// IssueAssetRequest entrega de existencias a una persona.
type IssueAssetRequest struct {
	AssetID     string `json:"asset_id" validate:"required"`
	PersonnelID string `json:"personnel_id" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
}

// AssignmentQuery filtros de listado de asignaciones.
type AssignmentQuery struct {
	PersonnelID string `query:"personnel_id"`
	All         bool   `query:"all"` // incluye las devueltas
}

// AssignmentResponse salida de una asignación.
type AssignmentResponse struct {
	ID          string     `json:"id"`
	AssetID     string     `json:"asset_id"`
	PersonnelID string     `json:"personnel_id"`
	Quantity    int        `json:"quantity"`
	IssuedBy    string     `json:"issued_by"`
	IssuedAt    time.Time  `json:"issued_at"`
	ReturnedAt  *time.Time `json:"returned_at"`
	ReturnedTo  *string    `json:"returned_to"`
}

// CreateAssetRequestRequest solicitud de existencias por parte de PERSONNEL.
type CreateAssetRequestRequest struct {
	AssetID  string `json:"asset_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Reason   string `json:"reason"`
}

// ReviewRequest nota opcional al aprobar o rechazar.
type ReviewRequest struct {
	Note string `json:"note"`
}

// AssetRequestQuery filtros de listado de solicitudes.
type AssetRequestQuery struct {
	Status string `query:"status"`
}

// AssetRequestResponse salida de una solicitud.
type AssetRequestResponse struct {
	ID           string     `json:"id"`
	AssetID      string     `json:"asset_id"`
	RequestedBy  string     `json:"requested_by"`
	Quantity     int        `json:"quantity"`
	Reason       string     `json:"reason"`
	Status       string     `json:"status"`
	ReviewedBy   *string    `json:"reviewed_by"`
	ReviewedAt   *time.Time `json:"reviewed_at"`
	ReviewNote   string     `json:"review_note,omitempty"`
	AssignmentID *string    `json:"assignment_id"`
	CreatedAt    time.Time  `json:"created_at"`
}
