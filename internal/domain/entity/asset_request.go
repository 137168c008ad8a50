package entity

import "time"

// AssetRequest solicitud de un usuario PERSONNEL para recibir existencias.
type AssetRequest struct {
	ID           string
	AssetID      string
	RequestedBy  string
	Quantity     int
	Reason       string
	Status       Status
	ReviewedBy   *string
	ReviewedAt   *time.Time
	ReviewNote   string
	AssignmentID *string // asignación creada al aprobar
	CreatedAt    time.Time
}
