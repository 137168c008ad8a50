package entity

import "time"

// Status estado de un flujo con aprobación (traslados y solicitudes).
type Status string

// Estados de los flujos. APPROVED y REJECTED son terminales.
const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Terminal informa si no se permite ninguna otra transición.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Transfer traslado de existencias de una base a otra.
// ApprovedBy/ApprovedAt registran al revisor también cuando se rechaza.
type Transfer struct {
	ID          string
	AssetID     string
	FromBaseID  string
	ToBaseID    string
	Quantity    int
	Status      Status
	RequestedBy string
	ApprovedBy  *string
	ApprovedAt  *time.Time
	CreatedAt   time.Time
}
