package entity

import "time"

// Assignment entrega de existencias a una persona. Abierta mientras ReturnedAt es nil.
type Assignment struct {
	ID          string
	AssetID     string
	PersonnelID string
	Quantity    int
	IssuedBy    string
	IssuedAt    time.Time
	ReturnedAt  *time.Time
	ReturnedTo  *string
}

// Open informa si la asignación sigue vigente.
func (a *Assignment) Open() bool {
	return a.ReturnedAt == nil
}
