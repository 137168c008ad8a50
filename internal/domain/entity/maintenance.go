package entity

import "time"

// MaintenanceRecord registro de mantenimiento sobre un activo.
type MaintenanceRecord struct {
	ID              string
	AssetID         string
	Description     string
	MaintenanceType string
	CreatedBy       string
	CreatedAt       time.Time
}
