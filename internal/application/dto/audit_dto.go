package dto

import "time"

// AuditQuery filtros de la bitácora.
type AuditQuery struct {
	Action     string `query:"action"`
	EntityType string `query:"entity_type"`
	UserID     string `query:"user_id"`
	Limit      int    `query:"limit"`
}

// AuditLogResponse salida de una entrada de bitácora.
type AuditLogResponse struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Details    string    `json:"details"`
	UserID     string    `json:"user_id"`
	BaseID     *string   `json:"base_id"`
	Timestamp  time.Time `json:"timestamp"`
}
