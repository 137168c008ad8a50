package dto

import "time"

// CreatePersonnelRequest entrada para registrar personal.
type CreatePersonnelRequest struct {
	Name   string  `json:"name" validate:"required"`
	Rank   string  `json:"rank"`
	UserID *string `json:"user_id"`
	BaseID string  `json:"base_id"` // vacío: base del usuario que crea
}

// UpdatePersonnelRequest campos opcionales. UserID con cadena vacía desvincula el usuario.
type UpdatePersonnelRequest struct {
	Name   *string `json:"name"`
	Rank   *string `json:"rank"`
	UserID *string `json:"user_id"`
	BaseID *string `json:"base_id"`
}

// PersonnelResponse salida de un registro de personal.
type PersonnelResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Rank      string    `json:"rank"`
	UserID    *string   `json:"user_id"`
	BaseID    string    `json:"base_id"`
	CreatedAt time.Time `json:"created_at"`
}
