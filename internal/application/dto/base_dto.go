package dto

import "time"

// CreateBaseRequest entrada para crear una base.
type CreateBaseRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Location string `json:"location"`
}

// UpdateBaseRequest entrada para actualizar los campos de presentación de una base.
type UpdateBaseRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
}

// BaseResponse salida de una base.
type BaseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}
