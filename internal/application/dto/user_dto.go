package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT más el usuario y sus capacidades.
type LoginResponse struct {
	Token        string          `json:"token"`
	User         UserResponse    `json:"user"`
	Capabilities map[string]bool `json:"capabilities"`
}

// MeResponse identidad del token actual con sus capacidades.
type MeResponse struct {
	User         UserResponse    `json:"user"`
	Capabilities map[string]bool `json:"capabilities"`
}

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=100"`
	Password string  `json:"password" validate:"required,min=6"`
	FullName string  `json:"full_name" validate:"required,max=200"`
	Role     string  `json:"role" validate:"required,oneof=ADMIN BASE_COMMANDER LOGISTICS_OFFICER PERSONNEL"`
	BaseID   *string `json:"base_id"`
}

// UpdateUserRequest campos opcionales; solo ADMIN los usa.
type UpdateUserRequest struct {
	FullName *string `json:"full_name"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	BaseID   *string `json:"base_id"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	BaseID    *string   `json:"base_id"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// RoleCapabilities fila de la matriz de permisos para GET /api/roles.
type RoleCapabilities struct {
	Role         string          `json:"role"`
	Capabilities map[string]bool `json:"capabilities"`
}
