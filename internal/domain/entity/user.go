package entity

import "time"

// Role rol de un usuario del sistema.
type Role string

// Roles válidos para User.
const (
	RoleAdmin            Role = "ADMIN"
	RoleBaseCommander    Role = "BASE_COMMANDER"
	RoleLogisticsOfficer Role = "LOGISTICS_OFFICER"
	RolePersonnel        Role = "PERSONNEL"
)

// Roles devuelve los roles válidos en orden de privilegio.
func Roles() []Role {
	return []Role{RoleAdmin, RoleBaseCommander, RoleLogisticsOfficer, RolePersonnel}
}

// Valid informa si el rol es uno de los conocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleBaseCommander, RoleLogisticsOfficer, RolePersonnel:
		return true
	}
	return false
}

// RequiresBase informa si el rol necesita una base asignada.
func (r Role) RequiresBase() bool {
	return r != RoleAdmin
}

// User representa una identidad de acceso (login). Distinta de Personnel, que es la persona física.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	Role         Role
	BaseID       *string // nil para ADMIN
	CreatedAt    time.Time
}

// BaseIDOrEmpty devuelve el ID de base o cadena vacía.
func (u *User) BaseIDOrEmpty() string {
	if u == nil || u.BaseID == nil {
		return ""
	}
	return *u.BaseID
}
