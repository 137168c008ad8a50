package authz

import (
	"fmt"

	"github.com/jhoicas/logistica-api/internal/domain"
	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

// Identity es el sujeto autenticado de una petición. Se construye desde el token, no desde la DB.
type Identity struct {
	UserID   string
	Username string
	Role     entity.Role
	BaseID   string // vacío para ADMIN
	FullName string
}

// IsAdmin informa si la identidad tiene alcance global.
func (id Identity) IsAdmin() bool { return id.Role == entity.RoleAdmin }

// InScope informa si la base está dentro del alcance de la identidad.
func (id Identity) InScope(baseID string) bool {
	return id.IsAdmin() || (id.BaseID != "" && id.BaseID == baseID)
}

// Decision resultado de una evaluación de autorización.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow decisión positiva.
func Allow() Decision { return Decision{Allowed: true} }

// Deny decisión negativa con motivo.
func Deny(format string, args ...any) Decision {
	return Decision{Reason: fmt.Sprintf(format, args...)}
}

// Err devuelve nil si la decisión es positiva o un *DeniedError en caso contrario.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &DeniedError{Reason: d.Reason}
}

// DeniedError denegación de autorización; errors.Is(err, domain.ErrForbidden) es true.
type DeniedError struct {
	Reason string
}

func (e *DeniedError) Error() string {
	if e.Reason == "" {
		return domain.ErrForbidden.Error()
	}
	return domain.ErrForbidden.Error() + ": " + e.Reason
}

// Unwrap permite comparar con domain.ErrForbidden.
func (e *DeniedError) Unwrap() error { return domain.ErrForbidden }

// Authorize niega si el rol no tiene la capacidad, o si scopeBaseID no está vacío,
// el rol no es ADMIN y la base no coincide con la de la identidad.
func Authorize(id Identity, c Capability, scopeBaseID string) Decision {
	if !Can(id.Role, c) {
		return Deny("el rol %s no tiene la capacidad %s", id.Role, c)
	}
	if scopeBaseID != "" && !id.InScope(scopeBaseID) {
		return Deny("la capacidad %s está limitada a la base propia", c)
	}
	return Allow()
}
