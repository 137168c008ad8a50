package authz

import (
	"strings"

	"github.com/jhoicas/logistica-api/internal/domain/entity"
)

// Rule regla de autorización evaluable sobre una identidad.
// Los casos de uso componen reglas en lugar de comparar roles literales.
type Rule interface {
	Evaluate(id Identity) Decision
}

// RuleFunc adapta una función a Rule.
type RuleFunc func(id Identity) Decision

// Evaluate implementa Rule.
func (f RuleFunc) Evaluate(id Identity) Decision { return f(id) }

// Check evalúa la regla y devuelve el error de denegación, si lo hay.
func Check(id Identity, r Rule) error {
	return r.Evaluate(id).Err()
}

// HasCapability exige la capacidad sin restricción de base.
func HasCapability(c Capability) Rule {
	return RuleFunc(func(id Identity) Decision {
		return Authorize(id, c, "")
	})
}

// Scoped exige la capacidad y que baseID esté en el alcance de la identidad.
// Un baseID vacío se trata como fuera de alcance para roles no ADMIN.
func Scoped(c Capability, baseID string) Rule {
	return RuleFunc(func(id Identity) Decision {
		if baseID == "" && !id.IsAdmin() {
			if d := Authorize(id, c, ""); !d.Allowed {
				return d
			}
			return Deny("la capacidad %s requiere una base", c)
		}
		return Authorize(id, c, baseID)
	})
}

// Self exige que la identidad sea el usuario indicado. userID nil nunca coincide.
func Self(userID *string) Rule {
	return RuleFunc(func(id Identity) Decision {
		if userID == nil || *userID == "" || *userID != id.UserID {
			return Deny("el recurso no pertenece al usuario")
		}
		return Allow()
	})
}

// RoleIn exige que el rol esté en la lista.
func RoleIn(roles ...entity.Role) Rule {
	return RuleFunc(func(id Identity) Decision {
		for _, r := range roles {
			if id.Role == r {
				return Allow()
			}
		}
		return Deny("el rol %s no está autorizado", id.Role)
	})
}

// InBase exige que baseID esté en el alcance de la identidad, sin capacidad asociada.
func InBase(baseID string) Rule {
	return RuleFunc(func(id Identity) Decision {
		if !id.InScope(baseID) {
			return Deny("la base está fuera del alcance del usuario")
		}
		return Allow()
	})
}

// AllOf se cumple si todas las reglas se cumplen; devuelve la primera denegación.
func AllOf(rules ...Rule) Rule {
	return RuleFunc(func(id Identity) Decision {
		for _, r := range rules {
			if d := r.Evaluate(id); !d.Allowed {
				return d
			}
		}
		return Allow()
	})
}

// AnyOf se cumple si alguna regla se cumple; si ninguna, une los motivos.
func AnyOf(rules ...Rule) Rule {
	return RuleFunc(func(id Identity) Decision {
		reasons := make([]string, 0, len(rules))
		for _, r := range rules {
			d := r.Evaluate(id)
			if d.Allowed {
				return d
			}
			reasons = append(reasons, d.Reason)
		}
		return Decision{Reason: strings.Join(reasons, "; ")}
	})
}
