package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Se envuelven con fmt.Errorf("%w: detalle", ErrX) y se comparan con errors.Is.
var (
	ErrUnauthenticated   = errors.New("no autenticado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidState      = errors.New("transición de estado inválida")
	ErrConflict          = errors.New("conflicto con el estado actual")
	// ErrRetryable marca fallos de concurrencia del almacén (deadlock, lock timeout); la operación completa puede reintentarse.
	ErrRetryable = errors.New("conflicto de concurrencia, reintente")
)

// IsNotFound informa si err es o envuelve ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
