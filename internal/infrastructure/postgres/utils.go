package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/logistica-api/internal/domain"
)

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeInvalidText          = "22P02"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"

	// constraintAssetStock es el único CHECK que representa falta de existencias.
	constraintAssetStock = "assets_quantity_check"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isRetryable informa si el error viene de un conflicto de concurrencia (deadlock, serialización, lock_timeout).
func isRetryable(err error) bool {
	switch pgCode(err) {
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return true
	}
	return false
}

// classify traduce errores de pgx a errores de dominio conservando el original en la cadena.
// Sobre una escritura, una FK rota significa que la fila aún está referenciada (delete)
// o que el padre no existe (insert); op decide cuál.
func classify(err error, op string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("%w: %s", domain.ErrNotFound, op)
	case isRetryable(err):
		return fmt.Errorf("%w: %s: %v", domain.ErrRetryable, op, err)
	}
	switch pgCode(err) {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s: registro duplicado", domain.ErrConflict, op)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %s: referencia inválida o en uso", domain.ErrConflict, op)
	case codeCheckViolation:
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == constraintAssetStock {
			return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, op)
		}
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidQuantity, op, err)
	case codeInvalidText:
		// un ID que no es UUID no puede existir
		return fmt.Errorf("%w: %s", domain.ErrNotFound, op)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// classifyInsert es classify para inserciones: una FK rota indica un padre inexistente.
func classifyInsert(err error, op string) error {
	if pgCode(err) == codeForeignKeyViolation {
		return fmt.Errorf("%w: %s: referencia inexistente", domain.ErrNotFound, op)
	}
	return classify(err, op)
}

// affected devuelve ErrNotFound cuando un UPDATE/DELETE no tocó ninguna fila.
func affected(tag pgconn.CommandTag, op string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, op)
	}
	return nil
}
