package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/logistica-api/internal/domain"
)

func TestClassify(t *testing.T) {
	pg := func(code string) error { return fmt.Errorf("exec: %w", &pgconn.PgError{Code: code}) }
	check := func(constraint string) error {
		return fmt.Errorf("exec: %w", &pgconn.PgError{Code: codeCheckViolation, ConstraintName: constraint})
	}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"sin filas", pgx.ErrNoRows, domain.ErrNotFound},
		{"único", pg(codeUniqueViolation), domain.ErrConflict},
		{"fk en delete", pg(codeForeignKeyViolation), domain.ErrConflict},
		{"check de existencias", check(constraintAssetStock), domain.ErrInsufficientStock},
		{"check de cantidad en traslado", check("transfers_quantity_check"), domain.ErrInvalidQuantity},
		{"check de cantidad en compra", check("purchases_quantity_check"), domain.ErrInvalidQuantity},
		{"check sin nombre", pg(codeCheckViolation), domain.ErrInvalidQuantity},
		{"uuid inválido", pg(codeInvalidText), domain.ErrNotFound},
		{"deadlock", pg(codeDeadlockDetected), domain.ErrRetryable},
		{"serialización", pg(codeSerializationFailure), domain.ErrRetryable},
		{"lock_timeout", pg(codeLockNotAvailable), domain.ErrRetryable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classify(tt.err, "op"), tt.want)
		})
	}
}

func TestClassify_NilYDesconocido(t *testing.T) {
	assert.NoError(t, classify(nil, "op"))

	boom := errors.New("boom")
	err := classify(boom, "op")
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, domain.ErrConflict))
}

func TestClassifyInsert_FKEsPadreInexistente(t *testing.T) {
	err := classifyInsert(&pgconn.PgError{Code: codeForeignKeyViolation}, "insert")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, classifyInsert(nil, "insert"))
}

func TestWhere(t *testing.T) {
	var w where
	assert.Equal(t, "", w.sql())

	w.add("base_id = $%d", "b1")
	w.add("(from_base_id = $%[1]d OR to_base_id = $%[1]d)", "b2")
	assert.Equal(t, " WHERE base_id = $1 AND (from_base_id = $2 OR to_base_id = $2)", w.sql())
	assert.Equal(t, []any{"b1", "b2"}, w.args)
}
