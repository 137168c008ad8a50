package dto

import (
	"fmt"
	"time"

	"github.com/jhoicas/logistica-api/internal/domain"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple para operaciones sin cuerpo propio.
type MessageResponse struct {
	Message string `json:"message"`
}

// ParseDateRange interpreta start/end (RFC3339 o YYYY-MM-DD). Vacío significa sin límite.
// Una fecha sin hora como end cubre el día completo.
func ParseDateRange(start, end string) (*time.Time, *time.Time, error) {
	from, err := parseDate(start, false)
	if err != nil {
		return nil, nil, err
	}
	to, err := parseDate(end, true)
	if err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, fmt.Errorf("%w: end_date anterior a start_date", domain.ErrInvalidInput)
	}
	return from, to, nil
}

func parseDate(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, s)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
