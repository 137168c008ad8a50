package entity

import "time"

// Severity gravedad de un daño reportado.
type Severity string

// Severidades.
const (
	SeverityMinor    Severity = "MINOR"
	SeverityModerate Severity = "MODERATE"
	SeveritySevere   Severity = "SEVERE"
)

// Valid informa si la severidad es conocida.
func (s Severity) Valid() bool {
	return s == SeverityMinor || s == SeverityModerate || s == SeveritySevere
}

// DamageReport reporte de daño sobre un activo, opcionalmente ligado a una asignación.
type DamageReport struct {
	ID           string
	AssetID      string
	AssignmentID *string
	Description  string
	Severity     Severity
	ReportedBy   string
	ReportedAt   time.Time
}
