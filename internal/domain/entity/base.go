package entity

import "time"

// Base representa una base operativa (sede) donde se almacena inventario y se asigna personal.
type Base struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
}
