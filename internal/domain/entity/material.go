package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material representa una materia prima del inventario.
// Stock solo se modifica vía el libro de stock (movimientos); nunca por CRUD directo.
type Material struct {
	ID        string
	Name      string
	Code      string // código único
	Unit      string // unidad de medida (kg, m, unidad, ...)
	Price     decimal.Decimal
	Stock     decimal.Decimal // nunca negativo
	MinStock  decimal.Decimal // umbral de alerta de reposición
	CreatedAt time.Time
	UpdatedAt time.Time
}
