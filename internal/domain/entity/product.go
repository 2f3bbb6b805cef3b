package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto terminado a la venta.
// Stock solo se modifica vía el libro de stock (movimientos); nunca por CRUD directo.
type Product struct {
	ID        string
	Name      string
	Code      string // código único
	Category  string
	Price     decimal.Decimal // precio de venta
	Stock     decimal.Decimal // nunca negativo
	CreatedAt time.Time
	UpdatedAt time.Time
}
