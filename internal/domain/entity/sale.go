package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusPending   = "pending"
	SaleStatusCompleted = "completed" // cada línea generó una salida de stock
)

// Sale representa una venta con sus líneas.
type Sale struct {
	ID        string
	Customer  string
	Status    string // pending | completed
	Total     decimal.Decimal
	Date      time.Time
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
	Items     []SaleItem
}

// SaleItem línea de venta: siempre referencia un producto.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  decimal.Decimal // > 0
	UnitPrice decimal.Decimal
}
