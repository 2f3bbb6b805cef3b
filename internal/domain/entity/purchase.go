package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una compra.
const (
	PurchaseStatusPending   = "pending"   // registrada, sin efecto en stock
	PurchaseStatusCompleted = "completed" // recibida: cada línea generó una entrada de stock
)

// Purchase representa una compra a proveedor con sus líneas.
type Purchase struct {
	ID        string
	Supplier  string
	Status    string // pending | completed
	Total     decimal.Decimal
	Date      time.Time
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
	Items     []PurchaseItem
}

// PurchaseItem línea de compra: referencia un material o un producto.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	Item       ItemRef
	Quantity   decimal.Decimal // > 0
	UnitPrice  decimal.Decimal
}
