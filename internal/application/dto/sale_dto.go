package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta (siempre producto).
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest entrada para crear una venta. Si Status es "completed",
// cada línea genera una salida de stock en la misma transacción.
type CreateSaleRequest struct {
	Customer string            `json:"customer"`
	Status   string            `json:"status"` // pending | completed
	Date     *time.Time        `json:"date,omitempty"`
	Items    []SaleItemRequest `json:"items" validate:"required,min=1"`
}

// SaleItemResponse línea de venta en respuestas.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID        string             `json:"id"`
	Customer  string             `json:"customer"`
	Status    string             `json:"status"`
	Total     decimal.Decimal    `json:"total"`
	Date      time.Time          `json:"date"`
	UserID    string             `json:"user_id"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	Items     []SaleItemResponse `json:"items"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
