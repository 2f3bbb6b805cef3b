package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyMovementRequest body para POST /api/stock/movements.
// material_id XOR product_id: exactamente uno debe estar presente.
type ApplyMovementRequest struct {
	MaterialID  string          `json:"material_id,omitempty"`
	ProductID   string          `json:"product_id,omitempty"`
	Type        string          `json:"type"` // in | out | adjustment
	Quantity    decimal.Decimal `json:"quantity"`
	Description string          `json:"description,omitempty"`
	Reference   string          `json:"reference,omitempty"`
}

// StockHistoryResponse salida de una fila del historial de stock.
type StockHistoryResponse struct {
	ID          string          `json:"id"`
	MaterialID  string          `json:"material_id,omitempty"`
	ProductID   string          `json:"product_id,omitempty"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Description string          `json:"description,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	UserID      string          `json:"user_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

// StockHistoryListResponse lista paginada del historial.
type StockHistoryListResponse struct {
	Items []StockHistoryResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
