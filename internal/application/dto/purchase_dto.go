package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest línea de compra: material_id XOR product_id.
type PurchaseItemRequest struct {
	MaterialID string          `json:"material_id,omitempty"`
	ProductID  string          `json:"product_id,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseRequest entrada para crear una compra. Si Status es "completed",
// cada línea genera una entrada de stock en la misma transacción.
type CreatePurchaseRequest struct {
	Supplier string                `json:"supplier"`
	Status   string                `json:"status"` // pending | completed
	Date     *time.Time            `json:"date,omitempty"`
	Items    []PurchaseItemRequest `json:"items" validate:"required,min=1"`
}

// BulkDeletePurchasesRequest body para DELETE /api/purchases.
type BulkDeletePurchasesRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// PurchaseItemResponse línea de compra en respuestas.
type PurchaseItemResponse struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"material_id,omitempty"`
	ProductID  string          `json:"product_id,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID        string                 `json:"id"`
	Supplier  string                 `json:"supplier"`
	Status    string                 `json:"status"`
	Total     decimal.Decimal        `json:"total"`
	Date      time.Time              `json:"date"`
	UserID    string                 `json:"user_id"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
	Items     []PurchaseItemResponse `json:"items"`
}

// PurchaseListResponse lista paginada de compras.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
