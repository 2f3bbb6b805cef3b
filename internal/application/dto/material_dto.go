package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest entrada para crear un material. Stock es el inventario inicial;
// después de la creación solo cambia vía movimientos.
type CreateMaterialRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Code     string          `json:"code" validate:"required,min=1,max=100"`
	Unit     string          `json:"unit" validate:"required"`
	Price    decimal.Decimal `json:"price"`
	Stock    decimal.Decimal `json:"stock"`
	MinStock decimal.Decimal `json:"min_stock"`
}

// UpdateMaterialRequest entrada para actualizar un material (sin Stock: se maneja vía movimientos).
type UpdateMaterialRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Unit     *string          `json:"unit"`
	Price    *decimal.Decimal `json:"price"`
	MinStock *decimal.Decimal `json:"min_stock"`
}

// MaterialResponse salida de un material.
type MaterialResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Code      string          `json:"code"`
	Unit      string          `json:"unit"`
	Price     decimal.Decimal `json:"price"`
	Stock     decimal.Decimal `json:"stock"`
	MinStock  decimal.Decimal `json:"min_stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// MaterialListResponse lista paginada de materiales.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
