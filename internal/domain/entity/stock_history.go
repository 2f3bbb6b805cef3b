package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/atokurn/financex-sub001/internal/domain"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIn         = "in"         // entrada: suma cantidad
	MovementTypeOut        = "out"        // salida: resta cantidad
	MovementTypeAdjustment = "adjustment" // ajuste: fija el stock al valor dado
)

// ItemKind discrimina a qué entidad apunta una referencia de ítem.
type ItemKind string

// Clases de ítem con stock.
const (
	ItemKindMaterial ItemKind = "material"
	ItemKindProduct  ItemKind = "product"
)

// ItemRef referencia exactamente un Material o un Product (variante etiquetada, nunca ambos).
// Construir siempre con MaterialRef, ProductRef o ItemRefFromIDs; el valor cero no es válido.
type ItemRef struct {
	Kind ItemKind
	ID   string
}

// MaterialRef construye una referencia a un material.
func MaterialRef(id string) ItemRef {
	return ItemRef{Kind: ItemKindMaterial, ID: id}
}

// ProductRef construye una referencia a un producto.
func ProductRef(id string) ItemRef {
	return ItemRef{Kind: ItemKindProduct, ID: id}
}

// ItemRefFromIDs traduce el par (materialID, productID) de la API a una ItemRef.
// Exactamente uno debe estar presente; falla con ErrInvalidInput si hay cero o ambos.
func ItemRefFromIDs(materialID, productID string) (ItemRef, error) {
	switch {
	case materialID != "" && productID != "":
		return ItemRef{}, domain.ErrInvalidInput
	case materialID != "":
		return MaterialRef(materialID), nil
	case productID != "":
		return ProductRef(productID), nil
	default:
		return ItemRef{}, domain.ErrInvalidInput
	}
}

// IsValid indica si la referencia tiene clase conocida e ID no vacío.
func (r ItemRef) IsValid() bool {
	if r.ID == "" {
		return false
	}
	return r.Kind == ItemKindMaterial || r.Kind == ItemKindProduct
}

// StockHistory registra un movimiento de stock. Inmutable una vez creado (log append-only).
// Apunta a exactamente un material o producto vía Item.
type StockHistory struct {
	ID          string
	Item        ItemRef
	Type        string          // in | out | adjustment
	Quantity    decimal.Decimal // significado según Type: delta para in/out, valor absoluto para adjustment
	Description string
	Reference   string // documento de origen (ej. ID de compra o venta)
	UserID      string
	CreatedAt   time.Time
}
