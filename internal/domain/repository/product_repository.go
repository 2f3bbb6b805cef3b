package repository

import (
	"github.com/shopspring/decimal"

	"github.com/atokurn/financex-sub001/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate y UpdateStock se usan solo dentro de transacciones del libro de stock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Nil si no existe.
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateStock escribe el nuevo stock absoluto del producto.
	UpdateStock(id string, stock decimal.Decimal) error
}
