package repository

import (
	"github.com/shopspring/decimal"

	"github.com/atokurn/financex-sub001/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para Material (DIP).
// GetForUpdate y UpdateStock se usan solo dentro de transacciones del libro de stock.
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	GetByCode(code string) (*entity.Material, error)
	Update(material *entity.Material) error
	List(limit, offset int) ([]*entity.Material, error)
	Delete(id string) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Nil si no existe.
	GetForUpdate(id string) (*entity.Material, error)
	// UpdateStock escribe el nuevo stock absoluto del material.
	UpdateStock(id string, stock decimal.Decimal) error
}
