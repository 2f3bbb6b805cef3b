package repository

import (
	"github.com/atokurn/financex-sub001/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para compras y sus líneas.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	GetByID(id string) (*entity.Purchase, error)
	List(limit, offset int) ([]*entity.Purchase, error)
	// ListByIDs carga compras con sus líneas; se usa en el borrado masivo con reverso.
	ListByIDs(ids []string) ([]*entity.Purchase, error)
	// DeleteByIDs elimina compras y sus líneas en bloque.
	DeleteByIDs(ids []string) error
}
