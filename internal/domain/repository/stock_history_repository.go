package repository

import (
	"github.com/atokurn/financex-sub001/internal/domain/entity"
)

// StockHistoryRepository define el puerto de persistencia para el log de movimientos.
// El log es append-only: no hay Update ni Delete.
type StockHistoryRepository interface {
	Create(history *entity.StockHistory) error
	GetByID(id string) (*entity.StockHistory, error)
	ListByItem(item entity.ItemRef, limit, offset int) ([]*entity.StockHistory, error)
	List(limit, offset int) ([]*entity.StockHistory, error)
	CountByItem(item entity.ItemRef) (int, error)
}
