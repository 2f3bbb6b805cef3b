package ledger

import (
	"context"

	"github.com/atokurn/financex-sub001/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el libro de stock: movimiento y stock se escriben juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		histRepo repository.StockHistoryRepository,
		materialRepo repository.MaterialRepository,
		productRepo repository.ProductRepository,
	) error) error
}
