package purchase

import (
	"context"
	"time"

	"github.com/atokurn/financex-sub001/internal/application/ledger"
	"github.com/atokurn/financex-sub001/internal/domain/entity"
	"github.com/atokurn/financex-sub001/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con repos de compras y de inventario.
// Una compra completada y sus movimientos de stock se confirman juntos o ninguno.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		histRepo repository.StockHistoryRepository,
		materialRepo repository.MaterialRepository,
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
	) error) error
}

// StockLedger operaciones del libro de stock ejecutadas dentro de la transacción del caller.
// Lo implementa ledger.StockLedgerUseCase.
type StockLedger interface {
	ApplyInTx(
		histRepo repository.StockHistoryRepository,
		materialRepo repository.MaterialRepository,
		productRepo repository.ProductRepository,
		input ledger.ApplyInput,
		now time.Time,
	) (*entity.StockHistory, error)
	ReverseItemsInTx(
		histRepo repository.StockHistoryRepository,
		materialRepo repository.MaterialRepository,
		productRepo repository.ProductRepository,
		items []entity.PurchaseItem,
		reference, userID string,
		now time.Time,
	) error
}
