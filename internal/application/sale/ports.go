package sale

import (
	"context"
	"time"

	"github.com/atokurn/financex-sub001/internal/application/ledger"
	"github.com/atokurn/financex-sub001/internal/domain/entity"
	"github.com/atokurn/financex-sub001/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con repos de ventas y de inventario.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		histRepo repository.StockHistoryRepository,
		materialRepo repository.MaterialRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// StockLedger salida de stock ejecutada dentro de la transacción del caller.
// Lo implementa ledger.StockLedgerUseCase.
type StockLedger interface {
	ApplyInTx(
		histRepo repository.StockHistoryRepository,
		materialRepo repository.MaterialRepository,
		productRepo repository.ProductRepository,
		input ledger.ApplyInput,
		now time.Time,
	) (*entity.StockHistory, error)
}
