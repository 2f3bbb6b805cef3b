package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atokurn/financex-sub001/internal/application/ledger"
	"github.com/atokurn/financex-sub001/internal/application/purchase"
	"github.com/atokurn/financex-sub001/internal/application/sale"
	"github.com/atokurn/financex-sub001/internal/domain/repository"
)

// Ensure TxRunner implementa los runners de ledger, purchase y sale.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ purchase.TxRunner = (*TxRunner)(nil)
var _ sale.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	histRepo repository.StockHistoryRepository,
	materialRepo repository.MaterialRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	histRepo := NewStockHistoryRepository(tx)
	materialRepo := NewMaterialRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(histRepo, materialRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPurchase inicia una transacción con repos de inventario y compras
// (para crear compras completadas y el borrado masivo con reverso).
func (r *TxRunner) RunPurchase(ctx context.Context, fn func(
	histRepo repository.StockHistoryRepository,
	materialRepo repository.MaterialRepository,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	histRepo := NewStockHistoryRepository(tx)
	materialRepo := NewMaterialRepository(tx)
	productRepo := NewProductRepository(tx)
	purchaseRepo := NewPurchaseRepository(tx)

	if err := fn(histRepo, materialRepo, productRepo, purchaseRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale inicia una transacción con repos de inventario y ventas.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	histRepo repository.StockHistoryRepository,
	materialRepo repository.MaterialRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	histRepo := NewStockHistoryRepository(tx)
	materialRepo := NewMaterialRepository(tx)
	productRepo := NewProductRepository(tx)
	saleRepo := NewSaleRepository(tx)

	if err := fn(histRepo, materialRepo, productRepo, saleRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
