package sale_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atokurn/financex-sub001/internal/application/dto"
	"github.com/atokurn/financex-sub001/internal/application/ledger"
	"github.com/atokurn/financex-sub001/internal/application/sale"
	"github.com/atokurn/financex-sub001/internal/domain"
	"github.com/atokurn/financex-sub001/internal/domain/entity"
	"github.com/atokurn/financex-sub001/internal/domain/repository"
)

// Fakes en memoria con snapshot/rollback, como en el resto de casos de uso.

type memStore struct {
	mu        sync.Mutex
	products  map[string]entity.Product
	sales     map[string]entity.Sale
	histories []entity.StockHistory
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]entity.Product),
		sales:    make(map[string]entity.Sale),
	}
}

type snapshot struct {
	products  map[string]entity.Product
	sales     map[string]entity.Sale
	histories []entity.StockHistory
}

func (s *memStore) snapshot() snapshot {
	snap := snapshot{
		products:  make(map[string]entity.Product, len(s.products)),
		sales:     make(map[string]entity.Sale, len(s.sales)),
		histories: append([]entity.StockHistory(nil), s.histories...),
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.sales {
		snap.sales[k] = v
	}
	return snap
}

func (s *memStore) restore(snap snapshot) {
	s.products = snap.products
	s.sales = snap.sales
	s.histories = snap.histories
}

type memHistoryRepo struct{ s *memStore }

func (r *memHistoryRepo) Create(h *entity.StockHistory) error {
	r.s.histories = append(r.s.histories, *h)
	return nil
}
func (r *memHistoryRepo) GetByID(id string) (*entity.StockHistory, error) { return nil, nil }
func (r *memHistoryRepo) ListByItem(item entity.ItemRef, limit, offset int) ([]*entity.StockHistory, error) {
	return nil, nil
}
func (r *memHistoryRepo) List(limit, offset int) ([]*entity.StockHistory, error) { return nil, nil }
func (r *memHistoryRepo) CountByItem(item entity.ItemRef) (int, error)           { return 0, nil }

// Las ventas nunca tocan materiales; el repo vacío satisface la interfaz.
type memMaterialRepo struct{}

func (memMaterialRepo) Create(*entity.Material) error                   { return nil }
func (memMaterialRepo) GetByID(string) (*entity.Material, error)       { return nil, nil }
func (memMaterialRepo) GetByCode(string) (*entity.Material, error)     { return nil, nil }
func (memMaterialRepo) Update(*entity.Material) error                  { return nil }
func (memMaterialRepo) List(int, int) ([]*entity.Material, error)      { return nil, nil }
func (memMaterialRepo) Delete(string) error                            { return nil }
func (memMaterialRepo) GetForUpdate(string) (*entity.Material, error)  { return nil, nil }
func (memMaterialRepo) UpdateStock(string, decimal.Decimal) error      { return nil }

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = *p; return nil }

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *memProductRepo) GetByCode(code string) (*entity.Product, error) { return nil, nil }
func (r *memProductRepo) Update(p *entity.Product) error                 { r.s.products[p.ID] = *p; return nil }
func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) Delete(id string) error { delete(r.s.products, id); return nil }

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *memProductRepo) UpdateStock(id string, stock decimal.Decimal) error {
	p := r.s.products[id]
	p.Stock = stock
	r.s.products[id] = p
	return nil
}

type memSaleRepo struct{ s *memStore }

func (r *memSaleRepo) Create(s *entity.Sale) error {
	cp := *s
	cp.Items = append([]entity.SaleItem(nil), s.Items...)
	r.s.sales[s.ID] = cp
	return nil
}

func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	if s, ok := r.s.sales[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *memSaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.s.sales {
		s := s
		out = append(out, &s)
	}
	return out, nil
}

type memTxRunner struct{ s *memStore }

func (tr *memTxRunner) RunSale(ctx context.Context, fn func(
	histRepo repository.StockHistoryRepository,
	materialRepo repository.MaterialRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tr.s.mu.Lock()
	defer tr.s.mu.Unlock()
	snap := tr.s.snapshot()
	err := fn(&memHistoryRepo{tr.s}, memMaterialRepo{}, &memProductRepo{tr.s}, &memSaleRepo{tr.s})
	if err != nil {
		tr.s.restore(snap)
		return err
	}
	return nil
}

const testUserID = "00000000-0000-0000-0000-000000000001"

func newSaleUC(store *memStore) *sale.SaleUseCase {
	return sale.NewSaleUseCase(
		&memTxRunner{store},
		ledger.NewStockLedgerUseCase(nil), // solo se usa ApplyInTx
		&memSaleRepo{store},
		&memProductRepo{store},
	)
}

func seedProduct(stock, price int64) *memStore {
	store := newMemStore()
	store.products["p1"] = entity.Product{
		ID: "p1", Name: "Pan", Code: "PRD-001",
		Price: decimal.NewFromInt(price), Stock: decimal.NewFromInt(stock),
	}
	return store
}

// Venta completada: salida de stock por línea y precio del producto cuando el de la línea es 0.
func TestCreate_CompletadaDescuentaStock(t *testing.T) {
	store := seedProduct(10, 3)
	uc := newSaleUC(store)

	out, err := uc.Create(context.Background(), testUserID, dto.CreateSaleRequest{
		Customer: "Cliente X",
		Status:   entity.SaleStatusCompleted,
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)

	assert.True(t, store.products["p1"].Stock.Equal(decimal.NewFromInt(6)), "10 - 4 = 6")
	assert.True(t, out.Total.Equal(decimal.NewFromInt(12)), "precio de línea 0 toma el del producto: 4*3")

	require.Len(t, store.histories, 1)
	h := store.histories[0]
	assert.Equal(t, entity.MovementTypeOut, h.Type)
	assert.Equal(t, entity.ProductRef("p1"), h.Item)
	assert.Equal(t, out.ID, h.Reference)
}

// Stock insuficiente en cualquier línea aborta toda la venta: ni venta ni filas de historial.
func TestCreate_StockInsuficienteAbortaVenta(t *testing.T) {
	store := seedProduct(3, 5)
	uc := newSaleUC(store)

	_, err := uc.Create(context.Background(), testUserID, dto.CreateSaleRequest{
		Status: entity.SaleStatusCompleted,
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: decimal.NewFromInt(5)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, store.products["p1"].Stock.Equal(decimal.NewFromInt(3)), "el stock queda intacto")
	assert.Empty(t, store.sales, "la venta no se persiste")
	assert.Empty(t, store.histories)
}

func TestCreate_PendienteNoMueveStock(t *testing.T) {
	store := seedProduct(10, 5)
	uc := newSaleUC(store)

	out, err := uc.Create(context.Background(), testUserID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(8)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusPending, out.Status)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(16)), "2*8, respeta el precio de línea")
	assert.True(t, store.products["p1"].Stock.Equal(decimal.NewFromInt(10)))
	assert.Empty(t, store.histories)
}

func TestCreate_Validaciones(t *testing.T) {
	store := seedProduct(10, 5)
	uc := newSaleUC(store)
	ctx := context.Background()

	_, err := uc.Create(ctx, "", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Create(ctx, testUserID, dto.CreateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = uc.Create(ctx, testUserID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "línea sin producto")

	_, err = uc.Create(ctx, testUserID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "no-existe", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
