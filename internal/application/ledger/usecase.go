package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atokurn/financex-sub001/internal/domain"
	"github.com/atokurn/financex-sub001/internal/domain/entity"
	"github.com/atokurn/financex-sub001/internal/domain/repository"
)

// StockLedgerUseCase aplica movimientos de stock (in, out, adjustment) de forma transaccional,
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// Invariante: el stock del ítem siempre es igual al efecto acumulado de su historial.
type StockLedgerUseCase struct {
	txRunner TxRunner
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(txRunner TxRunner) *StockLedgerUseCase {
	return &StockLedgerUseCase{txRunner: txRunner}
}

// ApplyInput entrada para aplicar un movimiento de stock.
// Quantity: para in/out debe ser estrictamente positiva (delta); para adjustment es el
// nuevo stock absoluto y debe ser >= 0.
type ApplyInput struct {
	Item        entity.ItemRef
	Type        string
	Quantity    decimal.Decimal
	Description string
	Reference   string
	UserID      string
}

// validate revisa forma de la referencia, tipo y signo de la cantidad.
func (in ApplyInput) validate() error {
	if in.UserID == "" {
		return domain.ErrUnauthorized
	}
	if !in.Item.IsValid() {
		return domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.MovementTypeIn, entity.MovementTypeOut:
		if !in.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeAdjustment:
		if in.Quantity.IsNegative() {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// Apply inicia una transacción, bloquea la fila del ítem, calcula el nuevo stock según tipo,
// inserta la fila de historial y escribe el stock; Commit o Rollback (todo o nada).
// Devuelve la fila de historial creada.
func (uc *StockLedgerUseCase) Apply(ctx context.Context, input ApplyInput) (*entity.StockHistory, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	var created *entity.StockHistory
	err := uc.txRunner.Run(ctx, func(
		histRepo repository.StockHistoryRepository,
		materialRepo repository.MaterialRepository,
		productRepo repository.ProductRepository,
	) error {
		h, err := uc.ApplyInTx(histRepo, materialRepo, productRepo, input, now)
		if err != nil {
			return err
		}
		created = h
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ApplyInTx aplica un movimiento usando los repositorios proporcionados (misma transacción del caller).
// Lo usan las compras y ventas para mover stock dentro de su propia transacción.
func (uc *StockLedgerUseCase) ApplyInTx(
	histRepo repository.StockHistoryRepository,
	materialRepo repository.MaterialRepository,
	productRepo repository.ProductRepository,
	input ApplyInput,
	now time.Time,
) (*entity.StockHistory, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	// Bloquea la fila del ítem (SELECT FOR UPDATE) para evitar lost updates entre aplicaciones concurrentes
	current, err := lockCurrentStock(materialRepo, productRepo, input.Item)
	if err != nil {
		return nil, err
	}

	var newStock decimal.Decimal
	switch input.Type {
	case entity.MovementTypeIn:
		newStock = current.Add(input.Quantity)
	case entity.MovementTypeOut:
		newStock = current.Sub(input.Quantity)
	case entity.MovementTypeAdjustment:
		newStock = input.Quantity
	}
	if newStock.IsNegative() {
		return nil, domain.ErrInsufficientStock
	}

	hist := &entity.StockHistory{
		ID:          uuid.New().String(),
		Item:        input.Item,
		Type:        input.Type,
		Quantity:    input.Quantity,
		Description: input.Description,
		Reference:   input.Reference,
		UserID:      input.UserID,
		CreatedAt:   now,
	}
	if err := histRepo.Create(hist); err != nil {
		return nil, err
	}
	if err := writeStock(materialRepo, productRepo, input.Item, newStock); err != nil {
		return nil, err
	}
	return hist, nil
}

// ReverseItemsInTx registra el reverso de líneas de una compra completada dentro de la
// transacción del caller: por cada línea resta su cantidad y deja una fila compensatoria
// de tipo out, sin importar la dirección del movimiento original.
func (uc *StockLedgerUseCase) ReverseItemsInTx(
	histRepo repository.StockHistoryRepository,
	materialRepo repository.MaterialRepository,
	productRepo repository.ProductRepository,
	items []entity.PurchaseItem,
	reference, userID string,
	now time.Time,
) error {
	for _, item := range items {
		_, err := uc.ApplyInTx(histRepo, materialRepo, productRepo, ApplyInput{
			Item:        item.Item,
			Type:        entity.MovementTypeOut,
			Quantity:    item.Quantity,
			Description: "reverso por eliminación de compra",
			Reference:   reference,
			UserID:      userID,
		}, now)
		if err != nil {
			return err
		}
	}
	return nil
}

func lockCurrentStock(
	materialRepo repository.MaterialRepository,
	productRepo repository.ProductRepository,
	item entity.ItemRef,
) (decimal.Decimal, error) {
	switch item.Kind {
	case entity.ItemKindMaterial:
		m, err := materialRepo.GetForUpdate(item.ID)
		if err != nil {
			return decimal.Zero, err
		}
		if m == nil {
			return decimal.Zero, domain.ErrNotFound
		}
		return m.Stock, nil
	case entity.ItemKindProduct:
		p, err := productRepo.GetForUpdate(item.ID)
		if err != nil {
			return decimal.Zero, err
		}
		if p == nil {
			return decimal.Zero, domain.ErrNotFound
		}
		return p.Stock, nil
	}
	return decimal.Zero, domain.ErrInvalidInput
}

func writeStock(
	materialRepo repository.MaterialRepository,
	productRepo repository.ProductRepository,
	item entity.ItemRef,
	stock decimal.Decimal,
) error {
	if item.Kind == entity.ItemKindMaterial {
		return materialRepo.UpdateStock(item.ID, stock)
	}
	return productRepo.UpdateStock(item.ID, stock)
}
