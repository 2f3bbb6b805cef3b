package purchase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atokurn/financex-sub001/internal/application/dto"
	"github.com/atokurn/financex-sub001/internal/application/ledger"
	"github.com/atokurn/financex-sub001/internal/domain"
	"github.com/atokurn/financex-sub001/internal/domain/entity"
	"github.com/atokurn/financex-sub001/internal/domain/repository"
)

// PurchaseUseCase crea compras (con entrada de stock por línea si está completada) y
// las elimina en bloque con reverso compensatorio, todo en una sola transacción.
type PurchaseUseCase struct {
	txRunner     TxRunner
	stockLedger  StockLedger
	purchaseRepo repository.PurchaseRepository
	materialRepo repository.MaterialRepository
	productRepo  repository.ProductRepository
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner TxRunner,
	stockLedger StockLedger,
	purchaseRepo repository.PurchaseRepository,
	materialRepo repository.MaterialRepository,
	productRepo repository.ProductRepository,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:     txRunner,
		stockLedger:  stockLedger,
		purchaseRepo: purchaseRepo,
		materialRepo: materialRepo,
		productRepo:  productRepo,
	}
}

// Create registra una compra. Si Status es "completed", cada línea genera una entrada (in)
// de stock dentro de la misma transacción; si cualquier línea falla se revierte todo.
func (uc *PurchaseUseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.PurchaseStatusPending
	}
	if status != entity.PurchaseStatusPending && status != entity.PurchaseStatusCompleted {
		return nil, domain.ErrInvalidInput
	}

	// Validar líneas y que los ítems referenciados existan (solo lectura, fuera de la tx)
	items := make([]entity.PurchaseItem, 0, len(in.Items))
	total := decimal.Zero
	for _, line := range in.Items {
		item, err := entity.ItemRefFromIDs(line.MaterialID, line.ProductID)
		if err != nil {
			return nil, err
		}
		if !line.Quantity.GreaterThan(decimal.Zero) || line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if err := uc.checkItemExists(item); err != nil {
			return nil, err
		}
		items = append(items, entity.PurchaseItem{
			ID:        uuid.New().String(),
			Item:      item,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
		total = total.Add(line.Quantity.Mul(line.UnitPrice))
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	p := &entity.Purchase{
		ID:        uuid.New().String(),
		Supplier:  in.Supplier,
		Status:    status,
		Total:     total,
		Date:      date,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
		Items:     items,
	}
	for i := range p.Items {
		p.Items[i].PurchaseID = p.ID
	}

	err := uc.txRunner.RunPurchase(ctx, func(
		histRepo repository.StockHistoryRepository,
		materialRepo repository.MaterialRepository,
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		if err := purchaseRepo.Create(p); err != nil {
			return err
		}
		if p.Status != entity.PurchaseStatusCompleted {
			return nil
		}
		// Compra completada: una entrada de stock por línea, misma transacción
		for _, item := range p.Items {
			if _, err := uc.stockLedger.ApplyInTx(histRepo, materialRepo, productRepo, ledger.ApplyInput{
				Item:        item.Item,
				Type:        entity.MovementTypeIn,
				Quantity:    item.Quantity,
				Description: "entrada por compra",
				Reference:   p.ID,
				UserID:      userID,
			}, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(p), nil
}

// BulkDelete elimina compras en bloque. Por cada compra completada registra el reverso
// compensatorio (resta cada línea y deja una fila out) antes de borrar; compras pendientes
// se borran sin compensación. Todo ocurre en una sola transacción: cualquier falla
// (ítem inexistente, stock que quedaría negativo) aborta el lote completo.
func (uc *PurchaseUseCase) BulkDelete(ctx context.Context, userID string, ids []string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	if len(ids) == 0 {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	return uc.txRunner.RunPurchase(ctx, func(
		histRepo repository.StockHistoryRepository,
		materialRepo repository.MaterialRepository,
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		purchases, err := purchaseRepo.ListByIDs(ids)
		if err != nil {
			return err
		}
		if len(purchases) != len(ids) {
			return domain.ErrNotFound
		}
		for _, p := range purchases {
			if p.Status != entity.PurchaseStatusCompleted {
				continue
			}
			if err := uc.stockLedger.ReverseItemsInTx(histRepo, materialRepo, productRepo, p.Items, p.ID, userID, now); err != nil {
				return err
			}
		}
		return purchaseRepo.DeleteByIDs(ids)
	})
}

// GetByID obtiene una compra con sus líneas.
func (uc *PurchaseUseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	p, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toPurchaseResponse(p), nil
}

// List lista compras con paginación.
func (uc *PurchaseUseCase) List(ctx context.Context, limit, offset int) (*dto.PurchaseListResponse, error) {
	list, err := uc.purchaseRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPurchaseResponse(p))
	}
	return &dto.PurchaseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *PurchaseUseCase) checkItemExists(item entity.ItemRef) error {
	switch item.Kind {
	case entity.ItemKindMaterial:
		m, err := uc.materialRepo.GetByID(item.ID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
	case entity.ItemKindProduct:
		p, err := uc.productRepo.GetByID(item.ID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	if p == nil {
		return nil
	}
	items := make([]dto.PurchaseItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		line := dto.PurchaseItemResponse{
			ID:        it.ID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		}
		switch it.Item.Kind {
		case entity.ItemKindMaterial:
			line.MaterialID = it.Item.ID
		case entity.ItemKindProduct:
			line.ProductID = it.Item.ID
		}
		items = append(items, line)
	}
	return &dto.PurchaseResponse{
		ID:        p.ID,
		Supplier:  p.Supplier,
		Status:    p.Status,
		Total:     p.Total,
		Date:      p.Date,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Items:     items,
	}
}
