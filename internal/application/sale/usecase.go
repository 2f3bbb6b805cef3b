package sale

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

// SaleUseCase crea ventas descontando el stock de producto por línea en una sola transacción.
type SaleUseCase struct {
	txRunner    TxRunner
	stockLedger StockLedger
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	stockLedger StockLedger,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:    txRunner,
		stockLedger: stockLedger,
		saleRepo:    saleRepo,
		productRepo: productRepo,
	}
}

// Create registra una venta. Si Status es "completed", cada línea genera una salida (out)
// de stock dentro de la misma transacción; sin stock suficiente se revierte todo.
func (uc *SaleUseCase) Create(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.SaleStatusPending
	}
	if status != entity.SaleStatusPending && status != entity.SaleStatusCompleted {
		return nil, domain.ErrInvalidInput
	}

	// Validar líneas y productos (solo lectura, fuera de la tx); precio 0 toma el del producto
	items := make([]entity.SaleItem, 0, len(in.Items))
	total := decimal.Zero
	for _, line := range in.Items {
		if line.ProductID == "" || !line.Quantity.GreaterThan(decimal.Zero) || line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		unitPrice := line.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.Price
		}
		items = append(items, entity.SaleItem{
			ID:        uuid.New().String(),
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
		})
		total = total.Add(line.Quantity.Mul(unitPrice))
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	s := &entity.Sale{
		ID:        uuid.New().String(),
		Customer:  in.Customer,
		Status:    status,
		Total:     total,
		Date:      date,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
		Items:     items,
	}
	for i := range s.Items {
		s.Items[i].SaleID = s.ID
	}

	err := uc.txRunner.RunSale(ctx, func(
		histRepo repository.StockHistoryRepository,
		materialRepo repository.MaterialRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		if err := saleRepo.Create(s); err != nil {
			return err
		}
		if s.Status != entity.SaleStatusCompleted {
			return nil
		}
		for _, item := range s.Items {
			if _, err := uc.stockLedger.ApplyInTx(histRepo, materialRepo, productRepo, ledger.ApplyInput{
				Item:        entity.ProductRef(item.ProductID),
				Type:        entity.MovementTypeOut,
				Quantity:    item.Quantity,
				Description: "salida por venta",
				Reference:   s.ID,
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
	return toSaleResponse(s), nil
}

// GetByID obtiene una venta con sus líneas.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	return toSaleResponse(s), nil
}

// List lista ventas con paginación.
func (uc *SaleUseCase) List(ctx context.Context, limit, offset int) (*dto.SaleListResponse, error) {
	list, err := uc.saleRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return &dto.SaleResponse{
		ID:        s.ID,
		Customer:  s.Customer,
		Status:    s.Status,
		Total:     s.Total,
		Date:      s.Date,
		UserID:    s.UserID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Items:     items,
	}
}
