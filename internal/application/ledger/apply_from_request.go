package ledger

import (
	"context"

	"github.com/atokurn/financex-sub001/internal/application/dto"
	"github.com/atokurn/financex-sub001/internal/domain/entity"
)

// ApplyFromRequest adapta el request HTTP al caso de uso Apply(ctx, ApplyInput).
// Traduce el par material_id/product_id a la referencia etiquetada (exactamente uno).
func (uc *StockLedgerUseCase) ApplyFromRequest(ctx context.Context, userID string, in dto.ApplyMovementRequest) (*dto.StockHistoryResponse, error) {
	item, err := entity.ItemRefFromIDs(in.MaterialID, in.ProductID)
	if err != nil {
		return nil, err
	}
	hist, err := uc.Apply(ctx, ApplyInput{
		Item:        item,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Description: in.Description,
		Reference:   in.Reference,
		UserID:      userID,
	})
	if err != nil {
		return nil, err
	}
	return ToStockHistoryResponse(hist), nil
}

// ToStockHistoryResponse mapea la entidad a su DTO de salida.
func ToStockHistoryResponse(h *entity.StockHistory) *dto.StockHistoryResponse {
	if h == nil {
		return nil
	}
	out := &dto.StockHistoryResponse{
		ID:          h.ID,
		Type:        h.Type,
		Quantity:    h.Quantity,
		Description: h.Description,
		Reference:   h.Reference,
		UserID:      h.UserID,
		CreatedAt:   h.CreatedAt,
	}
	switch h.Item.Kind {
	case entity.ItemKindMaterial:
		out.MaterialID = h.Item.ID
	case entity.ItemKindProduct:
		out.ProductID = h.Item.ID
	}
	return out
}
