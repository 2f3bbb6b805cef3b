package ledger

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/atokurn/financex-sub001/internal/application/dto"
	"github.com/atokurn/financex-sub001/internal/domain/entity"
	"github.com/atokurn/financex-sub001/internal/domain/repository"
)

// HistoryUseCase consulta de solo lectura sobre el historial de movimientos.
type HistoryUseCase struct {
	repo repository.StockHistoryRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(repo repository.StockHistoryRepository) *HistoryUseCase {
	return &HistoryUseCase{repo: repo}
}

// List lista el historial, global o filtrado por ítem si materialID o productID vienen dados.
func (uc *HistoryUseCase) List(ctx context.Context, materialID, productID string, limit, offset int) (*dto.StockHistoryListResponse, error) {
	var (
		list []*entity.StockHistory
		err  error
	)
	if materialID == "" && productID == "" {
		list, err = uc.repo.List(limit, offset)
	} else {
		var item entity.ItemRef
		item, err = entity.ItemRefFromIDs(materialID, productID)
		if err != nil {
			return nil, err
		}
		list, err = uc.repo.ListByItem(item, limit, offset)
	}
	if err != nil {
		return nil, err
	}

	items := make([]dto.StockHistoryResponse, 0, len(list))
	for _, h := range list {
		items = append(items, *ToStockHistoryResponse(h))
	}
	return &dto.StockHistoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ExportCSV escribe el historial completo en formato CSV, de más reciente a más antiguo.
func (uc *HistoryUseCase) ExportCSV(ctx context.Context, w io.Writer) error {
	cw := csv.NewWriter(w)
	header := []string{"id", "material_id", "product_id", "type", "quantity", "description", "reference", "user_id", "created_at"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	const pageSize = 500
	for offset := 0; ; offset += pageSize {
		list, err := uc.repo.List(pageSize, offset)
		if err != nil {
			return err
		}
		for _, h := range list {
			var materialID, productID string
			switch h.Item.Kind {
			case entity.ItemKindMaterial:
				materialID = h.Item.ID
			case entity.ItemKindProduct:
				productID = h.Item.ID
			}
			record := []string{
				h.ID, materialID, productID, h.Type, h.Quantity.String(),
				h.Description, h.Reference, h.UserID, h.CreatedAt.Format(time.RFC3339),
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
		if len(list) < pageSize {
			break
		}
	}
	cw.Flush()
	return cw.Error()
}
