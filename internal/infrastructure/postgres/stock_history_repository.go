package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/atokurn/financex-sub001/internal/domain"
	"github.com/atokurn/financex-sub001/internal/domain/entity"
	"github.com/atokurn/financex-sub001/internal/domain/repository"
)

var _ repository.StockHistoryRepository = (*StockHistoryRepo)(nil)

// StockHistoryRepo implementación append-only del log de movimientos sobre PostgreSQL.
// La referencia etiquetada (material XOR producto) se mapea a dos columnas nullables
// con un CHECK de exclusión mutua en el esquema.
type StockHistoryRepo struct {
	q Querier
}

// NewStockHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockHistoryRepository(q Querier) *StockHistoryRepo {
	return &StockHistoryRepo{q: q}
}

const historyColumns = "id, material_id, product_id, type, quantity, description, reference, user_id, created_at"

// Create persiste una fila del historial.
func (r *StockHistoryRepo) Create(h *entity.StockHistory) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	materialID, productID := splitItemRef(h.Item)
	if materialID == nil && productID == nil {
		return domain.ErrInvalidInput
	}
	query := `
		INSERT INTO stock_histories (id, material_id, product_id, type, quantity, description, reference, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		h.ID, materialID, productID, h.Type, h.Quantity, h.Description, h.Reference, h.UserID, h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock history: %w", err)
	}
	return nil
}

// GetByID obtiene una fila del historial por ID.
func (r *StockHistoryRepo) GetByID(id string) (*entity.StockHistory, error) {
	query := `SELECT ` + historyColumns + ` FROM stock_histories WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	h, err := scanHistory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock history: %w", err)
	}
	return h, nil
}

// ListByItem lista el historial de un material o producto, de más reciente a más antiguo.
func (r *StockHistoryRepo) ListByItem(item entity.ItemRef, limit, offset int) ([]*entity.StockHistory, error) {
	var query string
	switch item.Kind {
	case entity.ItemKindMaterial:
		query = `SELECT ` + historyColumns + ` FROM stock_histories WHERE material_id = $1
			ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	case entity.ItemKindProduct:
		query = `SELECT ` + historyColumns + ` FROM stock_histories WHERE product_id = $1
			ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	default:
		return nil, domain.ErrInvalidInput
	}
	rows, err := r.q.Query(context.Background(), query, item.ID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock history by item: %w", err)
	}
	defer rows.Close()
	return collectHistories(rows)
}

// List lista todo el historial, de más reciente a más antiguo.
func (r *StockHistoryRepo) List(limit, offset int) ([]*entity.StockHistory, error) {
	query := `SELECT ` + historyColumns + ` FROM stock_histories ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock history: %w", err)
	}
	defer rows.Close()
	return collectHistories(rows)
}

// CountByItem cuenta las filas del historial de un ítem.
func (r *StockHistoryRepo) CountByItem(item entity.ItemRef) (int, error) {
	var query string
	switch item.Kind {
	case entity.ItemKindMaterial:
		query = `SELECT COUNT(*) FROM stock_histories WHERE material_id = $1`
	case entity.ItemKindProduct:
		query = `SELECT COUNT(*) FROM stock_histories WHERE product_id = $1`
	default:
		return 0, domain.ErrInvalidInput
	}
	var count int
	if err := r.q.QueryRow(context.Background(), query, item.ID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count stock history: %w", err)
	}
	return count, nil
}

func splitItemRef(item entity.ItemRef) (materialID, productID *string) {
	switch item.Kind {
	case entity.ItemKindMaterial:
		id := item.ID
		return &id, nil
	case entity.ItemKindProduct:
		id := item.ID
		return nil, &id
	}
	return nil, nil
}

func scanHistory(row pgx.Row) (*entity.StockHistory, error) {
	var h entity.StockHistory
	var materialID, productID *string
	err := row.Scan(
		&h.ID, &materialID, &productID, &h.Type, &h.Quantity,
		&h.Description, &h.Reference, &h.UserID, &h.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	switch {
	case materialID != nil:
		h.Item = entity.MaterialRef(*materialID)
	case productID != nil:
		h.Item = entity.ProductRef(*productID)
	}
	return &h, nil
}

func collectHistories(rows pgx.Rows) ([]*entity.StockHistory, error) {
	var list []*entity.StockHistory
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock history: %w", err)
		}
		list = append(list, h)
	}
	return list, rows.Err()
}
