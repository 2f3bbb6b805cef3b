package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/atokurn/financex-sub001/internal/domain/entity"
	"github.com/atokurn/financex-sub001/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL (usable con pool o tx).
// Las líneas viven en purchase_items con la misma convención material_id XOR product_id.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste la compra y sus líneas.
func (r *PurchaseRepo) Create(p *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, supplier, status, total, date, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Supplier, p.Status, p.Total, p.Date, p.UserID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	itemQuery := `
		INSERT INTO purchase_items (id, purchase_id, material_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, item := range p.Items {
		materialID, productID := splitItemRef(item.Item)
		_, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, p.ID, materialID, productID, item.Quantity, item.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert purchase item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una compra con sus líneas.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	query := `
		SELECT id, supplier, status, total, date, user_id, created_at, updated_at
		FROM purchases WHERE id = $1`
	var p entity.Purchase
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Supplier, &p.Status, &p.Total, &p.Date, &p.UserID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	items, err := r.loadItems([]string{p.ID})
	if err != nil {
		return nil, err
	}
	p.Items = items[p.ID]
	return &p, nil
}

// List lista compras con sus líneas, de más reciente a más antigua.
func (r *PurchaseRepo) List(limit, offset int) ([]*entity.Purchase, error) {
	query := `
		SELECT id, supplier, status, total, date, user_id, created_at, updated_at
		FROM purchases ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	list, ids, err := collectPurchases(rows)
	if err != nil {
		return nil, err
	}
	return r.attachItems(list, ids)
}

// ListByIDs carga compras con sus líneas; se usa en el borrado masivo con reverso.
func (r *PurchaseRepo) ListByIDs(ids []string) ([]*entity.Purchase, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, supplier, status, total, date, user_id, created_at, updated_at
		FROM purchases WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("list purchases by ids: %w", err)
	}
	defer rows.Close()
	list, found, err := collectPurchases(rows)
	if err != nil {
		return nil, err
	}
	return r.attachItems(list, found)
}

// DeleteByIDs elimina compras y sus líneas en bloque.
func (r *PurchaseRepo) DeleteByIDs(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM purchase_items WHERE purchase_id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("delete purchase items: %w", err)
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM purchases WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("delete purchases: %w", err)
	}
	return nil
}

func collectPurchases(rows pgx.Rows) ([]*entity.Purchase, []string, error) {
	var list []*entity.Purchase
	var ids []string
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.Supplier, &p.Status, &p.Total, &p.Date, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
		ids = append(ids, p.ID)
	}
	return list, ids, rows.Err()
}

func (r *PurchaseRepo) attachItems(list []*entity.Purchase, ids []string) ([]*entity.Purchase, error) {
	items, err := r.loadItems(ids)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		p.Items = items[p.ID]
	}
	return list, nil
}

func (r *PurchaseRepo) loadItems(purchaseIDs []string) (map[string][]entity.PurchaseItem, error) {
	if len(purchaseIDs) == 0 {
		return map[string][]entity.PurchaseItem{}, nil
	}
	query := `
		SELECT id, purchase_id, material_id, product_id, quantity, unit_price
		FROM purchase_items WHERE purchase_id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, purchaseIDs)
	if err != nil {
		return nil, fmt.Errorf("load purchase items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.PurchaseItem)
	for rows.Next() {
		var item entity.PurchaseItem
		var materialID, productID *string
		if err := rows.Scan(&item.ID, &item.PurchaseID, &materialID, &productID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		switch {
		case materialID != nil:
			item.Item = entity.MaterialRef(*materialID)
		case productID != nil:
			item.Item = entity.ProductRef(*productID)
		}
		out[item.PurchaseID] = append(out[item.PurchaseID], item)
	}
	return out, rows.Err()
}
