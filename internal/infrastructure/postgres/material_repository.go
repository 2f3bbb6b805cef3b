package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/atokurn/financex-sub001/internal/domain"
	"github.com/atokurn/financex-sub001/internal/domain/entity"
	"github.com/atokurn/financex-sub001/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = "id, name, code, unit, price, stock, min_stock, created_at, updated_at"

// Create persiste un nuevo material.
func (r *MaterialRepo) Create(m *entity.Material) error {
	query := `
		INSERT INTO materials (id, name, code, unit, price, stock, min_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.Code, m.Unit, m.Price, m.Stock, m.MinStock, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID.
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByCode obtiene un material por código único.
func (r *MaterialRepo) GetByCode(code string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE code = $1`
	return r.scanOne(query, code)
}

// GetForUpdate obtiene el material y bloquea la fila para update (SELECT FOR UPDATE).
func (r *MaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// Update actualiza los datos del material (sin tocar stock).
func (r *MaterialRepo) Update(m *entity.Material) error {
	query := `
		UPDATE materials SET name = $2, unit = $3, price = $4, min_stock = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.Unit, m.Price, m.MinStock, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

// UpdateStock escribe el nuevo stock absoluto del material.
func (r *MaterialRepo) UpdateStock(id string, stock decimal.Decimal) error {
	query := `UPDATE materials SET stock = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, stock)
	if err != nil {
		return fmt.Errorf("update material stock: %w", err)
	}
	return nil
}

// List lista materiales con paginación.
func (r *MaterialRepo) List(limit, offset int) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Code, &m.Unit, &m.Price, &m.Stock, &m.MinStock, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Delete elimina un material por ID.
func (r *MaterialRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	return nil
}

func (r *MaterialRepo) scanOne(query string, arg any) (*entity.Material, error) {
	var m entity.Material
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&m.ID, &m.Name, &m.Code, &m.Unit, &m.Price, &m.Stock, &m.MinStock, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}
