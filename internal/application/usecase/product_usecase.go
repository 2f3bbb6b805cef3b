package usecase

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atokurn/financex-sub001/internal/application/dto"
	"github.com/atokurn/financex-sub001/internal/domain"
	"github.com/atokurn/financex-sub001/internal/domain/entity"
	"github.com/atokurn/financex-sub001/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Stock solo cambia vía movimientos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto con su stock inicial.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, _ := uc.repo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Stock.IsNegative() || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Code:      in.Code,
		Category:  in.Category,
		Price:     in.Price,
		Stock:     in.Stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar Stock (se maneja vía movimientos).
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// ExportCSV escribe todos los productos en formato CSV (cabecera + una fila por producto).
func (uc *ProductUseCase) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"code", "name", "category", "price", "stock"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	const pageSize = 500
	for offset := 0; ; offset += pageSize {
		list, err := uc.repo.List(pageSize, offset)
		if err != nil {
			return err
		}
		for _, p := range list {
			record := []string{p.Code, p.Name, p.Category, p.Price.String(), p.Stock.String()}
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

// ImportCSV crea productos desde un CSV con cabecera code,name,category,price,stock.
// Filas con código ya existente se omiten. Devuelve cuántos productos se crearon.
func (uc *ProductUseCase) ImportCSV(r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return 0, domain.ErrInvalidInput
	}
	if len(header) < 2 || header[0] != "code" || header[1] != "name" {
		return 0, domain.ErrInvalidInput
	}

	created := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return created, domain.ErrInvalidInput
		}
		in := dto.CreateProductRequest{Code: record[0], Name: record[1]}
		if in.Code == "" || in.Name == "" {
			return created, domain.ErrInvalidInput
		}
		if len(record) > 2 {
			in.Category = record[2]
		}
		if len(record) > 3 && record[3] != "" {
			price, err := decimal.NewFromString(record[3])
			if err != nil {
				return created, domain.ErrInvalidInput
			}
			in.Price = price
		}
		if len(record) > 4 && record[4] != "" {
			stock, err := decimal.NewFromString(record[4])
			if err != nil {
				return created, domain.ErrInvalidInput
			}
			in.Stock = stock
		}
		if _, err := uc.Create(in); err != nil {
			if err == domain.ErrDuplicate {
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Code:      p.Code,
		Category:  p.Category,
		Price:     p.Price,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
