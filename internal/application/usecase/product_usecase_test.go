package usecase_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atokurn/financex-sub001/internal/application/dto"
	"github.com/atokurn/financex-sub001/internal/application/usecase"
	"github.com/atokurn/financex-sub001/internal/domain"
	"github.com/atokurn/financex-sub001/internal/domain/entity"
)

// memProductRepo fake en memoria del puerto ProductRepository. Conserva el orden de
// inserción para que la paginación del export sea estable.
type memProductRepo struct {
	products []entity.Product
}

func (r *memProductRepo) Create(p *entity.Product) error {
	r.products = append(r.products, *p)
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetByCode(code string) (*entity.Product, error) {
	for i := range r.products {
		if r.products[i].Code == code {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	for i := range r.products {
		if r.products[i].ID == p.ID {
			r.products[i] = *p
		}
	}
	return nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	if offset >= len(r.products) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.products) {
		end = len(r.products)
	}
	var out []*entity.Product
	for i := offset; i < end; i++ {
		p := r.products[i]
		out = append(out, &p)
	}
	return out, nil
}

func (r *memProductRepo) Delete(id string) error {
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *memProductRepo) UpdateStock(id string, stock decimal.Decimal) error {
	for i := range r.products {
		if r.products[i].ID == id {
			r.products[i].Stock = stock
		}
	}
	return nil
}

func TestProductCreate_CodigoDuplicado(t *testing.T) {
	repo := &memProductRepo{}
	uc := usecase.NewProductUseCase(repo)

	_, err := uc.Create(dto.CreateProductRequest{Name: "Pan", Code: "PRD-001"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateProductRequest{Name: "Otro pan", Code: "PRD-001"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUpdate_NoTocaStock(t *testing.T) {
	repo := &memProductRepo{}
	uc := usecase.NewProductUseCase(repo)

	created, err := uc.Create(dto.CreateProductRequest{
		Name: "Pan", Code: "PRD-001", Stock: decimal.NewFromInt(9),
	})
	require.NoError(t, err)

	name := "Pan integral"
	out, err := uc.Update(created.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Pan integral", out.Name)
	assert.True(t, out.Stock.Equal(decimal.NewFromInt(9)), "el update de catálogo no cambia el stock")
}

func TestProductExportCSV(t *testing.T) {
	repo := &memProductRepo{}
	uc := usecase.NewProductUseCase(repo)

	_, err := uc.Create(dto.CreateProductRequest{
		Name: "Pan", Code: "PRD-001", Category: "panadería",
		Price: decimal.NewFromInt(3), Stock: decimal.NewFromInt(12),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, uc.ExportCSV(&buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"code", "name", "category", "price", "stock"}, records[0])
	assert.Equal(t, []string{"PRD-001", "Pan", "panadería", "3", "12"}, records[1])
}

func TestProductImportCSV(t *testing.T) {
	repo := &memProductRepo{}
	uc := usecase.NewProductUseCase(repo)

	// PRD-001 ya existe: su fila se omite sin abortar el import
	_, err := uc.Create(dto.CreateProductRequest{Name: "Pan", Code: "PRD-001"})
	require.NoError(t, err)

	input := strings.Join([]string{
		"code,name,category,price,stock",
		"PRD-001,Pan,panadería,3,12",
		"PRD-002,Torta,panadería,15,2",
		"PRD-003,Café,bebidas,8,40",
	}, "\n")

	created, err := uc.ImportCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, created, "la fila duplicada se omite")

	p, err := repo.GetByCode("PRD-003")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Café", p.Name)
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(40)))
}

func TestProductImportCSV_CabeceraInvalida(t *testing.T) {
	uc := usecase.NewProductUseCase(&memProductRepo{})

	_, err := uc.ImportCSV(strings.NewReader("sku,descripcion\nX,Y"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
