package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/atokurn/financex-sub001/internal/application/dto"
	"github.com/atokurn/financex-sub001/internal/domain"
	"github.com/atokurn/financex-sub001/internal/domain/entity"
	"github.com/atokurn/financex-sub001/internal/domain/repository"
)

// MaterialUseCase casos de uso CRUD para materiales. Stock solo cambia vía movimientos.
type MaterialUseCase struct {
	repo repository.MaterialRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo}
}

// Create crea un material con su stock inicial.
func (uc *MaterialUseCase) Create(in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	existing, _ := uc.repo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Stock.IsNegative() || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	material := &entity.Material{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Code:      in.Code,
		Unit:      in.Unit,
		Price:     in.Price,
		Stock:     in.Stock,
		MinStock:  in.MinStock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// GetByID obtiene un material por ID.
func (uc *MaterialUseCase) GetByID(id string) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, nil
	}
	return toMaterialResponse(material), nil
}

// Update actualiza un material. No permite modificar Stock (se maneja vía movimientos).
func (uc *MaterialUseCase) Update(id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, nil
	}
	if in.Name != nil {
		material.Name = *in.Name
	}
	if in.Unit != nil {
		material.Unit = *in.Unit
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		material.Price = *in.Price
	}
	if in.MinStock != nil {
		material.MinStock = *in.MinStock
	}
	material.UpdatedAt = time.Now()
	if err := uc.repo.Update(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// List lista materiales con paginación.
func (uc *MaterialUseCase) List(limit, offset int) (*dto.MaterialListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return &dto.MaterialListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un material por ID.
func (uc *MaterialUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.MaterialResponse{
		ID:        m.ID,
		Name:      m.Name,
		Code:      m.Code,
		Unit:      m.Unit,
		Price:     m.Price,
		Stock:     m.Stock,
		MinStock:  m.MinStock,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
