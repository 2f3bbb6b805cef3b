package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/atokurn/financex-sub001/internal/application/dto"
	"github.com/atokurn/financex-sub001/internal/domain"
	"github.com/atokurn/financex-sub001/internal/domain/entity"
	"github.com/atokurn/financex-sub001/internal/domain/repository"
)

// ExpenseUseCase casos de uso CRUD para gastos.
type ExpenseUseCase struct {
	repo repository.ExpenseRepository
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo}
}

// Create registra un gasto atribuido al usuario autenticado.
func (uc *ExpenseUseCase) Create(userID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	expense := &entity.Expense{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Category:  in.Category,
		Amount:    in.Amount,
		Date:      date,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// GetByID obtiene un gasto por ID.
func (uc *ExpenseUseCase) GetByID(id string) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, nil
	}
	return toExpenseResponse(expense), nil
}

// Update actualiza un gasto.
func (uc *ExpenseUseCase) Update(id string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, nil
	}
	if in.Name != nil {
		expense.Name = *in.Name
	}
	if in.Category != nil {
		expense.Category = *in.Category
	}
	if in.Amount != nil {
		if in.Amount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		expense.Amount = *in.Amount
	}
	if in.Date != nil {
		expense.Date = *in.Date
	}
	expense.UpdatedAt = time.Now()
	if err := uc.repo.Update(expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// List lista gastos con paginación.
func (uc *ExpenseUseCase) List(limit, offset int) (*dto.ExpenseListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toExpenseResponse(e))
	}
	return &dto.ExpenseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un gasto por ID.
func (uc *ExpenseUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	if e == nil {
		return nil
	}
	return &dto.ExpenseResponse{
		ID:        e.ID,
		Name:      e.Name,
		Category:  e.Category,
		Amount:    e.Amount,
		Date:      e.Date,
		UserID:    e.UserID,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
