package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense representa un gasto operativo registrado por un usuario.
type Expense struct {
	ID        string
	Name      string
	Category  string
	Amount    decimal.Decimal
	Date      time.Time
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
