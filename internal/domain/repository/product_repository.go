package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/factura-rd/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateCost actualiza solo el costo promedio ponderado (movimientos IN).
	UpdateCost(id string, cost decimal.Decimal) error
}
