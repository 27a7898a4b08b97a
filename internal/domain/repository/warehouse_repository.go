package repository

import "github.com/tu-usuario/factura-rd/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para almacenes.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	ListByCompany(companyID string) ([]*entity.Warehouse, error)
}
