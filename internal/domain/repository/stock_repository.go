package repository

import "github.com/tu-usuario/factura-rd/internal/domain/entity"

// StockRepository define el puerto de persistencia para stock por almacén.
type StockRepository interface {
	Get(productID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(productID, warehouseID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
}
