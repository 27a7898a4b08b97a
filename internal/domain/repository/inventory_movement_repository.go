package repository

import "github.com/tu-usuario/factura-rd/internal/domain/entity"

// InventoryMovementRepository define el puerto de persistencia para movimientos.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	// ListByTransactionID devuelve los movimientos de un documento (p. ej. los
	// OUT de una factura, para revertirlos al anular).
	ListByTransactionID(transactionID string) ([]*entity.InventoryMovement, error)
}
