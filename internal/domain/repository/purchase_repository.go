package repository

import (
	"time"

	"github.com/tu-usuario/factura-rd/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para compras (reporte 606).
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	GetByID(id string) (*entity.Purchase, error)
	// ListByPeriod devuelve las compras registradas en el mes/año dados.
	ListByPeriod(companyID string, from, to time.Time) ([]*entity.Purchase, error)
}
