package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase representa una compra a proveedor. El NCF es el del comprobante
// emitido por el proveedor (no se asigna aquí); alimenta el reporte 606.
type Purchase struct {
	ID         string
	CompanyID  string
	SupplierID string
	NCF        string // NCF del comprobante del proveedor
	Date       time.Time
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal // ITBIS facturado por el proveedor
	Total      decimal.Decimal
	CreatedAt  time.Time
	CreatedBy  string // UserID
}
