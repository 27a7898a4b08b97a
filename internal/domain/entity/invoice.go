package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/factura-rd/internal/domain"
)

// Tipos de venta.
const (
	SaleTypeCash   = "cash"   // contado: se marca pagada al emitir
	SaleTypeCredit = "credit" // crédito: entra pendiente con fecha de vencimiento
)

// Estados de una factura. Las transiciones son monótonas salvo la anulación
// explícita; nunca se escriben directo en la columna, siempre vía los métodos
// de la entidad.
const (
	StatusPending = "pending"
	StatusPartial = "partial"
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
	StatusVoided  = "voided"
)

// Invoice representa la cabecera de una factura de venta.
// NCF es inmutable una vez estampado: sin NCF válido la factura no existe
// legalmente, por eso la emisión del consecutivo y la persistencia van en la
// misma transacción.
type Invoice struct {
	ID             string
	CompanyID      string
	CustomerID     string
	NCF            string // Número de Comprobante Fiscal asignado (ej. "B0100000042")
	NCFType        string // B01, B02, B14, B15, B16
	Date           time.Time
	DueDate        time.Time // solo crédito; cero para contado
	SaleType       string    // cash | credit
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal // ITBIS total
	GlobalDiscount decimal.Decimal
	Total          decimal.Decimal // Subtotal + Tax - GlobalDiscount
	AmountPaid     decimal.Decimal
	Balance        decimal.Decimal // Total - AmountPaid
	Status         string
	VoidReason     string    // motivo de anulación (reporte 608)
	VoidedAt       time.Time // cero si no está anulada
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ApplyPayment registra un abono y recalcula balance y estado.
// Rechaza sobrepagos: es la política más segura frente a la DGII (el monto
// pagado de una factura emitida no puede exceder su total).
func (i *Invoice) ApplyPayment(amount decimal.Decimal, now time.Time) error {
	if i.Status == StatusVoided {
		return domain.ErrInvoiceVoided
	}
	if !amount.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if amount.GreaterThan(i.Balance) {
		return domain.ErrOverpayment
	}
	i.AmountPaid = i.AmountPaid.Add(amount)
	i.Balance = i.Total.Sub(i.AmountPaid)
	if i.Balance.IsZero() {
		i.Status = StatusPaid
	} else {
		i.Status = StatusPartial
	}
	i.UpdatedAt = now
	return nil
}

// MarkOverdue pasa a vencida una factura de crédito con balance pendiente cuya
// fecha de vencimiento ya pasó. La evaluación es externa (query periódica),
// aquí solo se valida la transición.
func (i *Invoice) MarkOverdue(today time.Time) error {
	if i.Status != StatusPending && i.Status != StatusPartial {
		return domain.ErrConflict
	}
	if i.DueDate.IsZero() || !today.After(i.DueDate) {
		return domain.ErrConflict
	}
	i.Status = StatusOverdue
	i.UpdatedAt = today
	return nil
}

// Void anula la factura con motivo obligatorio. Es terminal: ninguna
// transición sale de voided. La reversión del inventario la hace el caso de
// uso en la misma transacción.
func (i *Invoice) Void(reason string, now time.Time) error {
	if i.Status == StatusVoided {
		return domain.ErrInvoiceVoided
	}
	if reason == "" {
		return domain.ErrVoidReasonRequired
	}
	i.Status = StatusVoided
	i.VoidReason = reason
	i.VoidedAt = now
	i.UpdatedAt = now
	return nil
}
