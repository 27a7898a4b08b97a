package repository

import "github.com/tu-usuario/factura-rd/internal/domain/entity"

// PaymentRepository define el puerto de persistencia para pagos.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	ListByInvoiceID(invoiceID string) ([]*entity.Payment, error)
}
