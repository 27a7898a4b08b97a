package repository

import (
	"time"

	"github.com/tu-usuario/factura-rd/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateLine(line *entity.InvoiceLine) error
	// Update actualiza los campos mutables: amount_paid, balance, status,
	// void_reason, voided_at. NCF y totales son inmutables tras la emisión.
	Update(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE) para registrar pagos
	// o anular sin carreras entre cajeros.
	GetByIDForUpdate(id string) (*entity.Invoice, error)
	GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error)
	// ListByPeriod devuelve las facturas emitidas en el mes/año dados (reporte 607).
	ListByPeriod(companyID string, from, to time.Time) ([]*entity.Invoice, error)
	// ListVoidedByPeriod devuelve las anuladas en el período (reporte 608).
	ListVoidedByPeriod(companyID string, from, to time.Time) ([]*entity.Invoice, error)
}
