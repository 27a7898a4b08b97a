package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
	PaymentMethodCheck    = "check"
)

// Payment representa un abono registrado contra una factura de crédito.
type Payment struct {
	ID        string
	InvoiceID string
	Amount    decimal.Decimal
	Method    string
	Reference string // número de transferencia o cheque, opcional
	Date      time.Time
	CreatedAt time.Time
	CreatedBy string // UserID
}
