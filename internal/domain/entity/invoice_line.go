package entity

import "github.com/shopspring/decimal"

// InvoiceLine representa una línea de detalle de una factura.
// Subtotal = Quantity*UnitPrice - Discount; Tax = Subtotal*TaxRate/100 si el
// producto grava ITBIS; Total = Subtotal + Tax. Los derivados se calculan en
// el caso de uso con internal/domain/fiscal y se persisten ya redondeados.
type InvoiceLine struct {
	ID        string
	InvoiceID string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal // descuento de línea; no puede exceder Quantity*UnitPrice
	TaxRate   decimal.Decimal // porcentaje (18.00); 0 si exento
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
}
