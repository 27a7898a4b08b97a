package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name     string `json:"name"`
	IDType   string `json:"id_type"` // "1" RNC, "2" Cédula, "3" Pasaporte
	IDNumber string `json:"id_number"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	IDType    string `json:"id_type"`
	IDNumber  string `json:"id_number"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// WarehouseID: almacén del cual se descuenta el inventario.
// NCFType decide de qué secuencia sale el comprobante (B01, B02, ...).
type CreateInvoiceRequest struct {
	CustomerID     string               `json:"customer_id"`
	WarehouseID    string               `json:"warehouse_id"`
	NCFType        string               `json:"ncf_type"`
	SaleType       string               `json:"sale_type"` // cash | credit
	CreditTermDays int                  `json:"credit_term_days,omitempty"`
	GlobalDiscount decimal.Decimal      `json:"global_discount,omitempty"`
	Items          []InvoiceItemRequest `json:"items"`
}

// InvoiceItemRequest línea de factura.
// Si UnitPrice va en cero se toma el precio del producto; Discount es el
// descuento absoluto de la línea (no porcentaje).
type InvoiceItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount,omitempty"`
}

// InvoiceResponse factura con detalle para POST/GET /api/invoices.
type InvoiceResponse struct {
	ID             string                `json:"id"`
	CompanyID      string                `json:"company_id"`
	CustomerID     string                `json:"customer_id"`
	CustomerName   string                `json:"customer_name,omitempty"`
	NCF            string                `json:"ncf"`
	NCFType        string                `json:"ncf_type"`
	Date           string                `json:"date"`
	DueDate        string                `json:"due_date,omitempty"`
	SaleType       string                `json:"sale_type"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	Tax            decimal.Decimal       `json:"tax"`
	GlobalDiscount decimal.Decimal       `json:"global_discount"`
	Total          decimal.Decimal       `json:"total"`
	AmountPaid     decimal.Decimal       `json:"amount_paid"`
	Balance        decimal.Decimal       `json:"balance"`
	Status         string                `json:"status"`
	VoidReason     string                `json:"void_reason,omitempty"`
	SequenceAlert  string                `json:"sequence_alert,omitempty"` // aviso "quedan N números", no bloqueante
	Lines          []InvoiceLineResponse `json:"lines"`
}

// InvoiceLineResponse línea de detalle en la respuesta.
type InvoiceLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
}

// RegisterPaymentRequest body para POST /api/invoices/:id/payments.
type RegisterPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"` // cash | card | transfer | check
	Reference string          `json:"reference,omitempty"`
}

// VoidInvoiceRequest body para POST /api/invoices/:id/void.
type VoidInvoiceRequest struct {
	Reason string `json:"reason"`
}
