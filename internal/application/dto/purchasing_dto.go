package dto

import "github.com/shopspring/decimal"

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name     string `json:"name"`
	IDType   string `json:"id_type"`
	IDNumber string `json:"id_number"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// SupplierResponse proveedor en respuestas.
type SupplierResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	IDType    string `json:"id_type"`
	IDNumber  string `json:"id_number"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// CreatePurchaseRequest body para POST /api/purchases. El NCF es el del
// comprobante emitido por el proveedor.
type CreatePurchaseRequest struct {
	SupplierID string          `json:"supplier_id"`
	NCF        string          `json:"ncf"`
	Date       string          `json:"date"` // YYYY-MM-DD
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
}

// PurchaseResponse compra en respuestas.
type PurchaseResponse struct {
	ID         string          `json:"id"`
	SupplierID string          `json:"supplier_id"`
	NCF        string          `json:"ncf"`
	Date       string          `json:"date"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
}
