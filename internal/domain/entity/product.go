package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario (multi-almacén).
// Cost es promedio ponderado calculado desde movimientos; el stock se maneja
// por almacén en Stock.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta sin ITBIS
	Cost        decimal.Decimal // costo promedio ponderado (inicia en 0)
	TaxRate     decimal.Decimal // ITBIS en porcentaje: 0, 16.00 o 18.00
	Taxable     bool            // false = exento (TaxRate debe ser 0)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
