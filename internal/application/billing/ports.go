package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/factura-rd/internal/domain/entity"
	"github.com/tu-usuario/factura-rd/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye los
// repos de inventario, facturación, pagos y secuencias NCF. La emisión del NCF
// y la persistencia de la factura comparten transacción: o se estampa el
// comprobante y se guarda todo, o no queda nada.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
		ncfRepo repository.NCFSequenceRepository,
	) error) error
}

// InventoryUseCase interfaz para integrar facturación con inventario.
// Las variantes *InTx ejecutan el movimiento usando los repositorios del caller
// (misma transacción); si retornan error (ej: ErrInsufficientStock) el caller
// debe hacer rollback.
type InventoryUseCase interface {
	RegisterOUTInTx(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		product *entity.Product,
		productID, warehouseID, userID string,
		quantity decimal.Decimal,
		now time.Time,
		transactionID string, // referencia a la factura (invoice ID)
	) error

	// RegisterINInTx devuelve mercancía al stock (anulación de factura).
	// No recalcula el costo promedio del producto: la reversión entra al mismo
	// costo con el que salió.
	RegisterINInTx(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		productID, warehouseID, userID string,
		quantity, unitCost decimal.Decimal,
		now time.Time,
		transactionID string,
	) error
}

// InvoiceLineForPDF línea enriquecida con datos de producto para el PDF.
type InvoiceLineForPDF struct {
	Line        *entity.InvoiceLine
	ProductName string
	ProductCode string
}

// InvoicePDFGenerator puerto para la representación gráfica de la factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.Invoice,
		company *entity.Company,
		customer *entity.Customer,
		lines []InvoiceLineForPDF,
	) ([]byte, error)
}
