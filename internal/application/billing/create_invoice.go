package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/factura-rd/internal/application/dto"
	"github.com/tu-usuario/factura-rd/internal/domain"
	"github.com/tu-usuario/factura-rd/internal/domain/entity"
	"github.com/tu-usuario/factura-rd/internal/domain/fiscal"
	"github.com/tu-usuario/factura-rd/internal/domain/repository"
)

// defaultCreditTermDays plazo de crédito si el request no trae uno.
const defaultCreditTermDays = 30

// CreateInvoiceUseCase crea una factura: valida líneas, calcula totales con
// las reglas de ITBIS, emite el NCF y descuenta el inventario, todo en una
// sola transacción. Sin NCF válido no se persiste factura alguna.
type CreateInvoiceUseCase struct {
	txRunner      BillingTxRunner
	inventoryUC   InventoryUseCase
	allocator     *NCFAllocator
	customerRepo  repository.CustomerRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	invoiceRepo   repository.InvoiceRepository
}

// NewCreateInvoiceUseCase construye el caso de uso.
func NewCreateInvoiceUseCase(
	txRunner BillingTxRunner,
	inventoryUC InventoryUseCase,
	allocator *NCFAllocator,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	invoiceRepo repository.InvoiceRepository,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		txRunner:      txRunner,
		inventoryUC:   inventoryUC,
		allocator:     allocator,
		customerRepo:  customerRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		invoiceRepo:   invoiceRepo,
	}
}

// lineAmounts derivados de una línea ya validada.
type lineAmounts struct {
	subtotal decimal.Decimal
	tax      decimal.Decimal
	total    decimal.Decimal
	rate     decimal.Decimal
}

// computeLine valida y deriva una línea: subtotal = qty*precio - descuento,
// impuesto según la tasa del producto (una sola ronda de redondeo por campo).
func computeLine(item dto.InvoiceItemRequest, product *entity.Product) (lineAmounts, error) {
	gross := item.Quantity.Mul(item.UnitPrice)
	if item.Discount.IsNegative() || item.Discount.GreaterThan(gross) {
		return lineAmounts{}, domain.ErrInvalidLineDiscount
	}
	rate := decimal.Zero
	if product.Taxable {
		rate = product.TaxRate
	}
	bd, err := fiscal.ApplyTax(gross.Sub(item.Discount), rate)
	if err != nil {
		return lineAmounts{}, err
	}
	return lineAmounts{subtotal: bd.Subtotal, tax: bd.Tax, total: bd.Total, rate: rate}, nil
}

// CreateInvoice crea la factura completa. SequenceAlert en la respuesta lleva
// el aviso de baja disponibilidad de NCF cuando aplica (no bloquea la venta).
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, companyID, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyInvoice
	}
	if in.SaleType != entity.SaleTypeCash && in.SaleType != entity.SaleTypeCredit {
		return nil, domain.ErrInvalidInput
	}
	if in.GlobalDiscount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// Validar cliente y que sea de la empresa
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	// Validar almacén
	wh, _ := uc.warehouseRepo.GetByID(in.WarehouseID)
	if wh == nil || wh.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	// Validar productos y precios (fuera de la tx, solo lectura)
	productsByID := make(map[string]*entity.Product)
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		productsByID[item.ProductID] = product
		if item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.IsZero() {
			in.Items[i].UnitPrice = product.Price
		}
	}

	// Totales: las líneas se redondean individualmente y las sumas una vez más
	// al cierre, igual que la escala NUMERIC(12,2) en la que se guardan.
	var sumSubtotal, sumTax decimal.Decimal
	amounts := make([]lineAmounts, len(in.Items))
	for i, item := range in.Items {
		la, err := computeLine(item, productsByID[item.ProductID])
		if err != nil {
			return nil, err
		}
		amounts[i] = la
		sumSubtotal = sumSubtotal.Add(la.subtotal)
		sumTax = sumTax.Add(la.tax)
	}
	subtotal := fiscal.Round2(sumSubtotal)
	tax := fiscal.Round2(sumTax)
	total := fiscal.Round2(subtotal.Add(tax).Sub(in.GlobalDiscount))
	if total.IsNegative() {
		return nil, domain.ErrNegativeTotal
	}

	now := time.Now()
	invoiceID := uuid.New().String() // referencia en inventory_movements.TransactionID
	var inv *entity.Invoice
	var lines []*entity.InvoiceLine
	var sequenceAlert string

	err = uc.txRunner.RunBilling(ctx, func(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.PaymentRepository,
		ncfRepo repository.NCFSequenceRepository,
	) error {
		// 1) Descontar inventario por cada línea. Si no hay stock se retorna
		// error y se hace rollback completo (atomicidad).
		for _, item := range in.Items {
			product := productsByID[item.ProductID]
			if err := uc.inventoryUC.RegisterOUTInTx(
				movRepo, stockRepo,
				product,
				item.ProductID, in.WarehouseID, userID,
				item.Quantity,
				now,
				invoiceID,
			); err != nil {
				return err
			}
		}

		// 2) Emitir el NCF dentro de la misma transacción. Cualquier fallo
		// (sin rango, vencido, conflicto agotado) aborta la factura entera:
		// no existe factura sin comprobante fiscal.
		issued, err := uc.allocator.IssueNextIn(ctx, ncfRepo, companyID, in.NCFType, now)
		if err != nil {
			return err
		}
		sequenceAlert = issued.Warning

		// 3) Entidad factura: contado entra pagada; crédito entra pendiente
		// con fecha de vencimiento según el plazo.
		inv = &entity.Invoice{
			ID:             invoiceID,
			CompanyID:      companyID,
			CustomerID:     in.CustomerID,
			NCF:            issued.NCF,
			NCFType:        in.NCFType,
			Date:           now,
			SaleType:       in.SaleType,
			Subtotal:       subtotal,
			Tax:            tax,
			GlobalDiscount: fiscal.Round2(in.GlobalDiscount),
			Total:          total,
			Status:         entity.StatusPending,
			AmountPaid:     decimal.Zero,
			Balance:        total,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if in.SaleType == entity.SaleTypeCash {
			inv.AmountPaid = total
			inv.Balance = decimal.Zero
			inv.Status = entity.StatusPaid
		} else {
			term := in.CreditTermDays
			if term <= 0 {
				term = defaultCreditTermDays
			}
			inv.DueDate = now.AddDate(0, 0, term)
		}

		for i, item := range in.Items {
			lines = append(lines, &entity.InvoiceLine{
				ID:        uuid.New().String(),
				InvoiceID: inv.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Discount:  item.Discount,
				TaxRate:   amounts[i].rate,
				Subtotal:  amounts[i].subtotal,
				Tax:       amounts[i].tax,
				Total:     amounts[i].total,
			})
		}

		// 4) Persistencia: cabecera y líneas
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, line := range lines {
			if err := invoiceRepo.CreateLine(line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := invoiceToResponse(inv, customer.Name, lines)
	resp.SequenceAlert = sequenceAlert
	return resp, nil
}

// GetInvoice obtiene una factura por ID con su detalle completo.
func (uc *CreateInvoiceUseCase) GetInvoice(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil || inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	customer, _ := uc.customerRepo.GetByID(inv.CustomerID)
	customerName := ""
	if customer != nil {
		customerName = customer.Name
	}
	return invoiceToResponse(inv, customerName, lines), nil
}

// invoiceToResponse arma el DTO compartido por creación, pagos y anulación.
func invoiceToResponse(inv *entity.Invoice, customerName string, lines []*entity.InvoiceLine) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:             inv.ID,
		CompanyID:      inv.CompanyID,
		CustomerID:     inv.CustomerID,
		CustomerName:   customerName,
		NCF:            inv.NCF,
		NCFType:        inv.NCFType,
		Date:           inv.Date.Format("2006-01-02"),
		SaleType:       inv.SaleType,
		Subtotal:       inv.Subtotal,
		Tax:            inv.Tax,
		GlobalDiscount: inv.GlobalDiscount,
		Total:          inv.Total,
		AmountPaid:     inv.AmountPaid,
		Balance:        inv.Balance,
		Status:         inv.Status,
		VoidReason:     inv.VoidReason,
		Lines:          make([]dto.InvoiceLineResponse, 0, len(lines)),
	}
	if !inv.DueDate.IsZero() {
		resp.DueDate = inv.DueDate.Format("2006-01-02")
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.InvoiceLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Discount:  l.Discount,
			TaxRate:   l.TaxRate,
			Subtotal:  l.Subtotal,
			Tax:       l.Tax,
			Total:     l.Total,
		})
	}
	return resp
}

// IsBillingValidationError agrupa los errores caller-fixable del flujo de
// creación para el mapeo HTTP 400/422.
func IsBillingValidationError(err error) bool {
	return errors.Is(err, domain.ErrEmptyInvoice) ||
		errors.Is(err, domain.ErrInvalidLineDiscount) ||
		errors.Is(err, domain.ErrNegativeTotal) ||
		errors.Is(err, fiscal.ErrInvalidAmount) ||
		errors.Is(err, fiscal.ErrInvalidRate)
}
