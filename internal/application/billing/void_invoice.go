package billing

import (
	"context"
	"time"

	"github.com/tu-usuario/factura-rd/internal/application/dto"
	"github.com/tu-usuario/factura-rd/internal/domain"
	"github.com/tu-usuario/factura-rd/internal/domain/entity"
	"github.com/tu-usuario/factura-rd/internal/domain/repository"
)

// VoidInvoiceUseCase anula una factura con motivo obligatorio y revierte sus
// salidas de inventario en la misma transacción. La factura anulada conserva
// su NCF (lo exige el reporte 608: los comprobantes anulados también se
// declaran) y no admite transiciones posteriores.
type VoidInvoiceUseCase struct {
	txRunner     BillingTxRunner
	inventoryUC  InventoryUseCase
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
}

// NewVoidInvoiceUseCase construye el caso de uso.
func NewVoidInvoiceUseCase(
	txRunner BillingTxRunner,
	inventoryUC InventoryUseCase,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
) *VoidInvoiceUseCase {
	return &VoidInvoiceUseCase{
		txRunner:     txRunner,
		inventoryUC:  inventoryUC,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
	}
}

// VoidInvoice anula la factura y devuelve la mercancía al stock. Cada
// movimiento OUT original se compensa con un IN por la misma cantidad y al
// mismo costo unitario con el que salió.
func (uc *VoidInvoiceUseCase) VoidInvoice(ctx context.Context, companyID, userID, invoiceID string, in dto.VoidInvoiceRequest) (*dto.InvoiceResponse, error) {
	now := time.Now()
	var inv *entity.Invoice

	err := uc.txRunner.RunBilling(ctx, func(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.PaymentRepository,
		_ repository.NCFSequenceRepository,
	) error {
		var err error
		inv, err = invoiceRepo.GetByIDForUpdate(invoiceID)
		if err != nil || inv == nil {
			return domain.ErrNotFound
		}
		if inv.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if err := inv.Void(in.Reason, now); err != nil {
			return err
		}

		movements, err := movRepo.ListByTransactionID(invoiceID)
		if err != nil {
			return err
		}
		for _, mov := range movements {
			if mov.Type != entity.MovementTypeOUT {
				continue
			}
			// Quantity del OUT va en negativo; la reversión entra en positivo.
			if err := uc.inventoryUC.RegisterINInTx(
				movRepo, stockRepo,
				mov.ProductID, mov.WarehouseID, userID,
				mov.Quantity.Neg(), mov.UnitCost,
				now,
				invoiceID,
			); err != nil {
				return err
			}
		}
		return invoiceRepo.Update(inv)
	})
	if err != nil {
		return nil, err
	}

	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(inv.ID)
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
