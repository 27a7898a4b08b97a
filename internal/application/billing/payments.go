package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/factura-rd/internal/application/dto"
	"github.com/tu-usuario/factura-rd/internal/domain"
	"github.com/tu-usuario/factura-rd/internal/domain/entity"
	"github.com/tu-usuario/factura-rd/internal/domain/repository"
)

// PaymentUseCase registra abonos contra facturas de crédito y evalúa la
// transición a vencida. La fila de la factura se bloquea (FOR UPDATE) para que
// dos cajeros no abonen sobre el mismo balance.
type PaymentUseCase struct {
	txRunner     BillingTxRunner
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(txRunner BillingTxRunner, invoiceRepo repository.InvoiceRepository, customerRepo repository.CustomerRepository) *PaymentUseCase {
	return &PaymentUseCase{txRunner: txRunner, invoiceRepo: invoiceRepo, customerRepo: customerRepo}
}

func validMethod(m string) bool {
	switch m {
	case entity.PaymentMethodCash, entity.PaymentMethodCard,
		entity.PaymentMethodTransfer, entity.PaymentMethodCheck:
		return true
	}
	return false
}

// RegisterPayment abona a la factura. Sobrepagos se rechazan con
// ErrOverpayment (el caller debe reducir el monto).
func (uc *PaymentUseCase) RegisterPayment(ctx context.Context, companyID, userID, invoiceID string, in dto.RegisterPaymentRequest) (*dto.InvoiceResponse, error) {
	if !validMethod(in.Method) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	var inv *entity.Invoice

	err := uc.txRunner.RunBilling(ctx, func(
		_ repository.InventoryMovementRepository,
		_ repository.StockRepository,
		_ repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
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
		if err := inv.ApplyPayment(in.Amount, now); err != nil {
			return err
		}
		if err := invoiceRepo.Update(inv); err != nil {
			return err
		}
		return paymentRepo.Create(&entity.Payment{
			ID:        uuid.New().String(),
			InvoiceID: inv.ID,
			Amount:    in.Amount,
			Method:    in.Method,
			Reference: in.Reference,
			Date:      now,
			CreatedAt: now,
			CreatedBy: userID,
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.invoiceResponse(inv)
}

// MarkOverdue pasa a vencida una factura de crédito cuyo plazo expiró.
// La transición es dirigida por tiempo; la dispara un proceso externo o el
// endpoint administrativo, nunca la propia consulta.
func (uc *PaymentUseCase) MarkOverdue(ctx context.Context, companyID, invoiceID string) (*dto.InvoiceResponse, error) {
	today := time.Now()
	var inv *entity.Invoice

	err := uc.txRunner.RunBilling(ctx, func(
		_ repository.InventoryMovementRepository,
		_ repository.StockRepository,
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
		if err := inv.MarkOverdue(today); err != nil {
			return err
		}
		return invoiceRepo.Update(inv)
	})
	if err != nil {
		return nil, err
	}
	return uc.invoiceResponse(inv)
}

func (uc *PaymentUseCase) invoiceResponse(inv *entity.Invoice) (*dto.InvoiceResponse, error) {
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
