// Package reports genera los archivos de envío de datos DGII a partir de lo
// ya facturado y comprado: consulta por período y delega el formato al
// paquete dgii. Aquí no hay aritmética fiscal, solo selección de filas.
package reports

import (
	"context"
	"time"

	"github.com/tu-usuario/factura-rd/internal/application/dto"
	"github.com/tu-usuario/factura-rd/internal/domain"
	"github.com/tu-usuario/factura-rd/internal/domain/entity"
	"github.com/tu-usuario/factura-rd/internal/domain/repository"
	"github.com/tu-usuario/factura-rd/internal/infrastructure/dgii"
)

// ReportFile archivo generado listo para descargar.
type ReportFile struct {
	Meta    dto.ReportResponse
	Content []byte
}

// UseCase casos de uso de reportes DGII.
type UseCase struct {
	companyRepo  repository.CompanyRepository
	invoiceRepo  repository.InvoiceRepository
	purchaseRepo repository.PurchaseRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	loc          *time.Location
}

// NewUseCase construye el caso de uso. loc define la zona horaria de corte de
// los períodos (la DGII declara en hora de Santo Domingo).
func NewUseCase(
	companyRepo repository.CompanyRepository,
	invoiceRepo repository.InvoiceRepository,
	purchaseRepo repository.PurchaseRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	loc *time.Location,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		companyRepo:  companyRepo,
		invoiceRepo:  invoiceRepo,
		purchaseRepo: purchaseRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		loc:          loc,
	}
}

func (uc *UseCase) period(in dto.ReportRequest) (dgii.Period, error) {
	p := dgii.Period{Year: in.Year, Month: time.Month(in.Month)}
	if !p.Valid() {
		return dgii.Period{}, domain.ErrInvalidInput
	}
	return p, nil
}

func (uc *UseCase) companyRNC(companyID string) (string, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return "", domain.ErrNotFound
	}
	return company.RNC, nil
}

// Generate606 arma el 606 (compras) del período.
func (uc *UseCase) Generate606(ctx context.Context, companyID string, in dto.ReportRequest) (*ReportFile, error) {
	period, err := uc.period(in)
	if err != nil {
		return nil, err
	}
	rnc, err := uc.companyRNC(companyID)
	if err != nil {
		return nil, err
	}
	from, to := period.Bounds(uc.loc)
	purchases, err := uc.purchaseRepo.ListByPeriod(companyID, from, to)
	if err != nil {
		return nil, err
	}
	rows := make([]dgii.Purchase606Row, 0, len(purchases))
	for _, p := range purchases {
		supplier, err := uc.supplierRepo.GetByID(p.SupplierID)
		if err != nil || supplier == nil {
			return nil, domain.ErrNotFound
		}
		rows = append(rows, dgii.Purchase606Row{
			SupplierID:     supplier.IDNumber,
			SupplierIDType: supplier.IDType,
			NCF:            p.NCF,
			Date:           p.Date,
			Tax:            p.Tax,
			Amount:         p.Subtotal,
		})
	}
	content, err := dgii.Build606(rnc, period, rows)
	if err != nil {
		return nil, err
	}
	return uc.file(dgii.Format606, rnc, period, len(rows), content), nil
}

// Generate607 arma el 607 (ventas) del período. Las facturas anuladas no se
// reportan aquí: van al 608.
func (uc *UseCase) Generate607(ctx context.Context, companyID string, in dto.ReportRequest) (*ReportFile, error) {
	period, err := uc.period(in)
	if err != nil {
		return nil, err
	}
	rnc, err := uc.companyRNC(companyID)
	if err != nil {
		return nil, err
	}
	from, to := period.Bounds(uc.loc)
	invoices, err := uc.invoiceRepo.ListByPeriod(companyID, from, to)
	if err != nil {
		return nil, err
	}
	rows := make([]dgii.Sale607Row, 0, len(invoices))
	for _, inv := range invoices {
		if inv.Status == entity.StatusVoided {
			continue
		}
		customer, err := uc.customerRepo.GetByID(inv.CustomerID)
		if err != nil || customer == nil {
			return nil, domain.ErrNotFound
		}
		rows = append(rows, dgii.Sale607Row{
			CustomerID:     customer.IDNumber,
			CustomerIDType: customer.IDType,
			NCF:            inv.NCF,
			Date:           inv.Date,
			Tax:            inv.Tax,
			Amount:         inv.Subtotal,
		})
	}
	content, err := dgii.Build607(rnc, period, rows)
	if err != nil {
		return nil, err
	}
	return uc.file(dgii.Format607, rnc, period, len(rows), content), nil
}

// Generate608 arma el 608 (anulados) del período, por fecha de anulación.
func (uc *UseCase) Generate608(ctx context.Context, companyID string, in dto.ReportRequest) (*ReportFile, error) {
	period, err := uc.period(in)
	if err != nil {
		return nil, err
	}
	rnc, err := uc.companyRNC(companyID)
	if err != nil {
		return nil, err
	}
	from, to := period.Bounds(uc.loc)
	invoices, err := uc.invoiceRepo.ListVoidedByPeriod(companyID, from, to)
	if err != nil {
		return nil, err
	}
	rows := make([]dgii.Voided608Row, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, dgii.Voided608Row{NCF: inv.NCF, VoidedAt: inv.VoidedAt})
	}
	content, err := dgii.Build608(rnc, period, rows)
	if err != nil {
		return nil, err
	}
	return uc.file(dgii.Format608, rnc, period, len(rows), content), nil
}

func (uc *UseCase) file(format, rnc string, period dgii.Period, rows int, content []byte) *ReportFile {
	return &ReportFile{
		Meta: dto.ReportResponse{
			Report:   format,
			Period:   period.String(),
			Rows:     rows,
			Filename: dgii.Filename(format, rnc, period),
		},
		Content: content,
	}
}
