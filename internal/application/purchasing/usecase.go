package purchasing

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/factura-rd/internal/application/dto"
	"github.com/tu-usuario/factura-rd/internal/domain"
	"github.com/tu-usuario/factura-rd/internal/domain/entity"
	"github.com/tu-usuario/factura-rd/internal/domain/fiscal"
	"github.com/tu-usuario/factura-rd/internal/domain/repository"
)

// UseCase casos de uso de compras: proveedores y registro de compras con el
// NCF del comprobante del proveedor (alimenta el reporte 606).
type UseCase struct {
	supplierRepo repository.SupplierRepository
	purchaseRepo repository.PurchaseRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(supplierRepo repository.SupplierRepository, purchaseRepo repository.PurchaseRepository) *UseCase {
	return &UseCase{supplierRepo: supplierRepo, purchaseRepo: purchaseRepo}
}

func validIDType(t string) bool {
	return t == fiscal.IDTypeRNC || t == fiscal.IDTypeCedula || t == fiscal.IDTypePasaporte
}

// CreateSupplier registra un proveedor.
func (uc *UseCase) CreateSupplier(companyID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" || in.IDNumber == "" || !validIDType(in.IDType) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		IDType:    in.IDType,
		IDNumber:  in.IDNumber,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// ListSuppliers lista proveedores de la empresa.
func (uc *UseCase) ListSuppliers(companyID string, limit, offset int) ([]*dto.SupplierResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.supplierRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSupplierResponse(s))
	}
	return out, nil
}

// CreatePurchase registra una compra. El NCF viene impreso en el comprobante
// del proveedor: aquí solo se valida la forma legal, no se emite.
func (uc *UseCase) CreatePurchase(companyID, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.SupplierID == "" || !fiscal.ValidNCF(in.NCF) {
		return nil, domain.ErrInvalidInput
	}
	if in.Subtotal.IsNegative() || in.Tax.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil || supplier == nil {
		return nil, domain.ErrNotFound
	}
	if supplier.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	purchase := &entity.Purchase{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		SupplierID: in.SupplierID,
		NCF:        in.NCF,
		Date:       date,
		Subtotal:   fiscal.Round2(in.Subtotal),
		Tax:        fiscal.Round2(in.Tax),
		Total:      fiscal.Round2(in.Subtotal.Add(in.Tax)),
		CreatedAt:  now,
		CreatedBy:  userID,
	}
	if err := uc.purchaseRepo.Create(purchase); err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase), nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:        s.ID,
		CompanyID: s.CompanyID,
		Name:      s.Name,
		IDType:    s.IDType,
		IDNumber:  s.IDNumber,
		Email:     s.Email,
		Phone:     s.Phone,
	}
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	return &dto.PurchaseResponse{
		ID:         p.ID,
		SupplierID: p.SupplierID,
		NCF:        p.NCF,
		Date:       p.Date.Format("2006-01-02"),
		Subtotal:   p.Subtotal,
		Tax:        p.Tax,
		Total:      p.Total,
	}
}
