package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/factura-rd/internal/application/dto"
	"github.com/tu-usuario/factura-rd/internal/domain"
	"github.com/tu-usuario/factura-rd/internal/domain/entity"
	"github.com/tu-usuario/factura-rd/internal/domain/fiscal"
	"github.com/tu-usuario/factura-rd/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes (facturación).
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

func validIDType(t string) bool {
	return t == fiscal.IDTypeRNC || t == fiscal.IDTypeCedula || t == fiscal.IDTypePasaporte
}

// Create crea un nuevo cliente. IDType usa los códigos DGII ("1" RNC, "2"
// Cédula, "3" Pasaporte): el reporte 607 los exige por fila.
func (uc *CustomerUseCase) Create(companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.IDNumber == "" || !validIDType(in.IDType) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		IDType:    in.IDType,
		IDNumber:  in.IDNumber,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes de la empresa.
func (uc *CustomerUseCase) List(companyID string, limit, offset int) ([]*dto.CustomerResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		IDType:    c.IDType,
		IDNumber:  c.IDNumber,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
	}
}
