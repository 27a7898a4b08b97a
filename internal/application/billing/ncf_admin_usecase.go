package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/factura-rd/internal/application/dto"
	"github.com/tu-usuario/factura-rd/internal/domain"
	"github.com/tu-usuario/factura-rd/internal/domain/entity"
	"github.com/tu-usuario/factura-rd/internal/domain/fiscal"
	"github.com/tu-usuario/factura-rd/internal/domain/repository"
)

// NCFAdminUseCase administra los rangos de secuencias NCF: se registra uno
// cuando la DGII autoriza un rango nuevo, se lista y se desactiva. Nunca se
// eliminan.
type NCFAdminUseCase struct {
	repo      repository.NCFSequenceRepository
	allocator *NCFAllocator
}

// NewNCFAdminUseCase construye el caso de uso.
func NewNCFAdminUseCase(repo repository.NCFSequenceRepository, allocator *NCFAllocator) *NCFAdminUseCase {
	return &NCFAdminUseCase{repo: repo, allocator: allocator}
}

// CreateSequence registra un rango autorizado. Current arranca en RangeFrom.
func (uc *NCFAdminUseCase) CreateSequence(ctx context.Context, companyID string, in dto.CreateNCFSequenceRequest) (*dto.NCFSequenceResponse, error) {
	if !fiscal.ValidNCFType(in.NCFType) || in.AuthorizationNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.RangeFrom < 1 || in.RangeTo < in.RangeFrom || in.RangeTo > fiscal.MaxSequence {
		return nil, domain.ErrInvalidInput
	}
	expires, err := time.Parse("2006-01-02", in.ExpiresOn)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	seq := &entity.NCFSequence{
		ID:                  uuid.New().String(),
		CompanyID:           companyID,
		AuthorizationNumber: in.AuthorizationNumber,
		NCFType:             in.NCFType,
		RangeFrom:           in.RangeFrom,
		RangeTo:             in.RangeTo,
		Current:             in.RangeFrom,
		ExpiresOn:           expires,
		Exhausted:           false,
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.repo.Create(ctx, seq); err != nil {
		return nil, err
	}
	return toSequenceResponse(seq)
}

// ListSequences lista todas las secuencias de la empresa.
func (uc *NCFAdminUseCase) ListSequences(ctx context.Context, companyID string) ([]*dto.NCFSequenceResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NCFSequenceResponse, 0, len(list))
	for _, seq := range list {
		resp, err := toSequenceResponse(seq)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// DeactivateSequence desactiva administrativamente un rango.
func (uc *NCFAdminUseCase) DeactivateSequence(ctx context.Context, companyID, id string) error {
	seq, err := uc.repo.GetByID(ctx, id)
	if err != nil || seq == nil {
		return domain.ErrNotFound
	}
	if seq.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return uc.repo.Deactivate(ctx, id)
}

// Preview consulta cuántos NCF quedan para un tipo (no muta).
func (uc *NCFAdminUseCase) Preview(ctx context.Context, companyID, ncfType string) (*dto.NCFPreviewResponse, error) {
	issued, err := uc.allocator.Preview(ctx, companyID, ncfType, time.Now())
	if err != nil {
		return nil, err
	}
	return &dto.NCFPreviewResponse{
		NCFType:   ncfType,
		Next:      issued.NCF,
		Remaining: issued.Remaining,
		Warning:   issued.Warning,
	}, nil
}

func toSequenceResponse(seq *entity.NCFSequence) (*dto.NCFSequenceResponse, error) {
	// Los límites del rango viajan como strings de ancho fijo; el consecutivo
	// de un rango recién agotado (RangeTo+1) se muestra tal cual el máximo.
	from, err := fiscal.FormatNCF(seq.NCFType, seq.RangeFrom)
	if err != nil {
		return nil, err
	}
	to, err := fiscal.FormatNCF(seq.NCFType, seq.RangeTo)
	if err != nil {
		return nil, err
	}
	current := ""
	if seq.Current <= fiscal.MaxSequence {
		current, err = fiscal.FormatNCF(seq.NCFType, seq.Current)
		if err != nil {
			return nil, err
		}
	}
	return &dto.NCFSequenceResponse{
		ID:                  seq.ID,
		CompanyID:           seq.CompanyID,
		AuthorizationNumber: seq.AuthorizationNumber,
		NCFType:             seq.NCFType,
		RangeFrom:           from,
		RangeTo:             to,
		Current:             current,
		Remaining:           seq.Remaining(),
		ExpiresOn:           seq.ExpiresOn.Format("2006-01-02"),
		Exhausted:           seq.Exhausted,
		IsActive:            seq.IsActive,
	}, nil
}
