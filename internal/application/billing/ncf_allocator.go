package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/factura-rd/internal/domain"
	"github.com/tu-usuario/factura-rd/internal/domain/entity"
	"github.com/tu-usuario/factura-rd/internal/domain/fiscal"
	"github.com/tu-usuario/factura-rd/internal/domain/repository"
)

// AllocatorConfig parámetros del asignador de NCF.
type AllocatorConfig struct {
	// LowSupplyThreshold dispara el aviso "quedan N números" cuando los
	// consecutivos restantes del rango caen por debajo. Consultivo, nunca
	// bloquea la emisión.
	LowSupplyThreshold int64
	// MaxRetries reintentos ante conflicto optimista antes de rendirse.
	MaxRetries int
}

// DefaultAllocatorConfig valores usados si el caller pasa ceros.
func DefaultAllocatorConfig() AllocatorConfig {
	return AllocatorConfig{LowSupplyThreshold: 10, MaxRetries: 3}
}

// IssuedNCF resultado de una emisión: el comprobante formateado más el aviso
// de baja disponibilidad si aplica.
type IssuedNCF struct {
	NCF        string
	SequenceID string
	Remaining  int64 // consecutivos que quedan en el rango tras esta emisión
	Warning    string
}

// NCFAllocator asigna consecutivos NCF desde los rangos autorizados por la
// DGII. El estado vive en el repositorio; el asignador es una función de
// decisión/transición sobre ese estado.
//
// La concurrencia se resuelve con commit optimista: CommitAdvance solo aplica
// si nadie más avanzó el consecutivo desde la lectura. Ante conflicto se relee
// y reintenta (acotado). Un NCF doble tiene consecuencias legales reales, así
// que este es el único punto del sistema con contrato de atomicidad propio.
type NCFAllocator struct {
	repo repository.NCFSequenceRepository
	cfg  AllocatorConfig
}

// NewNCFAllocator construye el asignador.
func NewNCFAllocator(repo repository.NCFSequenceRepository, cfg AllocatorConfig) *NCFAllocator {
	if cfg.LowSupplyThreshold <= 0 {
		cfg.LowSupplyThreshold = DefaultAllocatorConfig().LowSupplyThreshold
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultAllocatorConfig().MaxRetries
	}
	return &NCFAllocator{repo: repo, cfg: cfg}
}

// IssueNext emite el siguiente NCF del tipo dado usando el repositorio propio.
func (a *NCFAllocator) IssueNext(ctx context.Context, companyID, ncfType string, today time.Time) (*IssuedNCF, error) {
	return a.IssueNextIn(ctx, a.repo, companyID, ncfType, today)
}

// IssueNextIn emite usando el repositorio del caller (misma transacción que la
// factura). Selecciona el rango autorizado más viejo, toma su consecutivo y lo
// avanza con guarda optimista.
func (a *NCFAllocator) IssueNextIn(ctx context.Context, repo repository.NCFSequenceRepository, companyID, ncfType string, today time.Time) (*IssuedNCF, error) {
	if !fiscal.ValidNCFType(ncfType) {
		return nil, fmt.Errorf("%w: tipo NCF %q", domain.ErrInvalidInput, ncfType)
	}

	for attempt := 0; attempt < a.cfg.MaxRetries; attempt++ {
		candidates, err := repo.LoadCandidates(ctx, companyID, ncfType)
		if err != nil {
			return nil, fmt.Errorf("cargar secuencias NCF: %w", err)
		}
		usable, err := usableOnly(candidates, ncfType, today)
		if err != nil {
			return nil, err
		}

		seq := usable[0] // rango más viejo primero (range_from asc)
		issue := seq.Current
		newCurrent := issue + 1
		exhausted := newCurrent > seq.RangeTo

		ok, err := repo.CommitAdvance(ctx, seq.ID, issue, newCurrent, exhausted)
		if err != nil {
			return nil, fmt.Errorf("avanzar secuencia NCF: %w", err)
		}
		if !ok {
			// Otro proceso emitió con este rango entre la lectura y el commit:
			// relectura completa, el rango pudo incluso agotarse.
			continue
		}

		ncf, err := fiscal.FormatNCF(ncfType, issue)
		if err != nil {
			return nil, err
		}
		remaining := seq.RangeTo - issue
		issued := &IssuedNCF{NCF: ncf, SequenceID: seq.ID, Remaining: remaining}
		if remaining < a.cfg.LowSupplyThreshold {
			issued.Warning = fmt.Sprintf("quedan %d números en la secuencia %s", remaining, ncfType)
		}
		return issued, nil
	}
	return nil, domain.ErrAllocationConflict
}

// Preview consulta sin mutar cuántos consecutivos quedan para el tipo dado.
// El frontend lo llama antes del checkout para avisar al cajero.
func (a *NCFAllocator) Preview(ctx context.Context, companyID, ncfType string, today time.Time) (*IssuedNCF, error) {
	if !fiscal.ValidNCFType(ncfType) {
		return nil, fmt.Errorf("%w: tipo NCF %q", domain.ErrInvalidInput, ncfType)
	}
	candidates, err := a.repo.LoadCandidates(ctx, companyID, ncfType)
	if err != nil {
		return nil, fmt.Errorf("cargar secuencias NCF: %w", err)
	}
	usable, err := usableOnly(candidates, ncfType, today)
	if err != nil {
		return nil, err
	}
	var remaining int64
	for _, seq := range usable {
		remaining += seq.Remaining()
	}
	next, err := fiscal.FormatNCF(ncfType, usable[0].Current)
	if err != nil {
		return nil, err
	}
	out := &IssuedNCF{NCF: next, SequenceID: usable[0].ID, Remaining: remaining}
	if remaining < a.cfg.LowSupplyThreshold {
		out.Warning = fmt.Sprintf("quedan %d números en la secuencia %s", remaining, ncfType)
	}
	return out, nil
}

// usableOnly filtra los candidatos por vigencia. El error distingue los dos
// casos sin remedio inmediato: no existe rango alguno (registrar uno nuevo) o
// los que existen ya vencieron (pedir prórroga o rango nuevo a la DGII).
func usableOnly(candidates []*entity.NCFSequence, ncfType string, today time.Time) ([]*entity.NCFSequence, error) {
	if len(candidates) == 0 {
		return nil, domain.ErrNoSequenceAvailable
	}
	usable := make([]*entity.NCFSequence, 0, len(candidates))
	for _, seq := range candidates {
		if seq.Usable(today) {
			usable = append(usable, seq)
		}
	}
	if len(usable) == 0 {
		return nil, fmt.Errorf("%w: tipo %s", domain.ErrSequenceExpired, ncfType)
	}
	return usable, nil
}
