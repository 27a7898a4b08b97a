// Package memory implementaciones en memoria de los puertos de persistencia,
// para pruebas y herramientas de línea de comandos que no necesitan PostgreSQL.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/factura-rd/internal/domain"
	"github.com/tu-usuario/factura-rd/internal/domain/entity"
	"github.com/tu-usuario/factura-rd/internal/domain/repository"
)

var _ repository.NCFSequenceRepository = (*NCFSequenceRepo)(nil)

// NCFSequenceRepo implementa NCFSequenceRepository en memoria. El mutex da la
// misma atomicidad que la guarda optimista del UPDATE en PostgreSQL, así el
// asignador se comporta igual contra ambos.
type NCFSequenceRepo struct {
	mu   sync.Mutex
	seqs map[string]*entity.NCFSequence
}

// NewNCFSequenceRepository construye el repositorio vacío.
func NewNCFSequenceRepository() *NCFSequenceRepo {
	return &NCFSequenceRepo{seqs: make(map[string]*entity.NCFSequence)}
}

func (r *NCFSequenceRepo) Create(ctx context.Context, seq *entity.NCFSequence) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if seq.ID == "" {
		seq.ID = uuid.New().String()
	}
	if _, ok := r.seqs[seq.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *seq
	r.seqs[seq.ID] = &cp
	return nil
}

func (r *NCFSequenceRepo) GetByID(ctx context.Context, id string) (*entity.NCFSequence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seq, ok := r.seqs[id]
	if !ok {
		return nil, nil
	}
	cp := *seq
	return &cp, nil
}

func (r *NCFSequenceRepo) LoadCandidates(ctx context.Context, companyID, ncfType string) ([]*entity.NCFSequence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.NCFSequence
	for _, seq := range r.seqs {
		if seq.CompanyID != companyID || seq.NCFType != ncfType {
			continue
		}
		if !seq.IsActive || seq.Exhausted {
			continue
		}
		cp := *seq
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].RangeFrom < list[j].RangeFrom })
	return list, nil
}

func (r *NCFSequenceRepo) CommitAdvance(ctx context.Context, id string, expectedCurrent, newCurrent int64, exhausted bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seq, ok := r.seqs[id]
	if !ok || seq.Current != expectedCurrent {
		return false, nil
	}
	seq.Current = newCurrent
	seq.Exhausted = exhausted
	seq.UpdatedAt = time.Now()
	return true, nil
}

func (r *NCFSequenceRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.NCFSequence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.NCFSequence
	for _, seq := range r.seqs {
		if seq.CompanyID != companyID {
			continue
		}
		cp := *seq
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].NCFType != list[j].NCFType {
			return list[i].NCFType < list[j].NCFType
		}
		return list[i].RangeFrom < list[j].RangeFrom
	})
	return list, nil
}

func (r *NCFSequenceRepo) Deactivate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	seq, ok := r.seqs[id]
	if !ok {
		return domain.ErrNotFound
	}
	seq.IsActive = false
	seq.UpdatedAt = time.Now()
	return nil
}
