package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/factura-rd/internal/domain/entity"
	"github.com/tu-usuario/factura-rd/internal/domain/repository"
)

var _ repository.NCFSequenceRepository = (*NCFSequenceRepo)(nil)

// NCFSequenceRepo implementa NCFSequenceRepository sobre PostgreSQL
// (usable con pool o tx).
type NCFSequenceRepo struct {
	q Querier
}

// NewNCFSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNCFSequenceRepository(q Querier) *NCFSequenceRepo {
	return &NCFSequenceRepo{q: q}
}

func (r *NCFSequenceRepo) Create(ctx context.Context, seq *entity.NCFSequence) error {
	if seq.ID == "" {
		seq.ID = uuid.New().String()
	}
	const q = `
		INSERT INTO ncf_sequences
			(id, company_id, authorization_number, ncf_type, range_from, range_to,
			 current, expires_on, exhausted, is_active, created_at, updated_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())`
	_, err := r.q.Exec(ctx, q,
		seq.ID, seq.CompanyID, seq.AuthorizationNumber, seq.NCFType,
		seq.RangeFrom, seq.RangeTo, seq.Current, seq.ExpiresOn,
		seq.Exhausted, seq.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("ncf sequence already exists: %w", err)
		}
		return fmt.Errorf("insert ncf_sequence: %w", err)
	}
	return nil
}

func (r *NCFSequenceRepo) GetByID(ctx context.Context, id string) (*entity.NCFSequence, error) {
	const q = selectSequence + ` WHERE id = $1`
	seq, err := scanSequence(r.q.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ncf_sequence by id: %w", err)
	}
	return seq, nil
}

// LoadCandidates es la consulta crítica de la emisión: rangos activos con
// números disponibles, el más antiguo primero. La vigencia (expires_on) la
// evalúa el asignador para poder reportar "rango vencido" como tal.
func (r *NCFSequenceRepo) LoadCandidates(ctx context.Context, companyID, ncfType string) ([]*entity.NCFSequence, error) {
	const q = selectSequence + `
		WHERE company_id = $1
		  AND ncf_type   = $2
		  AND is_active  = true
		  AND exhausted  = false
		ORDER BY range_from ASC`
	rows, err := r.q.Query(ctx, q, companyID, ncfType)
	if err != nil {
		return nil, fmt.Errorf("load ncf candidates: %w", err)
	}
	defer rows.Close()
	var list []*entity.NCFSequence
	for rows.Next() {
		seq, err := scanSequence(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ncf_sequence: %w", err)
		}
		list = append(list, seq)
	}
	return list, rows.Err()
}

// CommitAdvance avanza el consecutivo con guarda optimista: el WHERE exige el
// valor leído; si otro proceso ya emitió, RowsAffected es 0 y se reporta
// conflicto sin error.
func (r *NCFSequenceRepo) CommitAdvance(ctx context.Context, id string, expectedCurrent, newCurrent int64, exhausted bool) (bool, error) {
	const q = `
		UPDATE ncf_sequences
		SET current = $3, exhausted = $4, updated_at = now()
		WHERE id = $1 AND current = $2`
	tag, err := r.q.Exec(ctx, q, id, expectedCurrent, newCurrent, exhausted)
	if err != nil {
		return false, fmt.Errorf("advance ncf_sequence: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *NCFSequenceRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.NCFSequence, error) {
	const q = selectSequence + `
		WHERE company_id = $1
		ORDER BY ncf_type, range_from ASC`
	rows, err := r.q.Query(ctx, q, companyID)
	if err != nil {
		return nil, fmt.Errorf("list ncf_sequences: %w", err)
	}
	defer rows.Close()
	var list []*entity.NCFSequence
	for rows.Next() {
		seq, err := scanSequence(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ncf_sequence: %w", err)
		}
		list = append(list, seq)
	}
	return list, rows.Err()
}

func (r *NCFSequenceRepo) Deactivate(ctx context.Context, id string) error {
	const q = `UPDATE ncf_sequences SET is_active = false, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("deactivate ncf_sequence: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

const selectSequence = `
	SELECT id, company_id, authorization_number, ncf_type, range_from, range_to,
	       current, expires_on, exhausted, is_active, created_at, updated_at
	FROM ncf_sequences`

func scanSequence(row pgxScanner) (*entity.NCFSequence, error) {
	var seq entity.NCFSequence
	err := row.Scan(
		&seq.ID, &seq.CompanyID, &seq.AuthorizationNumber, &seq.NCFType,
		&seq.RangeFrom, &seq.RangeTo,
		&seq.Current, &seq.ExpiresOn,
		&seq.Exhausted, &seq.IsActive, &seq.CreatedAt, &seq.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &seq, nil
}
