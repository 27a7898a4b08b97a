package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/factura-rd/internal/application/billing"
	"github.com/tu-usuario/factura-rd/internal/domain"
	"github.com/tu-usuario/factura-rd/internal/domain/entity"
	"github.com/tu-usuario/factura-rd/internal/domain/fiscal"
	"github.com/tu-usuario/factura-rd/internal/infrastructure/memory"
)

const testCompany = "11111111-1111-1111-1111-111111111111"

var testToday = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

func seedSequence(t *testing.T, repo *memory.NCFSequenceRepo, ncfType string, from, to int64, expires time.Time) *entity.NCFSequence {
	t.Helper()
	seq := &entity.NCFSequence{
		CompanyID:           testCompany,
		AuthorizationNumber: "AUT-2026-001",
		NCFType:             ncfType,
		RangeFrom:           from,
		RangeTo:             to,
		Current:             from,
		ExpiresOn:           expires,
		IsActive:            true,
	}
	require.NoError(t, repo.Create(context.Background(), seq))
	return seq
}

func newAllocator(repo *memory.NCFSequenceRepo) *billing.NCFAllocator {
	return billing.NewNCFAllocator(repo, billing.DefaultAllocatorConfig())
}

// ──────────────────────────────────────────────────────────────────────────────
// Emisión secuencial
// ──────────────────────────────────────────────────────────────────────────────

// Emisiones consecutivas producen NCFs contiguos sin saltos ni repeticiones.
func TestIssueNext_ConsecutivosContiguos(t *testing.T) {
	repo := memory.NewNCFSequenceRepository()
	seedSequence(t, repo, fiscal.NCFTypeCreditoFiscal, 1, 100, testToday.AddDate(1, 0, 0))
	alloc := newAllocator(repo)

	seen := make(map[string]bool)
	for i := 1; i <= 5; i++ {
		issued, err := alloc.IssueNext(context.Background(), testCompany, fiscal.NCFTypeCreditoFiscal, testToday)
		require.NoError(t, err)
		assert.False(t, seen[issued.NCF], "NCF %s emitido dos veces", issued.NCF)
		seen[issued.NCF] = true
	}
	assert.Contains(t, seen, "B0100000001")
	assert.Contains(t, seen, "B0100000005")
}

// El último número del rango se emite; el siguiente intento falla porque el
// rango quedó agotado.
func TestIssueNext_FronteraDeAgotamiento(t *testing.T) {
	repo := memory.NewNCFSequenceRepository()
	seedSequence(t, repo, fiscal.NCFTypeConsumidorFinal, 99, 100, testToday.AddDate(1, 0, 0))
	alloc := newAllocator(repo)

	issued, err := alloc.IssueNext(context.Background(), testCompany, fiscal.NCFTypeConsumidorFinal, testToday)
	require.NoError(t, err)
	assert.Equal(t, "B0200000099", issued.NCF)

	issued, err = alloc.IssueNext(context.Background(), testCompany, fiscal.NCFTypeConsumidorFinal, testToday)
	require.NoError(t, err)
	assert.Equal(t, "B0200000100", issued.NCF, "el último número del rango sí se emite")
	assert.Equal(t, int64(0), issued.Remaining)

	_, err = alloc.IssueNext(context.Background(), testCompany, fiscal.NCFTypeConsumidorFinal, testToday)
	assert.ErrorIs(t, err, domain.ErrNoSequenceAvailable, "tras agotar el rango no queda de dónde emitir")
}

// Con dos rangos del mismo tipo se consume primero el más antiguo (range_from
// menor) para no dejar vencer autorizaciones viejas.
func TestIssueNext_RangoMasViejoPrimero(t *testing.T) {
	repo := memory.NewNCFSequenceRepository()
	seedSequence(t, repo, fiscal.NCFTypeCreditoFiscal, 501, 600, testToday.AddDate(1, 0, 0))
	seedSequence(t, repo, fiscal.NCFTypeCreditoFiscal, 1, 2, testToday.AddDate(1, 0, 0))
	alloc := newAllocator(repo)

	issued, err := alloc.IssueNext(context.Background(), testCompany, fiscal.NCFTypeCreditoFiscal, testToday)
	require.NoError(t, err)
	assert.Equal(t, "B0100000001", issued.NCF)

	// Agotado el rango viejo, pasa al siguiente
	_, err = alloc.IssueNext(context.Background(), testCompany, fiscal.NCFTypeCreditoFiscal, testToday)
	require.NoError(t, err)
	issued, err = alloc.IssueNext(context.Background(), testCompany, fiscal.NCFTypeCreditoFiscal, testToday)
	require.NoError(t, err)
	assert.Equal(t, "B0100000501", issued.NCF)
}

// Un rango vencido no emite aunque tenga números disponibles; el error dice
// que venció, no que falte rango (la corrección en la DGII es distinta).
func TestIssueNext_RangoVencidoNoEmite(t *testing.T) {
	repo := memory.NewNCFSequenceRepository()
	seedSequence(t, repo, fiscal.NCFTypeCreditoFiscal, 1, 100, testToday.AddDate(0, 0, -1))
	alloc := newAllocator(repo)

	_, err := alloc.IssueNext(context.Background(), testCompany, fiscal.NCFTypeCreditoFiscal, testToday)
	assert.ErrorIs(t, err, domain.ErrSequenceExpired)
	assert.NotErrorIs(t, err, domain.ErrNoSequenceAvailable)
}

// Con un rango vencido y otro vigente se emite del vigente.
func TestIssueNext_SaltaElRangoVencido(t *testing.T) {
	repo := memory.NewNCFSequenceRepository()
	seedSequence(t, repo, fiscal.NCFTypeCreditoFiscal, 1, 100, testToday.AddDate(0, 0, -1))
	seedSequence(t, repo, fiscal.NCFTypeCreditoFiscal, 200, 300, testToday.AddDate(1, 0, 0))
	alloc := newAllocator(repo)

	issued, err := alloc.IssueNext(context.Background(), testCompany, fiscal.NCFTypeCreditoFiscal, testToday)
	require.NoError(t, err)
	assert.Equal(t, "B0100000200", issued.NCF)
}

// El día exacto del vencimiento todavía se emite (expires_on es inclusivo).
func TestIssueNext_EmiteElDiaDelVencimiento(t *testing.T) {
	repo := memory.NewNCFSequenceRepository()
	expires := time.Date(testToday.Year(), testToday.Month(), testToday.Day(), 0, 0, 0, 0, time.UTC)
	seedSequence(t, repo, fiscal.NCFTypeCreditoFiscal, 1, 100, expires)
	alloc := newAllocator(repo)

	issued, err := alloc.IssueNext(context.Background(), testCompany, fiscal.NCFTypeCreditoFiscal, testToday)
	require.NoError(t, err)
	assert.Equal(t, "B0100000001", issued.NCF)
}

func TestIssueNext_RangoDesactivadoNoEmite(t *testing.T) {
	repo := memory.NewNCFSequenceRepository()
	seq := seedSequence(t, repo, fiscal.NCFTypeCreditoFiscal, 1, 100, testToday.AddDate(1, 0, 0))
	require.NoError(t, repo.Deactivate(context.Background(), seq.ID))
	alloc := newAllocator(repo)

	_, err := alloc.IssueNext(context.Background(), testCompany, fiscal.NCFTypeCreditoFiscal, testToday)
	assert.ErrorIs(t, err, domain.ErrNoSequenceAvailable)
}

func TestIssueNext_TipoInvalido(t *testing.T) {
	alloc := newAllocator(memory.NewNCFSequenceRepository())
	_, err := alloc.IssueNext(context.Background(), testCompany, "B99", testToday)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aviso de baja disponibilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestIssueNext_AvisoDeBajaDisponibilidad(t *testing.T) {
	repo := memory.NewNCFSequenceRepository()
	seedSequence(t, repo, fiscal.NCFTypeCreditoFiscal, 1, 5, testToday.AddDate(1, 0, 0))
	alloc := newAllocator(repo) // umbral por defecto: 10

	issued, err := alloc.IssueNext(context.Background(), testCompany, fiscal.NCFTypeCreditoFiscal, testToday)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Warning, "con 4 números restantes debe avisar")
	assert.Equal(t, int64(4), issued.Remaining)
}

func TestIssueNext_SinAvisoConRangoAmplio(t *testing.T) {
	repo := memory.NewNCFSequenceRepository()
	seedSequence(t, repo, fiscal.NCFTypeCreditoFiscal, 1, 10000, testToday.AddDate(1, 0, 0))
	alloc := newAllocator(repo)

	issued, err := alloc.IssueNext(context.Background(), testCompany, fiscal.NCFTypeCreditoFiscal, testToday)
	require.NoError(t, err)
	assert.Empty(t, issued.Warning)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: guarda optimista
// ──────────────────────────────────────────────────────────────────────────────

// conflictingRepo fuerza conflictos de CommitAdvance las primeras n veces,
// simulando otro proceso que avanzó el consecutivo entre lectura y commit.
type conflictingRepo struct {
	*memory.NCFSequenceRepo
	conflicts int
}

func (r *conflictingRepo) CommitAdvance(ctx context.Context, id string, expectedCurrent, newCurrent int64, exhausted bool) (bool, error) {
	if r.conflicts > 0 {
		r.conflicts--
		// Otro emisor se adelantó: avanza el consecutivo real y reporta conflicto.
		ok, err := r.NCFSequenceRepo.CommitAdvance(ctx, id, expectedCurrent, newCurrent, exhausted)
		if err != nil || !ok {
			return false, err
		}
		return false, nil
	}
	return r.NCFSequenceRepo.CommitAdvance(ctx, id, expectedCurrent, newCurrent, exhausted)
}

func TestIssueNext_ReintentaTrasConflicto(t *testing.T) {
	inner := memory.NewNCFSequenceRepository()
	seedSequence(t, inner, fiscal.NCFTypeCreditoFiscal, 1, 100, testToday.AddDate(1, 0, 0))
	repo := &conflictingRepo{NCFSequenceRepo: inner, conflicts: 2}

	alloc := billing.NewNCFAllocator(repo, billing.AllocatorConfig{LowSupplyThreshold: 10, MaxRetries: 3})
	issued, err := alloc.IssueNext(context.Background(), testCompany, fiscal.NCFTypeCreditoFiscal, testToday)
	require.NoError(t, err, "dos conflictos caben en tres reintentos")
	// Los dos conflictos consumieron el 1 y el 2; la emisión exitosa toma el 3.
	assert.Equal(t, "B0100000003", issued.NCF)
}

func TestIssueNext_AgotaReintentos(t *testing.T) {
	inner := memory.NewNCFSequenceRepository()
	seedSequence(t, inner, fiscal.NCFTypeCreditoFiscal, 1, 100, testToday.AddDate(1, 0, 0))
	repo := &conflictingRepo{NCFSequenceRepo: inner, conflicts: 10}

	alloc := billing.NewNCFAllocator(repo, billing.AllocatorConfig{LowSupplyThreshold: 10, MaxRetries: 3})
	_, err := alloc.IssueNext(context.Background(), testCompany, fiscal.NCFTypeCreditoFiscal, testToday)
	assert.ErrorIs(t, err, domain.ErrAllocationConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Preview (consultivo)
// ──────────────────────────────────────────────────────────────────────────────

func TestPreview_NoMuta(t *testing.T) {
	repo := memory.NewNCFSequenceRepository()
	seedSequence(t, repo, fiscal.NCFTypeCreditoFiscal, 1, 100, testToday.AddDate(1, 0, 0))
	alloc := newAllocator(repo)

	p1, err := alloc.Preview(context.Background(), testCompany, fiscal.NCFTypeCreditoFiscal, testToday)
	require.NoError(t, err)
	p2, err := alloc.Preview(context.Background(), testCompany, fiscal.NCFTypeCreditoFiscal, testToday)
	require.NoError(t, err)

	assert.Equal(t, p1.NCF, p2.NCF, "preview repetido no consume consecutivos")
	assert.Equal(t, int64(100), p1.Remaining)
}

func TestPreview_SumaTodosLosRangos(t *testing.T) {
	repo := memory.NewNCFSequenceRepository()
	seedSequence(t, repo, fiscal.NCFTypeCreditoFiscal, 1, 10, testToday.AddDate(1, 0, 0))
	seedSequence(t, repo, fiscal.NCFTypeCreditoFiscal, 100, 109, testToday.AddDate(1, 0, 0))
	alloc := newAllocator(repo)

	p, err := alloc.Preview(context.Background(), testCompany, fiscal.NCFTypeCreditoFiscal, testToday)
	require.NoError(t, err)
	assert.Equal(t, int64(20), p.Remaining, "la disponibilidad agrega todos los rangos usables")
	assert.Equal(t, "B0100000001", p.NCF, "el próximo sale del rango más viejo")
}

func TestPreview_SoloRangosVencidos(t *testing.T) {
	repo := memory.NewNCFSequenceRepository()
	seedSequence(t, repo, fiscal.NCFTypeCreditoFiscal, 1, 100, testToday.AddDate(0, 0, -5))
	alloc := newAllocator(repo)

	_, err := alloc.Preview(context.Background(), testCompany, fiscal.NCFTypeCreditoFiscal, testToday)
	assert.ErrorIs(t, err, domain.ErrSequenceExpired)
}

func TestPreview_SinRangos(t *testing.T) {
	alloc := newAllocator(memory.NewNCFSequenceRepository())
	_, err := alloc.Preview(context.Background(), testCompany, fiscal.NCFTypeCreditoFiscal, testToday)
	assert.ErrorIs(t, err, domain.ErrNoSequenceAvailable)
}
