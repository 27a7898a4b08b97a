package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/factura-rd/internal/domain"
	"github.com/tu-usuario/factura-rd/internal/domain/entity"
)

func creditInvoice(total int64) *entity.Invoice {
	t := decimal.NewFromInt(total)
	return &entity.Invoice{
		ID:         "inv-1",
		NCF:        "B0100000001",
		SaleType:   entity.SaleTypeCredit,
		Total:      t,
		AmountPaid: decimal.Zero,
		Balance:    t,
		Status:     entity.StatusPending,
		DueDate:    time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyPayment
// ──────────────────────────────────────────────────────────────────────────────

// Dos abonos parciales: 40 y luego 60 sobre un total de 100.
func TestApplyPayment_ParcialYLuegoSaldada(t *testing.T) {
	inv := creditInvoice(100)
	now := time.Now()

	require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(40), now))
	assert.Equal(t, entity.StatusPartial, inv.Status)
	assert.True(t, inv.Balance.Equal(decimal.NewFromInt(60)), "balance tras 40 debe ser 60, fue %s", inv.Balance)

	require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(60), now))
	assert.Equal(t, entity.StatusPaid, inv.Status)
	assert.True(t, inv.Balance.IsZero())
	assert.True(t, inv.AmountPaid.Equal(inv.Total))
}

func TestApplyPayment_SobrepagoRechazado(t *testing.T) {
	inv := creditInvoice(100)

	err := inv.ApplyPayment(decimal.NewFromFloat(100.01), time.Now())
	assert.ErrorIs(t, err, domain.ErrOverpayment)

	// El estado no debe haber cambiado
	assert.Equal(t, entity.StatusPending, inv.Status)
	assert.True(t, inv.Balance.Equal(decimal.NewFromInt(100)))
}

func TestApplyPayment_SobrepagoSobreParcial(t *testing.T) {
	inv := creditInvoice(100)
	require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(80), time.Now()))

	err := inv.ApplyPayment(decimal.NewFromInt(21), time.Now())
	assert.ErrorIs(t, err, domain.ErrOverpayment, "21 excede el balance de 20")
}

func TestApplyPayment_MontoNoPositivo(t *testing.T) {
	inv := creditInvoice(100)
	assert.ErrorIs(t, inv.ApplyPayment(decimal.Zero, time.Now()), domain.ErrInvalidInput)
	assert.ErrorIs(t, inv.ApplyPayment(decimal.NewFromInt(-5), time.Now()), domain.ErrInvalidInput)
}

func TestApplyPayment_FacturaAnulada(t *testing.T) {
	inv := creditInvoice(100)
	require.NoError(t, inv.Void("error de digitación", time.Now()))

	err := inv.ApplyPayment(decimal.NewFromInt(10), time.Now())
	assert.ErrorIs(t, err, domain.ErrInvoiceVoided)
}

// Un abono sobre una factura vencida la regresa a partial/paid según el balance.
func TestApplyPayment_SobreVencida(t *testing.T) {
	inv := creditInvoice(100)
	require.NoError(t, inv.MarkOverdue(inv.DueDate.AddDate(0, 0, 1)))
	require.Equal(t, entity.StatusOverdue, inv.Status)

	require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(100), time.Now()))
	assert.Equal(t, entity.StatusPaid, inv.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// MarkOverdue
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkOverdue_PendienteVencida(t *testing.T) {
	inv := creditInvoice(100)
	err := inv.MarkOverdue(inv.DueDate.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, entity.StatusOverdue, inv.Status)
}

func TestMarkOverdue_AntesDelVencimiento(t *testing.T) {
	inv := creditInvoice(100)
	err := inv.MarkOverdue(inv.DueDate.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, domain.ErrConflict, "antes de la fecha de vencimiento no hay transición")
}

func TestMarkOverdue_ElMismoDiaNoVence(t *testing.T) {
	inv := creditInvoice(100)
	err := inv.MarkOverdue(inv.DueDate)
	assert.ErrorIs(t, err, domain.ErrConflict, "la factura vence después del día límite, no durante")
}

func TestMarkOverdue_PagadaNoTransiciona(t *testing.T) {
	inv := creditInvoice(100)
	require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(100), time.Now()))

	err := inv.MarkOverdue(inv.DueDate.AddDate(0, 0, 30))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestMarkOverdue_ContadoSinDueDate(t *testing.T) {
	inv := creditInvoice(100)
	inv.SaleType = entity.SaleTypeCash
	inv.DueDate = time.Time{}

	err := inv.MarkOverdue(time.Now())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Void
// ──────────────────────────────────────────────────────────────────────────────

func TestVoid_ConMotivo(t *testing.T) {
	inv := creditInvoice(100)
	now := time.Now()

	require.NoError(t, inv.Void("cliente devolvió la mercancía", now))
	assert.Equal(t, entity.StatusVoided, inv.Status)
	assert.Equal(t, "cliente devolvió la mercancía", inv.VoidReason)
	assert.Equal(t, now, inv.VoidedAt)
	assert.Equal(t, "B0100000001", inv.NCF, "el NCF se conserva: los anulados se declaran en el 608")
}

func TestVoid_SinMotivo(t *testing.T) {
	inv := creditInvoice(100)
	err := inv.Void("", time.Now())
	assert.ErrorIs(t, err, domain.ErrVoidReasonRequired)
	assert.Equal(t, entity.StatusPending, inv.Status)
}

func TestVoid_EsTerminal(t *testing.T) {
	inv := creditInvoice(100)
	require.NoError(t, inv.Void("duplicada", time.Now()))

	assert.ErrorIs(t, inv.Void("otra vez", time.Now()), domain.ErrInvoiceVoided)
	assert.ErrorIs(t, inv.ApplyPayment(decimal.NewFromInt(1), time.Now()), domain.ErrInvoiceVoided)
	assert.Equal(t, "duplicada", inv.VoidReason, "el motivo original no se sobreescribe")
}

func TestVoid_FacturaPagadaTambienSeAnula(t *testing.T) {
	inv := creditInvoice(100)
	require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(100), time.Now()))

	require.NoError(t, inv.Void("devolución completa", time.Now()))
	assert.Equal(t, entity.StatusVoided, inv.Status)
}
