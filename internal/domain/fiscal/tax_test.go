package fiscal_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/factura-rd/internal/domain/fiscal"
)

// ──────────────────────────────────────────────────────────────────────────────
// ApplyTax — la aritmética del ITBIS es el corazón de cada factura: cualquier
// cambio en el redondeo o en la fórmula se refleja en la declaración mensual.
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyTax_TasaGeneral18(t *testing.T) {
	bd, err := fiscal.ApplyTax(decimal.NewFromInt(100), decimal.NewFromInt(18))
	require.NoError(t, err)

	assert.True(t, bd.Subtotal.Equal(decimal.NewFromInt(100)), "subtotal debe ser 100, fue %s", bd.Subtotal)
	assert.True(t, bd.Tax.Equal(decimal.NewFromInt(18)), "ITBIS debe ser 18, fue %s", bd.Tax)
	assert.True(t, bd.Total.Equal(decimal.NewFromInt(118)), "total debe ser 118, fue %s", bd.Total)
}

func TestApplyTax_TasaReducida16(t *testing.T) {
	bd, err := fiscal.ApplyTax(decimal.NewFromFloat(250.50), decimal.NewFromInt(16))
	require.NoError(t, err)

	// 250.50 * 0.16 = 40.08
	assert.True(t, bd.Tax.Equal(decimal.NewFromFloat(40.08)), "ITBIS 16%% debe ser 40.08, fue %s", bd.Tax)
	assert.True(t, bd.Total.Equal(decimal.NewFromFloat(290.58)))
}

func TestApplyTax_Exento(t *testing.T) {
	bd, err := fiscal.ApplyTax(decimal.NewFromFloat(99.99), decimal.Zero)
	require.NoError(t, err)

	assert.True(t, bd.Tax.IsZero(), "producto exento no lleva ITBIS")
	assert.True(t, bd.Total.Equal(bd.Subtotal))
}

// El redondeo es mitad-lejos-de-cero, una sola vez por campo.
func TestApplyTax_RedondeoHalfAwayFromZero(t *testing.T) {
	// 10.25 * 18% = 1.845 → 1.85 (no 1.84)
	bd, err := fiscal.ApplyTax(decimal.NewFromFloat(10.25), decimal.NewFromInt(18))
	require.NoError(t, err)
	assert.Equal(t, "1.85", bd.Tax.StringFixed(2))
}

// Aplicar el cálculo repetidamente sobre el resultado no acumula deriva: el
// desglose es estable una vez redondeado.
func TestApplyTax_SinDerivaAcumulada(t *testing.T) {
	bd1, err := fiscal.ApplyTax(decimal.NewFromFloat(123.456), decimal.NewFromInt(18))
	require.NoError(t, err)
	bd2, err := fiscal.ApplyTax(bd1.Subtotal, decimal.NewFromInt(18))
	require.NoError(t, err)

	assert.True(t, bd1.Tax.Equal(bd2.Tax), "mismo subtotal redondeado debe dar el mismo ITBIS")
	assert.True(t, bd1.Total.Equal(bd2.Total))
}

func TestApplyTax_MontoNegativo(t *testing.T) {
	_, err := fiscal.ApplyTax(decimal.NewFromInt(-1), decimal.NewFromInt(18))
	assert.ErrorIs(t, err, fiscal.ErrInvalidAmount)
}

func TestApplyTax_TasaFueraDeRango(t *testing.T) {
	_, err := fiscal.ApplyTax(decimal.NewFromInt(100), decimal.NewFromInt(101))
	assert.ErrorIs(t, err, fiscal.ErrInvalidRate)

	_, err = fiscal.ApplyTax(decimal.NewFromInt(100), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, fiscal.ErrInvalidRate)
}

func TestApplyDefaultTax_Usa18(t *testing.T) {
	bd, err := fiscal.ApplyDefaultTax(decimal.NewFromInt(200))
	require.NoError(t, err)
	assert.True(t, bd.Tax.Equal(decimal.NewFromInt(36)))
}

// ──────────────────────────────────────────────────────────────────────────────
// ExtractTax — precios con ITBIS incluido (retail)
// ──────────────────────────────────────────────────────────────────────────────

func TestExtractTax_DescomponePrecioConITBIS(t *testing.T) {
	// 118 con 18% incluido → subtotal 100, ITBIS 18
	bd, err := fiscal.ExtractTax(decimal.NewFromInt(118), decimal.NewFromInt(18))
	require.NoError(t, err)

	assert.True(t, bd.Subtotal.Equal(decimal.NewFromInt(100)), "subtotal fue %s", bd.Subtotal)
	assert.True(t, bd.Tax.Equal(decimal.NewFromInt(18)), "ITBIS fue %s", bd.Tax)
	assert.True(t, bd.Total.Equal(decimal.NewFromInt(118)))
}

// ApplyTax y ExtractTax son inversas dentro de un centavo: el redondeo
// independiente por campo impide exigir igualdad exacta.
func TestExtractTax_InversaDeApplyDentroDeUnCentavo(t *testing.T) {
	cent := decimal.NewFromFloat(0.01)
	rates := []decimal.Decimal{decimal.Zero, decimal.NewFromInt(16), decimal.NewFromInt(18)}
	amounts := []decimal.Decimal{
		decimal.NewFromFloat(0.01),
		decimal.NewFromFloat(9.99),
		decimal.NewFromFloat(123.45),
		decimal.NewFromFloat(10000),
	}
	for _, rate := range rates {
		for _, amount := range amounts {
			applied, err := fiscal.ApplyTax(amount, rate)
			require.NoError(t, err)
			extracted, err := fiscal.ExtractTax(applied.Total, rate)
			require.NoError(t, err)

			diff := extracted.Subtotal.Sub(applied.Subtotal).Abs()
			assert.True(t, diff.LessThanOrEqual(cent),
				"round-trip de %s al %s%%: subtotal %s vs %s", amount, rate, applied.Subtotal, extracted.Subtotal)
		}
	}
}

func TestExtractTax_MontoNegativo(t *testing.T) {
	_, err := fiscal.ExtractTax(decimal.NewFromInt(-118), decimal.NewFromInt(18))
	assert.ErrorIs(t, err, fiscal.ErrInvalidAmount)
}

func TestRound2_MitadLejosDeCero(t *testing.T) {
	assert.Equal(t, "1.13", fiscal.Round2(decimal.NewFromFloat(1.125)).StringFixed(2))
	assert.Equal(t, "-1.13", fiscal.Round2(decimal.NewFromFloat(-1.125)).StringFixed(2))
}
