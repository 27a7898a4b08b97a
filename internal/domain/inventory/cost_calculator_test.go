package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/factura-rd/internal/domain/inventory"
)

func TestWeightedAverageCost_PromedioPonderado(t *testing.T) {
	// 10 unidades a 5.00 + 10 unidades a 7.00 = promedio 6.00
	got := inventory.WeightedAverageCost(
		decimal.NewFromInt(10), decimal.NewFromInt(5),
		decimal.NewFromInt(10), decimal.NewFromInt(7),
	)
	assert.True(t, got.Equal(decimal.NewFromInt(6)), "promedio fue %s", got)
}

func TestWeightedAverageCost_PrimeraEntrada(t *testing.T) {
	// Sin stock previo, el promedio es el costo de la entrada
	got := inventory.WeightedAverageCost(
		decimal.Zero, decimal.Zero,
		decimal.NewFromInt(20), decimal.NewFromFloat(3.50),
	)
	assert.True(t, got.Equal(decimal.NewFromFloat(3.50)))
}

func TestWeightedAverageCost_EntradaDominante(t *testing.T) {
	// 1 unidad a 100 + 99 a 1 = (100 + 99) / 100 = 1.99
	got := inventory.WeightedAverageCost(
		decimal.NewFromInt(1), decimal.NewFromInt(100),
		decimal.NewFromInt(99), decimal.NewFromInt(1),
	)
	assert.True(t, got.Equal(decimal.NewFromFloat(1.99)), "promedio fue %s", got)
}

func TestWeightedAverageCost_SumaNoPositiva(t *testing.T) {
	got := inventory.WeightedAverageCost(
		decimal.Zero, decimal.NewFromInt(5),
		decimal.Zero, decimal.NewFromInt(7),
	)
	assert.True(t, got.IsZero(), "sin cantidades el promedio colapsa a cero")
}
