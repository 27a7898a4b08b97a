package fiscal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/factura-rd/internal/domain/fiscal"
)

func TestFormatNCF_AnchoFijoConCeros(t *testing.T) {
	ncf, err := fiscal.FormatNCF(fiscal.NCFTypeCreditoFiscal, 42)
	require.NoError(t, err)
	assert.Equal(t, "B0100000042", ncf, "el consecutivo lleva ceros a la izquierda hasta 8 dígitos")
	assert.Len(t, ncf, 11)
}

func TestFormatNCF_ConsecutivoMaximo(t *testing.T) {
	ncf, err := fiscal.FormatNCF(fiscal.NCFTypeConsumidorFinal, fiscal.MaxSequence)
	require.NoError(t, err)
	assert.Equal(t, "B0299999999", ncf)
}

func TestFormatNCF_FueraDeRango(t *testing.T) {
	_, err := fiscal.FormatNCF(fiscal.NCFTypeCreditoFiscal, 0)
	assert.Error(t, err, "el consecutivo 0 no es emitible")

	_, err = fiscal.FormatNCF(fiscal.NCFTypeCreditoFiscal, fiscal.MaxSequence+1)
	assert.Error(t, err, "por encima del máximo el formato legal no alcanza")
}

func TestFormatNCF_TipoInvalido(t *testing.T) {
	_, err := fiscal.FormatNCF("B99", 1)
	assert.Error(t, err)
}

func TestValidNCFType(t *testing.T) {
	for _, tipo := range []string{"B01", "B02", "B14", "B15", "B16"} {
		assert.True(t, fiscal.ValidNCFType(tipo), "tipo %s debe ser válido", tipo)
	}
	for _, tipo := range []string{"", "B03", "b01", "A01", "B1"} {
		assert.False(t, fiscal.ValidNCFType(tipo), "tipo %q no debe ser válido", tipo)
	}
}

func TestValidNCF(t *testing.T) {
	assert.True(t, fiscal.ValidNCF("B0100000042"))
	assert.True(t, fiscal.ValidNCF("B1600000001"))

	assert.False(t, fiscal.ValidNCF("B010000042"), "10 caracteres: le falta un dígito")
	assert.False(t, fiscal.ValidNCF("B0300000042"), "tipo no autorizado")
	assert.False(t, fiscal.ValidNCF("0100000042X"), "debe iniciar con letra")
	assert.False(t, fiscal.ValidNCF(""))
}
