package dgii_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/factura-rd/internal/infrastructure/dgii"
)

const testRNC = "131234567"

var testPeriod = dgii.Period{Year: 2026, Month: time.January}

func lines(t *testing.T, content []byte) []string {
	t.Helper()
	s := string(content)
	require.True(t, strings.HasSuffix(s, "\r\n"), "el archivo termina en CRLF")
	return strings.Split(strings.TrimSuffix(s, "\r\n"), "\r\n")
}

func TestBuild607_CabeceraYDetalle(t *testing.T) {
	rows := []dgii.Sale607Row{
		{
			CustomerID:     "00112345678",
			CustomerIDType: "2",
			NCF:            "B0100000042",
			Date:           time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
			Tax:            decimal.NewFromFloat(180),
			Amount:         decimal.NewFromFloat(1000),
		},
		{
			CustomerID:     "131999888",
			CustomerIDType: "1",
			NCF:            "B0100000043",
			Date:           time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC),
			Tax:            decimal.NewFromFloat(36.90),
			Amount:         decimal.NewFromFloat(205.00),
		},
	}
	content, err := dgii.Build607(testRNC, testPeriod, rows)
	require.NoError(t, err)

	got := lines(t, content)
	require.Len(t, got, 3, "cabecera + 2 filas")
	assert.Equal(t, "607|131234567|202601|2", got[0])
	assert.Equal(t, "00112345678|2|B0100000042|20260115|180.00|1000.00", got[1])
	assert.Equal(t, "131999888|1|B0100000043|20260120|36.90|205.00", got[2])
}

func TestBuild606_FormatoDeFila(t *testing.T) {
	rows := []dgii.Purchase606Row{
		{
			SupplierID:     "101000001",
			SupplierIDType: "1",
			NCF:            "B0100009999",
			Date:           time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
			Tax:            decimal.NewFromFloat(90),
			Amount:         decimal.NewFromFloat(500),
		},
	}
	content, err := dgii.Build606(testRNC, testPeriod, rows)
	require.NoError(t, err)

	got := lines(t, content)
	require.Len(t, got, 2)
	assert.Equal(t, "606|131234567|202601|1", got[0])
	assert.Equal(t, "101000001|1|B0100009999|20260105|90.00|500.00", got[1])
}

func TestBuild608_AnuladosConTipoDeAnulacion(t *testing.T) {
	rows := []dgii.Voided608Row{
		{NCF: "B0200000007", VoidedAt: time.Date(2026, 1, 28, 16, 45, 0, 0, time.UTC)},
	}
	content, err := dgii.Build608(testRNC, testPeriod, rows)
	require.NoError(t, err)

	got := lines(t, content)
	require.Len(t, got, 2)
	assert.Equal(t, "608|131234567|202601|1", got[0])
	assert.Equal(t, "B0200000007|20260128|04", got[1])
}

// Un período sin operaciones igual se declara: solo la cabecera con cero filas.
func TestBuild_PeriodoVacio(t *testing.T) {
	content, err := dgii.Build607(testRNC, testPeriod, nil)
	require.NoError(t, err)

	got := lines(t, content)
	require.Len(t, got, 1)
	assert.Equal(t, "607|131234567|202601|0", got[0])
}

// Los nombres con caracteres latinos no viajan en estos formatos, pero el
// encoder debe producir bytes ISO-8859-1 de un solo byte por carácter.
func TestBuild_CodificacionLatin1(t *testing.T) {
	rows := []dgii.Sale607Row{
		{
			CustomerID:     "00112345678",
			CustomerIDType: "2",
			NCF:            "B0100000001",
			Date:           time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			Tax:            decimal.Zero,
			Amount:         decimal.NewFromInt(100),
		},
	}
	content, err := dgii.Build607(testRNC, testPeriod, rows)
	require.NoError(t, err)
	for _, b := range content {
		assert.Less(t, b, byte(0x80), "el archivo solo lleva ASCII/Latin-1 de un byte")
	}
}

func TestFilename_ConvencionDGII(t *testing.T) {
	assert.Equal(t, "607131234567202601.txt", dgii.Filename(dgii.Format607, testRNC, testPeriod))
}

func TestPeriod_Bounds(t *testing.T) {
	from, to := testPeriod.Bounds(time.UTC)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), to, "límite superior exclusivo")
}

func TestPeriod_Valid(t *testing.T) {
	assert.True(t, dgii.Period{Year: 2026, Month: time.December}.Valid())
	assert.False(t, dgii.Period{Year: 2026, Month: 0}.Valid())
	assert.False(t, dgii.Period{Year: 2026, Month: 13}.Valid())
	assert.False(t, dgii.Period{Year: 1999, Month: time.March}.Valid())
}
