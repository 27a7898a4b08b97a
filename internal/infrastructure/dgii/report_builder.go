// Package dgii construye los archivos de los formatos de envío de datos a la
// DGII (Norma General 07-2018): 606 (compras), 607 (ventas) y 608
// (comprobantes anulados). Son archivos de texto plano delimitados por pipe,
// una fila por comprobante, con una fila cabecera que identifica formato,
// RNC del declarante, período y cantidad de registros.
//
// La DGII recibe los archivos en ISO-8859-1 con fin de línea CRLF; la
// codificación se hace aquí con golang.org/x/text/encoding/charmap.
package dgii

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
)

// Códigos de formato.
const (
	Format606 = "606"
	Format607 = "607"
	Format608 = "608"
)

// defaultVoidType tipo de anulación declarado en el 608 cuando el sistema no
// registra una causal DGII específica ("04" = corrección de la información).
const defaultVoidType = "04"

// Purchase606Row fila del formato 606 (compras de bienes y servicios).
type Purchase606Row struct {
	SupplierID     string // RNC/cédula/pasaporte del proveedor
	SupplierIDType string // "1" RNC, "2" Cédula, "3" Pasaporte
	NCF            string
	Date           time.Time
	Tax            decimal.Decimal // ITBIS facturado
	Amount         decimal.Decimal // monto facturado sin ITBIS
}

// Sale607Row fila del formato 607 (ventas de bienes y servicios).
type Sale607Row struct {
	CustomerID     string
	CustomerIDType string
	NCF            string
	Date           time.Time
	Tax            decimal.Decimal
	Amount         decimal.Decimal
}

// Voided608Row fila del formato 608 (comprobantes anulados).
type Voided608Row struct {
	NCF      string
	VoidedAt time.Time
}

// Period período de declaración AAAAMM.
type Period struct {
	Year  int
	Month time.Month
}

func (p Period) String() string {
	return fmt.Sprintf("%04d%02d", p.Year, int(p.Month))
}

// Bounds devuelve [desde, hasta) del período en la zona horaria dada.
func (p Period) Bounds(loc *time.Location) (time.Time, time.Time) {
	from := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 1, 0)
}

// Valid indica si el período es declarable.
func (p Period) Valid() bool {
	return p.Year >= 2000 && p.Month >= time.January && p.Month <= time.December
}

// Build606 arma el archivo 606 para el RNC declarante.
func Build606(rnc string, period Period, rows []Purchase606Row) ([]byte, error) {
	var b strings.Builder
	writeHeader(&b, Format606, rnc, period, len(rows))
	for _, r := range rows {
		writeLine(&b,
			r.SupplierID,
			r.SupplierIDType,
			r.NCF,
			r.Date.Format("20060102"),
			r.Tax.StringFixed(2),
			r.Amount.StringFixed(2),
		)
	}
	return encodeLatin1(b.String())
}

// Build607 arma el archivo 607 para el RNC declarante.
func Build607(rnc string, period Period, rows []Sale607Row) ([]byte, error) {
	var b strings.Builder
	writeHeader(&b, Format607, rnc, period, len(rows))
	for _, r := range rows {
		writeLine(&b,
			r.CustomerID,
			r.CustomerIDType,
			r.NCF,
			r.Date.Format("20060102"),
			r.Tax.StringFixed(2),
			r.Amount.StringFixed(2),
		)
	}
	return encodeLatin1(b.String())
}

// Build608 arma el archivo 608 (anulados) para el RNC declarante.
func Build608(rnc string, period Period, rows []Voided608Row) ([]byte, error) {
	var b strings.Builder
	writeHeader(&b, Format608, rnc, period, len(rows))
	for _, r := range rows {
		writeLine(&b,
			r.NCF,
			r.VoidedAt.Format("20060102"),
			defaultVoidType,
		)
	}
	return encodeLatin1(b.String())
}

// Filename nombre de archivo según la convención DGII: <formato><RNC><AAAAMM>.txt
func Filename(format, rnc string, period Period) string {
	return fmt.Sprintf("%s%s%s.txt", format, rnc, period)
}

func writeHeader(b *strings.Builder, format, rnc string, period Period, rows int) {
	writeLine(b, format, rnc, period.String(), fmt.Sprintf("%d", rows))
}

func writeLine(b *strings.Builder, fields ...string) {
	b.WriteString(strings.Join(fields, "|"))
	b.WriteString("\r\n")
}

func encodeLatin1(s string) ([]byte, error) {
	var out bytes.Buffer
	w := charmap.ISO8859_1.NewEncoder().Writer(&out)
	if _, err := w.Write([]byte(s)); err != nil {
		return nil, fmt.Errorf("dgii: codificar ISO-8859-1: %w", err)
	}
	return out.Bytes(), nil
}
