// Package fiscal implementa las reglas fiscales dominicanas puras: formato y
// validación del NCF (Número de Comprobante Fiscal) y la aritmética del ITBIS.
// No tiene efectos secundarios ni I/O; la asignación de secuencias vive en
// internal/application/billing.
package fiscal

import (
	"fmt"
	"regexp"

	"github.com/tu-usuario/factura-rd/internal/domain"
)

// Tipos de NCF autorizados por la DGII (Norma General 06-2018).
const (
	NCFTypeCreditoFiscal   = "B01" // Crédito fiscal (ventas a contribuyentes)
	NCFTypeConsumidorFinal = "B02" // Consumidor final
	NCFTypeRegimenEspecial = "B14" // Regímenes especiales de tributación
	NCFTypeGubernamental   = "B15" // Comprobantes gubernamentales
	NCFTypeExportacion     = "B16" // Exportaciones
)

// ncfSequenceDigits dígitos del consecutivo tras el prefijo de tipo.
// El NCF completo mide 11 caracteres: letra + 2 dígitos de tipo + 8 de secuencia.
const ncfSequenceDigits = 8

// MaxSequence es el mayor consecutivo representable en el formato legal.
const MaxSequence = int64(99999999)

// ncfPattern forma legal del NCF completo.
var ncfPattern = regexp.MustCompile(`^[A-Z]\d{2}\d{8}$`)

// ValidNCFType indica si el tipo corresponde a un tipo de comprobante autorizado.
func ValidNCFType(t string) bool {
	switch t {
	case NCFTypeCreditoFiscal, NCFTypeConsumidorFinal, NCFTypeRegimenEspecial,
		NCFTypeGubernamental, NCFTypeExportacion:
		return true
	}
	return false
}

// FormatNCF arma el NCF legal: prefijo de tipo + consecutivo con ceros a la
// izquierda (ancho fijo; el consecutivo nunca se trata como entero en las
// fronteras para no perder ceros).
func FormatNCF(ncfType string, sequence int64) (string, error) {
	if !ValidNCFType(ncfType) {
		return "", fmt.Errorf("%w: tipo NCF %q", domain.ErrInvalidInput, ncfType)
	}
	if sequence < 1 || sequence > MaxSequence {
		return "", fmt.Errorf("%w: consecutivo %d fuera del formato NCF", domain.ErrInvalidInput, sequence)
	}
	return fmt.Sprintf("%s%0*d", ncfType, ncfSequenceDigits, sequence), nil
}

// ValidNCF valida la forma completa de un NCF (ej. "B0100000042").
func ValidNCF(ncf string) bool {
	return ncfPattern.MatchString(ncf) && ValidNCFType(ncf[:3])
}

// Códigos DGII de tipo de identificación (reportes 606/607/608).
const (
	IDTypeRNC       = "1" // RNC (Registro Nacional del Contribuyente)
	IDTypeCedula    = "2" // Cédula de identidad
	IDTypePasaporte = "3" // Pasaporte
)
