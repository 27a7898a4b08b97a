package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// Errores de facturación fiscal (NCF, totales, pagos). Son valores de retorno
// puros: el handler HTTP los traduce a códigos; ninguno es fatal para el proceso.
var (
	// ErrEmptyInvoice la factura no tiene líneas.
	ErrEmptyInvoice = errors.New("la factura no tiene líneas")
	// ErrInvalidLineDiscount el descuento de línea excede cantidad*precio.
	ErrInvalidLineDiscount = errors.New("descuento de línea mayor al subtotal de la línea")
	// ErrNegativeTotal el descuento global deja el total por debajo de cero.
	ErrNegativeTotal = errors.New("el total de la factura es negativo")
	// ErrNoSequenceAvailable no hay secuencia NCF activa, vigente y con números
	// disponibles para el tipo solicitado. La venta no puede proceder legalmente sin NCF.
	ErrNoSequenceAvailable = errors.New("no hay secuencia NCF disponible para el tipo de comprobante")
	// ErrSequenceExpired la secuencia seleccionada venció (la DGII fija fecha límite por rango).
	ErrSequenceExpired = errors.New("la secuencia NCF está vencida")
	// ErrAllocationConflict otro proceso avanzó el consecutivo y se agotaron los reintentos.
	ErrAllocationConflict = errors.New("conflicto concurrente asignando NCF")
	// ErrOverpayment el pago excede el balance pendiente de la factura.
	ErrOverpayment = errors.New("el monto del pago excede el balance pendiente")
	// ErrInvoiceVoided la factura está anulada: no admite pagos ni transiciones.
	ErrInvoiceVoided = errors.New("la factura está anulada")
	// ErrVoidReasonRequired anular exige un motivo (alimenta el reporte 608).
	ErrVoidReasonRequired = errors.New("anular una factura requiere un motivo")
)
