package fiscal

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de validación de la aritmética de impuestos.
var (
	ErrInvalidAmount = errors.New("monto inválido para cálculo de impuesto")
	ErrInvalidRate   = errors.New("tasa de impuesto fuera de [0,100]")
)

// DefaultITBISRate tasa general del ITBIS (18%).
var DefaultITBISRate = decimal.NewFromInt(18)

var hundred = decimal.NewFromInt(100)

// TaxBreakdown desglose de un monto con su impuesto.
// Todos los campos van redondeados a 2 decimales (escala NUMERIC(12,2)).
type TaxBreakdown struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
	Rate     decimal.Decimal
}

// Round2 redondea a 2 decimales, mitad lejos de cero (política de moneda).
// decimal.Round ya implementa half-away-from-zero; el alias fija la escala.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func validateRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return fmt.Errorf("%w: %s", ErrInvalidRate, rate)
	}
	return nil
}

// ApplyTax calcula el ITBIS sobre un monto sin impuesto.
// Cada campo del resultado se redondea una sola vez (no se acumula deriva
// entre llamadas repetidas).
func ApplyTax(amount, rate decimal.Decimal) (TaxBreakdown, error) {
	if amount.IsNegative() {
		return TaxBreakdown{}, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	if err := validateRate(rate); err != nil {
		return TaxBreakdown{}, err
	}
	subtotal := Round2(amount)
	tax := Round2(subtotal.Mul(rate).Div(hundred))
	return TaxBreakdown{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    Round2(subtotal.Add(tax)),
		Rate:     rate,
	}, nil
}

// ApplyDefaultTax aplica la tasa general del 18%.
func ApplyDefaultTax(amount decimal.Decimal) (TaxBreakdown, error) {
	return ApplyTax(amount, DefaultITBISRate)
}

// ExtractTax descompone un monto que ya incluye ITBIS.
// subtotal = round2(total / (1 + tasa/100)); tax = round2(total - subtotal).
//
// ApplyTax y ExtractTax son inversas dentro de un centavo: el redondeo
// independiente de cada campo impide garantizar igualdad exacta.
func ExtractTax(totalWithTax, rate decimal.Decimal) (TaxBreakdown, error) {
	if totalWithTax.IsNegative() {
		return TaxBreakdown{}, fmt.Errorf("%w: %s", ErrInvalidAmount, totalWithTax)
	}
	if err := validateRate(rate); err != nil {
		return TaxBreakdown{}, err
	}
	divisor := decimal.NewFromInt(1).Add(rate.Div(hundred))
	subtotal := Round2(totalWithTax.Div(divisor))
	tax := Round2(totalWithTax.Sub(subtotal))
	return TaxBreakdown{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    Round2(totalWithTax),
		Rate:     rate,
	}, nil
}
