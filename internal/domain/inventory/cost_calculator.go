package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost implementa la lógica de costo promedio ponderado
// (servicio de dominio): ((StockActual*CostoActual) + (CantEntrada*CostoEntrada))
// / (StockActual + CantEntrada).
func WeightedAverageCost(stockQty, currentCost, inQty, inCost decimal.Decimal) decimal.Decimal {
	sum := stockQty.Add(inQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockQty.Mul(currentCost).Add(inQty.Mul(inCost))
	return num.Div(sum)
}
