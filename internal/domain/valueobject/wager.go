package valueobject

import "github.com/shopspring/decimal"

// Доля от ставки позиции, которую получает исполнитель.
// Остаток удерживается площадкой как комиссия.
var payoutRate = decimal.NewFromFloat(0.85)

// CalculatePay вычисляет выплату исполнителю по ставке позиции.
// Расчёт ведётся в целых рублях с округлением вниз, чтобы сумма
// выплат никогда не превышала ставку, умноженную на долю.
func CalculatePay(wager int64) int64 {
	if wager <= 0 {
		return 0
	}
	pay := decimal.NewFromInt(wager).Mul(payoutRate)
	return pay.Floor().IntPart()
}
