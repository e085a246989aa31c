package pricing

import (
	"math"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// Price последовательно применяет правила к базовой сумме.
// Каждое правило считается от текущего остатка (running), а не от базы:
// скидки компаундятся, и порядок применения влияет на итог.
//
// Пример: base=1000, правила [10%, 50 flat] → 1000 → 900 → 850.
// Обратный порядок [50 flat, 10%] → 1000 → 950 → 855.
//
// Сумма каждой скидки ограничивается остатком (running не уходит в минус),
// итог округляется и не бывает отрицательным. Правила не мутируются:
// результат - value-object, который вызывающий снимает на свою запись.
func Price(baseAmount float64, rules []*domain.DiscountRule) domain.PriceBreakdown {
	breakdown := domain.PriceBreakdown{
		BaseAmount: baseAmount,
		Applied:    make([]domain.AppliedDiscount, 0, len(rules)),
	}

	running := baseAmount

	for _, rule := range rules {
		var amount float64
		switch rule.Type {
		case domain.DiscountFlat:
			amount = rule.Value
		case domain.DiscountPercentage:
			amount = running * rule.Value / 100
		default:
			continue
		}

		if amount > running {
			amount = running
		}
		if amount < 0 {
			amount = 0
		}

		running -= amount

		breakdown.Applied = append(breakdown.Applied, domain.AppliedDiscount{
			RuleID: rule.ID,
			Title:  rule.Title,
			Type:   rule.Type,
			Value:  rule.Value,
			Amount: amount,
		})
	}

	final := math.Round(running)
	if final < 0 {
		final = 0
	}

	breakdown.FinalAmount = final
	breakdown.TotalDiscount = baseAmount - final

	return breakdown
}
