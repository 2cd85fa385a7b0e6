package calculations

import (
	"fmt"
	"math"

	"github.com/cloud-ru/mcp-parcelado-go/pkg/utils"
)

// MarginalFactor во сколько раз стоимость кредита может превышать доходность,
// оставаясь в «желтой» зоне
const MarginalFactor = 1.2

// Classify сравнивает эффективную ставку рассрочки с доходностью вложений (проценты в месяц).
// Граничные значения относятся к более выгодной категории.
func Classify(effectiveMonthlyPercent, returnMonthlyPercent float64) Recommendation {
	return classify(effectiveMonthlyPercent, returnMonthlyPercent, 0)
}

// ClassifyEffectiveRate классифицирует найденную CET по неокругленной ставке.
// Отклонение от границы в пределах точности поиска считается попаданием на границу.
func ClassifyEffectiveRate(rate EffectiveRate, returnMonthlyPercent float64) Recommendation {
	return classify(rate.Rate*100, returnMonthlyPercent, rate.Precision)
}

func classify(effective, ret, eps float64) Recommendation {
	switch {
	case effective <= ret+eps:
		return Recommendation{
			Tier:    TierFavorable,
			Message: fmt.Sprintf("Parcelar compensa: o custo efetivo (%.2f%% a.m.) não supera o rendimento do investimento (%.2f%% a.m.).",
				effective, ret),
		}
	case effective <= ret*MarginalFactor+eps:
		return Recommendation{
			Tier:    TierMarginal,
			Message: fmt.Sprintf("Atenção: o custo efetivo (%.3f%% a.m.) supera o rendimento (%.3f%% a.m.) em até 20%%; a diferença é pequena.",
				effective, ret),
		}
	default:
		return Recommendation{
			Tier:    TierUnfavorable,
			Message: fmt.Sprintf("Pagar à vista é melhor: o custo efetivo (%.2f%% a.m.) supera o rendimento (%.2f%% a.m.) em mais de 20%%.",
				effective, ret),
		}
	}
}

// CompareFinalBalance оценивает рассрочку по балансу счета после последнего платежа.
// Отрицательный баланс допустим: доходности не хватило на платежи.
// Разница меньше копейки считается равенством.
func CompareFinalBalance(finalBalance float64) BalanceVerdict {
	verdict := BalanceVerdict{
		FinalBalance: finalBalance,
		Difference:   math.Abs(finalBalance),
	}

	switch rounded := utils.Round2(finalBalance); {
	case rounded > 0:
		verdict.Choice = ChoiceFinance
		verdict.Message = fmt.Sprintf("Parcelar é vantajoso: ao final sobra %s investido.", utils.FormatBRL(finalBalance))
	case rounded < 0:
		verdict.Choice = ChoiceCash
		verdict.Message = fmt.Sprintf("Pagar à vista é vantajoso: parcelando faltariam %s.", utils.FormatBRL(-finalBalance))
	default:
		verdict.Choice = ChoiceEquivalent
		verdict.Difference = 0
		verdict.Message = "As duas opções são equivalentes."
	}

	return verdict
}

// CompareCashDiscount сравнивает скидку за оплату сразу, вложенную на весь срок,
// с балансом, который остается при оплате в рассрочку
func CompareCashDiscount(cfg ConfigInterface, principal, discountPercent, returnRatePercent float64,
	months int, financedBalance float64) (*DiscountVerdict, error) {

	if !utils.IsFinite(discountPercent) || discountPercent < 0 || discountPercent >= 100 {
		return nil, fmt.Errorf("%w: скидка должна быть в диапазоне [0; 100)", ErrInvalidInput)
	}
	if !utils.IsFinite(principal) || principal <= 0 {
		return nil, fmt.Errorf("%w: сумма должна быть положительной", ErrInvalidInput)
	}

	discountAmount := principal * discountPercent / 100.0

	growth, err := DepositSchedule(cfg, discountAmount, returnRatePercent, months, 0, false)
	if err != nil {
		return nil, err
	}
	futureValue := growth.Summary.FinalBalance

	diff := futureValue - financedBalance
	verdict := &DiscountVerdict{
		DiscountPercent:     discountPercent,
		DiscountAmount:      utils.Round2(discountAmount),
		CashPrice:           utils.Round2(principal - discountAmount),
		DiscountFutureValue: futureValue,
		FinancedBalance:     financedBalance,
		Margin:              math.Abs(diff),
	}

	switch rounded := utils.Round2(diff); {
	case rounded > 0:
		verdict.Choice = ChoiceCash
		verdict.Message = fmt.Sprintf("Pagar à vista com desconto rende %s a mais ao final do prazo.", utils.FormatBRL(diff))
	case rounded < 0:
		verdict.Choice = ChoiceFinance
		verdict.Message = fmt.Sprintf("Parcelar rende %s a mais do que investir o desconto.", utils.FormatBRL(-diff))
	default:
		verdict.Choice = ChoiceEquivalent
		verdict.Margin = 0
		verdict.Message = "O desconto à vista e o parcelamento se equivalem."
	}

	return verdict, nil
}
