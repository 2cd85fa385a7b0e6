package calculations

import (
	"fmt"
	"math"

	"github.com/cloud-ru/mcp-parcelado-go/pkg/utils"
)

// InstallmentPayment рассчитывает фиксированный ежемесячный платеж (аннуитет).
// monthlyRate задается долей, а не процентом.
func InstallmentPayment(principal float64, months int, monthlyRate float64) (float64, error) {
	if months < 1 {
		return 0, fmt.Errorf("%w: срок должен быть не меньше 1 месяца", ErrInvalidInput)
	}
	if !utils.IsFinite(principal) || principal <= 0 {
		return 0, fmt.Errorf("%w: сумма должна быть положительной", ErrInvalidInput)
	}
	if !utils.IsFinite(monthlyRate) || monthlyRate < 0 {
		return 0, fmt.Errorf("%w: ставка не может быть отрицательной", ErrInvalidInput)
	}

	if monthlyRate == 0 {
		return principal / float64(months), nil
	}

	factor := math.Pow(1.0+monthlyRate, float64(months))
	return principal * (monthlyRate * factor) / (factor - 1.0), nil
}

// AmortizationSchedule раскладывает каждый платеж рассрочки на проценты и тело долга
func AmortizationSchedule(principal, monthlyRatePercent float64, months int) (*AmortizationResult, error) {
	r := monthlyRatePercent / 100.0

	monthlyPayment, err := InstallmentPayment(principal, months, r)
	if err != nil {
		return nil, err
	}

	schedule := make([]ScheduleEntry, 0, months)
	remaining := principal
	cumI := 0.0
	cumP := 0.0
	totalPaid := 0.0

	for m := 1; m <= months; m++ {
		interest := remaining * r
		principalComponent := monthlyPayment - interest
		monthly := monthlyPayment

		// Последний платеж закрывает остаток с учетом округлений
		if m == months {
			principalComponent = remaining
			monthly = principalComponent + interest
		}

		interest = utils.Round2(interest)
		principalComponent = utils.Round2(principalComponent)
		monthly = utils.Round2(monthly)

		remaining = utils.Round2(remaining - principalComponent)
		cumI = utils.Round2(cumI + interest)
		cumP = utils.Round2(cumP + principalComponent)
		totalPaid = utils.Round2(totalPaid + monthly)

		if remaining < -0.01 {
			return nil, fmt.Errorf("численная ошибка: остаток долга стал отрицательным")
		}
		if remaining < 0 {
			remaining = 0.0
		}

		schedule = append(schedule, ScheduleEntry{
			Month:               m,
			Payment:             monthly,
			Interest:            interest,
			PrincipalComponent:  principalComponent,
			RemainingPrincipal:  remaining,
			CumulativeInterest:  cumI,
			CumulativePrincipal: cumP,
		})
	}

	summary := LoanSummary{
		Principal:          utils.Round2(principal),
		MonthlyRatePercent: monthlyRatePercent,
		Months:             months,
		MonthlyPayment:     utils.Round2(monthlyPayment),
		TotalPaid:          totalPaid,
		TotalInterest:      cumI,
		OverpaymentPercent: utils.Round2(cumI / principal * 100),
	}

	return &AmortizationResult{
		Summary:  summary,
		Schedule: schedule,
	}, nil
}
