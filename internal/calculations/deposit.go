package calculations

import (
	"fmt"

	"github.com/cloud-ru/mcp-parcelado-go/pkg/utils"
)

// ConfigInterface определяет интерфейс для получения конфигурации
type ConfigInterface interface {
	BalanceCap() float64
}

// DepositSchedule рассчитывает рост вложенной суммы с ежемесячной капитализацией
// и, при необходимости, ежемесячными взносами
func DepositSchedule(cfg ConfigInterface, initialAmount, monthlyRatePercent float64, months int,
	monthlyContribution float64, contributionAtBeginning bool) (*DepositResult, error) {

	if months < 1 {
		return nil, fmt.Errorf("%w: срок должен быть не меньше 1 месяца", ErrInvalidInput)
	}
	if initialAmount < 0 || monthlyRatePercent < 0 || monthlyContribution < 0 {
		return nil, fmt.Errorf("%w: сумма, ставка и взнос не могут быть отрицательными", ErrInvalidInput)
	}

	balance := initialAmount
	r := monthlyRatePercent / 100.0
	contrib := monthlyContribution

	schedule := make([]ScheduleEntry, 0, months)
	cumI := 0.0
	cumC := 0.0

	limit := cfg.BalanceCap()

	for m := 1; m <= months; m++ {
		starting := balance

		if contributionAtBeginning {
			balance = utils.Round2(balance + contrib)
			cumC = utils.Round2(cumC + contrib)
		}

		interest := utils.Round2(balance * r)
		balance = utils.Round2(balance + interest)
		cumI = utils.Round2(cumI + interest)

		if !contributionAtBeginning {
			balance = utils.Round2(balance + contrib)
			cumC = utils.Round2(cumC + contrib)
		}

		if balance > limit {
			return nil, fmt.Errorf("%w: баланс в месяце %d превысил верхнюю границу %g (проверьте ставку, срок и взносы)",
				ErrInvalidInput, m, limit)
		}

		schedule = append(schedule, ScheduleEntry{
			Month:                   m,
			StartingBalance:         utils.Round2(starting),
			Contribution:            utils.Round2(contrib),
			InterestEarned:          interest,
			EndingBalance:           balance,
			CumulativeContributions: cumC,
			CumulativeInterest:      cumI,
		})
	}

	summary := DepositSummary{
		InitialAmount:           utils.Round2(initialAmount),
		MonthlyRatePercent:      monthlyRatePercent,
		Months:                  months,
		MonthlyContribution:     utils.Round2(contrib),
		ContributionAtBeginning: contributionAtBeginning,
		FinalBalance:            balance,
		TotalContributions:      cumC,
		TotalInterest:           cumI,
	}

	return &DepositResult{
		Summary:  summary,
		Schedule: schedule,
	}, nil
}
