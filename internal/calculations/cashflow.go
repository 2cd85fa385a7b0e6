package calculations

import (
	"fmt"
	"math"

	"github.com/cloud-ru/mcp-parcelado-go/pkg/utils"
)

// SimulateInstallments моделирует счет, с которого оплачивается рассрочка:
// вся сумма покупки остается вложенной, каждый месяц на нее начисляется доходность,
// после чего списывается платеж.
func SimulateInstallments(in SimulationInput) (*SimulationResult, error) {
	if !utils.IsFinite(in.ReturnRatePercent) || in.ReturnRatePercent < 0 {
		return nil, fmt.Errorf("%w: доходность не может быть отрицательной", ErrInvalidInput)
	}
	if in.InflationRatePercent != nil && (!utils.IsFinite(*in.InflationRatePercent) || *in.InflationRatePercent < 0) {
		return nil, fmt.Errorf("%w: инфляция не может быть отрицательной", ErrInvalidInput)
	}

	j := in.InterestRatePercent / 100.0
	r := in.ReturnRatePercent / 100.0

	payment, err := InstallmentPayment(in.Principal, in.Months, j)
	if err != nil {
		return nil, err
	}

	schedule := make([]PeriodRecord, 0, in.Months)
	balance := in.Principal

	// Порядок месяцев важен: баланс на начало месяца равен балансу на конец предыдущего
	for m := 1; m <= in.Months; m++ {
		opening := balance
		periodReturn := opening * r
		afterReturn := opening + periodReturn
		closing := afterReturn - payment

		schedule = append(schedule, PeriodRecord{
			Month:              m,
			OpeningBalance:     opening,
			PeriodReturn:       periodReturn,
			BalanceAfterReturn: afterReturn,
			PaymentApplied:     -payment,
			ClosingBalance:     closing,
		})

		balance = closing
	}

	totalPaid := payment * float64(in.Months)

	result := &SimulationResult{
		Plan: InstallmentPlan{
			Payment: payment,
			Months:  in.Months,
		},
		Schedule:      schedule,
		FinalBalance:  balance,
		TotalPaid:     totalPaid,
		TotalInterest: totalPaid - in.Principal,
	}

	if in.InflationRatePercent != nil {
		bonus := applyInflation(schedule, payment, *in.InflationRatePercent/100.0)
		result.InflationBonus = &bonus
	}

	return result, nil
}

// CheckBalanceCap проверяет, что баланс счета ни в одном месяце не выходит за верхнюю границу
func CheckBalanceCap(cfg ConfigInterface, sim *SimulationResult) error {
	limit := cfg.BalanceCap()
	for _, rec := range sim.Schedule {
		if !utils.IsFinite(rec.BalanceAfterReturn) || !utils.IsFinite(rec.ClosingBalance) ||
			math.Abs(rec.BalanceAfterReturn) > limit || math.Abs(rec.ClosingBalance) > limit {
			return fmt.Errorf("%w: баланс счета в месяце %d превысил верхнюю границу %g (проверьте доходность и срок)",
				ErrInvalidInput, rec.Month, limit)
		}
	}
	return nil
}

// applyInflation записывает в каждую строку платеж в ценах первого месяца
// и возвращает накопленную разницу между номинальными и реальными платежами.
func applyInflation(schedule []PeriodRecord, payment, inflation float64) float64 {
	bonus := 0.0
	for i := range schedule {
		realPayment := payment / math.Pow(1.0+inflation, float64(schedule[i].Month))
		schedule[i].RealPayment = &realPayment
		bonus += payment - realPayment
	}
	return bonus
}
