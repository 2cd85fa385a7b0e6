package calculations

import (
	"errors"

	"github.com/google/uuid"
)

// BuildReport выполняет полный расчет «рассрочка или сразу» для одного запроса.
// Неопределенная эффективная ставка не считается ошибкой: в отчете Determined == false,
// а рекомендация по «светофору» отсутствует.
func BuildReport(cfg ConfigInterface, in SimulationInput, opts SolverOptions) (*Report, error) {
	sim, err := SimulateInstallments(in)
	if err != nil {
		return nil, err
	}
	if err := CheckBalanceCap(cfg, sim); err != nil {
		return nil, err
	}

	rate, err := SolveEffectiveRate(in.Principal, sim.Plan.Payment, in.Months, opts)
	if err != nil && !errors.Is(err, ErrRateUnresolved) {
		return nil, err
	}

	report := &Report{
		ID:            uuid.NewString(),
		Input:         in,
		Simulation:    *sim,
		EffectiveRate: rate,
		Balance:       CompareFinalBalance(sim.FinalBalance),
	}

	if rate.Determined {
		rec := ClassifyEffectiveRate(rate, in.ReturnRatePercent)
		report.Recommendation = &rec
	}

	if in.CashDiscountPercent != nil {
		discount, err := CompareCashDiscount(cfg, in.Principal, *in.CashDiscountPercent,
			in.ReturnRatePercent, in.Months, sim.FinalBalance)
		if err != nil {
			return nil, err
		}
		report.Discount = discount
	}

	return report, nil
}
