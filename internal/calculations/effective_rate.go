package calculations

import (
	"fmt"
	"math"

	"github.com/cloud-ru/mcp-parcelado-go/pkg/utils"
)

// Методы поиска эффективной ставки
const (
	SolverBisection = "bisection"
	SolverScan      = "scan"
)

// SolverOptions задает интервал, шаг и допуск поиска эффективной ставки.
// Ставки задаются долями в месяц, допуск задается в денежных единицах.
type SolverOptions struct {
	Method        string
	Step          float64
	Ceiling       float64
	Tolerance     float64
	MaxIterations int
}

// DefaultSolverOptions возвращает параметры поиска по умолчанию: [0; 0.2], шаг 0.0001, допуск 0.01
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Method:        SolverBisection,
		Step:          0.0001,
		Ceiling:       0.2,
		Tolerance:     0.01,
		MaxIterations: 200,
	}
}

func (o SolverOptions) withDefaults() SolverOptions {
	def := DefaultSolverOptions()
	if o.Method == "" {
		o.Method = def.Method
	}
	if o.Step <= 0 {
		o.Step = def.Step
	}
	if o.Ceiling <= 0 {
		o.Ceiling = def.Ceiling
	}
	if o.Tolerance <= 0 {
		o.Tolerance = def.Tolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = def.MaxIterations
	}
	return o
}

// PresentValue возвращает приведенную стоимость потока одинаковых платежей
func PresentValue(payment float64, months int, rate float64) float64 {
	pv := 0.0
	discount := 1.0
	for m := 1; m <= months; m++ {
		discount /= 1.0 + rate
		pv += payment * discount
	}
	return pv
}

// SolveEffectiveRate находит месячную ставку, при которой приведенная стоимость платежей
// совпадает с суммой покупки (CET). Если ставку найти не удалось, возвращается
// EffectiveRate с Determined == false и ошибка ErrRateUnresolved.
func SolveEffectiveRate(principal, payment float64, months int, opts SolverOptions) (EffectiveRate, error) {
	if months < 1 {
		return EffectiveRate{}, fmt.Errorf("%w: срок должен быть не меньше 1 месяца", ErrInvalidInput)
	}
	if !utils.IsFinite(principal) || principal <= 0 {
		return EffectiveRate{}, fmt.Errorf("%w: сумма должна быть положительной", ErrInvalidInput)
	}
	if !utils.IsFinite(payment) || payment <= 0 {
		return EffectiveRate{}, fmt.Errorf("%w: платеж должен быть положительным", ErrInvalidInput)
	}

	opts = opts.withDefaults()

	var (
		rate EffectiveRate
		err  error
	)
	switch opts.Method {
	case SolverScan:
		rate, err = scanEffectiveRate(principal, payment, months, opts)
	case SolverBisection:
		rate, err = bisectEffectiveRate(principal, payment, months, opts)
	default:
		return EffectiveRate{}, fmt.Errorf("%w: неизвестный метод поиска %q", ErrInvalidInput, opts.Method)
	}

	if rate.Determined {
		rate.Precision = ratePrecision(payment, months, rate.Rate, opts.Tolerance)
	}
	return rate, err
}

// ratePrecision оценивает погрешность найденной ставки в процентах:
// допуск по приведенной стоимости, деленный на модуль ее производной по ставке, с запасом в два раза
func ratePrecision(payment float64, months int, rate, tolerance float64) float64 {
	slope := 0.0
	discount := 1.0
	for k := 1; k <= months; k++ {
		discount /= 1.0 + rate
		slope += float64(k) * payment * discount / (1.0 + rate)
	}
	if slope == 0 {
		return 0
	}
	return 2 * tolerance / slope * 100
}

// scanEffectiveRate перебирает ставки от нуля с фиксированным шагом; берется первая подходящая
func scanEffectiveRate(principal, payment float64, months int, opts SolverOptions) (EffectiveRate, error) {
	steps := int(math.Round(opts.Ceiling / opts.Step))

	for i := 0; i <= steps; i++ {
		rate := float64(i) * opts.Step
		if math.Abs(PresentValue(payment, months, rate)-principal) < opts.Tolerance {
			return resolvedRate(rate, i+1), nil
		}
	}

	return EffectiveRate{Iterations: steps + 1}, unresolved(opts)
}

// bisectEffectiveRate ищет корень делением отрезка пополам.
// Приведенная стоимость монотонно убывает по ставке, поэтому корень в интервале единственный.
func bisectEffectiveRate(principal, payment float64, months int, opts SolverOptions) (EffectiveRate, error) {
	f := func(rate float64) float64 {
		return PresentValue(payment, months, rate) - principal
	}

	lo, hi := 0.0, opts.Ceiling

	fLo := f(lo)
	if math.Abs(fLo) < opts.Tolerance {
		return resolvedRate(lo, 1), nil
	}
	// Сумма платежей меньше суммы покупки: ставка отрицательная
	if fLo < 0 {
		return EffectiveRate{Iterations: 1}, unresolved(opts)
	}

	fHi := f(hi)
	if math.Abs(fHi) < opts.Tolerance {
		return resolvedRate(hi, 2), nil
	}
	if fHi > 0 {
		return EffectiveRate{Iterations: 2}, unresolved(opts)
	}

	iterations := 2
	for iterations < opts.MaxIterations {
		mid := lo + (hi-lo)/2
		if mid == lo || mid == hi {
			break
		}

		fMid := f(mid)
		iterations++

		if math.Abs(fMid) < opts.Tolerance {
			return resolvedRate(mid, iterations), nil
		}
		if fMid > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}

	return EffectiveRate{Iterations: iterations}, unresolved(opts)
}

func resolvedRate(rate float64, iterations int) EffectiveRate {
	return EffectiveRate{
		Determined:     true,
		Rate:           rate,
		MonthlyPercent: utils.Round2(rate * 100),
		AnnualPercent:  utils.Round2(AnnualizeRate(rate) * 100),
		Iterations:     iterations,
	}
}

func unresolved(opts SolverOptions) error {
	return fmt.Errorf("%w: нет ставки в интервале [0; %g] с допуском %g", ErrRateUnresolved, opts.Ceiling, opts.Tolerance)
}

// AnnualizeRate переводит месячную ставку в годовую с капитализацией
func AnnualizeRate(monthly float64) float64 {
	return math.Pow(1.0+monthly, 12) - 1.0
}
