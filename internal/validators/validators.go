package validators

import (
	"fmt"

	"github.com/cloud-ru/mcp-parcelado-go/internal/calculations"
	"github.com/cloud-ru/mcp-parcelado-go/internal/config"
	"github.com/cloud-ru/mcp-parcelado-go/pkg/utils"
)

// ValidatePositiveNumber проверяет, что число конечное и в допустимом диапазоне
func ValidatePositiveNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return fmt.Errorf("%w: %s: значение не является конечным числом", calculations.ErrInvalidInput, name)
	}
	if value < minInclusive {
		return fmt.Errorf("%w: %s: значение должно быть ≥ %g", calculations.ErrInvalidInput, name, minInclusive)
	}
	if value > maxInclusive {
		return fmt.Errorf("%w: %s: значение слишком велико (>%g)", calculations.ErrInvalidInput, name, maxInclusive)
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return fmt.Errorf("%w: %s: значение должно быть в диапазоне [%d; %d]", calculations.ErrInvalidInput, name, minInclusive, maxInclusive)
	}
	return nil
}

// CheckPrincipal проверяет сумму покупки
func CheckPrincipal(cfg *config.Config, principal float64) error {
	return ValidatePositiveNumber("principal", principal, 1e-9, cfg.MaxPrincipal)
}

// CheckPayment проверяет сумму платежа
func CheckPayment(cfg *config.Config, payment float64) error {
	return ValidatePositiveNumber("payment", payment, 1e-9, cfg.MaxPrincipal)
}

// CheckMonths проверяет срок в месяцах
func CheckMonths(cfg *config.Config, months int) error {
	return ValidateIntRange("months", months, 1, cfg.MaxMonths)
}

// CheckInterestRate проверяет месячную ставку рассрочки
func CheckInterestRate(cfg *config.Config, rate float64) error {
	return ValidatePositiveNumber("interest_rate_percent", rate, 0.0, cfg.MaxRate)
}

// CheckReturnRate проверяет месячную доходность вложений
func CheckReturnRate(cfg *config.Config, rate float64) error {
	return ValidatePositiveNumber("return_rate_percent", rate, 0.0, cfg.MaxRate)
}

// CheckInflationRate проверяет месячную инфляцию
func CheckInflationRate(cfg *config.Config, rate float64) error {
	return ValidatePositiveNumber("inflation_rate_percent", rate, 0.0, cfg.MaxRate)
}

// CheckInitialAmount проверяет начальную сумму вложения (может быть нулевой)
func CheckInitialAmount(cfg *config.Config, amount float64) error {
	return ValidatePositiveNumber("initial_amount", amount, 0.0, cfg.MaxPrincipal)
}

// CheckContribution проверяет ежемесячный взнос
func CheckContribution(cfg *config.Config, contribution float64) error {
	return ValidatePositiveNumber("monthly_contribution", contribution, 0.0, cfg.MaxContribution)
}

// CheckDiscount проверяет скидку за оплату сразу: [0; 100)
func CheckDiscount(discount float64) error {
	if err := ValidatePositiveNumber("cash_discount_percent", discount, 0.0, 100.0); err != nil {
		return err
	}
	if discount == 100.0 {
		return fmt.Errorf("%w: cash_discount_percent: скидка должна быть меньше 100%%", calculations.ErrInvalidInput)
	}
	return nil
}

// CheckSimulationInput проверяет все поля запроса на симуляцию
func CheckSimulationInput(cfg *config.Config, in calculations.SimulationInput) error {
	if err := CheckPrincipal(cfg, in.Principal); err != nil {
		return err
	}
	if err := CheckMonths(cfg, in.Months); err != nil {
		return err
	}
	if err := CheckInterestRate(cfg, in.InterestRatePercent); err != nil {
		return err
	}
	if err := CheckReturnRate(cfg, in.ReturnRatePercent); err != nil {
		return err
	}
	if in.InflationRatePercent != nil {
		if err := CheckInflationRate(cfg, *in.InflationRatePercent); err != nil {
			return err
		}
	}
	if in.CashDiscountPercent != nil {
		if err := CheckDiscount(*in.CashDiscountPercent); err != nil {
			return err
		}
	}
	return nil
}
