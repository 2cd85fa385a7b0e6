package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cloud-ru/mcp-parcelado-go/internal/calculations"
	"github.com/cloud-ru/mcp-parcelado-go/internal/config"
	"github.com/cloud-ru/mcp-parcelado-go/internal/metrics"
	"github.com/cloud-ru/mcp-parcelado-go/internal/validators"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ToolHandler представляет обработчик инструмента MCP
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// Имена инструментов
const (
	ToolInstallmentPayment   = "installment_payment"
	ToolSimulateInstallments = "simulate_installments"
	ToolEffectiveRate        = "effective_rate"
	ToolClassifyInstallment  = "classify_installment"
	ToolCompareCash          = "compare_cash_vs_installments"
	ToolAmortizationSchedule = "amortization_schedule"
	ToolDepositSchedule      = "deposit_schedule"
)

// PaymentResult ответ инструмента installment_payment
type PaymentResult struct {
	Payment       float64 `json:"payment"`
	Months        int     `json:"months"`
	TotalPaid     float64 `json:"total_paid"`
	TotalInterest float64 `json:"total_interest"`
}

// SolverOptions строит параметры поиска эффективной ставки из конфигурации
func SolverOptions(cfg *config.Config) calculations.SolverOptions {
	return calculations.SolverOptions{
		Method:    cfg.SolverMethod,
		Step:      cfg.SolverStep,
		Ceiling:   cfg.SolverCeiling,
		Tolerance: cfg.SolverTolerance,
	}
}

func started(toolName string) {
	metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()
}

func failValidation(span trace.Span, toolName string, err error) error {
	span.SetAttributes(attribute.String("error", "validation_error"))
	metrics.ToolCalls.WithLabelValues(toolName, "validation_error").Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, "validation").Inc()
	metrics.APICalls.WithLabelValues("mcp", toolName, "error").Inc()
	return fmt.Errorf("неверные параметры: %w", err)
}

func failCalculation(span trace.Span, toolName string, err error) error {
	span.SetAttributes(attribute.String("error", "calculation_error"))
	metrics.ToolCalls.WithLabelValues(toolName, "error").Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, "calculation").Inc()
	metrics.APICalls.WithLabelValues("mcp", toolName, "error").Inc()
	return fmt.Errorf("ошибка при выполнении расчета: %w", err)
}

// failRun относит ошибку расчета к ошибкам параметров, если расчет отклонил входные данные
func failRun(span trace.Span, toolName string, err error) error {
	if errors.Is(err, calculations.ErrInvalidInput) {
		return failValidation(span, toolName, err)
	}
	return failCalculation(span, toolName, err)
}

func succeed(span trace.Span, toolName string) {
	span.SetAttributes(attribute.Bool("success", true))
	metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()
	metrics.APICalls.WithLabelValues("mcp", toolName, "success").Inc()
}

func recordSolver(method string, rate calculations.EffectiveRate) {
	outcome := "resolved"
	if !rate.Determined {
		outcome = "unresolved"
	}
	metrics.SolverOutcomes.WithLabelValues(method, outcome).Inc()
	metrics.SolverIterations.WithLabelValues(method).Observe(float64(rate.Iterations))
}

func simulationAttributes(in calculations.SimulationInput) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.Float64("principal", in.Principal),
		attribute.Int("months", in.Months),
		attribute.Float64("interest_rate_percent", in.InterestRatePercent),
		attribute.Float64("return_rate_percent", in.ReturnRatePercent),
	}
	if in.InflationRatePercent != nil {
		attrs = append(attrs, attribute.Float64("inflation_rate_percent", *in.InflationRatePercent))
	}
	if in.CashDiscountPercent != nil {
		attrs = append(attrs, attribute.Float64("cash_discount_percent", *in.CashDiscountPercent))
	}
	return attrs
}

// InstallmentPaymentHandler обрабатывает запрос на расчет фиксированного платежа
func InstallmentPaymentHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolInstallmentPayment

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		started(toolName)

		principal, err := floatParam(params, "principal")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		months, err := intParam(params, "months")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		interestRatePercent, err := floatParam(params, "interest_rate_percent")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}

		span.SetAttributes(
			attribute.Float64("principal", principal),
			attribute.Int("months", months),
			attribute.Float64("interest_rate_percent", interestRatePercent),
		)

		if err := validators.CheckPrincipal(cfg, principal); err != nil {
			return nil, failValidation(span, toolName, err)
		}
		if err := validators.CheckMonths(cfg, months); err != nil {
			return nil, failValidation(span, toolName, err)
		}
		if err := validators.CheckInterestRate(cfg, interestRatePercent); err != nil {
			return nil, failValidation(span, toolName, err)
		}

		payment, err := calculations.InstallmentPayment(principal, months, interestRatePercent/100.0)
		if err != nil {
			return nil, failCalculation(span, toolName, err)
		}

		totalPaid := payment * float64(months)
		span.SetAttributes(attribute.Float64("payment", payment))
		succeed(span, toolName)

		return &PaymentResult{
			Payment:       payment,
			Months:        months,
			TotalPaid:     totalPaid,
			TotalInterest: totalPaid - principal,
		}, nil
	}
}

// SimulateInstallmentsHandler обрабатывает запрос на помесячную симуляцию счета при оплате в рассрочку
func SimulateInstallmentsHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolSimulateInstallments

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		started(toolName)

		in, err := simulationInputParam(params)
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		// Скидка в этом инструменте не используется
		in.CashDiscountPercent = nil

		span.SetAttributes(simulationAttributes(in)...)

		if err := validators.CheckSimulationInput(cfg, in); err != nil {
			return nil, failValidation(span, toolName, err)
		}

		result, err := calculations.SimulateInstallments(in)
		if err != nil {
			return nil, failRun(span, toolName, err)
		}
		if err := calculations.CheckBalanceCap(cfg, result); err != nil {
			return nil, failValidation(span, toolName, err)
		}

		span.SetAttributes(
			attribute.Float64("payment", result.Plan.Payment),
			attribute.Float64("final_balance", result.FinalBalance),
		)
		succeed(span, toolName)

		slog.DebugContext(ctx, "симуляция завершена",
			"tool", toolName, "months", in.Months, "final_balance", result.FinalBalance)

		return result, nil
	}
}

// EffectiveRateHandler обрабатывает запрос на поиск эффективной ставки (CET).
// Неопределенная ставка возвращается как результат с determined=false, а не как ошибка.
func EffectiveRateHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolEffectiveRate

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		started(toolName)

		principal, err := floatParam(params, "principal")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		payment, err := floatParam(params, "payment")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		months, err := intParam(params, "months")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		method, err := optionalStringParam(params, "method")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}

		opts := SolverOptions(cfg)
		if method != "" {
			opts.Method = method
		}

		span.SetAttributes(
			attribute.Float64("principal", principal),
			attribute.Float64("payment", payment),
			attribute.Int("months", months),
			attribute.String("method", opts.Method),
		)

		if err := validators.CheckPrincipal(cfg, principal); err != nil {
			return nil, failValidation(span, toolName, err)
		}
		if err := validators.CheckPayment(cfg, payment); err != nil {
			return nil, failValidation(span, toolName, err)
		}
		if err := validators.CheckMonths(cfg, months); err != nil {
			return nil, failValidation(span, toolName, err)
		}

		rate, err := calculations.SolveEffectiveRate(principal, payment, months, opts)
		if err != nil && !errors.Is(err, calculations.ErrRateUnresolved) {
			if errors.Is(err, calculations.ErrInvalidInput) {
				return nil, failValidation(span, toolName, err)
			}
			return nil, failCalculation(span, toolName, err)
		}
		recordSolver(opts.Method, rate)

		if !rate.Determined {
			slog.WarnContext(ctx, "эффективная ставка не определена",
				"tool", toolName, "principal", principal, "payment", payment, "months", months)
		}

		span.SetAttributes(
			attribute.Bool("determined", rate.Determined),
			attribute.Float64("monthly_percent", rate.MonthlyPercent),
		)
		succeed(span, toolName)

		return rate, nil
	}
}

// ClassifyInstallmentHandler обрабатывает запрос на классификацию рассрочки по «светофору»
func ClassifyInstallmentHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolClassifyInstallment

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		started(toolName)

		effective, err := floatParam(params, "effective_rate_percent")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		returnRate, err := floatParam(params, "return_rate_percent")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}

		span.SetAttributes(
			attribute.Float64("effective_rate_percent", effective),
			attribute.Float64("return_rate_percent", returnRate),
		)

		if err := validators.CheckInterestRate(cfg, effective); err != nil {
			return nil, failValidation(span, toolName, err)
		}
		if err := validators.CheckReturnRate(cfg, returnRate); err != nil {
			return nil, failValidation(span, toolName, err)
		}

		rec := calculations.Classify(effective, returnRate)

		span.SetAttributes(attribute.String("tier", string(rec.Tier)))
		succeed(span, toolName)

		return rec, nil
	}
}

// CompareCashVsInstallmentsHandler обрабатывает запрос на полное сравнение «рассрочка или сразу»
func CompareCashVsInstallmentsHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolCompareCash

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		started(toolName)

		in, err := simulationInputParam(params)
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}

		span.SetAttributes(simulationAttributes(in)...)

		if err := validators.CheckSimulationInput(cfg, in); err != nil {
			return nil, failValidation(span, toolName, err)
		}

		opts := SolverOptions(cfg)
		report, err := calculations.BuildReport(cfg, in, opts)
		if err != nil {
			return nil, failRun(span, toolName, err)
		}
		recordSolver(opts.Method, report.EffectiveRate)

		span.SetAttributes(
			attribute.String("report_id", report.ID),
			attribute.Bool("effective_rate_determined", report.EffectiveRate.Determined),
			attribute.String("balance_choice", string(report.Balance.Choice)),
		)
		if report.Recommendation != nil {
			span.SetAttributes(attribute.String("tier", string(report.Recommendation.Tier)))
		}
		succeed(span, toolName)

		slog.InfoContext(ctx, "сравнение выполнено",
			"report_id", report.ID, "balance_choice", report.Balance.Choice,
			"effective_rate_determined", report.EffectiveRate.Determined)

		return report, nil
	}
}

// AmortizationScheduleHandler обрабатывает запрос на график погашения рассрочки
func AmortizationScheduleHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolAmortizationSchedule

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		started(toolName)

		principal, err := floatParam(params, "principal")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		interestRatePercent, err := floatParam(params, "interest_rate_percent")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		months, err := intParam(params, "months")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}

		span.SetAttributes(
			attribute.Float64("principal", principal),
			attribute.Float64("interest_rate_percent", interestRatePercent),
			attribute.Int("months", months),
		)

		if err := validators.CheckPrincipal(cfg, principal); err != nil {
			return nil, failValidation(span, toolName, err)
		}
		if err := validators.CheckInterestRate(cfg, interestRatePercent); err != nil {
			return nil, failValidation(span, toolName, err)
		}
		if err := validators.CheckMonths(cfg, months); err != nil {
			return nil, failValidation(span, toolName, err)
		}

		result, err := calculations.AmortizationSchedule(principal, interestRatePercent, months)
		if err != nil {
			return nil, failCalculation(span, toolName, err)
		}

		span.SetAttributes(
			attribute.Float64("monthly_payment", result.Summary.MonthlyPayment),
			attribute.Float64("total_paid", result.Summary.TotalPaid),
		)
		succeed(span, toolName)

		return result, nil
	}
}

// DepositScheduleHandler обрабатывает запрос на рост вложений с ежемесячными взносами.
// Так оценивается вариант «купить сразу и вкладывать сумму парцелы каждый месяц».
func DepositScheduleHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolDepositSchedule

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		started(toolName)

		initialAmount, err := floatParam(params, "initial_amount")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		returnRatePercent, err := floatParam(params, "return_rate_percent")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		months, err := intParam(params, "months")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		contribution := 0.0
		if c, err := optionalFloatParam(params, "monthly_contribution"); err != nil {
			return nil, failValidation(span, toolName, err)
		} else if c != nil {
			contribution = *c
		}
		atBeginning, err := optionalBoolParam(params, "contribution_at_beginning")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}

		span.SetAttributes(
			attribute.Float64("initial_amount", initialAmount),
			attribute.Float64("return_rate_percent", returnRatePercent),
			attribute.Int("months", months),
			attribute.Float64("monthly_contribution", contribution),
			attribute.Bool("contribution_at_beginning", atBeginning),
		)

		if err := validators.CheckInitialAmount(cfg, initialAmount); err != nil {
			return nil, failValidation(span, toolName, err)
		}
		if err := validators.CheckReturnRate(cfg, returnRatePercent); err != nil {
			return nil, failValidation(span, toolName, err)
		}
		if err := validators.CheckMonths(cfg, months); err != nil {
			return nil, failValidation(span, toolName, err)
		}
		if err := validators.CheckContribution(cfg, contribution); err != nil {
			return nil, failValidation(span, toolName, err)
		}

		result, err := calculations.DepositSchedule(cfg, initialAmount, returnRatePercent, months, contribution, atBeginning)
		if err != nil {
			return nil, failRun(span, toolName, err)
		}

		span.SetAttributes(
			attribute.Float64("final_balance", result.Summary.FinalBalance),
			attribute.Float64("total_interest", result.Summary.TotalInterest),
		)
		succeed(span, toolName)

		return result, nil
	}
}
