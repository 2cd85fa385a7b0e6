package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ToolCalls счетчик вызовов инструментов
	ToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_calls_total",
			Help: "Общее количество вызовов инструментов",
		},
		[]string{"tool_name", "status"},
	)

	// CalculationErrors счетчик ошибок расчетов
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculation_errors_total",
			Help: "Количество ошибок расчетов",
		},
		[]string{"tool_name", "error_type"},
	)

	// APICalls счетчик вызовов API
	APICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_calls_total",
			Help: "Вызовы API инструментов",
		},
		[]string{"service", "endpoint", "status"},
	)

	// CacheLookups счетчик обращений к кэшу результатов
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Обращения к кэшу результатов расчетов",
		},
		[]string{"tool_name", "result"},
	)

	// SolverOutcomes счетчик результатов поиска эффективной ставки
	SolverOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "effective_rate_solver_total",
			Help: "Результаты поиска эффективной ставки (CET)",
		},
		[]string{"method", "outcome"},
	)

	// SolverIterations распределение числа итераций поиска ставки
	SolverIterations = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "effective_rate_solver_iterations",
			Help:    "Число итераций поиска эффективной ставки",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 2001},
		},
		[]string{"method"},
	)
)
