package tools

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"github.com/cloud-ru/mcp-parcelado-go/internal/cache"
	"github.com/cloud-ru/mcp-parcelado-go/internal/config"
	"github.com/cloud-ru/mcp-parcelado-go/internal/metrics"
	"go.opentelemetry.io/otel/trace"
)

// Tool описывает инструмент MCP
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Cacheable   bool        `json:"cacheable"`
	Handler     ToolHandler `json:"-"`
}

// Registry содержит инструменты по именам
type Registry map[string]Tool

// NewRegistry регистрирует все инструменты. Если repo не nil, результаты
// кэшируемых инструментов сохраняются в нем на ttl.
func NewRegistry(cfg *config.Config, tracer trace.Tracer, repo cache.Repository, ttl time.Duration) Registry {
	tools := []Tool{
		{
			Name:        ToolInstallmentPayment,
			Description: "Фиксированный ежемесячный платеж рассрочки",
			Handler:     InstallmentPaymentHandler(cfg, tracer),
		},
		{
			Name:        ToolSimulateInstallments,
			Description: "Помесячное движение средств на счете при оплате в рассрочку",
			Cacheable:   true,
			Handler:     SimulateInstallmentsHandler(cfg, tracer),
		},
		{
			Name:        ToolEffectiveRate,
			Description: "Эффективная стоимость кредита (CET) по потоку платежей",
			Handler:     EffectiveRateHandler(cfg, tracer),
		},
		{
			Name:        ToolClassifyInstallment,
			Description: "Классификация рассрочки по «светофору»",
			Handler:     ClassifyInstallmentHandler(cfg, tracer),
		},
		{
			Name:        ToolCompareCash,
			Description: "Полное сравнение оплаты в рассрочку и сразу",
			Cacheable:   true,
			Handler:     CompareCashVsInstallmentsHandler(cfg, tracer),
		},
		{
			Name:        ToolAmortizationSchedule,
			Description: "График погашения: проценты и тело долга в каждом платеже",
			Cacheable:   true,
			Handler:     AmortizationScheduleHandler(cfg, tracer),
		},
		{
			Name:        ToolDepositSchedule,
			Description: "Рост вложений с ежемесячной капитализацией и взносами",
			Cacheable:   true,
			Handler:     DepositScheduleHandler(cfg, tracer),
		},
	}

	registry := make(Registry, len(tools))
	for _, tool := range tools {
		if tool.Cacheable && repo != nil {
			tool.Handler = WithCache(repo, ttl, tool.Name, tool.Handler)
		}
		registry[tool.Name] = tool
	}
	return registry
}

// List возвращает инструменты, отсортированные по имени
func (r Registry) List() []Tool {
	list := make([]Tool, 0, len(r))
	for _, tool := range r {
		list = append(list, tool)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// WithCache оборачивает обработчик кэшем результатов. Расчеты детерминированы,
// поэтому одинаковые параметры всегда дают одинаковый ответ.
func WithCache(repo cache.Repository, ttl time.Duration, toolName string, next ToolHandler) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		key, err := cache.Key(toolName, params)
		if err != nil {
			return next(ctx, params)
		}

		if cached, ok := repo.Get(ctx, key); ok {
			metrics.CacheLookups.WithLabelValues(toolName, "hit").Inc()
			return json.RawMessage(cached), nil
		}
		metrics.CacheLookups.WithLabelValues(toolName, "miss").Inc()

		result, err := next(ctx, params)
		if err != nil {
			return nil, err
		}

		raw, err := json.Marshal(result)
		if err != nil {
			slog.WarnContext(ctx, "не удалось сериализовать результат для кэша", "tool", toolName, "error", err)
			return result, nil
		}
		if err := repo.Set(ctx, key, string(raw), ttl); err != nil {
			slog.WarnContext(ctx, "не удалось сохранить результат в кэш", "tool", toolName, "error", err)
		}

		return result, nil
	}
}
