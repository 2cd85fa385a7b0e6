package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cloud-ru/mcp-parcelado-go/internal/cache"
	"github.com/cloud-ru/mcp-parcelado-go/internal/calculations"
	"github.com/cloud-ru/mcp-parcelado-go/internal/config"
	"github.com/cloud-ru/mcp-parcelado-go/internal/tools"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		MaxPrincipal:    1e9,
		MaxMonths:       600,
		MaxRate:         100,
		MaxContribution: 1e8,
		MaxBalanceCap:   1e12,
		SolverMethod:    calculations.SolverBisection,
		SolverStep:      0.0001,
		SolverCeiling:   0.2,
		SolverTolerance: 0.01,
	}
	registry := tools.NewRegistry(cfg, noop.NewTracerProvider().Tracer("test"), cache.NewMemoryCache(0), time.Minute)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewRouter(registry, logger)
}

func call(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := call(t, newTestRouter(t), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListTools(t *testing.T) {
	w := call(t, newTestRouter(t), http.MethodGet, "/tools", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Tools []tools.Tool `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Tools, 7)
}

func TestCallTool_Compare(t *testing.T) {
	r := newTestRouter(t)
	params := map[string]interface{}{
		"principal":             10000,
		"months":                12,
		"interest_rate_percent": 5,
		"return_rate_percent":   1,
	}

	for i := 0; i < 2; i++ {
		w := call(t, r, http.MethodPost, "/tools/compare_cash_vs_installments", params)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var body struct {
			Tool   string              `json:"tool"`
			Result calculations.Report `json:"result"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "compare_cash_vs_installments", body.Tool)
		require.NotNil(t, body.Result.Recommendation)
		assert.Equal(t, calculations.TierUnfavorable, body.Result.Recommendation.Tier)
		assert.Equal(t, calculations.ChoiceCash, body.Result.Balance.Choice)
		assert.Len(t, body.Result.Simulation.Schedule, 12)
	}
}

func TestCallTool_Errors(t *testing.T) {
	r := newTestRouter(t)

	w := call(t, r, http.MethodPost, "/tools/unknown", map[string]interface{}{})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(t, r, http.MethodPost, "/tools/installment_payment", map[string]interface{}{
		"principal": 10000, "months": 0, "interest_rate_percent": 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(t, r, http.MethodPost, "/tools/compare_cash_vs_installments", map[string]interface{}{
		"principal": 1e9, "months": 600, "interest_rate_percent": 0, "return_rate_percent": 100,
		"cash_discount_percent": 99,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/tools/installment_payment", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	call(t, r, http.MethodPost, "/tools/installment_payment", map[string]interface{}{
		"principal": 10000, "months": 12, "interest_rate_percent": 1,
	})

	w := call(t, r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tool_calls_total")
}
