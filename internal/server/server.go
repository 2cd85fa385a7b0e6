package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cloud-ru/mcp-parcelado-go/internal/calculations"
	"github.com/cloud-ru/mcp-parcelado-go/internal/tools"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter создает HTTP-роутер для вызова инструментов
func NewRouter(registry tools.Registry, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	h := &handler{registry: registry, logger: logger}

	r.GET("/healthz", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/tools", h.listTools)
	r.POST("/tools/:name", h.callTool)

	return r
}

type handler struct {
	registry tools.Registry
	logger   *slog.Logger
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) listTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": h.registry.List()})
}

func (h *handler) callTool(c *gin.Context) {
	name := c.Param("name")

	tool, ok := h.registry[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "инструмент не найден: " + name})
		return
	}

	params := map[string]interface{}{}
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректное тело запроса"})
		return
	}

	result, err := tool.Handler(c.Request.Context(), params)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, calculations.ErrInvalidInput) {
			status = http.StatusBadRequest
		} else {
			h.logger.ErrorContext(c.Request.Context(), "ошибка инструмента", "tool", name, "error", err)
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tool": name, "result": result})
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.InfoContext(c.Request.Context(), "http запрос",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
