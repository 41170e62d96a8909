package handlers

import (
	"github.com/agentos/backend/internal/core/ports"
	"github.com/agentos/backend/internal/infrastructure/logger"
	"github.com/agentos/backend/internal/transport/http/dto"
	"github.com/gofiber/fiber/v2"
)

type MetricsHandler struct {
	orc    ports.Orchestrator
	logger *logger.Logger
}

func NewMetricsHandler(orc ports.Orchestrator, logger *logger.Logger) *MetricsHandler {
	return &MetricsHandler{orc: orc, logger: logger}
}

func (h *MetricsHandler) GetSystemMetrics(c *fiber.Ctx) error {
	snapshot := h.orc.Metrics(c.Context())
	return c.JSON(dto.MetricsToResponse(snapshot))
}
