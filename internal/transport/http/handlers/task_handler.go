package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/agentos/backend/internal/core/ports"
	"github.com/agentos/backend/internal/core/services"
	"github.com/agentos/backend/internal/domain"
	"github.com/agentos/backend/internal/infrastructure/logger"
	"github.com/agentos/backend/internal/transport/http/dto"
	"github.com/gofiber/fiber/v2"
)

type TaskHandler struct {
	orc    ports.Orchestrator
	logger *logger.Logger
}

func NewTaskHandler(orc ports.Orchestrator, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{orc: orc, logger: logger}
}

func (h *TaskHandler) SubmitTask(c *fiber.Ctx) error {
	var req dto.SubmitTaskRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Warnw("task_submit_body_parse_failed", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}

	if errs := req.Validate(); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Details: errs,
		})
	}

	userID := c.Locals("user_id").(string)
	sub := ports.TaskSubmission{
		UserID:    userID,
		InputText: req.InputText,
		Priority:  domain.ParseTaskPriority(req.Priority),
		Metadata:  domain.JSONB(req.Metadata),
	}

	taskID, err := h.orc.Submit(c.Context(), sub)
	if err != nil {
		if errors.Is(err, services.ErrTaskInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		}
		h.logger.Errorw("task_submit_failed", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "task submission failed",
		})
	}

	status := string(domain.TaskStatusPending)
	if snap, err := h.orc.Status(c.Context(), taskID, userID); err == nil {
		status = string(snap.Status)
	}

	return c.Status(fiber.StatusAccepted).JSON(dto.SubmitTaskResponse{
		TaskID:        taskID,
		Status:        status,
		Message:       "task accepted for processing",
		EstimatedTime: estimateSeconds(req.InputText),
	})
}

// estimateSeconds projects wall time from input length, a tenth of a second
// per word, capped at a minute.
func estimateSeconds(text string) float64 {
	est := float64(len(strings.Fields(text))) * 0.1
	if est > 60 {
		est = 60
	}
	return est
}

func (h *TaskHandler) GetTaskStatus(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	taskID := c.Params("id")

	snap, err := h.orc.Status(c.Context(), taskID, userID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "task not found",
			})
		}
		h.logger.Errorw("task_status_failed", "task_id", taskID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to load task status",
		})
	}

	return c.JSON(snap)
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	tasks, err := h.orc.List(c.Context(), userID, offset, limit)
	if err != nil {
		h.logger.Errorw("task_list_failed", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to list tasks",
		})
	}

	return c.JSON(dto.TasksToListResponse(tasks))
}

func (h *TaskHandler) GetTaskEvents(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	taskID := c.Params("id")

	events, err := h.orc.Events(c.Context(), taskID, userID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "task not found",
			})
		}
		h.logger.Errorw("task_events_failed", "task_id", taskID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to load task events",
		})
	}

	return c.JSON(dto.EventsToResponse(events))
}

func (h *TaskHandler) CancelTask(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	taskID := c.Params("id")

	cancelled := h.orc.Cancel(c.Context(), taskID, userID)
	if !cancelled {
		return c.Status(fiber.StatusConflict).JSON(dto.CancelTaskResponse{
			TaskID:    taskID,
			Cancelled: false,
		})
	}

	h.logger.Infow("task_cancel_success", "task_id", taskID, "user_id", userID)
	return c.JSON(dto.CancelTaskResponse{
		TaskID:    taskID,
		Cancelled: true,
	})
}
