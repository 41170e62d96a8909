package dto

import (
	"strings"
	"time"

	"github.com/agentos/backend/internal/core/ports"
	"github.com/agentos/backend/internal/domain"
)

type SubmitTaskRequest struct {
	InputText string                 `json:"input_text"`
	Priority  string                 `json:"priority"`
	Metadata  map[string]interface{} `json:"metadata"`
}

func (r *SubmitTaskRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.InputText) == "" {
		errs = append(errs, "input_text is required")
	}
	if r.Priority != "" {
		switch r.Priority {
		case "low", "medium", "high", "urgent":
		default:
			errs = append(errs, "priority must be one of: low, medium, high, urgent")
		}
	}
	return errs
}

type SubmitTaskResponse struct {
	TaskID        string  `json:"task_id"`
	Status        string  `json:"status"`
	Message       string  `json:"message"`
	EstimatedTime float64 `json:"estimated_time"`
}

type TaskSummaryResponse struct {
	TaskID    string    `json:"task_id"`
	Input     string    `json:"input"`
	Priority  string    `json:"priority"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type TaskListResponse struct {
	Tasks []TaskSummaryResponse `json:"tasks"`
	Count int                   `json:"count"`
}

type TaskEventResponse struct {
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	Message    string    `json:"message,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type CancelTaskResponse struct {
	TaskID    string `json:"task_id"`
	Cancelled bool   `json:"cancelled"`
}

type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

const summaryInputLimit = 100

func TaskToSummaryResponse(task *domain.Task) TaskSummaryResponse {
	input := task.InputText
	if len(input) > summaryInputLimit {
		input = input[:summaryInputLimit] + "..."
	}
	return TaskSummaryResponse{
		TaskID:    task.ID,
		Input:     input,
		Priority:  task.Priority.String(),
		Status:    string(task.Status),
		CreatedAt: task.CreatedAt,
	}
}

func TasksToListResponse(tasks []domain.Task) TaskListResponse {
	out := make([]TaskSummaryResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, TaskToSummaryResponse(&tasks[i]))
	}
	return TaskListResponse{Tasks: out, Count: len(out)}
}

func EventsToResponse(events []domain.TaskEvent) []TaskEventResponse {
	out := make([]TaskEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, TaskEventResponse{
			FromStatus: string(e.FromStatus),
			ToStatus:   string(e.ToStatus),
			Message:    e.Message,
			OccurredAt: e.CreatedAt,
		})
	}
	return out
}

type MetricsResponse struct {
	TasksProcessed    int64   `json:"tasks_processed"`
	AvgProcessingTime float64 `json:"avg_processing_time"`
	SuccessRate       float64 `json:"success_rate"`
	QueueSize         int     `json:"queue_size"`
	ActiveTasks       int     `json:"active_tasks"`
	CacheHitRate      float64 `json:"cache_hit_rate"`
	AgentsAvailable   int     `json:"agents_available"`
}

func MetricsToResponse(m ports.MetricsSnapshot) MetricsResponse {
	return MetricsResponse{
		TasksProcessed:    m.TasksProcessed,
		AvgProcessingTime: m.AvgProcessingTime,
		SuccessRate:       m.SuccessRate,
		QueueSize:         m.QueueDepth,
		ActiveTasks:       m.ActiveTasks,
		CacheHitRate:      m.CacheHitRate,
		AgentsAvailable:   m.AgentsAvailable,
	}
}
