package ports

import (
	"context"
	"time"

	"github.com/agentos/backend/internal/domain"
)

// Capability names used by the agent selector and the pool registry.
const (
	CapabilityResearch = "researcher"
	CapabilityAnalysis = "analyst"
	CapabilityWriting  = "writer"
	CapabilityGeneral  = "general"
)

type TaskSubmission struct {
	UserID      string
	InputText   string
	Priority    domain.TaskPriority
	Attachments []domain.JSONB
	Metadata    domain.JSONB
	DeviceInfo  domain.JSONB
}

type TaskStatusSnapshot struct {
	TaskID         string                `json:"task_id"`
	Status         domain.TaskStatus     `json:"status"`
	Input          string                `json:"input"`
	Priority       domain.TaskPriority   `json:"priority"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      *time.Time            `json:"updated_at,omitempty"`
	Result         *domain.ResultPayload `json:"result,omitempty"`
	ProcessingTime float64               `json:"processing_time,omitempty"`
	AgentUsed      string                `json:"agent_used,omitempty"`
	CompletedAt    *time.Time            `json:"completed_at,omitempty"`
}

type MetricsSnapshot struct {
	TasksProcessed    int64   `json:"tasks_processed"`
	AvgProcessingTime float64 `json:"avg_processing_time"`
	SuccessRate       float64 `json:"success_rate"`
	QueueDepth        int     `json:"queue_size"`
	ActiveTasks       int     `json:"active_tasks"`
	CacheHitRate      float64 `json:"cache_hit_rate"`
	AgentsAvailable   int     `json:"agents_available"`
}

type Orchestrator interface {
	Submit(ctx context.Context, sub TaskSubmission) (string, error)
	Status(ctx context.Context, taskID, userID string) (*TaskStatusSnapshot, error)
	List(ctx context.Context, userID string, offset, limit int) ([]domain.Task, error)
	Events(ctx context.Context, taskID, userID string) ([]domain.TaskEvent, error)
	Cancel(ctx context.Context, taskID, userID string) bool
	Metrics(ctx context.Context) MetricsSnapshot
	Start()
	Stop()
}

// ContentCache is the TTL key-value collaborator. A miss is (nil, false, nil);
// errors are reserved for infrastructure failures.
type ContentCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	HitRate() float64
	Close() error
}

// Agent is an opaque capability provider. Invoke must honor ctx cancellation
// where it can; agents that ignore it make cancellation advisory.
type Agent interface {
	Name() string
	Invoke(ctx context.Context, text string, metadata domain.JSONB) (*domain.ResultPayload, error)
}

type AgentPool interface {
	Available(ctx context.Context) map[string]Agent
	Count() int
}

// Notifier fans a status snapshot out to the observers subscribed to a task
// id. Delivery is best-effort, at most once per status change.
type Notifier interface {
	Notify(taskID string, snapshot TaskStatusSnapshot)
}

type AuthService interface {
	Register(ctx context.Context, email, password, name string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Validate(ctx context.Context, token string) (*domain.User, error)
}
