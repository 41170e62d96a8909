package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Task is the persisted unit of work. The orchestrator owns all writes; the
// id is assigned at submit time and never changes.
type Task struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`

	UserID     string       `gorm:"size:36;not null;index" json:"user_id"`
	InputText  string       `gorm:"type:text;not null" json:"input_text"`
	Priority   TaskPriority `gorm:"not null;default:2" json:"priority"`
	Status     TaskStatus   `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Metadata   JSONB        `gorm:"type:jsonb" json:"metadata"`
	DeviceInfo JSONB        `gorm:"type:jsonb" json:"device_info"`
}

// CanTransition encodes the task state machine:
//
//	pending -> processing -> {completed, failed}
//	pending | processing -> cancelled
//
// Terminal states are absorbing.
func (t *Task) CanTransition(to TaskStatus) bool {
	if t.Status.Terminal() {
		return false
	}
	switch to {
	case TaskStatusProcessing:
		return t.Status == TaskStatusPending
	case TaskStatusCompleted, TaskStatusFailed:
		return t.Status == TaskStatusProcessing
	case TaskStatusCancelled:
		return t.Status == TaskStatusPending || t.Status == TaskStatusProcessing
	default:
		return false
	}
}

// ResultPayload is the structured output of one agent invocation, and also
// the shape of the merged aggregate.
type ResultPayload struct {
	Summary    string   `json:"summary"`
	Details    []string `json:"details"`
	Sources    []string `json:"sources"`
	Confidence float64  `json:"confidence"`
}

func (p ResultPayload) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *ResultPayload) Scan(value interface{}) error {
	if value == nil {
		*p = ResultPayload{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan ResultPayload: invalid type")
	}
	return json.Unmarshal(bytes, p)
}

// TaskResult is written exactly once when a task reaches a successful
// terminal state. AgentUsed holds the comma-joined names of the agents that
// contributed, or "cached" when the aggregate was served from the content
// cache.
type TaskResult struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	TaskID string `gorm:"size:36;not null;uniqueIndex" json:"task_id"`

	Result         ResultPayload `gorm:"type:jsonb" json:"result"`
	ProcessingTime float64       `json:"processing_time"`
	AgentUsed      string        `gorm:"size:255" json:"agent_used"`
	CompletedAt    time.Time     `json:"completed_at"`
}
