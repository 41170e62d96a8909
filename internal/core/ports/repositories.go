package ports

import (
	"context"

	"github.com/agentos/backend/internal/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	GetByIDForUser(ctx context.Context, id, userID string) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]domain.Task, error)
	CreateResult(ctx context.Context, result *domain.TaskResult) error
	GetResultByTaskID(ctx context.Context, taskID string) (*domain.TaskResult, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type TaskEventRepository interface {
	Create(ctx context.Context, event *domain.TaskEvent) error
	GetByTaskID(ctx context.Context, taskID string) ([]domain.TaskEvent, error)
}
