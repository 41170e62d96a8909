package db

import (
	"context"

	"github.com/agentos/backend/internal/core/ports"
	"github.com/agentos/backend/internal/domain"
	"github.com/agentos/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type taskEventRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskEventRepository(db *gorm.DB, log *logger.Logger) ports.TaskEventRepository {
	return &taskEventRepository{db: db, log: log}
}

func (r *taskEventRepository) Create(ctx context.Context, event *domain.TaskEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		r.log.Errorw("task_event_repo_create_failed", "task_id", event.TaskID, "error", err)
		return err
	}
	return nil
}

func (r *taskEventRepository) GetByTaskID(ctx context.Context, taskID string) ([]domain.TaskEvent, error) {
	var events []domain.TaskEvent
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		r.log.Errorw("task_event_repo_list_failed", "task_id", taskID, "error", err)
		return nil, err
	}
	return events, nil
}
