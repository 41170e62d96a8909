package db

import (
	"context"

	"github.com/agentos/backend/internal/core/ports"
	"github.com/agentos/backend/internal/domain"
	"github.com/agentos/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type taskRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepository(db *gorm.DB, log *logger.Logger) ports.TaskRepository {
	return &taskRepository{db: db, log: log}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		r.log.Errorw("task_repo_create_failed", "id", task.ID, "error", err)
		return err
	}
	r.log.Infow("task_repo_create_ok", "id", task.ID, "user_id", task.UserID)
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		r.log.Errorw("task_repo_get_failed", "id", id, "error", err)
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) GetByIDForUser(ctx context.Context, id, userID string) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&task).Error; err != nil {
		r.log.Warnw("task_repo_get_for_user_failed", "id", id, "user_id", userID, "error", err)
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		r.log.Errorw("task_repo_update_failed", "id", task.ID, "error", err)
		return err
	}
	r.log.Infow("task_repo_update_ok", "id", task.ID, "status", task.Status)
	return nil
}

func (r *taskRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		r.log.Errorw("task_repo_list_failed", "user_id", userID, "error", err)
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) CreateResult(ctx context.Context, result *domain.TaskResult) error {
	if err := r.db.WithContext(ctx).Create(result).Error; err != nil {
		r.log.Errorw("task_repo_create_result_failed", "task_id", result.TaskID, "error", err)
		return err
	}
	r.log.Infow("task_repo_create_result_ok", "task_id", result.TaskID, "agents", result.AgentUsed)
	return nil
}

func (r *taskRepository) GetResultByTaskID(ctx context.Context, taskID string) (*domain.TaskResult, error) {
	var result domain.TaskResult
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).First(&result).Error; err != nil {
		r.log.Warnw("task_repo_get_result_failed", "task_id", taskID, "error", err)
		return nil, err
	}
	return &result, nil
}
