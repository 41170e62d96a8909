package db

import (
	"github.com/agentos/backend/internal/domain"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.User{},
		&domain.Task{},
		&domain.TaskResult{},
		&domain.TaskEvent{},
	)
	if err != nil {
		return err
	}

	return createCustomIndexes(db)
}

func createCustomIndexes(db *gorm.DB) error {
	// Recent-first listing per owner
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tasks_user_recency
		ON tasks (user_id, created_at DESC)
	`).Error; err != nil {
		return err
	}

	// Audit trail replay per task
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_task_events_task_time
		ON task_events (task_id, created_at)
	`).Error; err != nil {
		return err
	}

	return nil
}
