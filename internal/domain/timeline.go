package domain

import "time"

// TaskEvent is one append-only entry in a task's transition audit trail.
type TaskEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	TaskID     string     `gorm:"size:36;not null;index" json:"task_id"`
	FromStatus TaskStatus `gorm:"column:from_status;size:20" json:"from"`
	ToStatus   TaskStatus `gorm:"column:to_status;size:20;not null" json:"to"`
	Message    string     `gorm:"type:text" json:"message"`
}
