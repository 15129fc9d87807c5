package models

import "time"

// TaskAssignment links a task to one of its responsible users.
// (TaskID, UserID) is unique: a user cannot be assigned twice.
type TaskAssignment struct {
	ID              uint64     `gorm:"primarykey" json:"id"`
	TaskID          uint64     `gorm:"not null;uniqueIndex:idx_task_user" json:"task_id"`
	UserID          uint64     `gorm:"not null;uniqueIndex:idx_task_user" json:"user_id"`
	ProgressPercent int        `gorm:"not null;default:0" json:"progress_percent"`
	ProgressNote    string     `gorm:"type:varchar(255)" json:"progress_note"`
	AssignedAt      time.Time  `json:"assigned_at"`
	CompletedAt     *time.Time `json:"completed_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
