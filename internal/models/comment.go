package models

import "time"

// Comment is attached to a task; ParentCommentID threads replies.
type Comment struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	TaskID          uint64    `gorm:"not null;index" json:"task_id"`
	UserID          uint64    `gorm:"not null" json:"user_id"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	ParentCommentID *uint64   `json:"parent_comment_id"`
	CreatedAt       time.Time `json:"created_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
