package models

import (
	"time"

	"gorm.io/gorm"
)

// Project groups related tasks within a family.
type Project struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	FamilyID    uint64         `gorm:"not null" json:"family_id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	StartDate   *time.Time     `json:"start_date"`
	EndDate     *time.Time     `json:"end_date"`
	CreatedBy   uint64         `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Family Family `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
	Tasks  []Task `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}
