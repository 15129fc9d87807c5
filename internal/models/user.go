package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	FullName     string         `gorm:"type:varchar(255)" json:"full_name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	RoleID       uint64         `gorm:"not null" json:"role_id"`
	PhoneNumber  string         `gorm:"type:varchar(30)" json:"phone_number"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Role         Role             `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Memberships  []FamilyMember   `gorm:"foreignKey:UserID" json:"-"`
	CreatedTasks []Task           `gorm:"foreignKey:CreatedBy" json:"-"`
	Assignments  []TaskAssignment `gorm:"foreignKey:UserID" json:"-"`
	Comments     []Comment        `gorm:"foreignKey:UserID" json:"-"`
}
