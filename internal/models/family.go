package models

import (
	"time"

	"gorm.io/gorm"
)

type Family struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Code      string         `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Address   string         `gorm:"type:varchar(255)" json:"address"`
	CreatedBy uint64         `gorm:"not null" json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Creator  User           `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Members  []FamilyMember `gorm:"foreignKey:FamilyID" json:"members,omitempty"`
	Tasks    []Task         `gorm:"foreignKey:FamilyID" json:"tasks,omitempty"`
	Projects []Project      `gorm:"foreignKey:FamilyID" json:"projects,omitempty"`
}
