package models

import "time"

// Relationship labels used by the registry itself. Arbitrary labels
// ("Dad", "Grandma", ...) are allowed on top of these.
const (
	RelationshipOwner  = "owner"
	RelationshipMember = "member"
)

// FamilyMember links a user to a family. A user holds at most one
// membership per family but may belong to several families.
type FamilyMember struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	FamilyID     uint64    `gorm:"not null;uniqueIndex:idx_family_user" json:"family_id"`
	UserID       uint64    `gorm:"not null;uniqueIndex:idx_family_user" json:"user_id"`
	Relationship string    `gorm:"type:varchar(50);not null" json:"relationship"`
	JoinDate     time.Time `json:"join_date"`

	// Relations
	Family Family `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
