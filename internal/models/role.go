package models

type RoleName string

const (
	RoleMember RoleName = "Member"
	RoleAdmin  RoleName = "Admin"
)

// Role is the lookup table of account roles. Registration assigns Member;
// Admin accounts are provisioned out of band.
type Role struct {
	ID   uint64   `gorm:"primarykey" json:"id"`
	Name RoleName `gorm:"type:varchar(30);uniqueIndex;not null" json:"name"`
}
