package dto

import (
	"time"

	"github.com/HongNam0207/taskhome-api/internal/models"
)

// FamilyDTO represents a family in API responses
type FamilyDTO struct {
	ID        uint64    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedBy uint64    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// FamilyMemberDTO represents one membership row in API responses
type FamilyMemberDTO struct {
	ID           uint64    `json:"id"`
	FamilyID     uint64    `json:"family_id"`
	Relationship string    `json:"relationship"`
	JoinDate     time.Time `json:"join_date"`
	User         *UserDTO  `json:"user,omitempty"`
}

// FamilyListResponse represents a paginated list of families
type FamilyListResponse struct {
	Families   []FamilyDTO `json:"families"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalCount int64       `json:"total_count"`
	TotalPages int         `json:"total_pages"`
}

// JoinFamilyResponse is returned after joining a family by code
type JoinFamilyResponse struct {
	Family     FamilyDTO       `json:"family"`
	Membership FamilyMemberDTO `json:"membership"`
}

// ToFamilyDTO converts a Family model to FamilyDTO
func ToFamilyDTO(family models.Family) FamilyDTO {
	return FamilyDTO{
		ID:        family.ID,
		Code:      family.Code,
		Name:      family.Name,
		Address:   family.Address,
		CreatedBy: family.CreatedBy,
		CreatedAt: family.CreatedAt,
	}
}

// ToFamilyMemberDTO converts a FamilyMember model to FamilyMemberDTO
func ToFamilyMemberDTO(member models.FamilyMember) FamilyMemberDTO {
	dto := FamilyMemberDTO{
		ID:           member.ID,
		FamilyID:     member.FamilyID,
		Relationship: member.Relationship,
		JoinDate:     member.JoinDate,
	}

	// Include user if preloaded
	if member.User.ID != 0 {
		user := ToUserDTO(member.User)
		dto.User = &user
	}

	return dto
}

// ToFamilyListResponse converts a slice of families to FamilyListResponse
func ToFamilyListResponse(families []models.Family, page, pageSize int, totalCount int64) FamilyListResponse {
	items := make([]FamilyDTO, len(families))
	for i, family := range families {
		items[i] = ToFamilyDTO(family)
	}

	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}

	return FamilyListResponse{
		Families:   items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
