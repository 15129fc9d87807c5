package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/HongNam0207/taskhome-api/internal/dto"
	apierrors "github.com/HongNam0207/taskhome-api/internal/errors"
	"github.com/HongNam0207/taskhome-api/internal/middleware"
	"github.com/HongNam0207/taskhome-api/internal/services"
)

// MemberHandler coordinates family-membership HTTP handlers.
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

// ListMyFamilyMembers returns the roster of the caller's own family. A
// caller with no family gets an empty list.
func (h *MemberHandler) ListMyFamilyMembers(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	members, err := h.memberService.ListMyFamilyMembers(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch members")
		return
	}

	items := make([]dto.FamilyMemberDTO, len(members))
	for i, member := range members {
		items[i] = dto.ToFamilyMemberDTO(member)
	}

	c.JSON(http.StatusOK, gin.H{
		"members": items,
	})
}

// AddMember adds an existing user to the caller's family.
func (h *MemberHandler) AddMember(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type AddMemberRequest struct {
		UserID       uint64 `json:"user_id" binding:"required"`
		Relationship string `json:"relationship" binding:"max=50"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.memberService.AddMember(services.AddMemberInput{
		CallerID:     userID,
		TargetUserID: req.UserID,
		Relationship: req.Relationship,
	})
	if err != nil {
		respondMemberError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFamilyMemberDTO(*member))
}

// UpdateMember changes a membership's relationship label.
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	memberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid member ID")
		return
	}

	type UpdateMemberRequest struct {
		Relationship string `json:"relationship" binding:"max=50"`
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.memberService.UpdateRelationship(memberID, userID, req.Relationship)
	if err != nil {
		respondMemberError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFamilyMemberDTO(*member))
}

// RemoveMember removes a membership from the caller's family.
func (h *MemberHandler) RemoveMember(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	memberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid member ID")
		return
	}

	if err := h.memberService.RemoveMember(memberID, userID); err != nil {
		respondMemberError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}

func respondMemberError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoFamilyMembership):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTargetUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCrossFamilyEdit):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrAlreadyFamilyMember):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
