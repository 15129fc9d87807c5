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
	"github.com/HongNam0207/taskhome-api/internal/utils"
)

// FamilyHandler coordinates family-related HTTP handlers.
type FamilyHandler struct {
	familyService *services.FamilyService
}

// NewFamilyHandler creates a new FamilyHandler.
func NewFamilyHandler(familyService *services.FamilyService) *FamilyHandler {
	return &FamilyHandler{
		familyService: familyService,
	}
}

// ListFamilies returns all families, paginated.
func (h *FamilyHandler) ListFamilies(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	families, total, err := h.familyService.ListAllFamilies(params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch families")
		return
	}

	c.JSON(http.StatusOK, dto.ToFamilyListResponse(families, params.Page, params.Limit, total))
}

// ListMyFamilies returns every family the caller created or joined.
func (h *FamilyHandler) ListMyFamilies(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	families, err := h.familyService.ListMyFamilies(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch families")
		return
	}

	items := make([]dto.FamilyDTO, len(families))
	for i, family := range families {
		items[i] = dto.ToFamilyDTO(family)
	}

	c.JSON(http.StatusOK, gin.H{
		"families": items,
	})
}

// GetFamily returns one family by ID.
func (h *FamilyHandler) GetFamily(c *gin.Context) {
	familyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid family ID")
		return
	}

	family, err := h.familyService.GetFamily(familyID)
	if err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFamilyDTO(*family))
}

// CreateFamily creates a family and makes the caller its owner.
func (h *FamilyHandler) CreateFamily(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateFamilyRequest struct {
		Name    string `json:"name" binding:"required,max=255"`
		Address string `json:"address" binding:"max=255"`
	}

	var req CreateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	family, err := h.familyService.CreateFamily(services.CreateFamilyInput{
		Name:      req.Name,
		Address:   req.Address,
		CreatorID: userID,
	})
	if err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFamilyDTO(*family))
}

// UpdateFamily updates a family's name and address. Creator only.
func (h *FamilyHandler) UpdateFamily(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	familyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid family ID")
		return
	}

	type UpdateFamilyRequest struct {
		Name    string `json:"name" binding:"max=255"`
		Address string `json:"address" binding:"max=255"`
	}

	var req UpdateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	family, err := h.familyService.UpdateFamily(familyID, userID, services.UpdateFamilyInput{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFamilyDTO(*family))
}

// DeleteFamily removes a family and everything scoped to it. Creator only.
func (h *FamilyHandler) DeleteFamily(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	familyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid family ID")
		return
	}

	if err := h.familyService.DeleteFamily(familyID, userID); err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Family deleted successfully",
	})
}

// JoinFamily adds the caller to the family matching the given join code.
func (h *FamilyHandler) JoinFamily(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type JoinFamilyRequest struct {
		Code string `json:"code" binding:"required"`
	}

	var req JoinFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	family, membership, err := h.familyService.JoinByCode(userID, req.Code)
	if err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.JoinFamilyResponse{
		Family:     dto.ToFamilyDTO(*family),
		Membership: dto.ToFamilyMemberDTO(*membership),
	})
}

func respondFamilyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrFamilyNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidFamilyCode):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFamilyNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotFamilyCreator):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrAlreadyFamilyMember):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
