package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/HongNam0207/taskhome-api/internal/dto"
	apierrors "github.com/HongNam0207/taskhome-api/internal/errors"
	"github.com/HongNam0207/taskhome-api/internal/services"
	"github.com/HongNam0207/taskhome-api/internal/utils"
)

// AssignmentHandler coordinates task-assignment HTTP handlers.
type AssignmentHandler struct {
	assignmentService *services.AssignmentService
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(assignmentService *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
	}
}

// ListAssignments returns all assignments, paginated.
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	assignments, total, err := h.assignmentService.ListAssignments(params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch assignments")
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignmentListResponse(assignments, params.Page, params.Limit, total))
}

// CreateAssignment assigns a user to a task.
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	type CreateAssignmentRequest struct {
		TaskID   uint64 `json:"task_id" binding:"required"`
		UserID   uint64 `json:"user_id" binding:"required"`
		Progress int    `json:"progress_percent"`
	}

	var req CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assignment, err := h.assignmentService.Assign(services.AssignInput{
		TaskID:   req.TaskID,
		UserID:   req.UserID,
		Progress: req.Progress,
	})
	if err != nil {
		respondAssignmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAssignmentDTO(*assignment))
}

// UpdateAssignment sets an assignee's progress on a task.
func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	taskID, userID, ok := assignmentKey(c)
	if !ok {
		return
	}

	type UpdateAssignmentRequest struct {
		Progress int     `json:"progress_percent"`
		Note     *string `json:"progress_note"`
	}

	var req UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assignment, err := h.assignmentService.UpdateProgress(services.UpdateProgressInput{
		TaskID:   taskID,
		UserID:   userID,
		Progress: req.Progress,
		Note:     req.Note,
	})
	if err != nil {
		respondAssignmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignmentDTO(*assignment))
}

// DeleteAssignment removes a user from a task.
func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	taskID, userID, ok := assignmentKey(c)
	if !ok {
		return
	}

	if err := h.assignmentService.Unassign(taskID, userID); err != nil {
		respondAssignmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Assignment removed successfully",
	})
}

func assignmentKey(c *gin.Context) (taskID, userID uint64, ok bool) {
	taskID, err := strconv.ParseUint(c.Param("task_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, 0, false
	}

	userID, err = strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return 0, 0, false
	}

	return taskID, userID, true
}

func respondAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidProgress):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrAssignmentNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotFamilyMember):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAlreadyAssigned):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
