package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HongNam0207/taskhome-api/internal/dto"
	apierrors "github.com/HongNam0207/taskhome-api/internal/errors"
	"github.com/HongNam0207/taskhome-api/internal/middleware"
	"github.com/HongNam0207/taskhome-api/internal/models"
	"github.com/HongNam0207/taskhome-api/internal/services"
	"github.com/HongNam0207/taskhome-api/internal/utils"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService       *services.TaskService
	suggestionService *services.SuggestionService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, suggestionService *services.SuggestionService) *TaskHandler {
	return &TaskHandler{
		taskService:       taskService,
		suggestionService: suggestionService,
	}
}

// ListTasks returns tasks of one family. The family_id query parameter is
// optional; without it the caller's own family is used.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var familyID *uint64
	if raw := c.Query("family_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid family_id")
			return
		}
		familyID = &id
	}

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListTasks(userID, familyID, params)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// ListMyTasks returns every task assigned to the caller, across families.
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	summaries, err := h.taskService.ListMyTasks(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch assigned tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": summaries,
	})
}

// GetTask returns one task. The task was loaded and authorized by
// RequireTaskAccess.
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, exists := middleware.GetContextTask(c)
	if !exists {
		apierrors.InternalError(c, "Task not loaded")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// CreateTask creates a task in Pending status, optionally with initial
// assignees. Assignees outside the family are skipped.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		FamilyID    uint64     `json:"family_id" binding:"required"`
		ProjectID   *uint64    `json:"project_id"`
		Title       string     `json:"title" binding:"required,max=255"`
		Description string     `json:"description"`
		Priority    string     `json:"priority"`
		DueDate     *time.Time `json:"due_date"`
		AssigneeIDs []uint64   `json:"assignee_ids"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		FamilyID:    req.FamilyID,
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		AssigneeIDs: req.AssigneeIDs,
		CreatorID:   userID,
	})
	if err != nil {
		// An unknown family is a validation failure on create, not a
		// lookup miss.
		if errors.Is(err, services.ErrFamilyNotFound) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// updateTaskRequest distinguishes absent fields from explicit nulls, so a
// PATCH-style body only touches what it names.
type updateTaskRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Status      *models.TaskStatus `json:"status"`
	Priority    *string            `json:"priority"`
	DueDate     *time.Time         `json:"due_date"`
	ProjectID   *uint64            `json:"project_id"`
	AssigneeIDs *[]uint64          `json:"assignee_ids"`

	raw map[string]json.RawMessage
}

func (r *updateTaskRequest) has(field string) bool {
	_, ok := r.raw[field]
	return ok
}

func (r *updateTaskRequest) bind(c *gin.Context) error {
	if err := c.ShouldBindJSON(&r.raw); err != nil {
		return err
	}
	for field, value := range r.raw {
		var dest interface{}
		switch field {
		case "title":
			dest = &r.Title
		case "description":
			dest = &r.Description
		case "status":
			dest = &r.Status
		case "priority":
			dest = &r.Priority
		case "due_date":
			dest = &r.DueDate
		case "project_id":
			dest = &r.ProjectID
		case "assignee_ids":
			dest = &r.AssigneeIDs
		default:
			continue
		}
		if err := json.Unmarshal(value, dest); err != nil {
			return err
		}
	}
	return nil
}

// UpdateTask applies a partial update to a task. A present assignee_ids
// field replaces the whole assignment set; an empty list unassigns
// everyone. An explicit null due_date or project_id clears the field.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	var req updateTaskRequest
	if err := req.bind(c); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	}
	if req.has("due_date") {
		if req.DueDate == nil {
			input.ClearDueDate = true
		} else {
			input.DueDate = req.DueDate
		}
	}
	if req.has("project_id") {
		if req.ProjectID == nil {
			input.ClearProject = true
		} else {
			input.ProjectID = req.ProjectID
		}
	}
	if req.has("assignee_ids") {
		ids := []uint64{}
		if req.AssigneeIDs != nil {
			ids = *req.AssigneeIDs
		}
		input.AssigneeIDs = &ids
	}

	task, err := h.taskService.UpdateTask(taskID, userID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task with its assignments and comments.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.DeleteTask(taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// SuggestTasks extracts chore candidates from free-form text. Nothing is
// persisted; the caller decides what to create.
func (h *TaskHandler) SuggestTasks(c *gin.Context) {
	type SuggestRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	chores, err := h.suggestionService.SuggestChores(c.Request.Context(), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSuggestionsNotConfigured):
			apierrors.RespondWithError(c, http.StatusServiceUnavailable,
				apierrors.NewAPIError(apierrors.ErrCodeInternalError, err.Error()))
		case errors.Is(err, services.ErrNoSuggestions):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to suggest tasks")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": chores,
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrFamilyRequired),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidProject):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFamilyNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotFamilyMember):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
