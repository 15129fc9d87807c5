package dto

import (
	"time"

	"github.com/HongNam0207/taskhome-api/internal/models"
)

// TaskAssignmentDTO represents a task assignment in API responses
type TaskAssignmentDTO struct {
	User            UserDTO    `json:"user"`
	ProgressPercent int        `json:"progress_percent"`
	ProgressNote    string     `json:"progress_note"`
	AssignedAt      time.Time  `json:"assigned_at"`
	CompletedAt     *time.Time `json:"completed_at"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    string              `json:"priority"`
	DueDate     *time.Time          `json:"due_date"`
	CreatedBy   uint64              `json:"created_by"`
	FamilyID    uint64              `json:"family_id"`
	ProjectID   *uint64             `json:"project_id"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Creator     *UserDTO            `json:"creator,omitempty"`
	Family      *FamilyDTO          `json:"family,omitempty"`
	Project     *ProjectDTO         `json:"project,omitempty"`
	Assignments []TaskAssignmentDTO `json:"assignments,omitempty"`
}

// TaskListItemDTO represents a task in list responses (minimal data)
type TaskListItemDTO struct {
	ID          uint64            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	Priority    string            `json:"priority"`
	DueDate     *time.Time        `json:"due_date"`
	CreatedBy   uint64            `json:"created_by"`
	Creator     *UserDTO          `json:"creator,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskListItemDTO `json:"tasks"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int64             `json:"total_count"`
	TotalPages int               `json:"total_pages"`
}

// AssignmentListResponse represents a paginated list of assignments
type AssignmentListResponse struct {
	Assignments []AssignmentDTO `json:"assignments"`
	Page        int             `json:"page"`
	PageSize    int             `json:"page_size"`
	TotalCount  int64           `json:"total_count"`
	TotalPages  int             `json:"total_pages"`
}

// AssignmentDTO represents a standalone assignment row
type AssignmentDTO struct {
	ID              uint64     `json:"id"`
	TaskID          uint64     `json:"task_id"`
	UserID          uint64     `json:"user_id"`
	ProgressPercent int        `json:"progress_percent"`
	ProgressNote    string     `json:"progress_note"`
	AssignedAt      time.Time  `json:"assigned_at"`
	CompletedAt     *time.Time `json:"completed_at"`
	User            *UserDTO   `json:"user,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		CreatedBy:   task.CreatedBy,
		FamilyID:    task.FamilyID,
		ProjectID:   task.ProjectID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Include creator if preloaded
	if task.Creator.ID != 0 {
		creator := ToUserDTO(task.Creator)
		dto.Creator = &creator
	}

	// Include family if preloaded
	if task.Family.ID != 0 {
		family := ToFamilyDTO(task.Family)
		dto.Family = &family
	}

	// Include project if preloaded
	if task.Project != nil && task.Project.ID != 0 {
		project := ToProjectDTO(*task.Project)
		dto.Project = &project
	}

	// Include assignments if preloaded
	if len(task.Assignments) > 0 {
		dto.Assignments = make([]TaskAssignmentDTO, len(task.Assignments))
		for i, assignment := range task.Assignments {
			dto.Assignments[i] = TaskAssignmentDTO{
				User:            ToUserDTO(assignment.User),
				ProgressPercent: assignment.ProgressPercent,
				ProgressNote:    assignment.ProgressNote,
				AssignedAt:      assignment.AssignedAt,
				CompletedAt:     assignment.CompletedAt,
			}
		}
	}

	return dto
}

// ToTaskListItemDTO converts a Task model to TaskListItemDTO
func ToTaskListItemDTO(task models.Task) TaskListItemDTO {
	dto := TaskListItemDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		CreatedBy:   task.CreatedBy,
		CreatedAt:   task.CreatedAt,
	}

	// Include creator if preloaded
	if task.Creator.ID != 0 {
		creator := ToUserDTO(task.Creator)
		dto.Creator = &creator
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pageSize int, totalCount int64) TaskListResponse {
	items := make([]TaskListItemDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskListItemDTO(task)
	}

	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}

	return TaskListResponse{
		Tasks:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}

// ToAssignmentDTO converts a TaskAssignment model to AssignmentDTO
func ToAssignmentDTO(assignment models.TaskAssignment) AssignmentDTO {
	dto := AssignmentDTO{
		ID:              assignment.ID,
		TaskID:          assignment.TaskID,
		UserID:          assignment.UserID,
		ProgressPercent: assignment.ProgressPercent,
		ProgressNote:    assignment.ProgressNote,
		AssignedAt:      assignment.AssignedAt,
		CompletedAt:     assignment.CompletedAt,
	}

	if assignment.User.ID != 0 {
		user := ToUserDTO(assignment.User)
		dto.User = &user
	}

	return dto
}

// ToAssignmentListResponse converts assignments to AssignmentListResponse
func ToAssignmentListResponse(assignments []models.TaskAssignment, page, pageSize int, totalCount int64) AssignmentListResponse {
	items := make([]AssignmentDTO, len(assignments))
	for i, assignment := range assignments {
		items[i] = ToAssignmentDTO(assignment)
	}

	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}

	return AssignmentListResponse{
		Assignments: items,
		Page:        page,
		PageSize:    pageSize,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
	}
}
