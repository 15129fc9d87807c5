package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/HongNam0207/taskhome-api/internal/models"
	"github.com/HongNam0207/taskhome-api/internal/repository"
	"github.com/HongNam0207/taskhome-api/internal/utils"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleEmpty      = errors.New("title cannot be empty")
	ErrFamilyRequired  = errors.New("family id is required")
	ErrInvalidStatus   = errors.New("status must be Pending, Doing or Done")
	ErrNotFamilyMember = errors.New("user is not a member of the family")
	ErrInvalidProject  = errors.New("project does not exist or belongs to another family")
)

// TaskService handles family-scoped task business logic.
type TaskService struct {
	taskRepo    repository.TaskRepository
	familyRepo  repository.FamilyRepository
	projectRepo repository.ProjectRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, familyRepo repository.FamilyRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		familyRepo:  familyRepo,
		projectRepo: projectRepo,
	}
}

// ListTasks returns tasks of the given family, or of the caller's first
// family when familyID is nil. A caller with no family gets an empty
// list; a caller outside an explicitly requested family gets
// ErrNotFamilyMember.
func (s *TaskService) ListTasks(callerID uint64, familyID *uint64, params utils.PaginationParams) ([]models.Task, int64, error) {
	var targetFamilyID uint64
	if familyID != nil {
		targetFamilyID = *familyID
	} else {
		own, err := s.familyRepo.FirstMembershipForUser(callerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []models.Task{}, 0, nil
			}
			return nil, 0, fmt.Errorf("failed to resolve caller's family: %w", err)
		}
		targetFamilyID = own.FamilyID
	}

	if err := s.ensureFamilyMember(targetFamilyID, callerID); err != nil {
		return nil, 0, err
	}

	tasks, total, err := s.taskRepo.ListByFamily(targetFamilyID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task with related data.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Creator", "Family", "Project", "Assignments", "Assignments.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	FamilyID    uint64
	ProjectID   *uint64
	Title       string
	Description string
	Priority    string
	DueDate     *time.Time
	AssigneeIDs []uint64
	CreatorID   uint64
}

// CreateTask creates a task in Pending status. Requested assignees that
// are not members of the family are skipped without error; the resulting
// assignment set contains only members.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if input.FamilyID == 0 {
		return nil, ErrFamilyRequired
	}

	if _, err := s.familyRepo.FindByID(input.FamilyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFamilyNotFound
		}
		return nil, fmt.Errorf("failed to find family: %w", err)
	}

	if input.ProjectID != nil {
		if err := s.ensureProjectInFamily(*input.ProjectID, input.FamilyID); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		FamilyID:    input.FamilyID,
		ProjectID:   input.ProjectID,
		Title:       input.Title,
		Description: input.Description,
		Status:      models.TaskStatusPending,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		CreatedBy:   input.CreatorID,
	}

	assigneeIDs, err := s.memberAssignees(input.FamilyID, input.AssigneeIDs)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.CreateWithAssignments(task, assigneeIDs); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.GetTask(task.ID)
}

// UpdateTaskInput represents a partial task update. Nil fields are left
// untouched. A non-nil AssigneeIDs replaces the full assignment set;
// an empty slice unassigns everyone.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *models.TaskStatus
	Priority     *string
	DueDate      *time.Time
	ClearDueDate bool
	ProjectID    *uint64
	ClearProject bool
	AssigneeIDs  *[]uint64
}

// UpdateTask applies a partial update. The caller must be a member of the
// task's family.
func (s *TaskService) UpdateTask(taskID, callerID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.ensureFamilyMember(task.FamilyID, callerID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.ClearProject {
		task.ProjectID = nil
	} else if input.ProjectID != nil {
		if err := s.ensureProjectInFamily(*input.ProjectID, task.FamilyID); err != nil {
			return nil, err
		}
		task.ProjectID = input.ProjectID
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if input.AssigneeIDs != nil {
		assigneeIDs, err := s.memberAssignees(task.FamilyID, *input.AssigneeIDs)
		if err != nil {
			return nil, err
		}
		if err := s.taskRepo.ReplaceAssignments(task.ID, assigneeIDs); err != nil {
			return nil, fmt.Errorf("failed to replace assignments: %w", err)
		}
	}

	return s.GetTask(task.ID)
}

// DeleteTask removes a task together with its assignments and comments.
func (s *TaskService) DeleteTask(taskID uint64) error {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// TaskSummary is one row of a user's cross-family assignment list.
type TaskSummary struct {
	TaskID          uint64            `json:"task_id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Status          models.TaskStatus `json:"status"`
	Priority        string            `json:"priority"`
	DueDate         *time.Time        `json:"due_date"`
	CreatedAt       time.Time         `json:"created_at"`
	FamilyName      string            `json:"family_name"`
	ProgressPercent int               `json:"progress_percent"`
}

// ListMyTasks returns every task the user is assigned to, across all
// families, annotated with the owning family's name and the user's own
// progress.
func (s *TaskService) ListMyTasks(userID uint64) ([]TaskSummary, error) {
	assignments, err := s.taskRepo.ListAssignedToUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned tasks: %w", err)
	}

	summaries := make([]TaskSummary, 0, len(assignments))
	for _, a := range assignments {
		summaries = append(summaries, TaskSummary{
			TaskID:          a.Task.ID,
			Title:           a.Task.Title,
			Description:     a.Task.Description,
			Status:          a.Task.Status,
			Priority:        a.Task.Priority,
			DueDate:         a.Task.DueDate,
			CreatedAt:       a.Task.CreatedAt,
			FamilyName:      a.Task.Family.Name,
			ProgressPercent: a.ProgressPercent,
		})
	}

	return summaries, nil
}

// memberAssignees deduplicates the requested assignees and keeps only
// users that are members of the family. Non-members are skipped, not
// rejected.
func (s *TaskService) memberAssignees(familyID uint64, requested []uint64) ([]uint64, error) {
	unique := uniqueUint64(requested)
	if len(unique) == 0 {
		return nil, nil
	}

	members, err := s.familyRepo.FilterMemberIDs(familyID, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to verify assignees: %w", err)
	}

	memberSet := make(map[uint64]struct{}, len(members))
	for _, id := range members {
		memberSet[id] = struct{}{}
	}

	// Preserve the requested order.
	kept := make([]uint64, 0, len(members))
	for _, id := range unique {
		if _, ok := memberSet[id]; ok {
			kept = append(kept, id)
		}
	}
	return kept, nil
}

func (s *TaskService) ensureFamilyMember(familyID, userID uint64) error {
	if _, err := s.familyRepo.FindMember(familyID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFamilyMember
		}
		return fmt.Errorf("failed to verify family membership: %w", err)
	}
	return nil
}

func (s *TaskService) ensureProjectInFamily(projectID, familyID uint64) error {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidProject
		}
		return fmt.Errorf("failed to find project: %w", err)
	}
	if project.FamilyID != familyID {
		return ErrInvalidProject
	}
	return nil
}

// uniqueUint64 removes duplicate values from a slice of uint64.
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
