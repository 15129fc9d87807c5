package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/HongNam0207/taskhome-api/internal/constants"
	"github.com/HongNam0207/taskhome-api/internal/models"
	"github.com/HongNam0207/taskhome-api/internal/repository"
	"github.com/HongNam0207/taskhome-api/internal/utils"
)

var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrAlreadyAssigned    = errors.New("user is already assigned to this task")
	ErrInvalidProgress    = errors.New("progress must be between 0 and 100")
)

// AssignmentService links tasks to responsible users and tracks
// per-assignee progress. It enforces the invariant that an assignee must
// be a member of the task's family.
type AssignmentService struct {
	assignmentRepo repository.AssignmentRepository
	taskRepo       repository.TaskRepository
	familyRepo     repository.FamilyRepository
	userRepo       repository.UserRepository
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	taskRepo repository.TaskRepository,
	familyRepo repository.FamilyRepository,
	userRepo repository.UserRepository,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		taskRepo:       taskRepo,
		familyRepo:     familyRepo,
		userRepo:       userRepo,
	}
}

// AssignInput represents parameters for a single explicit assignment.
type AssignInput struct {
	TaskID   uint64
	UserID   uint64
	Progress int
}

// Assign creates one assignment. The task and user must exist, the user
// must be a member of the task's family, and the (task, user) pair must
// not already be assigned.
func (s *AssignmentService) Assign(input AssignInput) (*models.TaskAssignment, error) {
	if input.Progress < constants.MinProgressPercent || input.Progress > constants.MaxProgressPercent {
		return nil, ErrInvalidProgress
	}

	task, err := s.taskRepo.FindByID(input.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if _, err := s.userRepo.FindByID(input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.familyRepo.FindMember(task.FamilyID, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFamilyMember
		}
		return nil, fmt.Errorf("failed to verify family membership: %w", err)
	}

	if _, err := s.assignmentRepo.Find(input.TaskID, input.UserID); err == nil {
		return nil, ErrAlreadyAssigned
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing assignment: %w", err)
	}

	assignment := &models.TaskAssignment{
		TaskID:          input.TaskID,
		UserID:          input.UserID,
		ProgressPercent: input.Progress,
		AssignedAt:      time.Now(),
	}
	stampCompletion(assignment)

	if err := s.assignmentRepo.Create(assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	return assignment, nil
}

// UpdateProgressInput carries a progress change for one assignment.
type UpdateProgressInput struct {
	TaskID   uint64
	UserID   uint64
	Progress int
	Note     *string
}

// UpdateProgress sets an assignee's progress. The assignment already
// proves family membership, so no re-check is needed here.
func (s *AssignmentService) UpdateProgress(input UpdateProgressInput) (*models.TaskAssignment, error) {
	if input.Progress < constants.MinProgressPercent || input.Progress > constants.MaxProgressPercent {
		return nil, ErrInvalidProgress
	}

	assignment, err := s.assignmentRepo.Find(input.TaskID, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}

	assignment.ProgressPercent = input.Progress
	if input.Note != nil {
		assignment.ProgressNote = *input.Note
	}
	stampCompletion(assignment)

	if err := s.assignmentRepo.Update(assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	return assignment, nil
}

// Unassign removes the assignment for a (task, user) pair.
func (s *AssignmentService) Unassign(taskID, userID uint64) error {
	if _, err := s.assignmentRepo.Find(taskID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to find assignment: %w", err)
	}

	if err := s.assignmentRepo.Delete(taskID, userID); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	return nil
}

// ListAssignments returns assignments across all tasks (cross-family read).
func (s *AssignmentService) ListAssignments(params utils.PaginationParams) ([]models.TaskAssignment, int64, error) {
	assignments, total, err := s.assignmentRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, total, nil
}

// stampCompletion keeps CompletedAt consistent with the progress value.
func stampCompletion(a *models.TaskAssignment) {
	if a.ProgressPercent == constants.MaxProgressPercent {
		if a.CompletedAt == nil {
			now := time.Now()
			a.CompletedAt = &now
		}
		return
	}
	a.CompletedAt = nil
}
