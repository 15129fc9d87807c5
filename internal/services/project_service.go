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
	ErrProjectNotFound     = errors.New("project not found")
	ErrProjectNameRequired = errors.New("project name cannot be empty")
)

// ProjectService handles family-scoped project grouping.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	familyRepo  repository.FamilyRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, familyRepo repository.FamilyRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		familyRepo:  familyRepo,
	}
}

// CreateProjectInput represents parameters to create a project. A zero
// FamilyID means the caller's first family.
type CreateProjectInput struct {
	FamilyID    uint64
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	CreatorID   uint64
}

// CreateProject creates a project in the caller's family.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrProjectNameRequired
	}

	familyID := input.FamilyID
	if familyID == 0 {
		own, err := s.familyRepo.FirstMembershipForUser(input.CreatorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNoFamilyMembership
			}
			return nil, fmt.Errorf("failed to resolve caller's family: %w", err)
		}
		familyID = own.FamilyID
	} else {
		if _, err := s.familyRepo.FindMember(familyID, input.CreatorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFamilyMember
			}
			return nil, fmt.Errorf("failed to verify family membership: %w", err)
		}
	}

	project := &models.Project{
		FamilyID:    familyID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CreatedBy:   input.CreatorID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// ListMyProjects lists projects of the caller's first family. No family
// means an empty list.
func (s *ProjectService) ListMyProjects(callerID uint64, params utils.PaginationParams) ([]models.Project, int64, error) {
	own, err := s.familyRepo.FirstMembershipForUser(callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.Project{}, 0, nil
		}
		return nil, 0, fmt.Errorf("failed to resolve caller's family: %w", err)
	}

	projects, total, err := s.projectRepo.ListByFamily(own.FamilyID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// UpdateProjectInput carries a partial project update; empty strings are no-ops.
type UpdateProjectInput struct {
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
}

// UpdateProject applies a partial update. The caller must be a member of
// the project's family.
func (s *ProjectService) UpdateProject(projectID, callerID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.memberProject(projectID, callerID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		project.Name = name
	}
	if input.Description != "" {
		project.Description = input.Description
	}
	if input.StartDate != nil {
		project.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = input.EndDate
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject removes a project; its tasks survive ungrouped.
func (s *ProjectService) DeleteProject(projectID, callerID uint64) error {
	project, err := s.memberProject(projectID, callerID)
	if err != nil {
		return err
	}

	if err := s.projectRepo.Delete(project.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

func (s *ProjectService) memberProject(projectID, callerID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if _, err := s.familyRepo.FindMember(project.FamilyID, callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFamilyMember
		}
		return nil, fmt.Errorf("failed to verify family membership: %w", err)
	}

	return project, nil
}
