package repository

import (
	"github.com/HongNam0207/taskhome-api/internal/models"
	"github.com/HongNam0207/taskhome-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID with the role preloaded
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email with the role preloaded
	FindByEmail(email string) (*models.User, error)

	// FindRoleByName resolves a role from the lookup table
	FindRoleByName(name models.RoleName) (*models.Role, error)

	// Update updates a user
	Update(user *models.User) error
}

// FamilyRepository defines the interface for family and membership data access.
// It owns both the registry (family records, join codes) and the ledger
// (memberships), since the two change together transactionally.
type FamilyRepository interface {
	// CreateWithOwner creates a family and its owner membership in a single
	// transaction, generating the join code from the next sequence value.
	CreateWithOwner(family *models.Family, owner *models.FamilyMember) error

	// FindByID finds a family by ID
	FindByID(id uint64) (*models.Family, error)

	// FindByCode finds a family by its exact join code
	FindByCode(code string) (*models.Family, error)

	// Update updates a family
	Update(family *models.Family) error

	// Delete removes a family and everything it owns: memberships,
	// projects, tasks, and the tasks' assignments and comments.
	Delete(id uint64) error

	// List retrieves families across all tenants with pagination
	List(params utils.PaginationParams) ([]models.Family, int64, error)

	// ListForUser returns the deduplicated union of families the user
	// created and families the user joined.
	ListForUser(userID uint64) ([]models.Family, error)

	// AddMember inserts a membership row
	AddMember(member *models.FamilyMember) error

	// FindMember finds the membership for a (family, user) pair
	FindMember(familyID, userID uint64) (*models.FamilyMember, error)

	// FindMemberByID finds a membership row by its own ID
	FindMemberByID(memberID uint64) (*models.FamilyMember, error)

	// FirstMembershipForUser returns the user's oldest membership, or
	// gorm.ErrRecordNotFound if the user belongs to no family.
	FirstMembershipForUser(userID uint64) (*models.FamilyMember, error)

	// ListMembers lists all members of a family with users preloaded
	ListMembers(familyID uint64) ([]models.FamilyMember, error)

	// ListMembershipsForUser lists a user's memberships with families preloaded
	ListMembershipsForUser(userID uint64) ([]models.FamilyMember, error)

	// UpdateMember updates a membership row
	UpdateMember(member *models.FamilyMember) error

	// RemoveMember deletes a membership row by ID
	RemoveMember(memberID uint64) error

	// FilterMemberIDs returns the subset of userIDs that hold a
	// membership in the family.
	FilterMemberIDs(familyID uint64, userIDs []uint64) ([]uint64, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// CreateWithAssignments creates a task and its initial assignments
	// in a single transaction.
	CreateWithAssignments(task *models.Task, assigneeIDs []uint64) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByFamily retrieves a family's tasks with pagination
	ListByFamily(familyID uint64, params utils.PaginationParams) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// ReplaceAssignments atomically removes every assignment of the task
	// and inserts assignments for userIDs. An empty slice unassigns all.
	ReplaceAssignments(taskID uint64, userIDs []uint64) error

	// Delete removes the task's assignments and comments, then the task,
	// in a single transaction.
	Delete(id uint64) error

	// ListAssignedToUser returns the user's assignments across all
	// families with the task and its family preloaded.
	ListAssignedToUser(userID uint64) ([]models.TaskAssignment, error)
}

// AssignmentRepository defines the interface for assignment data access
type AssignmentRepository interface {
	// Create inserts an assignment row
	Create(assignment *models.TaskAssignment) error

	// Find finds the assignment for a (task, user) pair
	Find(taskID, userID uint64) (*models.TaskAssignment, error)

	// Update updates an assignment
	Update(assignment *models.TaskAssignment) error

	// Delete removes the assignment for a (task, user) pair
	Delete(taskID, userID uint64) error

	// List retrieves assignments across all tasks with pagination
	List(params utils.PaginationParams) ([]models.TaskAssignment, int64, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(project *models.Project) error
	FindByID(id uint64) (*models.Project, error)
	ListByFamily(familyID uint64, params utils.PaginationParams) ([]models.Project, int64, error)
	Update(project *models.Project) error
	Delete(id uint64) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	FindByID(id uint64) (*models.Comment, error)
	ListByTask(taskID uint64) ([]models.Comment, error)
	Delete(id uint64) error
}
