package repository

import (
	"gorm.io/gorm"

	"github.com/HongNam0207/taskhome-api/internal/database"
	"github.com/HongNam0207/taskhome-api/internal/models"
	"github.com/HongNam0207/taskhome-api/internal/utils"
)

// GormAssignmentRepository is a GORM implementation of AssignmentRepository
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Create inserts an assignment row
func (r *GormAssignmentRepository) Create(assignment *models.TaskAssignment) error {
	return r.db.Create(assignment).Error
}

// Find finds the assignment for a (task, user) pair
func (r *GormAssignmentRepository) Find(taskID, userID uint64) (*models.TaskAssignment, error) {
	var assignment models.TaskAssignment
	if err := r.db.Where("task_id = ? AND user_id = ?", taskID, userID).
		First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Update updates an assignment
func (r *GormAssignmentRepository) Update(assignment *models.TaskAssignment) error {
	return r.db.Save(assignment).Error
}

// Delete removes the assignment for a (task, user) pair
func (r *GormAssignmentRepository) Delete(taskID, userID uint64) error {
	return r.db.Where("task_id = ? AND user_id = ?", taskID, userID).
		Delete(&models.TaskAssignment{}).Error
}

// List retrieves assignments across all tasks with pagination
func (r *GormAssignmentRepository) List(params utils.PaginationParams) ([]models.TaskAssignment, int64, error) {
	var total int64
	if err := r.db.Model(&models.TaskAssignment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var assignments []models.TaskAssignment
	if err := r.db.
		Preload("User").
		Preload("Task").
		Order("assigned_at DESC").
		Scopes(database.Paginate(params)).
		Find(&assignments).Error; err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}
