package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/HongNam0207/taskhome-api/internal/database"
	"github.com/HongNam0207/taskhome-api/internal/models"
	"github.com/HongNam0207/taskhome-api/internal/utils"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// CreateWithAssignments creates a task and its initial assignments atomically
func (r *GormTaskRepository) CreateWithAssignments(task *models.Task, assigneeIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		return insertAssignments(tx, task.ID, assigneeIDs)
	})
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListByFamily retrieves a family's tasks with pagination
func (r *GormTaskRepository) ListByFamily(familyID uint64, params utils.PaginationParams) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{}).Where("family_id = ?", familyID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.Task
	if err := query.
		Preload("Creator").
		Preload("Assignments").
		Preload("Assignments.User").
		Order("tasks.created_at DESC").
		Scopes(database.Paginate(params)).
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// ReplaceAssignments removes every assignment of the task and inserts the
// new set in one transaction. An empty set unassigns everyone; a failure
// partway leaves the previous assignments intact.
func (r *GormTaskRepository) ReplaceAssignments(taskID uint64, userIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}
		return insertAssignments(tx, taskID, userIDs)
	})
}

// Delete removes the task's assignments and comments, then the task itself
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, id).Error
	})
}

// ListAssignedToUser returns the user's assignments across all families
func (r *GormTaskRepository) ListAssignedToUser(userID uint64) ([]models.TaskAssignment, error) {
	var assignments []models.TaskAssignment
	if err := r.db.
		Preload("Task").
		Preload("Task.Family").
		Where("user_id = ?", userID).
		Find(&assignments).Error; err != nil {
		return nil, err
	}

	// Drop rows whose task was soft-deleted after assignment.
	live := assignments[:0]
	for _, a := range assignments {
		if a.Task.ID != 0 {
			live = append(live, a)
		}
	}
	return live, nil
}

func insertAssignments(tx *gorm.DB, taskID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}

	now := time.Now()
	assignments := make([]models.TaskAssignment, len(userIDs))
	for i, userID := range userIDs {
		assignments[i] = models.TaskAssignment{
			TaskID:          taskID,
			UserID:          userID,
			ProgressPercent: 0,
			AssignedAt:      now,
		}
	}

	return tx.Create(&assignments).Error
}
