package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/HongNam0207/taskhome-api/internal/models"
)

// SeedRoles ensures the role lookup table contains the roles the core
// depends on. A deployment missing the Member role cannot register
// users at all, so seeding happens as part of migration.
func SeedRoles(db *gorm.DB) error {
	for _, name := range []models.RoleName{models.RoleMember, models.RoleAdmin} {
		var role models.Role
		err := db.Where("name = ?", name).First(&role).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("failed to look up role %s: %w", name, err)
		}
		if err := db.Create(&models.Role{Name: name}).Error; err != nil {
			return fmt.Errorf("failed to create role %s: %w", name, err)
		}
	}
	return nil
}

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task indexes for filtering and sorting
		{"tasks", "idx_tasks_family_id", "family_id"},
		{"tasks", "idx_tasks_created_by", "created_by"},
		{"tasks", "idx_tasks_status", "status"},
		{"tasks", "idx_tasks_due_date", "due_date"},

		// Family member indexes
		{"family_members", "idx_family_members_family_id", "family_id"},
		{"family_members", "idx_family_members_user_id", "user_id"},

		// Task assignment indexes
		{"task_assignments", "idx_task_assignments_task_id", "task_id"},
		{"task_assignments", "idx_task_assignments_user_id", "user_id"},

		// Project indexes
		{"projects", "idx_projects_family_id", "family_id"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
