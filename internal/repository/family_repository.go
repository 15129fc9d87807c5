package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/HongNam0207/taskhome-api/internal/database"
	"github.com/HongNam0207/taskhome-api/internal/models"
	"github.com/HongNam0207/taskhome-api/internal/utils"
)

// GormFamilyRepository is a GORM implementation of FamilyRepository
type GormFamilyRepository struct {
	db *gorm.DB
}

// NewFamilyRepository creates a new FamilyRepository
func NewFamilyRepository(db *gorm.DB) FamilyRepository {
	return &GormFamilyRepository{db: db}
}

// CreateWithOwner creates a family and its owner membership atomically.
// The join code is derived from max(id)+1 inside the same transaction so
// sequential creates yield strictly increasing codes. Soft-deleted rows
// count toward the sequence: codes are immutable and never reused.
func (r *GormFamilyRepository) CreateWithOwner(family *models.Family, owner *models.FamilyMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var maxID uint64
		if err := tx.Model(&models.Family{}).Unscoped().
			Select("COALESCE(MAX(id), 0)").
			Scan(&maxID).Error; err != nil {
			return fmt.Errorf("failed to read family sequence: %w", err)
		}

		family.Code = utils.FormatFamilyCode(maxID + 1)
		if err := tx.Create(family).Error; err != nil {
			return fmt.Errorf("failed to create family: %w", err)
		}

		owner.FamilyID = family.ID
		if err := tx.Create(owner).Error; err != nil {
			return fmt.Errorf("failed to create owner membership: %w", err)
		}

		return nil
	})
}

// FindByID finds a family by ID
func (r *GormFamilyRepository) FindByID(id uint64) (*models.Family, error) {
	var family models.Family
	if err := r.db.First(&family, id).Error; err != nil {
		return nil, err
	}
	return &family, nil
}

// FindByCode finds a family by its exact join code
func (r *GormFamilyRepository) FindByCode(code string) (*models.Family, error) {
	var family models.Family
	if err := r.db.Where("code = ?", code).First(&family).Error; err != nil {
		return nil, err
	}
	return &family, nil
}

// Update updates a family
func (r *GormFamilyRepository) Update(family *models.Family) error {
	return r.db.Save(family).Error
}

// Delete removes a family and all rows it owns in one transaction.
// The cascade lives here, not at call sites.
func (r *GormFamilyRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&models.Task{}).Select("id").Where("family_id = ?", id)

		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("family_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("family_id = ?", id).Delete(&models.Project{}).Error; err != nil {
			return err
		}
		if err := tx.Where("family_id = ?", id).Delete(&models.FamilyMember{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Family{}, id).Error
	})
}

// List retrieves families across all tenants with pagination
func (r *GormFamilyRepository) List(params utils.PaginationParams) ([]models.Family, int64, error) {
	var families []models.Family
	var total int64

	if err := r.db.Model(&models.Family{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Preload("Creator").
		Order("families.created_at DESC").
		Scopes(database.Paginate(params)).
		Find(&families).Error; err != nil {
		return nil, 0, err
	}

	return families, total, nil
}

// ListForUser returns the deduplicated union of created and joined families
func (r *GormFamilyRepository) ListForUser(userID uint64) ([]models.Family, error) {
	var created []models.Family
	if err := r.db.Where("created_by = ?", userID).Find(&created).Error; err != nil {
		return nil, err
	}

	var memberships []models.FamilyMember
	if err := r.db.Preload("Family").Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		return nil, err
	}

	seen := make(map[uint64]struct{}, len(created)+len(memberships))
	families := make([]models.Family, 0, len(created)+len(memberships))
	for _, f := range created {
		seen[f.ID] = struct{}{}
		families = append(families, f)
	}
	for _, m := range memberships {
		if _, ok := seen[m.FamilyID]; ok {
			continue
		}
		if m.Family.ID == 0 {
			// Family row gone (deleted mid-flight); skip the orphan.
			continue
		}
		seen[m.FamilyID] = struct{}{}
		families = append(families, m.Family)
	}

	return families, nil
}

// AddMember inserts a membership row
func (r *GormFamilyRepository) AddMember(member *models.FamilyMember) error {
	return r.db.Create(member).Error
}

// FindMember finds the membership for a (family, user) pair
func (r *GormFamilyRepository) FindMember(familyID, userID uint64) (*models.FamilyMember, error) {
	var member models.FamilyMember
	if err := r.db.Where("family_id = ? AND user_id = ?", familyID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindMemberByID finds a membership row by its own ID
func (r *GormFamilyRepository) FindMemberByID(memberID uint64) (*models.FamilyMember, error) {
	var member models.FamilyMember
	if err := r.db.First(&member, memberID).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FirstMembershipForUser returns the user's oldest membership
func (r *GormFamilyRepository) FirstMembershipForUser(userID uint64) (*models.FamilyMember, error) {
	var member models.FamilyMember
	if err := r.db.Where("user_id = ?", userID).
		Order("join_date ASC, id ASC").
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists all members of a family with users preloaded
func (r *GormFamilyRepository) ListMembers(familyID uint64) ([]models.FamilyMember, error) {
	var members []models.FamilyMember
	if err := r.db.Preload("User").
		Where("family_id = ?", familyID).
		Order("join_date ASC, id ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListMembershipsForUser lists a user's memberships with families preloaded
func (r *GormFamilyRepository) ListMembershipsForUser(userID uint64) ([]models.FamilyMember, error) {
	var memberships []models.FamilyMember
	if err := r.db.Preload("Family").
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// UpdateMember updates a membership row
func (r *GormFamilyRepository) UpdateMember(member *models.FamilyMember) error {
	return r.db.Save(member).Error
}

// RemoveMember deletes a membership row by ID
func (r *GormFamilyRepository) RemoveMember(memberID uint64) error {
	return r.db.Delete(&models.FamilyMember{}, memberID).Error
}

// FilterMemberIDs returns the subset of userIDs holding a membership in the family
func (r *GormFamilyRepository) FilterMemberIDs(familyID uint64, userIDs []uint64) ([]uint64, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	var memberIDs []uint64
	if err := r.db.Model(&models.FamilyMember{}).
		Where("family_id = ? AND user_id IN ?", familyID, userIDs).
		Pluck("user_id", &memberIDs).Error; err != nil {
		return nil, err
	}
	return memberIDs, nil
}
