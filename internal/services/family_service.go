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
	ErrFamilyNotFound      = errors.New("family not found")
	ErrFamilyNameRequired  = errors.New("family name cannot be empty")
	ErrNotFamilyCreator    = errors.New("only the family creator can perform this action")
	ErrInvalidFamilyCode   = errors.New("no family exists for this code")
	ErrAlreadyFamilyMember = errors.New("user is already a member of this family")
)

// FamilyService owns family records and join codes.
type FamilyService struct {
	familyRepo repository.FamilyRepository
}

// NewFamilyService creates a new FamilyService.
func NewFamilyService(familyRepo repository.FamilyRepository) *FamilyService {
	return &FamilyService{
		familyRepo: familyRepo,
	}
}

// CreateFamilyInput represents parameters to create a new family.
type CreateFamilyInput struct {
	Name      string
	Address   string
	CreatorID uint64
}

// CreateFamily creates a family and its owner membership in one
// transaction. The join code is generated inside that transaction and
// never changes afterwards.
func (s *FamilyService) CreateFamily(input CreateFamilyInput) (*models.Family, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrFamilyNameRequired
	}

	family := &models.Family{
		Name:      strings.TrimSpace(input.Name),
		Address:   strings.TrimSpace(input.Address),
		CreatedBy: input.CreatorID,
	}

	owner := &models.FamilyMember{
		UserID:       input.CreatorID,
		Relationship: models.RelationshipOwner,
		JoinDate:     time.Now(),
	}

	if err := s.familyRepo.CreateWithOwner(family, owner); err != nil {
		return nil, fmt.Errorf("failed to create family: %w", err)
	}

	return family, nil
}

// UpdateFamilyInput carries a partial update; empty fields are no-ops,
// never "clear the field".
type UpdateFamilyInput struct {
	Name    string
	Address string
}

// UpdateFamily applies a partial update. Only the creator may update.
func (s *FamilyService) UpdateFamily(familyID, callerID uint64, input UpdateFamilyInput) (*models.Family, error) {
	family, err := s.familyRepo.FindByID(familyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFamilyNotFound
		}
		return nil, fmt.Errorf("failed to find family: %w", err)
	}

	if family.CreatedBy != callerID {
		return nil, ErrNotFamilyCreator
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		family.Name = name
	}
	if address := strings.TrimSpace(input.Address); address != "" {
		family.Address = address
	}

	if err := s.familyRepo.Update(family); err != nil {
		return nil, fmt.Errorf("failed to update family: %w", err)
	}

	return family, nil
}

// DeleteFamily removes a family and everything it owns. Only the creator
// may delete.
func (s *FamilyService) DeleteFamily(familyID, callerID uint64) error {
	family, err := s.familyRepo.FindByID(familyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFamilyNotFound
		}
		return fmt.Errorf("failed to find family: %w", err)
	}

	if family.CreatedBy != callerID {
		return ErrNotFamilyCreator
	}

	if err := s.familyRepo.Delete(familyID); err != nil {
		return fmt.Errorf("failed to delete family: %w", err)
	}

	return nil
}

// JoinByCode enrolls the user into the family whose join code matches
// the trimmed input exactly.
func (s *FamilyService) JoinByCode(userID uint64, code string) (*models.Family, *models.FamilyMember, error) {
	family, err := s.familyRepo.FindByCode(utils.NormalizeFamilyCode(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidFamilyCode
		}
		return nil, nil, fmt.Errorf("failed to find family by code: %w", err)
	}

	if _, err := s.familyRepo.FindMember(family.ID, userID); err == nil {
		return nil, nil, ErrAlreadyFamilyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.FamilyMember{
		FamilyID:     family.ID,
		UserID:       userID,
		Relationship: models.RelationshipMember,
		JoinDate:     time.Now(),
	}

	if err := s.familyRepo.AddMember(member); err != nil {
		return nil, nil, fmt.Errorf("failed to add member: %w", err)
	}

	return family, member, nil
}

// GetFamily returns one family by ID.
func (s *FamilyService) GetFamily(familyID uint64) (*models.Family, error) {
	family, err := s.familyRepo.FindByID(familyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFamilyNotFound
		}
		return nil, fmt.Errorf("failed to find family: %w", err)
	}
	return family, nil
}

// ListMyFamilies returns the deduplicated union of families the user
// created and families the user joined.
func (s *FamilyService) ListMyFamilies(userID uint64) ([]models.Family, error) {
	families, err := s.familyRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list families: %w", err)
	}
	return families, nil
}

// ListAllFamilies returns families across all tenants (cross-family read).
func (s *FamilyService) ListAllFamilies(params utils.PaginationParams) ([]models.Family, int64, error) {
	families, total, err := s.familyRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list families: %w", err)
	}
	return families, total, nil
}
