package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/HongNam0207/taskhome-api/internal/models"
	"github.com/HongNam0207/taskhome-api/internal/repository"
)

var (
	ErrNoFamilyMembership = errors.New("user does not belong to any family")
	ErrMemberNotFound     = errors.New("family member not found")
	ErrTargetUserNotFound = errors.New("target user not found")

	// ErrCrossFamilyEdit is returned when a caller tries to edit or remove
	// a membership in a family they do not belong to.
	ErrCrossFamilyEdit = errors.New("membership belongs to a different family")
)

// MemberService is the membership ledger: it answers who belongs to which
// family and gates all membership edits to the caller's own family.
type MemberService struct {
	familyRepo repository.FamilyRepository
	userRepo   repository.UserRepository
}

// NewMemberService creates a new MemberService.
func NewMemberService(familyRepo repository.FamilyRepository, userRepo repository.UserRepository) *MemberService {
	return &MemberService{
		familyRepo: familyRepo,
		userRepo:   userRepo,
	}
}

// IsMember reports whether the user holds a membership in the family.
func (s *MemberService) IsMember(userID, familyID uint64) (bool, error) {
	_, err := s.familyRepo.FindMember(familyID, userID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check membership: %w", err)
}

// ListMyFamilyMembers lists members of the caller's first family. A caller
// with no family gets an empty list, not an error.
func (s *MemberService) ListMyFamilyMembers(callerID uint64) ([]models.FamilyMember, error) {
	own, err := s.familyRepo.FirstMembershipForUser(callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.FamilyMember{}, nil
		}
		return nil, fmt.Errorf("failed to resolve caller's family: %w", err)
	}

	members, err := s.familyRepo.ListMembers(own.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// AddMemberInput represents parameters to add a user to the caller's family.
type AddMemberInput struct {
	CallerID     uint64
	TargetUserID uint64
	Relationship string
}

// AddMember adds the target user to the caller's own (first) family.
func (s *MemberService) AddMember(input AddMemberInput) (*models.FamilyMember, error) {
	own, err := s.familyRepo.FirstMembershipForUser(input.CallerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoFamilyMembership
		}
		return nil, fmt.Errorf("failed to resolve caller's family: %w", err)
	}

	if _, err := s.userRepo.FindByID(input.TargetUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTargetUserNotFound
		}
		return nil, fmt.Errorf("failed to find target user: %w", err)
	}

	if _, err := s.familyRepo.FindMember(own.FamilyID, input.TargetUserID); err == nil {
		return nil, ErrAlreadyFamilyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	relationship := strings.TrimSpace(input.Relationship)
	if relationship == "" {
		relationship = models.RelationshipMember
	}

	member := &models.FamilyMember{
		FamilyID:     own.FamilyID,
		UserID:       input.TargetUserID,
		Relationship: relationship,
		JoinDate:     time.Now(),
	}

	if err := s.familyRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return member, nil
}

// UpdateRelationship changes a membership's relationship label. The target
// membership must belong to the caller's own family; an empty label keeps
// the current one.
func (s *MemberService) UpdateRelationship(memberID, callerID uint64, relationship string) (*models.FamilyMember, error) {
	member, err := s.resolveSameFamilyMember(memberID, callerID)
	if err != nil {
		return nil, err
	}

	if label := strings.TrimSpace(relationship); label != "" {
		member.Relationship = label
	}

	if err := s.familyRepo.UpdateMember(member); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	return member, nil
}

// RemoveMember removes a membership from the caller's own family.
func (s *MemberService) RemoveMember(memberID, callerID uint64) error {
	member, err := s.resolveSameFamilyMember(memberID, callerID)
	if err != nil {
		return err
	}

	if err := s.familyRepo.RemoveMember(member.ID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}

// resolveSameFamilyMember loads the target membership and verifies it sits
// in the caller's own family. Cross-family edits are rejected.
func (s *MemberService) resolveSameFamilyMember(memberID, callerID uint64) (*models.FamilyMember, error) {
	own, err := s.familyRepo.FirstMembershipForUser(callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoFamilyMembership
		}
		return nil, fmt.Errorf("failed to resolve caller's family: %w", err)
	}

	member, err := s.familyRepo.FindMemberByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	if member.FamilyID != own.FamilyID {
		return nil, ErrCrossFamilyEdit
	}

	return member, nil
}
