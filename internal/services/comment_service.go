package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/HongNam0207/taskhome-api/internal/models"
	"github.com/HongNam0207/taskhome-api/internal/repository"
)

var (
	ErrCommentNotFound        = errors.New("comment not found")
	ErrCommentContentRequired = errors.New("comment content cannot be empty")
	ErrNotCommentAuthor       = errors.New("only the comment author can delete it")
	ErrInvalidParentComment   = errors.New("parent comment does not belong to this task")
)

// CommentService handles task comment threads.
type CommentService struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
	familyRepo  repository.FamilyRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, taskRepo repository.TaskRepository, familyRepo repository.FamilyRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
		familyRepo:  familyRepo,
	}
}

// CreateCommentInput represents parameters to comment on a task.
type CreateCommentInput struct {
	TaskID          uint64
	AuthorID        uint64
	Content         string
	ParentCommentID *uint64
}

// CreateComment adds a comment to a task. The author must be a member of
// the task's family; replies must target a comment on the same task.
func (s *CommentService) CreateComment(input CreateCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrCommentContentRequired
	}

	task, err := s.memberTask(input.TaskID, input.AuthorID)
	if err != nil {
		return nil, err
	}

	if input.ParentCommentID != nil {
		parent, err := s.commentRepo.FindByID(*input.ParentCommentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidParentComment
			}
			return nil, fmt.Errorf("failed to find parent comment: %w", err)
		}
		if parent.TaskID != task.ID {
			return nil, ErrInvalidParentComment
		}
	}

	comment := &models.Comment{
		TaskID:          task.ID,
		UserID:          input.AuthorID,
		Content:         input.Content,
		ParentCommentID: input.ParentCommentID,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// ListComments returns a task's comments in thread order. The caller must
// be a member of the task's family.
func (s *CommentService) ListComments(taskID, callerID uint64) ([]models.Comment, error) {
	if _, err := s.memberTask(taskID, callerID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// DeleteComment removes a comment; only its author may do so.
func (s *CommentService) DeleteComment(commentID, callerID uint64) error {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to find comment: %w", err)
	}

	if comment.UserID != callerID {
		return ErrNotCommentAuthor
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}

func (s *CommentService) memberTask(taskID, callerID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if _, err := s.familyRepo.FindMember(task.FamilyID, callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFamilyMember
		}
		return nil, fmt.Errorf("failed to verify family membership: %w", err)
	}

	return task, nil
}
