package dto

import (
	"time"

	"github.com/HongNam0207/taskhome-api/internal/models"
)

// CommentDTO represents a task comment in API responses
type CommentDTO struct {
	ID              uint64    `json:"id"`
	TaskID          uint64    `json:"task_id"`
	Content         string    `json:"content"`
	ParentCommentID *uint64   `json:"parent_comment_id"`
	CreatedAt       time.Time `json:"created_at"`
	Author          *UserDTO  `json:"author,omitempty"`
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	dto := CommentDTO{
		ID:              comment.ID,
		TaskID:          comment.TaskID,
		Content:         comment.Content,
		ParentCommentID: comment.ParentCommentID,
		CreatedAt:       comment.CreatedAt,
	}

	if comment.User.ID != 0 {
		author := ToUserDTO(comment.User)
		dto.Author = &author
	}

	return dto
}

// ToCommentDTOs converts a slice of comments
func ToCommentDTOs(comments []models.Comment) []CommentDTO {
	items := make([]CommentDTO, len(comments))
	for i, comment := range comments {
		items[i] = ToCommentDTO(comment)
	}
	return items
}
