package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/HongNam0207/taskhome-api/internal/constants"
)

var (
	ErrSuggestionsNotConfigured = errors.New("chore suggestion service is not configured")
	ErrNoSuggestions            = errors.New("no chores could be extracted from the text")
)

// SuggestionService validates chore candidates coming out of the AI
// service before they reach the caller.
type SuggestionService struct {
	aiService *AIService
}

// NewSuggestionService creates a new SuggestionService. aiService may be
// nil; suggestions are then reported as not configured.
func NewSuggestionService(aiService *AIService) *SuggestionService {
	return &SuggestionService{
		aiService: aiService,
	}
}

// SuggestChores extracts chore candidates from text, dropping blank
// titles and due dates already in the past.
func (s *SuggestionService) SuggestChores(ctx context.Context, text string) ([]SuggestedChore, error) {
	if s.aiService == nil {
		return nil, ErrSuggestionsNotConfigured
	}

	chores, err := s.aiService.SuggestChores(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest chores: %w", err)
	}

	if len(chores) > constants.MaxChoreSuggestions {
		chores = chores[:constants.MaxChoreSuggestions]
	}

	cutoff := time.Now().Add(-24 * time.Hour)
	valid := make([]SuggestedChore, 0, len(chores))
	for _, chore := range chores {
		if strings.TrimSpace(chore.Title) == "" {
			continue
		}
		if chore.DueDate != nil && chore.DueDate.Before(cutoff) {
			chore.DueDate = nil
		}
		valid = append(valid, chore)
	}

	if len(valid) == 0 {
		return nil, ErrNoSuggestions
	}

	return valid, nil
}
