package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// AIService turns free-form text ("spring cleaning this weekend, someone
// has to mow the lawn and take out the recycling") into chore candidates.
// It is optional; the server runs without it when no API key is set.
type AIService struct {
	client *openai.Client
}

// SuggestedChore is one chore candidate extracted from text. Suggestions
// are returned to the caller and never persisted automatically.
type SuggestedChore struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

// NewAIService creates a new AIService.
func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// SuggestChores extracts chore candidates from text using the chat API.
func (s *AIService) SuggestChores(ctx context.Context, text string) ([]SuggestedChore, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	now := time.Now().Format("2006-01-02 15:04:05")
	prompt := fmt.Sprintf(`You extract household chores from text.

Current time: %s

Text:
%s

Return a JSON object of the form {"tasks": [{"title": "...", "description": "...", "priority": "Low|Medium|High", "due_date": "RFC3339 timestamp or null"}]}.
Titles must be short imperative phrases. Omit due_date when the text gives no deadline. Return {"tasks": []} if the text contains no chores.`, now, text)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no completion choices returned")
	}

	var parsed struct {
		Tasks []SuggestedChore `json:"tasks"`
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse completion: %w", err)
	}

	return parsed.Tasks, nil
}
