package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"quiz_sphere_backend/internal/config"
	"sync"
	"time"
)

// AIService calls an OpenAI-compatible chat completion endpoint to explain
// quiz answers. One request, one response; no tool dispatch.
type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetConfig swaps credentials in place on config reload.
func (s *AIService) SetConfig(cfg config.AIConfig) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const explainSystemPrompt = "You are a quiz tutor. Explain briefly why the given answer " +
	"to the question is correct or incorrect. Stay on the question topic and keep the " +
	"explanation under 120 words."

// ExplainAnswer asks the model why an answer is (in)correct.
func (s *AIService) ExplainAnswer(ctx context.Context, question, answer string) (string, error) {
	prompt := fmt.Sprintf("Question: %s\nAnswer given: %s", question, answer)
	return s.chat(ctx, []AIChatMessage{
		{Role: "system", Content: explainSystemPrompt},
		{Role: "user", Content: prompt},
	})
}

func (s *AIService) chat(ctx context.Context, messages []AIChatMessage) (string, error) {
	s.mu.RLock()
	cfg := s.config
	s.mu.RUnlock()

	reqBody := map[string]interface{}{
		"model":    cfg.Model,
		"messages": messages,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("AI API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("AI API returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
