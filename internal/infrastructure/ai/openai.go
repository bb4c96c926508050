package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/souq/backend/internal/domain/shared/valueobject"
	"github.com/souq/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const systemPrompt = "You are a copywriter for an online marketplace in Mauritania. " +
	"Write a short, appealing product description in French for the product the user names. " +
	"Two or three sentences, no markdown, no emoji, no price repetition beyond what the user gives you."

// OpenAIDescriptionGenerator writes product descriptions via the OpenAI
// chat completions API
type OpenAIDescriptionGenerator struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewOpenAIDescriptionGenerator creates a new generator from configuration
func NewOpenAIDescriptionGenerator(cfg config.OpenAIConfig, logger *zap.Logger) *OpenAIDescriptionGenerator {
	return &OpenAIDescriptionGenerator{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// GenerateDescription asks the model for marketing copy for a product listing
func (g *OpenAIDescriptionGenerator) GenerateDescription(ctx context.Context, title string, price valueobject.Money) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("openai: api key not set")
	}

	reqBody := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Product: %s. Price: %s.", title, price.String())},
		},
		MaxTokens: 200,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("openai: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("openai: failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("openai: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openai: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("openai: api error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("openai: api error (%d)", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("openai: failed to decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("openai: response contained no choices")
	}

	description := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if description == "" {
		return "", fmt.Errorf("openai: response contained an empty description")
	}

	g.logger.Debug("Generated product description",
		zap.String("title", title),
		zap.Int("length", len(description)))

	return description, nil
}
