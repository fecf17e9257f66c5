package review

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/scrylabs/scry/pkg/config"
	"github.com/scrylabs/scry/pkg/models"
)

const systemPrompt = "You are a Python expert. Output valid JSON only. " +
	"Do not include any preambles or explanations outside the JSON object."

// chatClient is the slice of the OpenAI client the engine uses, split out
// so tests can stub the transport.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenRouterEngine reviews smells through an OpenAI-compatible chat API.
// Responses that fail to parse fall back to the rule templates, so a flaky
// model never blocks a review run.
type OpenRouterEngine struct {
	client      chatClient
	model       string
	temperature float32
	fallback    *RuleEngine
}

// NewOpenRouterEngine builds an engine from config. Returns nil when no API
// key is available; callers should use the rule engine instead.
func NewOpenRouterEngine(cfg *config.Config) *OpenRouterEngine {
	apiKey := cfg.ReviewAPIKey()
	if apiKey == "" {
		return nil
	}

	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.BaseURL = cfg.Review.BaseURL
	return &OpenRouterEngine{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Review.Model,
		temperature: float32(cfg.Review.Temperature),
		fallback:    NewRuleEngine(),
	}
}

// ReviewCtx asks the model for a review of one smell.
func (e *OpenRouterEngine) ReviewCtx(ctx context.Context, smell models.Smell) (Review, error) {
	prompt := fmt.Sprintf(
		"Return ONLY JSON: {\"title\": \"...\", \"explanation\": \"...\", \"suggestion\": \"...\"}\n"+
			"Review the following code smell: Type: %s, Node: %s, Description: %s",
		smell.Type, smell.NodeName, smell.Description,
	)

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: e.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return e.fallback.Review(smell)
	}
	if len(resp.Choices) == 0 {
		return e.fallback.Review(smell)
	}

	parsed, ok := parseReviewJSON(resp.Choices[0].Message.Content)
	if !ok {
		return e.fallback.Review(smell)
	}

	return Review{
		Smell:       smell,
		Fingerprint: smell.Fingerprint(),
		Title:       parsed.Title,
		Explanation: parsed.Explanation,
		Suggestion:  parsed.Suggestion,
		Source:      SourceAI,
	}, nil
}

func (e *OpenRouterEngine) Review(smell models.Smell) (Review, error) {
	return e.ReviewCtx(context.Background(), smell)
}

type reviewPayload struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	Suggestion  string `json:"suggestion"`
}

// parseReviewJSON decodes a model response, tolerating markdown code
// fences around the JSON object.
func parseReviewJSON(content string) (reviewPayload, bool) {
	clean := strings.ReplaceAll(content, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	var payload reviewPayload
	if err := json.Unmarshal([]byte(clean), &payload); err != nil {
		return reviewPayload{}, false
	}
	if payload.Title == "" {
		return reviewPayload{}, false
	}
	return payload, true
}
