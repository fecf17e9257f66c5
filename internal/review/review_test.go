package review

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrylabs/scry/pkg/config"
	"github.com/scrylabs/scry/pkg/models"
)

func sampleSmell() models.Smell {
	return models.Smell{
		Type:        models.SmellLongMethod,
		File:        "app.py",
		NodeName:    "handler",
		Line:        12,
		Severity:    models.SeverityHigh,
		Description: "Method 'handler' has 40 statements (max. 20)",
	}
}

func TestRuleEngineKnownSmell(t *testing.T) {
	rev, err := NewRuleEngine().Review(sampleSmell())
	require.NoError(t, err)
	assert.Equal(t, "Function 'handler' too long", rev.Title)
	assert.Contains(t, rev.Explanation, "40 statements")
	assert.NotEmpty(t, rev.Suggestion)
	assert.Equal(t, SourceRules, rev.Source)
	assert.Equal(t, sampleSmell().Fingerprint(), rev.Fingerprint)
}

func TestRuleEngineCoversAllSmellTypes(t *testing.T) {
	types := []models.SmellType{
		models.SmellLongMethod,
		models.SmellGodClass,
		models.SmellDeepNesting,
		models.SmellLongParameterList,
		models.SmellMissingTypeHints,
		models.SmellUnusedImports,
		models.SmellManyLocalVariables,
		models.SmellFeatureEnvy,
		models.SmellExceptionSwallowing,
		models.SmellUnreachableCode,
	}
	for _, st := range types {
		rev, err := NewRuleEngine().Review(models.Smell{Type: st, NodeName: "x", Description: "d"})
		require.NoError(t, err)
		assert.NotEmpty(t, rev.Title, string(st))
		assert.NotEmpty(t, rev.Explanation, string(st))
		assert.NotEmpty(t, rev.Suggestion, string(st))
	}
}

func TestRuleEngineUnknownSmell(t *testing.T) {
	rev, err := NewRuleEngine().Review(models.Smell{Type: "mystery", Description: "d"})
	require.NoError(t, err)
	assert.Contains(t, rev.Title, "mystery")
}

func TestParseReviewJSON(t *testing.T) {
	payload, ok := parseReviewJSON(`{"title": "T", "explanation": "E", "suggestion": "S"}`)
	require.True(t, ok)
	assert.Equal(t, "T", payload.Title)

	payload, ok = parseReviewJSON("```json\n{\"title\": \"T\", \"explanation\": \"E\", \"suggestion\": \"S\"}\n```")
	require.True(t, ok)
	assert.Equal(t, "E", payload.Explanation)

	_, ok = parseReviewJSON("not json at all")
	assert.False(t, ok)

	_, ok = parseReviewJSON(`{"explanation": "missing title"}`)
	assert.False(t, ok)
}

type stubClient struct {
	content string
	err     error
}

func (s *stubClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: s.content}},
		},
	}, nil
}

func TestOpenRouterEngineParsesResponse(t *testing.T) {
	e := &OpenRouterEngine{
		client:   &stubClient{content: `{"title": "T", "explanation": "E", "suggestion": "S"}`},
		model:    "test-model",
		fallback: NewRuleEngine(),
	}
	rev, err := e.ReviewCtx(context.Background(), sampleSmell())
	require.NoError(t, err)
	assert.Equal(t, SourceAI, rev.Source)
	assert.Equal(t, "T", rev.Title)
	assert.Equal(t, sampleSmell().Fingerprint(), rev.Fingerprint)
}

func TestOpenRouterEngineFallsBackOnError(t *testing.T) {
	e := &OpenRouterEngine{
		client:   &stubClient{err: errors.New("rate limited")},
		model:    "test-model",
		fallback: NewRuleEngine(),
	}
	rev, err := e.ReviewCtx(context.Background(), sampleSmell())
	require.NoError(t, err)
	assert.Equal(t, SourceRules, rev.Source)
}

func TestOpenRouterEngineFallsBackOnGarbage(t *testing.T) {
	e := &OpenRouterEngine{
		client:   &stubClient{content: "sorry, I cannot help with that"},
		model:    "test-model",
		fallback: NewRuleEngine(),
	}
	rev, err := e.ReviewCtx(context.Background(), sampleSmell())
	require.NoError(t, err)
	assert.Equal(t, SourceRules, rev.Source)
}

func TestNewOpenRouterEngineRequiresKey(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	cfg := config.DefaultConfig()
	assert.Nil(t, NewOpenRouterEngine(cfg))

	cfg.Review.APIKey = "sk-test"
	assert.NotNil(t, NewOpenRouterEngine(cfg))
}
