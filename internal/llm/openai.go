package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/infomate/veracity/internal/model"
	openai "github.com/sashabaranov/go-openai"
)

// bodyLimit bounds the article prefix included in prompts.
const bodyLimit = 3000

// OpenAIJudge implements Judge on the OpenAI chat completions API.
type OpenAIJudge struct {
	client *openai.Client
	cfg    model.LLMConfig
}

var _ Judge = (*OpenAIJudge)(nil)

// NewOpenAIJudge creates a judge. The API key is required.
func NewOpenAIJudge(cfg model.LLMConfig) (*OpenAIJudge, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("LLM API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIJudge{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

const judgeSystemPrompt = `You are a news reliability analyst. Respond with a JSON object containing:
- "score": a number 0-100 estimating how reliable the article is (100 = fully reliable)
- "verdict": "True" if the article appears genuine, "Fake" if fabricated or misleading
- "reason": one or two sentences explaining the judgment
- "keywords": an array of 2-3 short search keywords capturing the article's core event, in the article's language`

// JudgeArticle rates one article and extracts search keywords.
func (j *OpenAIJudge) JudgeArticle(ctx context.Context, title, body string) (*Judgment, error) {
	user := fmt.Sprintf("Title: %s\n\nBody:\n%s", title, truncate(body, bodyLimit))

	content, err := j.complete(ctx, judgeSystemPrompt, user)
	if err != nil {
		return nil, err
	}

	var judgment Judgment
	if err := json.Unmarshal([]byte(content), &judgment); err != nil {
		return nil, fmt.Errorf("parse judgment: %w", err)
	}
	judgment.Score = clamp(judgment.Score)

	return &judgment, nil
}

const consistencySystemPrompt = `You compare a news article against independently retrieved related headlines. Respond with a JSON object containing:
- "level": "high" if the related coverage clearly corroborates the article, "medium" if it partially overlaps, "low" if it contradicts or is unrelated
- "reason": one sentence explaining the assessment`

// CheckConsistency compares the article against related headlines.
func (j *OpenAIJudge) CheckConsistency(ctx context.Context, title, body string, relatedTitles []string) (*Consistency, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Article title: %s\n\nArticle body:\n%s\n\nRelated headlines:\n", title, truncate(body, bodyLimit))
	for _, related := range relatedTitles {
		fmt.Fprintf(&sb, "- %s\n", related)
	}

	content, err := j.complete(ctx, consistencySystemPrompt, sb.String())
	if err != nil {
		return nil, err
	}

	var consistency Consistency
	if err := json.Unmarshal([]byte(content), &consistency); err != nil {
		return nil, fmt.Errorf("parse consistency: %w", err)
	}
	switch consistency.Level {
	case ConsistencyHigh, ConsistencyMedium, ConsistencyLow:
	default:
		return nil, fmt.Errorf("unexpected consistency level %q", consistency.Level)
	}

	return &consistency, nil
}

func (j *OpenAIJudge) complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, j.cfg.Timeout)
	defer cancel()

	resp, err := j.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: j.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}

	return stripFences(resp.Choices[0].Message.Content), nil
}

// stripFences removes markdown code fences some models wrap JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
