// Package openai provides a chunk classifier adapter for OpenAI-compatible
// chat-completion APIs.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	embedopenai "github.com/custodia-labs/passage-cli/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/passage-cli/internal/core/domain"
	"github.com/custodia-labs/passage-cli/internal/core/ports/driven"
)

// Ensure Classifier implements the interface.
var _ driven.ChunkClassifier = (*Classifier)(nil)

// Default configuration values.
const (
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 120 * time.Second
)

// classifyPrompt instructs the model to triage one chunk against a query.
// The first line of the reply must be a bare verdict token; an optional
// second line explains an UNCERTAIN verdict.
const classifyPrompt = `You are triaging document passages for relevance to a research question.

Question: %s

Passage:
%s

Reply with exactly one word on the first line: RELEVANT, NON_RELEVANT, or UNCERTAIN.
If UNCERTAIN, add a short reason on the second line.`

// Config holds configuration for the classifier.
type Config struct {
	// BaseURL is the endpoint host (required).
	BaseURL string

	// Model is the chat model name (default: gpt-4o-mini).
	Model string

	// APIKey is the optional bearer token.
	APIKey string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration

	// RequestsPerSecond proactively throttles calls when > 0.
	RequestsPerSecond float64
}

// Classifier triages chunks via an OpenAI-compatible /v1/chat/completions
// endpoint, one call per chunk.
type Classifier struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	limiter *rate.Limiter
}

// chatCompletionRequest is the request format.
type chatCompletionRequest struct {
	Model       string              `json:"model"`
	Messages    []chatCompletionMsg `json:"messages"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Temperature float64             `json:"temperature,omitempty"`
}

// chatCompletionMsg is the chat message format.
type chatCompletionMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionResponse is the response format.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewClassifier creates a new classifier.
func NewClassifier(cfg Config) (*Classifier, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("openai: base URL is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Classifier{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: embedopenai.NormalizeBaseURL(cfg.BaseURL),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		limiter: limiter,
	}, nil
}

// Classify returns the verdict for (query, chunk text). Failures are wrapped
// in domain.ErrLLMProvider; cancellation of ctx returns the context error.
func (c *Classifier) Classify(ctx context.Context, query, chunkText string) (domain.Verdict, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", "", err
		}
	}

	reqBody := chatCompletionRequest{
		Model: c.model,
		Messages: []chatCompletionMsg{
			{Role: "user", Content: fmt.Sprintf(classifyPrompt, query, chunkText)},
		},
		MaxTokens: 60,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/chat/completions",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", "", ctxErr
		}
		return "", "", fmt.Errorf("%w: %w: send request: %w",
			domain.ErrLLMProvider, domain.ErrProviderUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", "", ctxErr
		}
		return "", "", fmt.Errorf("%w: read response: %w", domain.ErrLLMProvider, err)
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", "", fmt.Errorf("%w: decode response: %w", domain.ErrLLMProvider, err)
	}

	if chatResp.Error != nil {
		return "", "", fmt.Errorf("%w: %s", domain.ErrLLMProvider, chatResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("%w: status %d: %s", domain.ErrLLMProvider, resp.StatusCode, string(body))
	}
	if len(chatResp.Choices) == 0 {
		return "", "", fmt.Errorf("%w: no response choices returned", domain.ErrLLMProvider)
	}

	verdict, reason, err := parseVerdict(chatResp.Choices[0].Message.Content)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", domain.ErrLLMProvider, err)
	}
	return verdict, reason, nil
}

// parseVerdict maps the model reply to a verdict. The first line carries the
// token; any further text becomes the reason for uncertain verdicts.
func parseVerdict(content string) (domain.Verdict, string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", "", fmt.Errorf("empty completion")
	}

	line := trimmed
	rest := ""
	if i := strings.IndexByte(trimmed, '\n'); i >= 0 {
		line = trimmed[:i]
		rest = strings.TrimSpace(trimmed[i+1:])
	}

	token := strings.ToUpper(strings.Trim(line, " .:!\"'`*"))
	switch token {
	case "RELEVANT":
		return domain.VerdictRelevant, "", nil
	case "NON_RELEVANT", "NON-RELEVANT", "NOT_RELEVANT", "NOT RELEVANT", "IRRELEVANT":
		return domain.VerdictNonRelevant, "", nil
	case "UNCERTAIN":
		return domain.VerdictUncertain, rest, nil
	default:
		return "", "", fmt.Errorf("unrecognised verdict %q", line)
	}
}

// ModelName returns the name of the model being used.
func (c *Classifier) ModelName() string {
	return c.model
}

// Ping validates the endpoint is reachable by checking the /models endpoint.
func (c *Classifier) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("openai: failed to create ping request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("openai: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("openai: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("openai: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (c *Classifier) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
