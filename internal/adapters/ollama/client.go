// Package ollama implements the fallback tier's client: a bounded-latency
// call to a local generative interpretation service speaking the Ollama
// HTTP API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"go.jot.dev/jot/internal/core/domain"
	"go.jot.dev/jot/internal/core/ports"
	"go.trai.ch/zerr"
)

// Client implements ports.FallbackClient against an Ollama-compatible
// /api/generate endpoint. The HTTP client itself carries no timeout;
// every call is bounded by a per-request context deadline instead.
type Client struct {
	baseURL     string
	model       string
	timeout     time.Duration
	coldTimeout time.Duration
	httpClient  *http.Client
	now         func() time.Time
}

var _ ports.FallbackClient = (*Client)(nil)

// New creates a fallback client from the fallback configuration.
func New(cfg domain.FallbackConfig) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		timeout:     cfg.Timeout,
		coldTimeout: cfg.ColdTimeout,
		httpClient:  &http.Client{},
		now:         time.Now,
	}
}

// WithClock overrides the time source used for prompt date context. Used in tests.
func (c *Client) WithClock(now func() time.Time) *Client {
	c.now = now
	return c
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// structured is the JSON answer the service is prompted to produce.
type structured struct {
	Title    string   `json:"title"`
	Datetime string   `json:"datetime"`
	Tags     []string `json:"tags"`
	Priority string   `json:"priority"`
}

// Interpret sends raw to the service bounded by the configured timeout
// and decodes its structured answer. A deadline hit maps to
// domain.ErrFallbackTimeout, everything else to domain.ErrFallbackUnavailable.
func (c *Client) Interpret(ctx context.Context, raw string) (domain.ParsedResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	completion, err := c.generate(ctx, c.buildPrompt(raw))
	if err != nil {
		return domain.ParsedResult{}, err
	}
	return c.decode(completion)
}

// Warm issues a throwaway generation bounded by the cold-start timeout so
// the service's model is loaded before the first real request.
func (c *Client) Warm(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.coldTimeout)
	defer cancel()

	_, err := c.generate(ctx, c.buildPrompt("warmup query"))
	return err
}

// Healthy reports whether the service answers its tag listing endpoint.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close() //nolint:errcheck // best effort
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Format: "json",
	})
	if err != nil {
		return "", zerr.Wrap(err, "failed to encode generate request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", zerr.Wrap(err, "failed to create generate request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", zerr.Wrap(domain.ErrFallbackTimeout, "generate call exceeded deadline")
		}
		return "", zerr.Wrap(errors.Join(domain.ErrFallbackUnavailable, err), "generate call failed")
	}
	defer resp.Body.Close() //nolint:errcheck // best effort

	if resp.StatusCode != http.StatusOK {
		return "", zerr.With(zerr.Wrap(domain.ErrFallbackUnavailable, "generate call rejected"),
			"status", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", zerr.Wrap(errors.Join(domain.ErrFallbackUnavailable, err), "failed to decode generate response")
	}
	return decoded.Response, nil
}

// decode parses the completion's structured JSON into a result tagged as
// a full-confidence fallback answer.
func (c *Client) decode(completion string) (domain.ParsedResult, error) {
	payload := strings.TrimSpace(completion)
	// Some models wrap the JSON in a code fence despite instructions.
	payload = strings.TrimPrefix(payload, "```json")
	payload = strings.TrimPrefix(payload, "```")
	payload = strings.TrimSuffix(payload, "```")

	var s structured
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return domain.ParsedResult{}, zerr.Wrap(errors.Join(domain.ErrFallbackUnavailable, err),
			"completion is not valid structured JSON")
	}

	result := domain.ParsedResult{
		Title:      strings.TrimSpace(s.Title),
		Priority:   domain.PriorityMedium,
		Tier:       domain.TierFallback,
		Confidence: domain.ConfidenceFull,
	}
	if s.Datetime != "" {
		if due, err := time.Parse(time.RFC3339, s.Datetime); err == nil {
			result.Due = &due
		}
	}
	if s.Priority != "" {
		if p, err := domain.ParsePriority(strings.ToLower(s.Priority)); err == nil {
			result.Priority = p
			result.PriorityExplicit = true
		}
	}
	for _, tag := range s.Tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			result.Tags = append(result.Tags, tag)
		}
	}
	slices.Sort(result.Tags)
	result.Tags = slices.Compact(result.Tags)

	return result, nil
}

// buildPrompt embeds date context so the service can resolve relative
// phrases, and pins the expected output schema.
func (c *Client) buildPrompt(raw string) string {
	now := c.now()
	today := now.Format("2006-01-02")
	tomorrow := now.AddDate(0, 0, 1).Format("2006-01-02")

	return fmt.Sprintf(`Today is %s. Parse the following natural language input into structured JSON.

Extract: title, datetime (ISO 8601 with timezone, or null), tags (array of strings), priority (low/medium/high/urgent).

Examples:
Input: "Submit report tomorrow at 3pm #work"
Output: {"title": "Submit report", "datetime": "%sT15:00:00Z", "tags": ["work"], "priority": "medium"}

Input: "Call John at 9:30 AM"
Output: {"title": "Call John", "datetime": "%sT09:30:00Z", "tags": [], "priority": "medium"}

Now parse: %q
Output (ONLY valid JSON, no explanations):`, today, tomorrow, today, raw)
}
