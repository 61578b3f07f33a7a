// Package assist wraps a generative-text provider behind the three note
// assist operations: summarize, fix grammar and auto-tag.
package assist

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/notekit/notekit/backend/go-services/internal/apperr"
	"github.com/notekit/notekit/backend/go-services/pkg/logger"
	"github.com/notekit/notekit/backend/go-services/pkg/metrics"
)

const (
	// FallbackSummary is returned when the model reply cannot be parsed.
	FallbackSummary = "Unable to generate summary."
	// MaxTags caps the auto-tag result.
	MaxTags = 5

	BlockedMessage = "Response was blocked by safety filters. Try rephrasing or shortening the content."
	EmptyMessage   = "Gemini returned no text (empty or blocked). Try different content."
)

const (
	opSummarize  = "summarize"
	opFixGrammar = "fix_grammar"
	opAutoTag    = "auto_tag"
)

var (
	ErrBlocked       = errors.New("response blocked by safety filters")
	ErrEmptyResponse = errors.New("provider returned no text")
	ErrNotConfigured = errors.New("GOOGLE_GEMINI_API_KEY environment variable is not set")
)

// Provider is an opaque text-in/text-out model endpoint. Implementations
// return ErrBlocked or ErrEmptyResponse when the model produced no usable text.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type SummarizeResult struct {
	Summary string `json:"summary"`
}

type Correction struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
	Reason    string `json:"reason"`
}

type GrammarResult struct {
	FixedContent string       `json:"fixedContent"`
	Corrections  []Correction `json:"corrections"`
}

type AutoTagResult struct {
	Tags []string `json:"tags"`
}

// Client runs the assist operations against a Provider. It holds no
// per-request state and is safe for concurrent use.
type Client struct {
	provider Provider
}

func NewClient(p Provider) *Client {
	return &Client{provider: p}
}

// Configured reports whether the provider can serve requests.
func (c *Client) Configured() bool {
	if cp, ok := c.provider.(interface{ Configured() bool }); ok {
		return cp.Configured()
	}
	return c.provider != nil
}

func (c *Client) Summarize(ctx context.Context, content string) (*SummarizeResult, error) {
	if strings.TrimSpace(content) == "" {
		metrics.AssistRequests.WithLabelValues(opSummarize, metrics.OutcomeInvalid).Inc()
		return nil, apperr.Validation("Invalid request data", apperr.FieldError{Field: "content", Message: "Content is required"})
	}
	text, err := c.generate(ctx, opSummarize, "Failed to summarize content", summarizePrompt(content))
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Summary any `json:"summary"`
	}
	if err := decodeReply(text, &parsed); err != nil {
		logger.Warnf("assist: unparsable summarize reply: %v", err)
		return fallback(opSummarize, &SummarizeResult{Summary: FallbackSummary}), nil
	}
	summary, _ := parsed.Summary.(string)
	if summary == "" {
		return fallback(opSummarize, &SummarizeResult{Summary: FallbackSummary}), nil
	}
	metrics.AssistRequests.WithLabelValues(opSummarize, metrics.OutcomeOK).Inc()
	return &SummarizeResult{Summary: summary}, nil
}

func (c *Client) FixGrammar(ctx context.Context, content string) (*GrammarResult, error) {
	if strings.TrimSpace(content) == "" {
		metrics.AssistRequests.WithLabelValues(opFixGrammar, metrics.OutcomeInvalid).Inc()
		return nil, apperr.Validation("Invalid request data", apperr.FieldError{Field: "content", Message: "Content is required"})
	}
	text, err := c.generate(ctx, opFixGrammar, "Failed to fix grammar", grammarPrompt(content))
	if err != nil {
		return nil, err
	}

	var parsed GrammarResult
	if err := decodeReply(text, &parsed); err != nil {
		logger.Warnf("assist: unparsable fix-grammar reply: %v", err)
		return fallback(opFixGrammar, &GrammarResult{FixedContent: content, Corrections: []Correction{}}), nil
	}
	if parsed.FixedContent == "" {
		parsed.FixedContent = content
	}
	if parsed.Corrections == nil {
		parsed.Corrections = []Correction{}
	}
	metrics.AssistRequests.WithLabelValues(opFixGrammar, metrics.OutcomeOK).Inc()
	return &parsed, nil
}

// AutoTag needs at least one of title or content to be non-blank.
func (c *Client) AutoTag(ctx context.Context, title, content string) (*AutoTagResult, error) {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(content) == "" {
		metrics.AssistRequests.WithLabelValues(opAutoTag, metrics.OutcomeInvalid).Inc()
		return nil, apperr.Validation("Invalid request data",
			apperr.FieldError{Field: "content", Message: "Title or content is required"})
	}
	text, err := c.generate(ctx, opAutoTag, "Failed to generate tags", autoTagPrompt(title, content))
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Tags []any `json:"tags"`
	}
	if err := decodeReply(text, &parsed); err != nil || parsed.Tags == nil {
		if err != nil {
			logger.Warnf("assist: unparsable auto-tag reply: %v", err)
		}
		return fallback(opAutoTag, &AutoTagResult{Tags: []string{}}), nil
	}
	tags := make([]string, 0, MaxTags)
	for _, v := range parsed.Tags {
		if s, ok := v.(string); ok {
			tags = append(tags, s)
		}
		if len(tags) == MaxTags {
			break
		}
	}
	metrics.AssistRequests.WithLabelValues(opAutoTag, metrics.OutcomeOK).Inc()
	return &AutoTagResult{Tags: tags}, nil
}

// generate makes the single provider call for op. Blocked and empty replies
// are hard failures and never reach JSON extraction.
func (c *Client) generate(ctx context.Context, op, failMessage, prompt string) (string, error) {
	if c.provider == nil {
		metrics.AssistRequests.WithLabelValues(op, metrics.OutcomeError).Inc()
		return "", apperr.Provider(failMessage, false, ErrNotConfigured)
	}

	start := time.Now()
	text, err := c.provider.Generate(ctx, prompt)
	metrics.AssistLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyResponse
	}

	switch {
	case err == nil:
		return text, nil
	case errors.Is(err, ErrBlocked):
		metrics.AssistRequests.WithLabelValues(op, metrics.OutcomeBlocked).Inc()
		return "", apperr.Provider(BlockedMessage, true, err)
	case errors.Is(err, ErrEmptyResponse):
		metrics.AssistRequests.WithLabelValues(op, metrics.OutcomeError).Inc()
		return "", apperr.Provider(EmptyMessage, false, err)
	default:
		metrics.AssistRequests.WithLabelValues(op, metrics.OutcomeError).Inc()
		return "", apperr.Provider(failMessage, false, err)
	}
}

func fallback[T any](op string, v *T) *T {
	metrics.AssistRequests.WithLabelValues(op, metrics.OutcomeFallback).Inc()
	return v
}

// decodeReply extracts the JSON object from a free-text reply into v.
func decodeReply(text string, v any) error {
	raw, _ := ExtractJSON(text)
	return json.Unmarshal([]byte(raw), v)
}
