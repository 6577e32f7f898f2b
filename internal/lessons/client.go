package lessons

import (
	"context"
	"errors"
	"fmt"

	"github.com/atulsharma648-byte/ASMan/internal/llm"
)

// OutcomeKind is how a provider call resolved.
type OutcomeKind int

const (
	// OutcomeRaw carries the provider's raw text.
	OutcomeRaw OutcomeKind = iota
	// OutcomeUnavailable means no provider is configured.
	OutcomeUnavailable
	// OutcomeFailure means the call was attempted and failed.
	OutcomeFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeRaw:
		return "raw"
	case OutcomeUnavailable:
		return "unavailable"
	case OutcomeFailure:
		return "failure"
	}
	return fmt.Sprintf("OutcomeKind(%d)", int(k))
}

// Outcome is the single resolution of one provider call.
type Outcome struct {
	Kind OutcomeKind
	Text string
	Err  error
}

// Client invokes the generative provider. A nil provider is the
// fallback-only mode: every call reports OutcomeUnavailable.
type Client struct {
	provider llm.Provider
	cfg      Config
}

// NewClient wraps p. When p has no timeout decorator yet, one is added
// from cfg.Timeout so a call can never hang.
func NewClient(p llm.Provider, cfg Config) *Client {
	if p != nil {
		if _, ok := p.(*llm.TimeoutProvider); !ok {
			p = llm.WithTimeout(p, cfg.Timeout)
		}
	}
	return &Client{provider: p, cfg: cfg}
}

// Configured reports whether a provider is attached.
func (c *Client) Configured() bool {
	return c != nil && c.provider != nil
}

// ModelID returns the provider model, or "" in fallback-only mode.
func (c *Client) ModelID() string {
	if !c.Configured() {
		return ""
	}
	return c.provider.ModelID()
}

// Generate sends a lesson instruction with the variant's system prompt.
func (c *Client) Generate(ctx context.Context, instruction string, v Variant) Outcome {
	req := llm.UserPrompt(SystemInstruction(v), instruction)
	req.JSON = true
	req.MaxTokens = c.cfg.maxTokens(v)
	req.Temperature = c.cfg.Temperature
	return c.call(llm.WithPurpose(ctx, llm.PurposeLesson), req)
}

// Describe sends a free-text prompt, used for upload analysis.
func (c *Client) Describe(ctx context.Context, system, prompt string) Outcome {
	req := llm.UserPrompt(system, prompt)
	req.MaxTokens = c.cfg.UploadMaxTokens
	req.Temperature = c.cfg.Temperature
	return c.call(llm.WithPurpose(ctx, llm.PurposeUpload), req)
}

func (c *Client) call(ctx context.Context, req llm.Request) (out Outcome) {
	if !c.Configured() {
		return Outcome{Kind: OutcomeUnavailable}
	}

	// A panicking provider still resolves exactly once.
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Kind: OutcomeFailure, Err: fmt.Errorf("provider panic: %v", r)}
		}
	}()

	resp, err := c.provider.Generate(ctx, req)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		return Outcome{Kind: OutcomeUnavailable, Err: err}
	case err != nil:
		return Outcome{Kind: OutcomeFailure, Err: err}
	case resp == nil:
		return Outcome{Kind: OutcomeFailure, Err: errors.New("provider returned no response")}
	}
	return Outcome{Kind: OutcomeRaw, Text: resp.Text}
}
