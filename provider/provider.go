package provider

import (
	"context"
	"errors"

	"parley/transcript"
)

// ErrEmptyReply is returned when a provider call succeeds at the transport
// level but yields no candidate, or a candidate with empty text. Callers
// must treat it as a failed turn, not as an empty assistant message.
var ErrEmptyReply = errors.New("provider returned no usable reply")

// Provider is the interface for completion backends.
// This abstraction lets parley talk to:
// - the Anthropic Messages API (needs ANTHROPIC_API_KEY)
// - any OpenAI-compatible chat completions endpoint
// - a scripted mock in tests
type Provider interface {
	// Complete sends the whole transcript and returns the model's reply.
	// One blocking round-trip; cancellation comes from ctx.
	Complete(ctx context.Context, req Request) (Reply, error)

	// ListModels returns models available from the provider.
	ListModels(ctx context.Context) ([]ModelInfo, error)

	// Name returns the provider name for logging.
	Name() string
}

// Request carries everything a backend needs for one completion call.
// Messages is the full transcript, seed system message included; backends
// map roles to whatever shape their API wants.
type Request struct {
	Model     string
	MaxTokens int
	Messages  []transcript.Message
}

// Candidate is one generated reply option.
type Candidate struct {
	Role    transcript.Role
	Content string
}

// Reply is a provider response. Every backend observed so far returns a
// single candidate, but the wire contracts allow more.
type Reply struct {
	Candidates []Candidate
}

// Text returns the first candidate's text, or ErrEmptyReply when there is
// no candidate or the candidate carries no text.
func (r Reply) Text() (string, error) {
	if len(r.Candidates) == 0 {
		return "", ErrEmptyReply
	}
	if r.Candidates[0].Content == "" {
		return "", ErrEmptyReply
	}
	return r.Candidates[0].Content, nil
}

// ModelInfo describes an available model.
type ModelInfo struct {
	ID   string
	Name string
}
