// Package chat implements the conversation session and the interactive
// loop around it.
package chat

import (
	"context"
	"fmt"

	"parley/provider"
	"parley/transcript"
)

// TurnError wraps a provider failure during a turn. The transcript was
// rolled back to its pre-turn state before this was returned.
type TurnError struct {
	Err error
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("turn failed: %v", e.Err)
}

func (e *TurnError) Unwrap() error {
	return e.Err
}

// Session owns one transcript and drives one provider. It is the unit of
// conversation state: create several for independent conversations.
type Session struct {
	provider   provider.Provider
	transcript *transcript.Transcript
	model      string
	maxTokens  int
}

// SessionConfig holds session construction parameters.
type SessionConfig struct {
	Provider   provider.Provider
	Transcript *transcript.Transcript
	Model      string
	MaxTokens  int
}

// NewSession creates a Session. A nil Transcript gets an empty one.
func NewSession(cfg SessionConfig) *Session {
	tr := cfg.Transcript
	if tr == nil {
		tr = transcript.New("")
	}
	return &Session{
		provider:   cfg.Provider,
		transcript: tr,
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
	}
}

// ProcessTurn runs one conversation turn: stage the user message, call the
// provider with the whole transcript, and commit the assistant reply.
//
// The turn is two-phase. On any failure - transport error, or a reply with
// no usable text - the staged user message is rolled back, so a failed
// turn never leaves an unanswered user message poisoning later context.
// The returned error is a *TurnError wrapping the cause; empty replies
// unwrap to provider.ErrEmptyReply.
//
// userText may be empty; it is staged and sent like any other input.
func (s *Session) ProcessTurn(ctx context.Context, userText string) (string, error) {
	mark := s.transcript.Len()
	s.transcript.Append(transcript.RoleUser, userText)

	reply, err := s.provider.Complete(ctx, provider.Request{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		Messages:  s.transcript.Messages(),
	})
	if err != nil {
		s.transcript.TruncateTo(mark)
		return "", &TurnError{Err: err}
	}

	text, err := reply.Text()
	if err != nil {
		s.transcript.TruncateTo(mark)
		return "", &TurnError{Err: err}
	}

	s.transcript.Append(transcript.RoleAssistant, text)
	return text, nil
}

// Transcript exposes the session's conversation state.
func (s *Session) Transcript() *transcript.Transcript {
	return s.transcript
}

// Provider returns the session's completion backend.
func (s *Session) Provider() provider.Provider {
	return s.provider
}

// Model returns the active model identifier.
func (s *Session) Model() string {
	return s.model
}

// SetModel switches the model for subsequent turns.
func (s *Session) SetModel(model string) {
	s.model = model
}

// Reset drops the conversation, keeping the seed system message.
func (s *Session) Reset() {
	s.transcript.Reset()
}
