package sdk

import (
	"context"

	"parley/chat"
	"parley/provider"
	"parley/transcript"
)

// Harness wires a MockProvider, a transcript and a session together for
// multi-turn tests.
type Harness struct {
	provider *MockProvider
	session  *chat.Session

	replies []string
	errors  []error
}

// NewHarness builds a harness whose session is seeded with systemPrompt.
func NewHarness(systemPrompt string) *Harness {
	mock := NewMockProvider()
	return &Harness{
		provider: mock,
		session: chat.NewSession(chat.SessionConfig{
			Provider:   mock,
			Transcript: transcript.New(systemPrompt),
			Model:      "mock-model",
			MaxTokens:  1024,
		}),
	}
}

// QueueTextReply queues an assistant reply on the underlying mock.
func (h *Harness) QueueTextReply(content string) *Harness {
	h.provider.QueueTextReply(content)
	return h
}

// QueueError queues a provider failure on the underlying mock.
func (h *Harness) QueueError(err error) *Harness {
	h.provider.QueueError(err)
	return h
}

// RunTurn processes one user turn, recording the outcome.
func (h *Harness) RunTurn(ctx context.Context, userText string) (string, error) {
	reply, err := h.session.ProcessTurn(ctx, userText)
	if err != nil {
		h.errors = append(h.errors, err)
		return "", err
	}
	h.replies = append(h.replies, reply)
	return reply, nil
}

// RunTurns processes several turns, stopping at the first failure.
func (h *Harness) RunTurns(ctx context.Context, inputs []string) error {
	for _, input := range inputs {
		if _, err := h.RunTurn(ctx, input); err != nil {
			return err
		}
	}
	return nil
}

// Session returns the session under test.
func (h *Harness) Session() *chat.Session {
	return h.session
}

// Provider returns the underlying mock.
func (h *Harness) Provider() *MockProvider {
	return h.provider
}

// Messages returns the session transcript's current contents.
func (h *Harness) Messages() []transcript.Message {
	return h.session.Transcript().Messages()
}

// Replies returns every successful turn's assistant text, in order.
func (h *Harness) Replies() []string {
	return h.replies
}

// Errors returns every failed turn's error, in order.
func (h *Harness) Errors() []error {
	return h.errors
}

// LastRequest returns the most recent request the provider saw.
func (h *Harness) LastRequest() (provider.Request, bool) {
	calls := h.provider.Calls()
	if len(calls) == 0 {
		return provider.Request{}, false
	}
	return calls[len(calls)-1], true
}
