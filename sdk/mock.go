// Package sdk provides test doubles and a scripted harness for driving
// chat sessions without a network.
package sdk

import (
	"context"
	"sync"

	"parley/provider"
	"parley/transcript"
)

// MockProvider is a scripted provider.Provider. Queue replies or errors in
// the order calls are expected; every Complete call is recorded for
// inspection.
type MockProvider struct {
	mu     sync.Mutex
	queue  []queued
	next   int
	models []provider.ModelInfo
	calls  []provider.Request
}

type queued struct {
	reply provider.Reply
	err   error
}

// NewMockProvider creates an empty mock.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		models: []provider.ModelInfo{
			{ID: "mock-model", Name: "Mock Model"},
		},
	}
}

// QueueReply queues a raw reply.
func (m *MockProvider) QueueReply(reply provider.Reply) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, queued{reply: reply})
	return m
}

// QueueTextReply queues a single-candidate assistant reply.
func (m *MockProvider) QueueTextReply(content string) *MockProvider {
	return m.QueueReply(provider.Reply{Candidates: []provider.Candidate{
		{Role: transcript.RoleAssistant, Content: content},
	}})
}

// QueueError queues a failing call.
func (m *MockProvider) QueueError(err error) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, queued{err: err})
	return m
}

// QueueEmptyReply queues a transport success with zero candidates.
func (m *MockProvider) QueueEmptyReply() *MockProvider {
	return m.QueueReply(provider.Reply{})
}

func (m *MockProvider) Complete(ctx context.Context, req provider.Request) (provider.Reply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)

	if m.next >= len(m.queue) {
		return provider.Reply{Candidates: []provider.Candidate{
			{Role: transcript.RoleAssistant, Content: "[mock: no more queued replies]"},
		}}, nil
	}

	q := m.queue[m.next]
	m.next++
	if q.err != nil {
		return provider.Reply{}, q.err
	}
	return q.reply, nil
}

func (m *MockProvider) ListModels(ctx context.Context) ([]provider.ModelInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.models, nil
}

func (m *MockProvider) Name() string {
	return "mock"
}

// SetModels replaces what ListModels reports.
func (m *MockProvider) SetModels(models []provider.ModelInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.models = models
}

// Calls returns every recorded Complete request.
func (m *MockProvider) Calls() []provider.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]provider.Request, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many Complete calls were made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Reset clears the queue and the recorded calls.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = nil
	m.next = 0
	m.calls = nil
}
