package sdk

import (
	"context"
	"errors"
	"testing"

	"parley/provider"
)

func TestMockProvider_QueueAndComplete(t *testing.T) {
	ctx := context.Background()
	mock := NewMockProvider()

	mock.QueueTextReply("Hello!")
	mock.QueueTextReply("How can I help?")

	r1, err := mock.Complete(ctx, provider.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text, _ := r1.Text(); text != "Hello!" {
		t.Errorf("expected 'Hello!', got %q", text)
	}

	r2, err := mock.Complete(ctx, provider.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text, _ := r2.Text(); text != "How can I help?" {
		t.Errorf("expected 'How can I help?', got %q", text)
	}

	if mock.CallCount() != 2 {
		t.Errorf("expected 2 recorded calls, got %d", mock.CallCount())
	}
}

func TestMockProvider_QueueError(t *testing.T) {
	ctx := context.Background()
	mock := NewMockProvider()

	boom := errors.New("boom")
	mock.QueueError(boom)

	_, err := mock.Complete(ctx, provider.Request{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected queued error, got %v", err)
	}
}

func TestMockProvider_EmptyReply(t *testing.T) {
	ctx := context.Background()
	mock := NewMockProvider()
	mock.QueueEmptyReply()

	reply, err := mock.Complete(ctx, provider.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := reply.Text(); !errors.Is(err, provider.ErrEmptyReply) {
		t.Errorf("expected ErrEmptyReply, got %v", err)
	}
}

func TestHarness_MultiTurn(t *testing.T) {
	ctx := context.Background()
	h := NewHarness("You are a helpful assistant.").
		QueueTextReply("one").
		QueueTextReply("two")

	if err := h.RunTurns(ctx, []string{"first", "second"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// seed + 2 turns of (user, assistant)
	if got := len(h.Messages()); got != 5 {
		t.Errorf("expected 5 messages, got %d", got)
	}
	replies := h.Replies()
	if len(replies) != 2 || replies[0] != "one" || replies[1] != "two" {
		t.Errorf("unexpected replies: %v", replies)
	}

	req, ok := h.LastRequest()
	if !ok {
		t.Fatal("expected a recorded request")
	}
	// The second call carries the whole history: seed, q1, a1, q2.
	if len(req.Messages) != 4 {
		t.Errorf("expected 4 messages in last request, got %d", len(req.Messages))
	}
}

func TestHarness_RecordsTurnErrors(t *testing.T) {
	ctx := context.Background()
	h := NewHarness("seed").QueueError(errors.New("down"))

	if _, err := h.RunTurn(ctx, "hello"); err == nil {
		t.Fatal("expected an error")
	}
	if len(h.Errors()) != 1 {
		t.Errorf("expected 1 recorded error, got %d", len(h.Errors()))
	}
	if len(h.Replies()) != 0 {
		t.Errorf("expected no replies, got %v", h.Replies())
	}
}
