// Package transcript holds the conversation history sent to the model.
//
// A Transcript is an ordered list of role-tagged messages. Order matters:
// it is the context window the model sees, oldest first. The transcript is
// plain owned state - create one per session, pass it around explicitly.
package transcript

// Role tags who a message came from.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the conversation. Immutable once appended.
type Message struct {
	Role    Role
	Content string
}

// Transcript is an append-only message sequence. It grows without bound
// for the life of the session; there is no eviction or deduplication.
// Not safe for concurrent use - a session drives it from one goroutine.
type Transcript struct {
	msgs []Message
}

// New creates a transcript, seeded with a system message when systemPrompt
// is non-empty. The seed stays at index 0 and survives Reset.
func New(systemPrompt string) *Transcript {
	t := &Transcript{}
	if systemPrompt != "" {
		t.Append(RoleSystem, systemPrompt)
	}
	return t
}

// Append adds a message to the end of the sequence.
// Content is taken as-is; empty strings are legal.
func (t *Transcript) Append(role Role, content string) {
	t.msgs = append(t.msgs, Message{Role: role, Content: content})
}

// Len returns the number of messages, seed included.
func (t *Transcript) Len() int {
	return len(t.msgs)
}

// Messages returns a copy of the sequence, safe to hand to a provider.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.msgs))
	copy(out, t.msgs)
	return out
}

// Last returns the most recent message, or false on an empty transcript.
func (t *Transcript) Last() (Message, bool) {
	if len(t.msgs) == 0 {
		return Message{}, false
	}
	return t.msgs[len(t.msgs)-1], true
}

// TruncateTo drops every message at index n and beyond. Used to roll back
// a staged turn when the provider call fails.
func (t *Transcript) TruncateTo(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(t.msgs) {
		t.msgs = t.msgs[:n]
	}
}

// Reset drops the whole conversation except a leading system message.
func (t *Transcript) Reset() {
	if len(t.msgs) > 0 && t.msgs[0].Role == RoleSystem {
		t.msgs = t.msgs[:1]
		return
	}
	t.msgs = nil
}
