package provider

import (
	"errors"
	"testing"

	"parley/transcript"
)

func TestReplyText(t *testing.T) {
	tests := []struct {
		name    string
		reply   Reply
		want    string
		wantErr bool
	}{
		{
			name: "single candidate",
			reply: Reply{Candidates: []Candidate{
				{Role: transcript.RoleAssistant, Content: "Hello!"},
			}},
			want: "Hello!",
		},
		{
			name: "first of several candidates wins",
			reply: Reply{Candidates: []Candidate{
				{Role: transcript.RoleAssistant, Content: "first"},
				{Role: transcript.RoleAssistant, Content: "second"},
			}},
			want: "first",
		},
		{
			name:    "no candidates",
			reply:   Reply{},
			wantErr: true,
		},
		{
			name: "empty candidate text",
			reply: Reply{Candidates: []Candidate{
				{Role: transcript.RoleAssistant, Content: ""},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.reply.Text()
			if tt.wantErr {
				if !errors.Is(err, ErrEmptyReply) {
					t.Fatalf("expected ErrEmptyReply, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestOpenAIRoleMapping(t *testing.T) {
	for _, role := range []transcript.Role{
		transcript.RoleSystem,
		transcript.RoleUser,
		transcript.RoleAssistant,
	} {
		if _, err := openaiRole(role); err != nil {
			t.Errorf("role %q: unexpected error: %v", role, err)
		}
	}

	if _, err := openaiRole(transcript.Role("tool")); err == nil {
		t.Error("expected error for unknown role")
	}
}
