package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"parley/transcript"
)

// DefaultAnthropicModel is used when no model flag is given.
const DefaultAnthropicModel = string(anthropic.ModelClaude3_7SonnetLatest)

// Anthropic implements Provider on the Anthropic Messages API.
// Authentication comes from ANTHROPIC_API_KEY, read by the SDK itself.
type Anthropic struct {
	client anthropic.Client
}

// AnthropicConfig holds transport-level settings for the Anthropic backend.
type AnthropicConfig struct {
	Timeout time.Duration // per-request HTTP timeout; zero means SDK default
}

// NewAnthropic creates an Anthropic-backed provider.
func NewAnthropic(cfg AnthropicConfig) *Anthropic {
	var opts []option.RequestOption
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}
	return &Anthropic{client: anthropic.NewClient(opts...)}
}

func (a *Anthropic) Name() string {
	return "anthropic"
}

// Complete maps the transcript onto the Messages API. A leading system
// message becomes the API's system block; the API rejects "system" as a
// message role.
func (a *Anthropic) Complete(ctx context.Context, req Request) (Reply, error) {
	params, err := anthropicParams(req)
	if err != nil {
		return Reply{}, err
	}

	message, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return Reply{}, fmt.Errorf("anthropic completion: %w", err)
	}

	var reply Reply
	for _, block := range message.Content {
		if block.Type == "text" {
			reply.Candidates = append(reply.Candidates, Candidate{
				Role:    transcript.RoleAssistant,
				Content: block.Text,
			})
		}
	}
	return reply, nil
}

// anthropicParams builds the API request. Only the transcript's first
// message may carry the system role - it becomes the system block; a
// system message anywhere else is rejected rather than silently replacing
// the seed.
func anthropicParams(req Request) (anthropic.MessageNewParams, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: int64(req.MaxTokens),
	}

	for i, msg := range req.Messages {
		switch msg.Role {
		case transcript.RoleSystem:
			if i != 0 {
				return anthropic.MessageNewParams{}, fmt.Errorf("system message at position %d, only allowed at transcript start", i)
			}
			params.System = []anthropic.TextBlockParam{{Text: msg.Content}}
		case transcript.RoleUser:
			params.Messages = append(params.Messages,
				anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case transcript.RoleAssistant:
			params.Messages = append(params.Messages,
				anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			return anthropic.MessageNewParams{}, fmt.Errorf("unsupported message role %q", msg.Role)
		}
	}

	return params, nil
}

func (a *Anthropic) ListModels(ctx context.Context) ([]ModelInfo, error) {
	page, err := a.client.Models.List(ctx, anthropic.ModelListParams{})
	if err != nil {
		return nil, fmt.Errorf("anthropic list models: %w", err)
	}

	var models []ModelInfo
	for _, m := range page.Data {
		models = append(models, ModelInfo{ID: m.ID, Name: m.DisplayName})
	}
	return models, nil
}
