package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"parley/transcript"
)

// DefaultOpenAIModel is used when no model flag is given.
const DefaultOpenAIModel = openai.GPT4oMini

// OpenAI implements Provider on any OpenAI-compatible chat completions
// endpoint. A custom BaseURL covers local servers (ollama, llama.cpp,
// vLLM) that speak the same protocol.
type OpenAI struct {
	client *openai.Client
	base   string
}

// OpenAIConfig holds settings for the OpenAI-compatible backend.
type OpenAIConfig struct {
	APIKey  string        // bearer token; local servers often ignore it
	BaseURL string        // empty means api.openai.com
	Timeout time.Duration // per-request HTTP timeout; zero means no timeout
}

// NewOpenAI creates an OpenAI-backed provider.
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	c := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		c.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		c.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &OpenAI{client: openai.NewClientWithConfig(c), base: cfg.BaseURL}
}

func (o *OpenAI) Name() string {
	if o.base != "" {
		return fmt.Sprintf("openai(%s)", o.base)
	}
	return "openai"
}

func (o *OpenAI) Complete(ctx context.Context, req Request) (Reply, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		role, err := openaiRole(msg.Role)
		if err != nil {
			return Reply{}, err
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     req.Model,
		MaxTokens: req.MaxTokens,
		Messages:  messages,
	})
	if err != nil {
		return Reply{}, fmt.Errorf("openai completion: %w", err)
	}

	var reply Reply
	for _, choice := range resp.Choices {
		reply.Candidates = append(reply.Candidates, Candidate{
			Role:    transcript.RoleAssistant,
			Content: choice.Message.Content,
		})
	}
	return reply, nil
}

func (o *OpenAI) ListModels(ctx context.Context) ([]ModelInfo, error) {
	list, err := o.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("openai list models: %w", err)
	}

	var models []ModelInfo
	for _, m := range list.Models {
		models = append(models, ModelInfo{ID: m.ID, Name: m.ID})
	}
	return models, nil
}

func openaiRole(role transcript.Role) (string, error) {
	switch role {
	case transcript.RoleSystem:
		return openai.ChatMessageRoleSystem, nil
	case transcript.RoleUser:
		return openai.ChatMessageRoleUser, nil
	case transcript.RoleAssistant:
		return openai.ChatMessageRoleAssistant, nil
	default:
		return "", fmt.Errorf("unsupported message role %q", role)
	}
}
