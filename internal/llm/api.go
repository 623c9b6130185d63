package llm

import "context"

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`

	// Format constrains the reply to a JSON schema.
	Format map[string]any `json:"format,omitempty"`

	// Options lists model-specific options.
	Options map[string]any `json:"options,omitempty"`
}

type ChatResponse struct {
	Model   string  `json:"model"`
	Message Message `json:"message"`
	Done    bool    `json:"done"`
}

type Client interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}
