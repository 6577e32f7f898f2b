package llm

import "context"

// Provider is the core abstraction over a generative text backend.
// Lesson generation sends one instruction and gets back raw text that is
// expected to hold a JSON object; parsing that text is the caller's job.
type Provider interface {
	// Generate sends the request and returns the model's text output.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system instruction. Sets the assistant persona and
	// the expected response format.
	System string

	// Messages is the conversation. Lesson generation always sends a
	// single user message.
	Messages []Message

	// JSON asks the provider to use its native JSON output mode when it
	// has one. The response may still arrive wrapped in a code fence.
	JSON bool

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserPrompt builds a single-turn request.
func UserPrompt(system, prompt string) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: prompt}},
	}
}

// Schema names a JSON Schema definition used to validate model output.
type Schema struct {
	// Name identifies the schema in caches and error messages.
	// Kebab-case, e.g. "flat-lesson".
	Name string

	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Text is the raw generated text.
	Text string

	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
