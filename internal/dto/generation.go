package dto

// Message roles for generation requests.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a generation conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerationOptions configure a single completion call.
type GenerationOptions struct {
	SystemPrompt string
	Model        string
	MaxTokens    int
	Temperature  float64
}
