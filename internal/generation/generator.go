package generation

import "context"

// ChatMessage is one turn of a simulated client conversation.
// Role is "user" for the intern and "assistant" for the simulated client.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest carries everything the model needs to answer in character.
// The full history is resent on every call; the backend keeps no
// conversation state.
type ChatRequest struct {
	ProjectID   string
	Title       string
	Description string
	Persona     string
	Mood        string
	History     []ChatMessage
	Language    string // "en" or "ar"
}

// ReviewRequest asks for a code review against a project brief.
type ReviewRequest struct {
	ProjectID    string
	Title        string
	Description  string
	Code         string
	Language     string // language of the submitted code
	LanguageHint string // "en" or "ar" for the feedback text
}

// ReviewResult is the parsed outcome of a code review.
type ReviewResult struct {
	Feedback string
	Approved bool
}

// Generator produces AI chat replies and code reviews.
// Implementations are stateless per call.
type Generator interface {
	// Chat returns the simulated client's next reply given the full
	// conversation so far.
	Chat(ctx context.Context, req ChatRequest) (string, error)

	// ReviewCode reviews submitted code against the project brief and
	// reports whether the work is approved.
	ReviewCode(ctx context.Context, req ReviewRequest) (*ReviewResult, error)
}
