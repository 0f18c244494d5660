package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/interna-hq/interna-api/internal/config"
	"github.com/interna-hq/interna-api/internal/generation"
)

// Generator implements the generation.Generator interface using Google's
// Gemini API for the simulated client chat and the code-review loop.
type Generator struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// NewGenerator creates a new Gemini-backed generator.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key and model name
//
// Returns a properly initialized Generator or an error if initialization fails.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger: logger,
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// Ensure Generator implements generation.Generator interface
var _ generation.Generator = (*Generator)(nil)

// Chat implements generation.Generator.Chat
func (g *Generator) Chat(ctx context.Context, req generation.ChatRequest) (string, error) {
	if req.Title == "" && len(req.History) == 0 {
		return "", generation.ErrEmptyRequest
	}

	g.logger.InfoContext(ctx, "making Gemini chat call",
		"project_id", req.ProjectID,
		"history_len", len(req.History),
		"language", req.Language)

	contents := historyContents(req.History)
	if len(contents) == 0 {
		// The model needs at least one user turn to respond to.
		contents = []*genai.Content{genai.NewContentFromText("Hello", genai.RoleUser)}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(clientSystemPrompt(req), genai.RoleUser),
	})
	if err != nil {
		g.logger.ErrorContext(ctx, "Gemini chat call failed", "error", err)
		return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}

	reply, err := responseText(resp)
	if err != nil {
		return "", err
	}

	return reply, nil
}

// ReviewCode implements generation.Generator.ReviewCode
func (g *Generator) ReviewCode(ctx context.Context, req generation.ReviewRequest) (*generation.ReviewResult, error) {
	if strings.TrimSpace(req.Code) == "" {
		return nil, generation.ErrEmptyRequest
	}

	g.logger.InfoContext(ctx, "making Gemini review call",
		"project_id", req.ProjectID,
		"code_length", len(req.Code),
		"language", req.Language)

	prompt := fmt.Sprintf("%s\n\nCode to review (language: %s):\n\n```\n%s\n```\n\nProvide feedback and end with APPROVED or NOT_APPROVED.",
		reviewSystemPrompt(req), req.Language, req.Code)

	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}, nil)
	if err != nil {
		g.logger.ErrorContext(ctx, "Gemini review call failed", "error", err)
		return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	return ParseReview(text), nil
}

// historyContents converts chat history into Gemini contents, mapping the
// "assistant" role onto the model role.
func historyContents(history []generation.ChatMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		role := genai.Role(genai.RoleUser)
		if msg.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}
	return contents
}

// responseText extracts the text of the first candidate, classifying empty
// and safety-blocked responses.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", generation.ErrContentBlocked
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}
	return text, nil
}

// ParseReview splits the model's review text into feedback and the approval
// verdict. The verdict is the trailing APPROVED/NOT_APPROVED line; when the
// line is the whole of the last line it is stripped from the feedback.
func ParseReview(text string) *generation.ReviewResult {
	upper := strings.ToUpper(text)
	approved := strings.Contains(upper, "APPROVED") && !strings.Contains(upper, "NOT_APPROVED")

	feedback := text
	lines := strings.Split(text, "\n")
	if len(lines) > 0 {
		last := strings.ToUpper(strings.TrimSpace(lines[len(lines)-1]))
		if last == "APPROVED" || last == "NOT_APPROVED" {
			feedback = strings.TrimSpace(strings.Join(lines[:len(lines)-1], "\n"))
		}
	}
	if feedback == "" {
		feedback = "No detailed feedback."
	}

	return &generation.ReviewResult{Feedback: feedback, Approved: approved}
}
