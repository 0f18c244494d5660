package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/interna-hq/interna-api/internal/api/shared"
	"github.com/interna-hq/interna-api/internal/catalog"
	"github.com/interna-hq/interna-api/internal/domain"
	"github.com/interna-hq/interna-api/internal/generation"
	"github.com/interna-hq/interna-api/internal/store"
)

// simIDPrefix marks ids that refer to custom simulations rather than
// catalog tasks.
const simIDPrefix = "sim-"

// syntheticReply is returned inline when the AI backend is unreachable, so
// a transport failure degrades the conversation instead of breaking it.
const syntheticReply = "Sorry, I got pulled into a meeting. Could you send that again in a moment?"

// AIHandler serves the simulated client chat and code review endpoints.
// Both are stateless: the full history arrives with every call.
type AIHandler struct {
	generator   generation.Generator
	simulations store.SimulationStore
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(generator generation.Generator, simulations store.SimulationStore, logger *slog.Logger) *AIHandler {
	return &AIHandler{
		generator:   generator,
		simulations: simulations,
		validator:   validator.New(),
		logger:      logger.With(slog.String("component", "ai_handler")),
	}
}

// projectContext is the slice of project data the prompts need.
type projectContext struct {
	Title       string
	Description string
	Persona     string
	Mood        string
}

// Chat handles POST /api/ai/chat. Transport failures come back as a
// synthetic in-character reply with Synthetic set, never as a 5xx.
func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ChatRequestPayload
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	pc, ok := h.resolveProject(w, r, userID, req.ProjectID)
	if !ok {
		return
	}

	history := make([]generation.ChatMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		history = append(history, generation.ChatMessage{Role: msg.Role, Content: msg.Content})
	}

	reply, err := h.generator.Chat(r.Context(), generation.ChatRequest{
		ProjectID:   req.ProjectID,
		Title:       pc.Title,
		Description: pc.Description,
		Persona:     pc.Persona,
		Mood:        pc.Mood,
		History:     history,
		Language:    req.Language,
	})
	if err != nil {
		if errors.Is(err, generation.ErrTransientFailure) || errors.Is(err, generation.ErrInvalidResponse) {
			h.logger.Warn("chat generation failed, sending synthetic reply",
				"error", err,
				"project_id", req.ProjectID)
			shared.RespondWithJSON(w, r, http.StatusOK, ChatResponsePayload{
				Reply:     syntheticReply,
				Synthetic: true,
			})
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ChatResponsePayload{Reply: reply})
}

// Review handles POST /api/ai/review: submits code for the project and
// returns feedback with an approval verdict.
func (h *AIHandler) Review(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ReviewRequestPayload
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	pc, ok := h.resolveProject(w, r, userID, req.ProjectID)
	if !ok {
		return
	}

	result, err := h.generator.ReviewCode(r.Context(), generation.ReviewRequest{
		ProjectID:    req.ProjectID,
		Title:        pc.Title,
		Description:  pc.Description,
		Code:         req.Code,
		Language:     req.Language,
		LanguageHint: req.FeedbackLanguage,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ReviewResponsePayload{
		Feedback: result.Feedback,
		Approved: result.Approved,
	})
}

// resolveProject loads the prompt context for a project id, which is either
// a catalog task id or a "sim-" prefixed simulation UUID owned by the user.
// Writes the error response itself and returns ok=false on failure.
func (h *AIHandler) resolveProject(
	w http.ResponseWriter,
	r *http.Request,
	userID uuid.UUID,
	projectID string,
) (projectContext, bool) {
	if rawID, isSim := strings.CutPrefix(projectID, simIDPrefix); isSim {
		simID, err := uuid.Parse(rawID)
		if err != nil {
			HandleAPIError(w, r,
				domain.NewValidationError("project_id", "has invalid format", domain.ErrInvalidID), "")
			return projectContext{}, false
		}

		sim, err := h.simulations.GetByID(r.Context(), simID)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return projectContext{}, false
		}
		if sim.UserID != userID {
			HandleAPIError(w, r, domain.ErrUnauthorized, "")
			return projectContext{}, false
		}

		return projectContext{
			Title:       sim.Title,
			Description: sim.Description,
			Persona:     sim.ClientPersona,
			Mood:        sim.ClientMood,
		}, true
	}

	task, found := catalog.ByID(projectID)
	if !found {
		HandleAPIError(w, r, store.ErrNotFound, "Project not found")
		return projectContext{}, false
	}

	return projectContext{
		Title:       task.Title,
		Description: task.Description,
		Persona:     task.ClientPersona,
		Mood:        task.ClientMood,
	}, true
}
