package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/interna-hq/interna-api/internal/api/shared"
	"github.com/interna-hq/interna-api/internal/domain"
	"github.com/interna-hq/interna-api/internal/service/projects"
)

// ProjectsHandler serves the merged dashboard listing and project activity
// endpoints. All routes require authentication.
type ProjectsHandler struct {
	projects  *projects.Service
	validator *validator.Validate
	logger    *slog.Logger
}

// NewProjectsHandler creates a new ProjectsHandler.
func NewProjectsHandler(projectsService *projects.Service, logger *slog.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		projects:  projectsService,
		validator: validator.New(),
		logger:    logger.With(slog.String("component", "projects_handler")),
	}
}

// List handles GET /api/projects. Filters come from query parameters:
// field, difficulty, and q (free-text search).
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	filter := projects.Filter{
		Field:      r.URL.Query().Get("field"),
		Difficulty: r.URL.Query().Get("difficulty"),
		Search:     r.URL.Query().Get("q"),
	}

	list, err := h.projects.List(r.Context(), userID, filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load projects")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ProjectListResponse{
		Projects: list,
		Total:    len(list),
	})
}

// EnterTask handles POST /api/projects/tasks/{taskID}/enter: records
// activity on a predefined catalog task.
func (h *ProjectsHandler) EnterTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	taskID := chi.URLParam(r, "taskID")
	if taskID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Task ID is required")
		return
	}

	project, err := h.projects.EnterTask(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, project)
}

// CreateSimulation handles POST /api/projects/simulations: saves a new
// custom project for the user.
func (h *ProjectsHandler) CreateSimulation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateSimulationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	sim, err := h.projects.CreateSimulation(r.Context(), userID, req.Title, req.Description, domain.Field(req.Field))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, sim)
}

// TouchSimulation handles POST /api/projects/simulations/{simulationID}/enter:
// marks fresh activity on a custom project.
func (h *ProjectsHandler) TouchSimulation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	simID, err := getPathUUID(r, "simulationID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.projects.TouchSimulation(r.Context(), userID, simID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
