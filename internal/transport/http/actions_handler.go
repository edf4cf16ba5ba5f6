package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "shelterpulse/internal/errors"
	"shelterpulse/internal/middleware"
)

// ActionsHandler serves the user action log. Both routes sit behind
// session auth; the acting username always comes from the session.
type ActionsHandler struct {
	service      ActionsServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewActionsHandler creates a new actions handler.
func NewActionsHandler(service ActionsServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ActionsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActionsHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "actions_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the action log routes.
func (h *ActionsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.RecordAction)
	r.Get("/recent", h.GetRecent)

	return r
}

// actionRequest is the record-action request body.
type actionRequest struct {
	Action  string `json:"action"`
	Details string `json:"details"`
}

// Bind implements render.Binder.
func (a *actionRequest) Bind(r *http.Request) error {
	if a.Action == "" {
		return apierrors.ErrValidation("action", "action is required")
	}
	return nil
}

// RecordAction handles POST /api/actions.
func (h *ActionsHandler) RecordAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := render.Bind(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	username := middleware.UsernameFromContext(r.Context())
	entry, err := h.service.Record(r.Context(), username, req.Action, req.Details)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, entry)
}

// GetRecent handles GET /api/actions/recent.
func (h *ActionsHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}

	actions, err := h.service.Recent(r.Context(), limit)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, actions)
}
