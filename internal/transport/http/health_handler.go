package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// HealthHandler serves the health check.
type HealthHandler struct {
	service HealthServiceInterface
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(service HealthServiceInterface, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{
		service: service,
		logger:  logger.With(slog.String("component", "health_handler")),
	}
}

// Routes returns the health routes.
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetHealth)
	return r
}

// GetHealth handles GET /api/health. A degraded process still answers 200;
// the body carries per-component status.
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := h.service.Check(r.Context())
	render.Status(r, http.StatusOK)
	render.JSON(w, r, status)
}
