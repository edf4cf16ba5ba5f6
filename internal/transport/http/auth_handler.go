package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "shelterpulse/internal/errors"
)

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	service      AuthServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service AuthServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "auth_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the auth routes.
func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)

	return r
}

// credentialsRequest is the register/login request body.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Bind implements render.Binder.
func (c *credentialsRequest) Bind(r *http.Request) error {
	if c.Username == "" {
		return apierrors.ErrValidation("username", "username is required")
	}
	if c.Password == "" {
		return apierrors.ErrValidation("password", "password is required")
	}
	return nil
}

// loginResponse carries the session token.
type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := render.Bind(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if err := h.service.Register(r.Context(), req.Username, req.Password); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]string{"username": req.Username})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := render.Bind(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, loginResponse{Token: token, Username: req.Username})
}

// Logout handles POST /api/auth/logout. Always succeeds; an unknown token
// is already logged out.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		h.service.Logout(r.Context(), strings.TrimSpace(parts[1]))
	}
	render.NoContent(w, r)
}
