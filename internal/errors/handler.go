package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"shelterpulse/internal/infrastructure"
)

// Service-level sentinel errors. Handlers and services use these; the
// ErrorHandler maps them onto RFC 7807 problems at the transport edge.
var (
	ErrDatasetNotLoaded = errors.New("dataset not loaded")
	ErrRecordNotFound   = errors.New("record not found")
	ErrUserExists       = errors.New("user already exists")
	ErrBadCredentials   = errors.New("invalid username or password")
	ErrSessionExpired   = errors.New("session expired or unknown")
	ErrInvalidInput     = errors.New("invalid input")
)

// ErrorHandler provides centralized error handling
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{
		logger: logger.With(slog.String("component", "error_handler")),
	}
}

// HandleError converts any error to RFC 7807 format and responds
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	traceID := infrastructure.GetTraceID(r.Context())

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	problem := h.ErrorToProblem(err, r)
	if traceID != "" {
		problem.WithExtension("trace_id", traceID)
	}

	render.Render(w, r, problem)
}

// ErrorToProblem converts an error to RFC 7807 Problem Details
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	// A ProblemDetails built upstream passes through untouched.
	var problem *ProblemDetails
	if errors.As(err, &problem) {
		if problem.Instance == "" {
			problem.Instance = r.URL.Path
		}
		return problem
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewProblemDetails(
			http.StatusGatewayTimeout,
			TypeTimeout,
			"Request Timeout",
			"The request took too long to process and was cancelled",
			r.URL.Path,
		)
	}

	switch {
	case errors.Is(err, ErrDatasetNotLoaded):
		return NewProblemDetails(
			http.StatusServiceUnavailable,
			TypeDatasetNotLoaded,
			"Dataset Not Loaded",
			"The shelter dataset has not been loaded yet. Try reloading.",
			r.URL.Path,
		)

	case errors.Is(err, ErrRecordNotFound):
		return NewProblemDetails(
			http.StatusNotFound,
			TypeNotFound,
			"Resource Not Found",
			err.Error(),
			r.URL.Path,
		)

	case errors.Is(err, ErrUserExists):
		return NewProblemDetails(
			http.StatusConflict,
			TypeUserExists,
			"Username Taken",
			"That username already exists.",
			r.URL.Path,
		)

	case errors.Is(err, ErrBadCredentials):
		return NewProblemDetails(
			http.StatusUnauthorized,
			TypeBadCredentials,
			"Invalid Credentials",
			"Invalid username or password.",
			r.URL.Path,
		)

	case errors.Is(err, ErrSessionExpired):
		return NewProblemDetails(
			http.StatusUnauthorized,
			TypeUnauthorized,
			"Session Expired",
			"Your session has expired. Please log in again.",
			r.URL.Path,
		)

	case errors.Is(err, ErrInvalidInput):
		return NewProblemDetails(
			http.StatusBadRequest,
			TypeValidation,
			"Validation Failed",
			err.Error(),
			r.URL.Path,
		)

	default:
		return NewProblemDetails(
			http.StatusInternalServerError,
			TypeInternal,
			"Internal Server Error",
			"An unexpected error occurred while processing your request",
			r.URL.Path,
		)
	}
}
