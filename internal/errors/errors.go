package errors

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
)

// Problem types following RFC 7807
const (
	TypeValidation  = "/errors/validation"
	TypeNotFound    = "/errors/not-found"
	TypeUnauthorized = "/errors/unauthorized"
	TypeForbidden   = "/errors/forbidden"
	TypeConflict    = "/errors/conflict"
	TypeRateLimit   = "/errors/rate-limit"
	TypeTimeout     = "/errors/timeout"
	TypeInternal    = "/errors/internal"
)

// Domain-specific problem types
const (
	TypeSchemaInvalid     = "/errors/dataset/schema-invalid"
	TypeDatasetNotLoaded  = "/errors/dataset/not-loaded"
	TypeDatasetNotFound   = "/errors/dataset/source-not-found"
	TypeUserExists        = "/errors/auth/user-exists"
	TypeBadCredentials    = "/errors/auth/bad-credentials"
)

// ProblemDetails implements RFC 7807 Problem Details for HTTP APIs
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// Additional fields for extensibility
	Extensions map[string]interface{} `json:"-"`
}

// Error implements the error interface so a ProblemDetails can travel
// through error returns.
func (pd *ProblemDetails) Error() string {
	return pd.Title + ": " + pd.Detail
}

// Render implements the render.Renderer interface
func (pd *ProblemDetails) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, pd.Status)
	return nil
}

// MarshalJSON custom marshaler to include extensions
func (pd *ProblemDetails) MarshalJSON() ([]byte, error) {
	data := make(map[string]interface{})

	data["type"] = pd.Type
	data["title"] = pd.Title
	data["status"] = pd.Status

	if pd.Detail != "" {
		data["detail"] = pd.Detail
	}
	if pd.Instance != "" {
		data["instance"] = pd.Instance
	}

	for k, v := range pd.Extensions {
		data[k] = v
	}

	return json.Marshal(data)
}

// NewProblemDetails creates a new RFC 7807 compliant error
func NewProblemDetails(status int, problemType, title, detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:       problemType,
		Title:      title,
		Status:     status,
		Detail:     detail,
		Instance:   instance,
		Extensions: make(map[string]interface{}),
	}
}

// WithExtension adds an extension field to the problem details
func (pd *ProblemDetails) WithExtension(key string, value interface{}) *ProblemDetails {
	pd.Extensions[key] = value
	return pd
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrValidation creates a validation problem for one field.
func ErrValidation(field, message string) *ProblemDetails {
	return NewProblemDetails(
		http.StatusBadRequest,
		TypeValidation,
		"Validation Failed",
		message,
		"",
	).WithExtension("errors", []ValidationError{{Field: field, Message: message}})
}

// ErrNotFound creates a not-found problem.
func ErrNotFound(detail string) *ProblemDetails {
	return NewProblemDetails(http.StatusNotFound, TypeNotFound, "Resource Not Found", detail, "")
}

// ErrUnauthorized creates an unauthorized problem.
func ErrUnauthorized(detail string) *ProblemDetails {
	return NewProblemDetails(http.StatusUnauthorized, TypeUnauthorized, "Unauthorized", detail, "")
}

// ErrInternal creates a generic internal-error problem.
func ErrInternal(detail string) *ProblemDetails {
	return NewProblemDetails(http.StatusInternalServerError, TypeInternal, "Internal Server Error", detail, "")
}
