package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "shelterpulse/internal/errors"
	"shelterpulse/internal/middleware"
	"shelterpulse/pkg/contracts/domain"
)

type fakeActionsService struct {
	recorded []domain.UserAction
}

func (f *fakeActionsService) Record(ctx context.Context, username, action, details string) (*domain.UserAction, error) {
	entry := domain.UserAction{
		ID:       int64(len(f.recorded) + 1),
		Time:     time.Date(2023, 7, 1, 9, 0, 0, 0, time.UTC),
		Username: username,
		Action:   action,
		Details:  details,
	}
	f.recorded = append(f.recorded, entry)
	return &entry, nil
}

func (f *fakeActionsService) Recent(ctx context.Context, limit int) ([]domain.UserAction, error) {
	out := make([]domain.UserAction, 0, limit)
	for i := len(f.recorded) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.recorded[i])
	}
	return out, nil
}

type staticSessions struct{ username string }

func (s *staticSessions) ValidateSession(ctx context.Context, token string) (string, error) {
	if s.username == "" {
		return "", apierrors.ErrSessionExpired
	}
	return s.username, nil
}

// newActionsTestServer mounts the handler behind session auth, the way the
// application router does.
func newActionsTestServer(svc ActionsServiceInterface, sessions middleware.SessionValidator) *httptest.Server {
	h := NewActionsHandler(svc, nil, apierrors.NewErrorHandler(nil))

	r := chi.NewRouter()
	r.Use(middleware.SessionAuth(nil, sessions))
	r.Mount("/", h.Routes())
	return httptest.NewServer(r)
}

func authorizedPost(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestActionsHandler_RecordAction(t *testing.T) {
	svc := &fakeActionsService{}
	server := newActionsTestServer(svc, &staticSessions{username: "alice"})
	defer server.Close()

	resp := authorizedPost(t, server.URL+"/", map[string]string{
		"action": "filter_changed", "details": "animal_type=Dog",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var entry domain.UserAction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entry))
	assert.Equal(t, int64(1), entry.ID)
	// Username comes from the session, never from the body.
	assert.Equal(t, "alice", entry.Username)
}

func TestActionsHandler_RecordAction_MissingAction(t *testing.T) {
	server := newActionsTestServer(&fakeActionsService{}, &staticSessions{username: "alice"})
	defer server.Close()

	resp := authorizedPost(t, server.URL+"/", map[string]string{"details": "x"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestActionsHandler_Unauthorized(t *testing.T) {
	server := newActionsTestServer(&fakeActionsService{}, &staticSessions{})
	defer server.Close()

	resp := authorizedPost(t, server.URL+"/", map[string]string{"action": "x"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestActionsHandler_GetRecent(t *testing.T) {
	svc := &fakeActionsService{}
	server := newActionsTestServer(svc, &staticSessions{username: "alice"})
	defer server.Close()

	for _, action := range []string{"login", "export"} {
		resp := authorizedPost(t, server.URL+"/", map[string]string{"action": action})
		resp.Body.Close()
	}

	req, err := http.NewRequest(http.MethodGet, server.URL+"/recent?limit=1", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer token-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var actions []domain.UserAction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&actions))
	require.Len(t, actions, 1)
	assert.Equal(t, "export", actions[0].Action)
}
