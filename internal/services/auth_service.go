package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shelterpulse/internal/errors"
	"shelterpulse/pkg/contracts/domain"
)

// UserStore is the persistence the auth service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user domain.User) error
	GetUser(ctx context.Context, username string) (domain.User, error)
}

// session is one live login.
type session struct {
	username  string
	expiresAt time.Time
}

// AuthService handles registration, login and session validation.
// Passwords are stored as bcrypt hashes; sessions are opaque random
// tokens held in memory and dropped on restart.
type AuthService struct {
	store      UserStore
	bcryptCost int
	sessionTTL time.Duration
	logger     *slog.Logger

	mu       sync.RWMutex
	sessions map[string]session

	now func() time.Time
}

// NewAuthService creates the auth service.
func NewAuthService(store UserStore, bcryptCost int, sessionTTL time.Duration, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if sessionTTL <= 0 {
		sessionTTL = 12 * time.Hour
	}

	return &AuthService{
		store:      store,
		bcryptCost: bcryptCost,
		sessionTTL: sessionTTL,
		logger:     logger,
		sessions:   make(map[string]session),
		now:        time.Now,
	}
}

// Register creates a new user account.
func (as *AuthService) Register(ctx context.Context, username, password string) error {
	if len(username) < 3 {
		return errors.ErrValidation("username", "username must be at least 3 characters")
	}
	if len(password) < 8 {
		return errors.ErrValidation("password", "password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), as.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    as.now().UTC(),
	}
	if err := as.store.CreateUser(ctx, user); err != nil {
		return err
	}

	as.logger.InfoContext(ctx, "user registered", slog.String("username", username))
	return nil
}

// Login checks the credentials and returns a new session token.
func (as *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := as.store.GetUser(ctx, username)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		as.logger.WarnContext(ctx, "login failed", slog.String("username", username))
		return "", errors.ErrBadCredentials
	}

	token := uuid.New().String()
	as.mu.Lock()
	as.sessions[token] = session{
		username:  username,
		expiresAt: as.now().Add(as.sessionTTL),
	}
	as.mu.Unlock()

	as.logger.InfoContext(ctx, "user logged in", slog.String("username", username))
	return token, nil
}

// Logout invalidates the session token. Unknown tokens are a no-op.
func (as *AuthService) Logout(ctx context.Context, token string) {
	as.mu.Lock()
	delete(as.sessions, token)
	as.mu.Unlock()
}

// ValidateSession resolves a token to a username. Expired sessions are
// removed on sight.
func (as *AuthService) ValidateSession(ctx context.Context, token string) (string, error) {
	as.mu.RLock()
	sess, ok := as.sessions[token]
	as.mu.RUnlock()

	if !ok {
		return "", errors.ErrSessionExpired
	}
	if as.now().After(sess.expiresAt) {
		as.mu.Lock()
		delete(as.sessions, token)
		as.mu.Unlock()
		return "", errors.ErrSessionExpired
	}
	return sess.username, nil
}

// ActiveSessions returns the number of live sessions, pruning expired ones.
func (as *AuthService) ActiveSessions() int {
	now := as.now()

	as.mu.Lock()
	defer as.mu.Unlock()
	for token, sess := range as.sessions {
		if now.After(sess.expiresAt) {
			delete(as.sessions, token)
		}
	}
	return len(as.sessions)
}
