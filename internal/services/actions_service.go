package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"shelterpulse/internal/errors"
	"shelterpulse/pkg/contracts/domain"
)

// ActionStore is the persistence the action log service needs.
type ActionStore interface {
	AppendAction(ctx context.Context, action *domain.UserAction) error
	RecentActions(ctx context.Context, limit int) ([]domain.UserAction, error)
	CountActions(ctx context.Context) (int, error)
}

// ActionsService records dashboard user actions into the append-only log.
type ActionsService struct {
	store    ActionStore
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time
}

// NewActionsService creates the action log service.
func NewActionsService(store ActionStore, logger *slog.Logger) *ActionsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActionsService{
		store:    store,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// Record validates and appends one action. The timestamp is assigned
// server-side; the caller's username comes from the session, not the body.
func (s *ActionsService) Record(ctx context.Context, username, action, details string) (*domain.UserAction, error) {
	entry := domain.UserAction{
		Time:     s.now().UTC(),
		Username: username,
		Action:   action,
		Details:  details,
	}

	if err := s.validate.Struct(&entry); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok && len(validationErrs) > 0 {
			first := validationErrs[0]
			return nil, errors.ErrValidation(first.Field(), "invalid value for "+first.Field())
		}
		return nil, errors.ErrInvalidInput
	}

	if err := s.store.AppendAction(ctx, &entry); err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "action recorded",
		slog.Int64("id", entry.ID),
		slog.String("username", username),
		slog.String("action", action))
	return &entry, nil
}

// Recent returns the most recent actions, newest first.
func (s *ActionsService) Recent(ctx context.Context, limit int) ([]domain.UserAction, error) {
	return s.store.RecentActions(ctx, limit)
}

// Count returns the total number of logged actions.
func (s *ActionsService) Count(ctx context.Context) (int, error) {
	return s.store.CountActions(ctx)
}
