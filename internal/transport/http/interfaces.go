package http

import (
	"context"

	"shelterpulse/internal/services"
	"shelterpulse/pkg/contracts/domain"
)

// DataServiceInterface is the dataset surface the data handler needs.
type DataServiceInterface interface {
	Records(ctx context.Context, filter services.RecordFilter) (*services.RecordPage, error)
	FilteredRecords(ctx context.Context, filter services.RecordFilter) ([]domain.AnimalRecord, error)
	Summary(ctx context.Context) (*domain.DatasetSummary, error)
	Reload(ctx context.Context) (*domain.DatasetSummary, error)
	IntakeTypeCounts(ctx context.Context) ([]services.ValueCount, error)
	OutcomeTypeCounts(ctx context.Context) ([]services.ValueCount, error)
	IntakeReasonCounts(ctx context.Context) ([]services.ValueCount, error)
	MonthlyIntakes(ctx context.Context) ([]services.MonthlyCount, error)
	AdoptionRates(ctx context.Context, by string) ([]services.AdoptionRate, error)
	OutcomesByReason(ctx context.Context) ([]services.OutcomeByReason, error)
	StayDurations(ctx context.Context) (*services.StayDurationStats, error)
}

// AuthServiceInterface is the auth surface the auth handler needs.
type AuthServiceInterface interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, token string)
}

// ActionsServiceInterface is the action-log surface the actions handler needs.
type ActionsServiceInterface interface {
	Record(ctx context.Context, username, action, details string) (*domain.UserAction, error)
	Recent(ctx context.Context, limit int) ([]domain.UserAction, error)
}

// HealthServiceInterface is the health surface the health handler needs.
type HealthServiceInterface interface {
	Check(ctx context.Context) *services.HealthStatus
}
