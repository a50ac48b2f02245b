package interfaces

import (
	"context"

	"intakealert/internal/models"

	"github.com/go-redis/redis_rate/v10"
)

type Limiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) error
}

// Notifier is the outbound notification sink. Implementations are
// best-effort: callers log and swallow errors, a submission never depends on
// delivery.
type Notifier interface {
	Notify(ctx context.Context, doctor *models.Doctor, submission *models.PatientSubmission, payloads []models.RedFlagPayload) error
	NotifyDigest(ctx context.Context, doctor *models.Doctor, submissions []*models.PatientSubmission) error
}
