package main

import (
	"context"
	"os"
	"time"

	"intakealert/internal/datastore"
	"intakealert/internal/interfaces"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
)

const defaultDigestSchedule = "0 7 * * *"

// DigestJob mails each clinician a summary of their flagged submissions
// from the previous day. A delivery failure for one doctor never blocks the
// rest of the run.
type DigestJob struct {
	Db       *bun.DB
	Notifier interfaces.Notifier
	Logger   zerolog.Logger
}

func NewDigestJob(db *bun.DB, notifier interfaces.Notifier, logger zerolog.Logger) *DigestJob {
	return &DigestJob{
		Db:       db,
		Notifier: notifier,
		Logger:   logger,
	}
}

func (c *DigestJob) Start(runner *cron.Cron) error {
	schedule := os.Getenv("DIGEST_SCHEDULE")
	if schedule == "" {
		schedule = defaultDigestSchedule
	}

	_, err := runner.AddFunc(schedule, c.runDigest)
	if err != nil {
		return err
	}
	c.Logger.Info().Str("schedule", schedule).Msg("digest job scheduled")
	return nil
}

func (c *DigestJob) runDigest() {
	ctx := context.Background()
	since := time.Now().Add(-24 * time.Hour)

	doctors, err := datastore.GetDoctors(ctx, c.Db)
	if err != nil {
		c.Logger.Error().Err(err).Msg("digest: listing doctors")
		return
	}

	for _, doctor := range doctors {
		submissions, err := datastore.GetFlaggedSubmissionsSince(ctx, c.Db, doctor.ID, since)
		if err != nil {
			c.Logger.Error().Err(err).Str("doctor_slug", doctor.ShareableSlug).Msg("digest: loading submissions")
			continue
		}
		if len(submissions) == 0 {
			continue
		}

		if err := c.Notifier.NotifyDigest(ctx, doctor, submissions); err != nil {
			c.Logger.Error().Err(err).Str("doctor_slug", doctor.ShareableSlug).Msg("digest: delivery failed")
			continue
		}
		c.Logger.Info().Str("doctor_slug", doctor.ShareableSlug).Int("submissions", len(submissions)).Msg("digest sent")
	}
}
