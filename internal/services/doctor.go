package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"intakealert/internal/datastore"
	"intakealert/internal/models"
	"intakealert/internal/pkg/caching"

	"github.com/go-redsync/redsync/v4"
	"github.com/gosimple/slug"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/rs/zerolog"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type DoctorInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	ClinicName     string `json:"clinic_name"`
	City           string `json:"city"`
	Specialization string `json:"specialization"`
}

type ServiceDoctor struct {
	container *do.Injector
	db        *bun.DB
	rs        *redsync.Redsync
	cache     caching.Cache
	logger    zerolog.Logger
	baseURL   string
}

func NewServiceDoctor(container *do.Injector) (*ServiceDoctor, error) {
	db, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	logger, err := do.Invoke[zerolog.Logger](container)
	if err != nil {
		return nil, err
	}

	vs, err := do.InvokeNamed[map[string]string](container, "envs")
	if err != nil {
		return nil, err
	}

	return &ServiceDoctor{container, db, rs, cache, logger, vs["SITE_BASE_URL"]}, nil
}

// CreateDoctor registers a doctor and mints the immutable shareable slug.
// Slug generation serializes on a distributed mutex per base slug; the
// unique index on shareable_slug is the backstop for anything that slips
// through.
func (service *ServiceDoctor) CreateDoctor(ctx context.Context, input *DoctorInput) (*models.Doctor, *models.DoctorLink, error) {
	if input.Name == "" || input.Email == "" || input.ClinicName == "" {
		return nil, nil, errorx.Wrap(errors.New("name, email and clinic_name are required"), errorx.Validation)
	}

	base := SlugBase(input.Name, input.ClinicName)

	mutex := service.rs.NewMutex(LockKeyDoctorSlug(base))
	if err := mutex.Lock(); err != nil {
		return nil, nil, errorx.Wrap(ErrDoctorSlugLock, errorx.Invalid)
	}
	// nolint:errcheck
	defer mutex.Unlock()

	shareableSlug, err := UniqueSlug(ctx, base, func(ctx context.Context, candidate string) (bool, error) {
		return datastore.DoctorSlugExists(ctx, service.db, candidate)
	})
	if err != nil {
		return nil, nil, errorx.Wrap(err, errorx.Service)
	}

	doctor := &models.Doctor{
		Name:           input.Name,
		Email:          input.Email,
		ClinicName:     input.ClinicName,
		City:           input.City,
		Specialization: input.Specialization,
		ShareableSlug:  shareableSlug,
	}

	if err := datastore.CreateDoctor(ctx, service.db, doctor); err != nil {
		return nil, nil, errorx.Wrap(err, errorx.Service)
	}

	link := &models.DoctorLink{
		DoctorID: doctor.ID,
		Link:     fmt.Sprintf("%s/d/%s", service.baseURL, doctor.ShareableSlug),
	}
	if err := datastore.UpsertDoctorLink(ctx, service.db, link); err != nil {
		return nil, nil, errorx.Wrap(err, errorx.Service)
	}

	service.logger.Info().Str("slug", doctor.ShareableSlug).Int("doctor_id", doctor.ID).Msg("doctor created")
	return doctor, link, nil
}

func (service *ServiceDoctor) GetDoctorBySlug(ctx context.Context, shareableSlug string) (*models.Doctor, error) {
	callback := func() (*models.Doctor, error) {
		return datastore.GetDoctorBySlug(ctx, service.db, shareableSlug)
	}

	doctor, err := caching.UseCache(ctx, service.cache, DBKeyDoctorBySlug(shareableSlug), CACHE_TTL_5_MINS, callback)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errorx.Wrap(errors.New("doctor not found"), errorx.NotExist)
		}
		return nil, err
	}

	return doctor, nil
}

// SlugBase derives the human-influenced slug stem from name and clinic,
// falling back to "doctor" when nothing slugifiable remains.
func SlugBase(name, clinicName string) string {
	base := slug.Make(fmt.Sprintf("%s-%s", name, clinicName))
	if base == "" {
		base = "doctor"
	}
	return base
}

// UniqueSlug probes base, base-2, base-3... until exists reports a free
// candidate.
func UniqueSlug(ctx context.Context, base string, exists func(context.Context, string) (bool, error)) (string, error) {
	candidate := base
	for counter := 2; ; counter++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}
