package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrDoctorSlugLock = errors.New("doctor slug locked")

const (
	SERVER_MODE_DEVELOPMENT = "development"
	SERVER_MODE_STAGING     = "staging"
	SERVER_MODE_PRODUCTION  = "production"

	// Requested language falls back to English, then to built-in entity
	// defaults where they exist.
	FALLBACK_LANGUAGE_CODE = "en"

	// Patient pseudonym derivation. These parameters are frozen: stored
	// patient_ids stay re-derivable only while they never change.
	PATIENT_ID_ITERATIONS = 100000
	PATIENT_ID_KEY_LEN    = 16

	RECORD_ID_BYTES       = 4
	RECORD_ID_MAX_RETRIES = 10

	SUBMIT_RATE_LIMIT_PER_MINUTE = 30

	NOTIFY_TIMEOUT = 10 * time.Second

	CACHE_TTL_1_MIN   = 1 * time.Minute
	CACHE_TTL_5_MINS  = 5 * time.Minute
	CACHE_TTL_15_MINS = 15 * time.Minute
	CACHE_TTL_1_HOUR  = 1 * time.Hour
)

func LockKeyDoctorSlug(base string) string {
	return fmt.Sprintf("lock:doctor-slug:%s", base)
}

// db
func DBKeyForm(formID string) string {
	return fmt.Sprintf("form:%s", strings.ToLower(formID))
}

func DBKeyForms() string {
	return "forms:all"
}

func DBKeyLanguages() string {
	return "languages:all"
}

func DBKeyDoctorBySlug(slug string) string {
	return fmt.Sprintf("doctor:slug:%s", strings.ToLower(slug))
}

func DBKeyRedFlag(redFlagID string) string {
	return fmt.Sprintf("red_flag:%s", strings.ToLower(redFlagID))
}

func LimitKeySubmit(slug string) string {
	return fmt.Sprintf("limit:submit:%s", strings.ToLower(slug))
}
