package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"intakealert/internal/datastore"
	"intakealert/internal/interfaces"
	"intakealert/internal/models"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/rs/zerolog"
	"github.com/samber/do"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/pbkdf2"
)

type ServiceIntake struct {
	container *do.Injector
	catalog   *ServiceCatalog
	db        *bun.DB
	notifier  interfaces.Notifier
	logger    zerolog.Logger
	secret    []byte
}

func NewServiceIntake(container *do.Injector) (*ServiceIntake, error) {
	catalog, err := do.Invoke[*ServiceCatalog](container)
	if err != nil {
		return nil, err
	}

	db, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	notifier, err := do.Invoke[interfaces.Notifier](container)
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
	if vs["PATIENT_ID_SECRET"] == "" {
		return nil, errors.New("PATIENT_ID_SECRET is required")
	}

	return &ServiceIntake{container, catalog, db, notifier, logger, []byte(vs["PATIENT_ID_SECRET"])}, nil
}

// Submit records one completed questionnaire: validate and collect the
// active answers, derive the pseudonymous patient id, persist the
// append-only submission, then match red flags and fire the notification.
// The notification runs after the record is durable and its failure never
// surfaces to the patient.
func (service *ServiceIntake) Submit(ctx context.Context, doctor *models.Doctor, snapshot *models.FormSnapshot, language *models.Language, patientName, patientMobile string, raw models.AnswerMap) (*models.PatientSubmission, []models.RedFlagPayload, error) {
	if patientName == "" || patientMobile == "" {
		return nil, nil, errorx.Wrap(errors.New("patient name and mobile are required"), errorx.Validation)
	}

	answers, err := CollectAnswers(snapshot, raw)
	if err != nil {
		return nil, nil, err
	}

	recordID, err := service.newRecordID(ctx)
	if err != nil {
		return nil, nil, errorx.Wrap(err, errorx.Service)
	}

	flagIDs := TriggeredRedFlagIDs(snapshot, answers)

	submission := &models.PatientSubmission{
		RecordID:     recordID,
		PatientID:    DerivePatientID(service.secret, patientName, patientMobile),
		DoctorID:     doctor.ID,
		FormID:       snapshot.Form.FormID,
		LanguageCode: language.Code,
		Responses:    answers,
		RedFlagIDs:   flagIDs,
	}

	if err := datastore.CreateSubmission(ctx, service.db, submission); err != nil {
		return nil, nil, errorx.Wrap(err, errorx.Service)
	}

	payloads := RedFlagPayloads(snapshot, flagIDs, language.Code)
	if len(payloads) > 0 {
		service.dispatchNotification(ctx, doctor, submission, payloads)
	}

	return submission, payloads, nil
}

// RedFlagPayloads localizes the triggered flags for the notification sink
// and the patient-facing response, resolving patient and doctor text
// independently. Flag ids missing from the snapshot are skipped.
func RedFlagPayloads(snapshot *models.FormSnapshot, flagIDs []string, languageCode string) []models.RedFlagPayload {
	var payloads []models.RedFlagPayload
	for _, flagID := range flagIDs {
		flag := snapshot.RedFlags[flagID]
		if flag == nil {
			continue
		}
		payloads = append(payloads, models.RedFlagPayload{
			RedFlag:     flag,
			PatientText: RedFlagPatientText(flag, languageCode),
			DoctorText:  RedFlagDoctorText(flag, languageCode),
		})
	}
	return payloads
}

// DerivePatientID produces the pseudonymous patient identifier from name and
// mobile under the server secret. PBKDF2-SHA256, 100000 iterations, 16-byte
// key, hex encoded; changing any parameter breaks re-derivation of every
// stored identifier.
func DerivePatientID(secret []byte, name, mobile string) string {
	raw := []byte(fmt.Sprintf("%s:%s", name, mobile))
	return hex.EncodeToString(pbkdf2.Key(raw, secret, PATIENT_ID_ITERATIONS, PATIENT_ID_KEY_LEN, sha256.New))
}

func (service *ServiceIntake) newRecordID(ctx context.Context) (string, error) {
	return GenerateRecordID(ctx, func(ctx context.Context, recordID string) (bool, error) {
		return datastore.RecordIDExists(ctx, service.db, recordID)
	})
}

// GenerateRecordID draws a random 8-hex-char token, retrying on the rare
// collision with an existing record.
func GenerateRecordID(ctx context.Context, exists func(context.Context, string) (bool, error)) (string, error) {
	for i := 0; i < RECORD_ID_MAX_RETRIES; i++ {
		buf := make([]byte, RECORD_ID_BYTES)
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}

		recordID := hex.EncodeToString(buf)
		taken, err := exists(ctx, recordID)
		if err != nil {
			return "", err
		}
		if !taken {
			return recordID, nil
		}
	}
	return "", errors.New("record id space exhausted")
}

// dispatchNotification is fire-and-forget: bounded by its own timeout,
// detached from request cancellation, errors logged and swallowed.
func (service *ServiceIntake) dispatchNotification(ctx context.Context, doctor *models.Doctor, submission *models.PatientSubmission, payloads []models.RedFlagPayload) {
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), NOTIFY_TIMEOUT)
	defer cancel()

	if err := service.notifier.Notify(notifyCtx, doctor, submission, payloads); err != nil {
		service.logger.Error().Err(err).
			Str("record_id", submission.RecordID).
			Str("doctor_email", doctor.Email).
			Msg("red flag notification failed")
	}
}
