package datastore

import (
	"context"
	"time"

	"intakealert/internal/models"

	"github.com/uptrace/bun"
)

func CreateTablePatientSubmission(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.PatientSubmission)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().
		Model((*models.PatientSubmission)(nil)).
		Index("index_patient_submission_record_id").
		Column("record_id").
		Unique().IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().
		Model((*models.PatientSubmission)(nil)).
		Index("index_patient_submission_patient_id").
		Column("patient_id").
		IfNotExists().Exec(ctx)

	return err
}

func RecordIDExists(ctx context.Context, db *bun.DB, recordID string) (bool, error) {
	return db.NewSelect().Model((*models.PatientSubmission)(nil)).
		Where("record_id = ?", recordID).
		Exists(ctx)
}

// CreateSubmission inserts the append-only submission record. Submissions
// are never updated afterwards.
func CreateSubmission(ctx context.Context, db *bun.DB, submission *models.PatientSubmission) error {
	_, err := db.NewInsert().Model(submission).Exec(ctx)
	return err
}

func GetSubmissionByRecordID(ctx context.Context, db *bun.DB, recordID string) (*models.PatientSubmission, error) {
	var submission models.PatientSubmission
	err := db.NewSelect().Model(&submission).Where("record_id = ?", recordID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func GetSubmissionsByPatient(ctx context.Context, db *bun.DB, patientID string) ([]*models.PatientSubmission, error) {
	var submissions []*models.PatientSubmission
	err := db.NewSelect().Model(&submissions).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

// GetFlaggedSubmissionsSince returns a doctor's submissions created after
// the cutoff that triggered at least one red flag. Feeds the daily digest.
func GetFlaggedSubmissionsSince(ctx context.Context, db *bun.DB, doctorID int, since time.Time) ([]*models.PatientSubmission, error) {
	var submissions []*models.PatientSubmission
	err := db.NewSelect().Model(&submissions).
		Where("doctor_id = ?", doctorID).
		Where("created_at >= ?", since).
		Where("jsonb_array_length(red_flag_ids) > 0").
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return submissions, nil
}
