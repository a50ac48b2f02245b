package datastore

import (
	"context"

	"intakealert/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableDoctor(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Doctor)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().
		Model((*models.Doctor)(nil)).
		Index("index_doctor_shareable_slug").
		Column("shareable_slug").
		Unique().IfNotExists().Exec(ctx)

	return err
}

func CreateTableDoctorLink(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.DoctorLink)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().
		Model((*models.DoctorLink)(nil)).
		Index("index_doctor_link_doctor_id").
		Column("doctor_id").
		Unique().IfNotExists().Exec(ctx)

	return err
}

func GetDoctorBySlug(ctx context.Context, db *bun.DB, slug string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := db.NewSelect().Model(&doctor).Where("shareable_slug = ?", slug).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func GetDoctorByID(ctx context.Context, db *bun.DB, doctorID int) (*models.Doctor, error) {
	var doctor models.Doctor
	err := db.NewSelect().Model(&doctor).Where("id = ?", doctorID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func GetDoctors(ctx context.Context, db *bun.DB) ([]*models.Doctor, error) {
	var doctors []*models.Doctor
	err := db.NewSelect().Model(&doctors).Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func DoctorSlugExists(ctx context.Context, db *bun.DB, slug string) (bool, error) {
	return db.NewSelect().Model((*models.Doctor)(nil)).
		Where("shareable_slug = ?", slug).
		Exists(ctx)
}

func CreateDoctor(ctx context.Context, db *bun.DB, doctor *models.Doctor) error {
	_, err := db.NewInsert().Model(doctor).Exec(ctx)
	return err
}

func UpsertDoctorLink(ctx context.Context, db *bun.DB, link *models.DoctorLink) error {
	_, err := db.NewInsert().Model(link).
		On("CONFLICT (doctor_id) DO UPDATE").
		Set("link = EXCLUDED.link").
		Exec(ctx)
	return err
}

func GetDoctorLink(ctx context.Context, db *bun.DB, doctorID int) (*models.DoctorLink, error) {
	var link models.DoctorLink
	err := db.NewSelect().Model(&link).Where("doctor_id = ?", doctorID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &link, nil
}
