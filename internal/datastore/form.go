package datastore

import (
	"context"

	"intakealert/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableForm(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Form)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().
		Model((*models.Form)(nil)).
		Index("index_form_form_id").
		Column("form_id").
		Unique().IfNotExists().Exec(ctx)

	return err
}

func CreateTableFormTranslation(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.FormTranslation)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().
		Model((*models.FormTranslation)(nil)).
		Index("index_form_translation_form_id_language_code").
		Column("form_id", "language_code").
		Unique().IfNotExists().Exec(ctx)

	return err
}

func GetForm(ctx context.Context, db *bun.DB, formID string) (*models.Form, error) {
	var form models.Form
	err := db.NewSelect().Model(&form).Where("form_id = ?", formID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func GetForms(ctx context.Context, db *bun.DB) ([]*models.Form, error) {
	var forms []*models.Form
	err := db.NewSelect().Model(&forms).Order("form_id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return forms, nil
}

func GetFormTranslations(ctx context.Context, db *bun.DB, formID string) ([]*models.FormTranslation, error) {
	var translations []*models.FormTranslation
	err := db.NewSelect().Model(&translations).Where("form_id = ?", formID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return translations, nil
}

func UpsertForm(ctx context.Context, db *bun.DB, form *models.Form) error {
	_, err := db.NewInsert().Model(form).
		On("CONFLICT (form_id) DO UPDATE").
		Set("description = EXCLUDED.description").
		Exec(ctx)
	return err
}

func UpsertFormTranslation(ctx context.Context, db *bun.DB, translation *models.FormTranslation) error {
	_, err := db.NewInsert().Model(translation).
		On("CONFLICT (form_id, language_code) DO UPDATE").
		Set("form_name = EXCLUDED.form_name").
		Exec(ctx)
	return err
}
