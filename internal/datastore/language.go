package datastore

import (
	"context"

	"intakealert/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableLanguage(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Language)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().
		Model((*models.Language)(nil)).
		Index("index_language_code").
		Column("code").
		Unique().IfNotExists().Exec(ctx)

	return err
}

func GetLanguages(ctx context.Context, db *bun.DB) ([]*models.Language, error) {
	var languages []*models.Language
	err := db.NewSelect().Model(&languages).Order("code ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return languages, nil
}

func GetLanguageByCode(ctx context.Context, db *bun.DB, code string) (*models.Language, error) {
	var language models.Language
	err := db.NewSelect().Model(&language).Where("code = ?", code).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &language, nil
}

func UpsertLanguage(ctx context.Context, db *bun.DB, language *models.Language) error {
	_, err := db.NewInsert().Model(language).
		On("CONFLICT (code) DO UPDATE").
		Set("name = EXCLUDED.name").
		Exec(ctx)
	return err
}
