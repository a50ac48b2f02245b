package datastore

import (
	"context"

	"intakealert/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableQuestionTranslation(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.QuestionTranslation)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().
		Model((*models.QuestionTranslation)(nil)).
		Index("index_question_translation_question_id_language_code").
		Column("question_id", "language_code").
		Unique().IfNotExists().Exec(ctx)

	return err
}

func GetQuestionTranslations(ctx context.Context, db *bun.DB, questionIDs []string) ([]*models.QuestionTranslation, error) {
	if len(questionIDs) == 0 {
		return nil, nil
	}

	var translations []*models.QuestionTranslation
	err := db.NewSelect().Model(&translations).
		Where("question_id IN (?)", bun.In(questionIDs)).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return translations, nil
}

func UpsertQuestionTranslation(ctx context.Context, db *bun.DB, translation *models.QuestionTranslation) error {
	_, err := db.NewInsert().Model(translation).
		On("CONFLICT (question_id, language_code) DO UPDATE").
		Set("question_text = EXCLUDED.question_text").
		Exec(ctx)
	return err
}
