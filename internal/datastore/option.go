package datastore

import (
	"context"

	"intakealert/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableQuestionOption(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.QuestionOption)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().
		Model((*models.QuestionOption)(nil)).
		Index("index_question_option_option_id").
		Column("option_id").
		Unique().IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().
		Model((*models.QuestionOption)(nil)).
		Index("index_question_option_question_id").
		Column("question_id").
		IfNotExists().Exec(ctx)

	return err
}

func CreateTableOptionTranslation(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.OptionTranslation)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().
		Model((*models.OptionTranslation)(nil)).
		Index("index_option_translation_option_id_language_code").
		Column("option_id", "language_code").
		Unique().IfNotExists().Exec(ctx)

	return err
}

// GetOptionsByQuestions returns options for all listed questions ordered
// within each question by sequence_no, insertion order breaking ties.
func GetOptionsByQuestions(ctx context.Context, db *bun.DB, questionIDs []string) ([]*models.QuestionOption, error) {
	if len(questionIDs) == 0 {
		return nil, nil
	}

	var options []*models.QuestionOption
	err := db.NewSelect().Model(&options).
		Where("question_id IN (?)", bun.In(questionIDs)).
		Order("question_id ASC", "sequence_no ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return options, nil
}

func GetOptionByOptionID(ctx context.Context, db *bun.DB, optionID string) (*models.QuestionOption, error) {
	var option models.QuestionOption
	err := db.NewSelect().Model(&option).Where("option_id = ?", optionID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &option, nil
}

func GetOptionTranslations(ctx context.Context, db *bun.DB, optionIDs []string) ([]*models.OptionTranslation, error) {
	if len(optionIDs) == 0 {
		return nil, nil
	}

	var translations []*models.OptionTranslation
	err := db.NewSelect().Model(&translations).
		Where("option_id IN (?)", bun.In(optionIDs)).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return translations, nil
}

func UpsertQuestionOption(ctx context.Context, db *bun.DB, option *models.QuestionOption) error {
	_, err := db.NewInsert().Model(option).
		On("CONFLICT (option_id) DO UPDATE").
		Set("question_id = EXCLUDED.question_id").
		Set("sequence_no = EXCLUDED.sequence_no").
		Set("is_red_flag_option = EXCLUDED.is_red_flag_option").
		Set("shows_text_field = EXCLUDED.shows_text_field").
		Exec(ctx)
	return err
}

func UpsertOptionTranslation(ctx context.Context, db *bun.DB, translation *models.OptionTranslation) error {
	_, err := db.NewInsert().Model(translation).
		On("CONFLICT (option_id, language_code) DO UPDATE").
		Set("option_text = EXCLUDED.option_text").
		Exec(ctx)
	return err
}
