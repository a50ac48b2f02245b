package datastore

import (
	"context"

	"intakealert/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableQuestion(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Question)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().
		Model((*models.Question)(nil)).
		Index("index_question_question_id").
		Column("question_id").
		Unique().IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().
		Model((*models.Question)(nil)).
		Index("index_question_form_id").
		Column("form_id").
		IfNotExists().Exec(ctx)

	return err
}

// GetQuestionsByForm returns the form's questions in presentation order:
// sequence_no ascending, insertion order breaking ties.
func GetQuestionsByForm(ctx context.Context, db *bun.DB, formID string) ([]*models.Question, error) {
	var questions []*models.Question
	err := db.NewSelect().Model(&questions).
		Where("form_id = ?", formID).
		Order("sequence_no ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func UpsertQuestion(ctx context.Context, db *bun.DB, question *models.Question) error {
	_, err := db.NewInsert().Model(question).
		On("CONFLICT (question_id) DO UPDATE").
		Set("form_id = EXCLUDED.form_id").
		Set("sequence_no = EXCLUDED.sequence_no").
		Set("question_type = EXCLUDED.question_type").
		Set("branching_type = EXCLUDED.branching_type").
		Set("parent_question_id = EXCLUDED.parent_question_id").
		Set("shows_text_field = EXCLUDED.shows_text_field").
		Exec(ctx)
	return err
}

// DeleteQuestion removes a question and clears the parent reference on its
// children, promoting them to top level instead of cascading.
func DeleteQuestion(ctx context.Context, db *bun.DB, questionID string) error {
	_, err := db.NewUpdate().Model((*models.Question)(nil)).
		Set("parent_question_id = NULL").
		Where("parent_question_id = ?", questionID).
		Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewDelete().Model((*models.Question)(nil)).
		Where("question_id = ?", questionID).
		Exec(ctx)
	return err
}
