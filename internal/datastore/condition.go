package datastore

import (
	"context"

	"intakealert/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableQuestionCondition(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.QuestionCondition)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().
		Model((*models.QuestionCondition)(nil)).
		Index("index_question_condition_question_id_trigger_option_id").
		Column("question_id", "trigger_option_id").
		Unique().IfNotExists().Exec(ctx)

	return err
}

func GetConditionsByQuestions(ctx context.Context, db *bun.DB, questionIDs []string) ([]*models.QuestionCondition, error) {
	if len(questionIDs) == 0 {
		return nil, nil
	}

	var conditions []*models.QuestionCondition
	err := db.NewSelect().Model(&conditions).
		Where("question_id IN (?)", bun.In(questionIDs)).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return conditions, nil
}

// UpsertQuestionCondition inserts the (question, trigger option) edge.
// The pair is the whole row, so conflicts are ignored.
func UpsertQuestionCondition(ctx context.Context, db *bun.DB, condition *models.QuestionCondition) error {
	_, err := db.NewInsert().Model(condition).Ignore().Exec(ctx)
	return err
}
