package datastore

import (
	"context"

	"intakealert/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableRedFlag(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.RedFlag)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().
		Model((*models.RedFlag)(nil)).
		Index("index_red_flag_red_flag_id").
		Column("red_flag_id").
		Unique().IfNotExists().Exec(ctx)

	return err
}

func CreateTableRedFlagTranslation(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.RedFlagTranslation)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().
		Model((*models.RedFlagTranslation)(nil)).
		Index("index_red_flag_translation_red_flag_id_language_code").
		Column("red_flag_id", "language_code").
		Unique().IfNotExists().Exec(ctx)

	return err
}

func CreateTableOptionRedFlagMap(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.OptionRedFlagMap)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().
		Model((*models.OptionRedFlagMap)(nil)).
		Index("index_option_red_flag_map_option_id_red_flag_id").
		Column("option_id", "red_flag_id").
		Unique().IfNotExists().Exec(ctx)

	return err
}

func GetRedFlag(ctx context.Context, db *bun.DB, redFlagID string) (*models.RedFlag, error) {
	var flag models.RedFlag
	err := db.NewSelect().Model(&flag).Where("red_flag_id = ?", redFlagID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &flag, nil
}

func GetRedFlags(ctx context.Context, db *bun.DB, redFlagIDs []string) ([]*models.RedFlag, error) {
	if len(redFlagIDs) == 0 {
		return nil, nil
	}

	var flags []*models.RedFlag
	err := db.NewSelect().Model(&flags).
		Where("red_flag_id IN (?)", bun.In(redFlagIDs)).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return flags, nil
}

func GetRedFlagTranslations(ctx context.Context, db *bun.DB, redFlagIDs []string) ([]*models.RedFlagTranslation, error) {
	if len(redFlagIDs) == 0 {
		return nil, nil
	}

	var translations []*models.RedFlagTranslation
	err := db.NewSelect().Model(&translations).
		Where("red_flag_id IN (?)", bun.In(redFlagIDs)).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return translations, nil
}

// GetOptionRedFlagMaps returns every option to red-flag edge for the listed
// options.
func GetOptionRedFlagMaps(ctx context.Context, db *bun.DB, optionIDs []string) ([]*models.OptionRedFlagMap, error) {
	if len(optionIDs) == 0 {
		return nil, nil
	}

	var edges []*models.OptionRedFlagMap
	err := db.NewSelect().Model(&edges).
		Where("option_id IN (?)", bun.In(optionIDs)).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return edges, nil
}

func UpsertRedFlag(ctx context.Context, db *bun.DB, flag *models.RedFlag) error {
	_, err := db.NewInsert().Model(flag).
		On("CONFLICT (red_flag_id) DO UPDATE").
		Set("severity = EXCLUDED.severity").
		Set("default_patient_response = EXCLUDED.default_patient_response").
		Set("patient_video_url = EXCLUDED.patient_video_url").
		Set("doctor_at_a_glance = EXCLUDED.doctor_at_a_glance").
		Set("doctor_video_url = EXCLUDED.doctor_video_url").
		Exec(ctx)
	return err
}

func UpsertRedFlagTranslation(ctx context.Context, db *bun.DB, translation *models.RedFlagTranslation) error {
	_, err := db.NewInsert().Model(translation).
		On("CONFLICT (red_flag_id, language_code) DO UPDATE").
		Set("patient_response = EXCLUDED.patient_response").
		Set("doctor_at_a_glance = EXCLUDED.doctor_at_a_glance").
		Exec(ctx)
	return err
}

func UpsertOptionRedFlagMap(ctx context.Context, db *bun.DB, edge *models.OptionRedFlagMap) error {
	_, err := db.NewInsert().Model(edge).Ignore().Exec(ctx)
	return err
}
