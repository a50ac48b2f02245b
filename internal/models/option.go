package models

import "github.com/uptrace/bun"

// db
type QuestionOption struct {
	bun.BaseModel   `bun:"table:question_option"`
	ID              int    `bun:"id,pk,autoincrement" json:"-"`
	OptionID        string `bun:"option_id" json:"option_id"`
	QuestionID      string `bun:"question_id" json:"question_id"`
	SequenceNo      int    `bun:"sequence_no" json:"sequence_no"`
	IsRedFlagOption bool   `bun:"is_red_flag_option" json:"is_red_flag_option"`
	ShowsTextField  bool   `bun:"shows_text_field" json:"shows_text_field"`

	Translations []*OptionTranslation `bun:"-" json:"translations,omitempty"`
}

// db
type OptionTranslation struct {
	bun.BaseModel `bun:"table:option_translation"`
	ID            int    `bun:"id,pk,autoincrement" json:"-"`
	OptionID      string `bun:"option_id" json:"option_id"`
	LanguageCode  string `bun:"language_code" json:"language_code"`
	OptionText    string `bun:"option_text" json:"option_text"`
}

// db
type QuestionCondition struct {
	bun.BaseModel   `bun:"table:question_condition"`
	ID              int    `bun:"id,pk,autoincrement" json:"-"`
	QuestionID      string `bun:"question_id" json:"question_id"`
	TriggerOptionID string `bun:"trigger_option_id" json:"trigger_option_id"`
}
