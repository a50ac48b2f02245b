package models

import "github.com/uptrace/bun"

type QuestionType string

const (
	QuestionText        QuestionType = "text"
	QuestionSelect      QuestionType = "select"
	QuestionMultiSelect QuestionType = "multi_select"
)

func (v QuestionType) Valid() bool {
	switch v {
	case QuestionText, QuestionSelect, QuestionMultiSelect:
		return true
	default:
		return false
	}
}

// db
type Question struct {
	bun.BaseModel    `bun:"table:question"`
	ID               int          `bun:"id,pk,autoincrement" json:"-"`
	QuestionID       string       `bun:"question_id" json:"question_id"`
	FormID           string       `bun:"form_id" json:"form_id"`
	SequenceNo       int          `bun:"sequence_no" json:"sequence_no"`
	QuestionType     QuestionType `bun:"question_type" json:"question_type"`
	BranchingType    *string      `bun:"branching_type" json:"branching_type,omitempty"`
	ParentQuestionID *string      `bun:"parent_question_id" json:"parent_question_id,omitempty"`
	ShowsTextField   bool         `bun:"shows_text_field" json:"shows_text_field"`

	Options          []*QuestionOption      `bun:"-" json:"options,omitempty"`
	TriggerOptionIDs []string               `bun:"-" json:"trigger_option_ids,omitempty"`
	Translations     []*QuestionTranslation `bun:"-" json:"translations,omitempty"`
}

// db
type QuestionTranslation struct {
	bun.BaseModel `bun:"table:question_translation"`
	ID            int    `bun:"id,pk,autoincrement" json:"-"`
	QuestionID    string `bun:"question_id" json:"question_id"`
	LanguageCode  string `bun:"language_code" json:"language_code"`
	QuestionText  string `bun:"question_text" json:"question_text"`
}

// TextKey is the companion answer key collected when the question has its
// free-text field enabled. It shares the owning question's visibility.
func (q *Question) TextKey() string {
	return q.QuestionID + "_text"
}

// NormalizeAnswer coerces a raw submitted value into the shape stored for
// this question type: free text for text questions, a single option id for
// selects, a list of option ids for multi selects. The second return reports
// whether the value counts as answered.
func (q *Question) NormalizeAnswer(raw any) (any, bool) {
	switch q.QuestionType {
	case QuestionText:
		s := stringValue(raw)
		return s, s != ""
	case QuestionSelect:
		selected := NormalizeSelection(raw)
		if len(selected) == 0 {
			return nil, false
		}
		return selected[0], true
	case QuestionMultiSelect:
		selected := NormalizeSelection(raw)
		if len(selected) == 0 {
			return []string{}, false
		}
		return selected, true
	default:
		return nil, false
	}
}

func stringValue(raw any) string {
	s, _ := raw.(string)
	return s
}
