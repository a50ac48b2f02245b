package services

import (
	"fmt"
	"sort"

	"intakealert/internal/models"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
)

// QuestionActive reports whether a question must be presented and validated
// given the answers recorded so far.
//
// A question with no parent is always active. A question with a parent but
// no condition rows is active too: conditions are opt-in gating, not
// mandatory. Otherwise the question is active iff the parent's recorded
// answer intersects the trigger option set; an unanswered parent means
// inactive.
func QuestionActive(q *models.Question, answers models.AnswerMap) bool {
	if q.ParentQuestionID == nil {
		return true
	}

	if len(q.TriggerOptionIDs) == 0 {
		return true
	}

	parentAnswer := models.NormalizeSelection(answers[*q.ParentQuestionID])
	if len(parentAnswer) == 0 {
		return false
	}

	triggers := make(map[string]bool, len(q.TriggerOptionIDs))
	for _, optionID := range q.TriggerOptionIDs {
		triggers[optionID] = true
	}

	for _, optionID := range parentAnswer {
		if triggers[optionID] {
			return true
		}
	}

	return false
}

// ActiveQuestions walks the form in presentation order and returns the
// questions visible under the given answer map. Activity is evaluated
// against the answers of previously accepted questions only, so a chain of
// dependent questions collapses as soon as one link goes inactive.
func ActiveQuestions(snapshot *models.FormSnapshot, answers models.AnswerMap) []*models.Question {
	accepted := models.AnswerMap{}
	var active []*models.Question
	for _, q := range snapshot.Questions {
		if !QuestionActive(q, accepted) {
			continue
		}
		active = append(active, q)
		if v, ok := answers[q.QuestionID]; ok {
			accepted[q.QuestionID] = v
		}
	}
	return active
}

// CollectAnswers filters an untrusted raw answer map down to the form's
// active questions, normalizing each value for its question type and
// carrying "<id>_text" companion values for questions that show a free-text
// field. Stale client state for inactive questions is dropped, never stored.
//
// Single selects must carry exactly one choice; text and multi-select
// answers may be empty.
func CollectAnswers(snapshot *models.FormSnapshot, raw models.AnswerMap) (models.AnswerMap, error) {
	collected := models.AnswerMap{}
	for _, q := range snapshot.Questions {
		if !QuestionActive(q, collected) {
			continue
		}

		if !q.QuestionType.Valid() {
			return nil, errorx.Wrap(fmt.Errorf("question %s has unknown type %q", q.QuestionID, q.QuestionType), errorx.Validation)
		}

		value, answered := q.NormalizeAnswer(raw[q.QuestionID])
		if q.QuestionType == models.QuestionSelect && !answered {
			return nil, errorx.Wrap(fmt.Errorf("question %s requires an answer", q.QuestionID), errorx.Validation)
		}
		collected[q.QuestionID] = value

		if q.ShowsTextField {
			text, _ := raw[q.TextKey()].(string)
			collected[q.TextKey()] = text
		}
	}
	return collected, nil
}

// TriggeredRedFlagIDs unions the red flags mapped from every selected option
// in the answer map. Duplicate triggers collapse; option ids with no catalog
// entry are skipped, tolerating catalog drift between render and submit.
// The result is sorted so matching is order-independent and reproducible.
func TriggeredRedFlagIDs(snapshot *models.FormSnapshot, answers models.AnswerMap) []string {
	seen := map[string]bool{}
	for _, q := range snapshot.Questions {
		for _, optionID := range models.NormalizeSelection(answers[q.QuestionID]) {
			for _, flagID := range snapshot.RedFlagIDsByOption[optionID] {
				seen[flagID] = true
			}
		}
	}

	flagIDs := make([]string, 0, len(seen))
	for flagID := range seen {
		flagIDs = append(flagIDs, flagID)
	}
	sort.Strings(flagIDs)
	return flagIDs
}
