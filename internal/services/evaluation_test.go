package services

import (
	"reflect"
	"strings"
	"testing"

	"intakealert/internal/models"
)

func strptr(s string) *string {
	return &s
}

// backSnapshot models a short low-back-pain form: a root select, a
// conditional follow-up triggered by one option, and a text question that
// depends on the follow-up's flagged option.
func backSnapshot() *models.FormSnapshot {
	snapshot := &models.FormSnapshot{
		Form: &models.Form{FormID: "back_pain"},
		Questions: []*models.Question{
			{
				QuestionID:   "q_pain",
				FormID:       "back_pain",
				SequenceNo:   1,
				QuestionType: models.QuestionSelect,
			},
			{
				QuestionID:       "q_radiating",
				FormID:           "back_pain",
				SequenceNo:       2,
				QuestionType:     models.QuestionMultiSelect,
				ParentQuestionID: strptr("q_pain"),
				TriggerOptionIDs: []string{"opt_pain_yes"},
			},
			{
				QuestionID:       "q_details",
				FormID:           "back_pain",
				SequenceNo:       3,
				QuestionType:     models.QuestionText,
				ParentQuestionID: strptr("q_radiating"),
				TriggerOptionIDs: []string{"opt_numbness"},
			},
		},
		RedFlagIDsByOption: map[string][]string{
			"opt_numbness": {"rf_cauda_equina"},
			"opt_fever":    {"rf_infection", "rf_cauda_equina"},
		},
		RedFlags: map[string]*models.RedFlag{
			"rf_cauda_equina": {RedFlagID: "rf_cauda_equina", Severity: "urgent"},
			"rf_infection":    {RedFlagID: "rf_infection", Severity: "high"},
		},
	}
	snapshot.Index()
	return snapshot
}

func TestQuestionActive_NoParentAlwaysActive(t *testing.T) {
	q := &models.Question{QuestionID: "q_pain", QuestionType: models.QuestionSelect}
	if !QuestionActive(q, models.AnswerMap{}) {
		t.Error("expected root question to be active with no answers")
	}
}

func TestQuestionActive_ParentWithoutConditions(t *testing.T) {
	q := &models.Question{
		QuestionID:       "q_child",
		ParentQuestionID: strptr("q_pain"),
	}
	if !QuestionActive(q, models.AnswerMap{}) {
		t.Error("expected question with parent but no conditions to be active")
	}
}

func TestQuestionActive_TriggerIntersection(t *testing.T) {
	q := &models.Question{
		QuestionID:       "q_radiating",
		ParentQuestionID: strptr("q_pain"),
		TriggerOptionIDs: []string{"opt_pain_yes"},
	}

	if QuestionActive(q, models.AnswerMap{}) {
		t.Error("expected inactive when parent is unanswered")
	}
	if QuestionActive(q, models.AnswerMap{"q_pain": "opt_pain_no"}) {
		t.Error("expected inactive when parent answer misses every trigger")
	}
	if !QuestionActive(q, models.AnswerMap{"q_pain": "opt_pain_yes"}) {
		t.Error("expected active when parent answer hits a trigger")
	}
	// multi-select parents activate on any overlap
	if !QuestionActive(q, models.AnswerMap{"q_pain": []string{"opt_pain_no", "opt_pain_yes"}}) {
		t.Error("expected active when any selected option hits a trigger")
	}
	// values decoded from JSON arrive as []any
	if !QuestionActive(q, models.AnswerMap{"q_pain": []any{"opt_pain_yes"}}) {
		t.Error("expected active for []any parent answer")
	}
}

func TestActiveQuestions_ChainCollapses(t *testing.T) {
	snapshot := backSnapshot()

	active := ActiveQuestions(snapshot, models.AnswerMap{"q_pain": "opt_pain_no"})
	if len(active) != 1 || active[0].QuestionID != "q_pain" {
		t.Fatalf("expected only the root question, got %d", len(active))
	}

	active = ActiveQuestions(snapshot, models.AnswerMap{
		"q_pain":      "opt_pain_yes",
		"q_radiating": []string{"opt_numbness"},
	})
	if len(active) != 3 {
		t.Fatalf("expected the full chain, got %d questions", len(active))
	}
}

func TestActiveQuestions_StaleBranchIgnored(t *testing.T) {
	snapshot := backSnapshot()

	// q_radiating still carries a flagged answer from before the patient
	// flipped q_pain back to no; the dependent chain must not resurface.
	active := ActiveQuestions(snapshot, models.AnswerMap{
		"q_pain":      "opt_pain_no",
		"q_radiating": []string{"opt_numbness"},
	})
	if len(active) != 1 {
		t.Fatalf("expected stale branch to stay collapsed, got %d questions", len(active))
	}
}

func TestCollectAnswers_DropsInactive(t *testing.T) {
	snapshot := backSnapshot()

	collected, err := CollectAnswers(snapshot, models.AnswerMap{
		"q_pain":      "opt_pain_no",
		"q_radiating": []string{"opt_numbness"},
		"q_details":   "tingling in both legs",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := collected["q_radiating"]; ok {
		t.Error("expected inactive q_radiating answer to be dropped")
	}
	if _, ok := collected["q_details"]; ok {
		t.Error("expected inactive q_details answer to be dropped")
	}
	if collected["q_pain"] != "opt_pain_no" {
		t.Errorf("expected q_pain to be recorded, got %v", collected["q_pain"])
	}
}

func TestCollectAnswers_RequiredSelect(t *testing.T) {
	snapshot := backSnapshot()

	_, err := CollectAnswers(snapshot, models.AnswerMap{})
	if err == nil {
		t.Fatal("expected validation error for unanswered select")
	}
	if !strings.Contains(err.Error(), "requires an answer") {
		t.Errorf("expected 'requires an answer' error, got %v", err)
	}
}

func TestCollectAnswers_MultiSelectMayBeEmpty(t *testing.T) {
	snapshot := backSnapshot()

	collected, err := CollectAnswers(snapshot, models.AnswerMap{
		"q_pain": "opt_pain_yes",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	value, ok := collected["q_radiating"]
	if !ok {
		t.Fatal("expected active multi-select to be recorded even when empty")
	}
	if selected, _ := value.([]string); len(selected) != 0 {
		t.Errorf("expected empty selection, got %v", selected)
	}
}

func TestCollectAnswers_TextCompanion(t *testing.T) {
	snapshot := backSnapshot()
	snapshot.Questions[0].ShowsTextField = true

	collected, err := CollectAnswers(snapshot, models.AnswerMap{
		"q_pain":      "opt_pain_yes",
		"q_pain_text": "worse at night",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if collected["q_pain_text"] != "worse at night" {
		t.Errorf("expected companion text to be carried, got %v", collected["q_pain_text"])
	}
}

func TestTriggeredRedFlagIDs_UnionAndOrder(t *testing.T) {
	snapshot := backSnapshot()

	flagIDs := TriggeredRedFlagIDs(snapshot, models.AnswerMap{
		"q_pain":      "opt_pain_yes",
		"q_radiating": []string{"opt_numbness", "opt_fever"},
	})

	want := []string{"rf_cauda_equina", "rf_infection"}
	if !reflect.DeepEqual(flagIDs, want) {
		t.Errorf("expected %v, got %v", want, flagIDs)
	}
}

func TestTriggeredRedFlagIDs_DuplicatesCollapse(t *testing.T) {
	snapshot := backSnapshot()

	// opt_numbness and opt_fever both map rf_cauda_equina
	flagIDs := TriggeredRedFlagIDs(snapshot, models.AnswerMap{
		"q_radiating": []string{"opt_fever", "opt_numbness"},
	})
	count := 0
	for _, id := range flagIDs {
		if id == "rf_cauda_equina" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected rf_cauda_equina once, got %d occurrences", count)
	}
}

func TestTriggeredRedFlagIDs_UnknownOptionSkipped(t *testing.T) {
	snapshot := backSnapshot()

	flagIDs := TriggeredRedFlagIDs(snapshot, models.AnswerMap{
		"q_radiating": []string{"opt_removed_from_catalog"},
	})
	if len(flagIDs) != 0 {
		t.Errorf("expected no flags for unmapped options, got %v", flagIDs)
	}
}
