package models

import (
	"reflect"
	"testing"
)

func TestNormalizeSelection(t *testing.T) {
	if got := NormalizeSelection("opt_a"); !reflect.DeepEqual(got, []string{"opt_a"}) {
		t.Errorf("expected single value wrapped, got %v", got)
	}
	if got := NormalizeSelection(""); got != nil {
		t.Errorf("expected nil for empty string, got %v", got)
	}
	if got := NormalizeSelection([]string{"opt_a", "", "opt_b"}); !reflect.DeepEqual(got, []string{"opt_a", "opt_b"}) {
		t.Errorf("expected blanks stripped, got %v", got)
	}
	// JSON decoding produces []any
	if got := NormalizeSelection([]any{"opt_a", 42, "opt_b"}); !reflect.DeepEqual(got, []string{"opt_a", "opt_b"}) {
		t.Errorf("expected non-strings skipped, got %v", got)
	}
	if got := NormalizeSelection(nil); got != nil {
		t.Errorf("expected nil for nil, got %v", got)
	}
	if got := NormalizeSelection(7); got != nil {
		t.Errorf("expected nil for unknown shape, got %v", got)
	}
}

func TestNormalizeAnswer_Text(t *testing.T) {
	q := &Question{QuestionID: "q1", QuestionType: QuestionText}

	value, answered := q.NormalizeAnswer("lower back")
	if value != "lower back" || !answered {
		t.Errorf("expected text recorded as answered, got %v %v", value, answered)
	}

	value, answered = q.NormalizeAnswer(nil)
	if value != "" || answered {
		t.Errorf("expected empty text unanswered, got %v %v", value, answered)
	}
}

func TestNormalizeAnswer_Select(t *testing.T) {
	q := &Question{QuestionID: "q1", QuestionType: QuestionSelect}

	value, answered := q.NormalizeAnswer("opt_yes")
	if value != "opt_yes" || !answered {
		t.Errorf("expected single option id, got %v %v", value, answered)
	}

	// a list collapses to its first entry
	value, answered = q.NormalizeAnswer([]any{"opt_yes", "opt_no"})
	if value != "opt_yes" || !answered {
		t.Errorf("expected first option, got %v %v", value, answered)
	}

	_, answered = q.NormalizeAnswer(nil)
	if answered {
		t.Error("expected missing select to be unanswered")
	}
}

func TestNormalizeAnswer_MultiSelect(t *testing.T) {
	q := &Question{QuestionID: "q1", QuestionType: QuestionMultiSelect}

	value, answered := q.NormalizeAnswer([]any{"opt_a", "opt_b"})
	if !reflect.DeepEqual(value, []string{"opt_a", "opt_b"}) || !answered {
		t.Errorf("expected option list, got %v %v", value, answered)
	}

	value, answered = q.NormalizeAnswer(nil)
	if got, _ := value.([]string); len(got) != 0 || answered {
		t.Errorf("expected empty unanswered list, got %v %v", value, answered)
	}
}

func TestQuestionTypeValid(t *testing.T) {
	for _, v := range []QuestionType{QuestionText, QuestionSelect, QuestionMultiSelect} {
		if !v.Valid() {
			t.Errorf("expected %q to be valid", v)
		}
	}
	if QuestionType("dropdown").Valid() {
		t.Error("expected unknown type to be invalid")
	}
}
