package models

import (
	"strings"
	"testing"
)

func strptr(s string) *string {
	return &s
}

func TestFormSnapshotValidate_DanglingParent(t *testing.T) {
	snapshot := &FormSnapshot{
		Form: &Form{FormID: "back_pain"},
		Questions: []*Question{
			{QuestionID: "q1", FormID: "back_pain"},
			{QuestionID: "q2", FormID: "back_pain", ParentQuestionID: strptr("q_missing")},
		},
	}

	err := snapshot.Validate()
	if err == nil {
		t.Fatal("expected error for parent outside the form")
	}
	if !strings.Contains(err.Error(), "q_missing") {
		t.Errorf("expected the dangling parent to be named, got %v", err)
	}
}

func TestFormSnapshotValidate_ParentCycle(t *testing.T) {
	snapshot := &FormSnapshot{
		Form: &Form{FormID: "back_pain"},
		Questions: []*Question{
			{QuestionID: "q1", FormID: "back_pain", ParentQuestionID: strptr("q2")},
			{QuestionID: "q2", FormID: "back_pain", ParentQuestionID: strptr("q1")},
		},
	}

	if err := snapshot.Validate(); err == nil {
		t.Fatal("expected error for parent cycle")
	}
}

func TestFormSnapshotValidate_WellFormedTree(t *testing.T) {
	snapshot := &FormSnapshot{
		Form: &Form{FormID: "back_pain"},
		Questions: []*Question{
			{QuestionID: "q1", FormID: "back_pain"},
			{QuestionID: "q2", FormID: "back_pain", ParentQuestionID: strptr("q1")},
			{QuestionID: "q3", FormID: "back_pain", ParentQuestionID: strptr("q2")},
		},
	}

	if err := snapshot.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q := snapshot.QuestionByID("q2"); q == nil || q.QuestionID != "q2" {
		t.Errorf("expected lookup to resolve q2, got %v", q)
	}
}
