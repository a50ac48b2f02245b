package models

import "fmt"

// FormSnapshot is one coherent view of a form's question tree: ordered
// questions with their options, trigger conditions, option to red-flag
// edges and every translation the form can need. Evaluation always runs
// against a snapshot, never against live catalog rows, so concurrent
// administrative edits cannot produce a half-updated view mid-request.
type FormSnapshot struct {
	Form               *Form               `json:"form"`
	Questions          []*Question         `json:"questions"`
	RedFlagIDsByOption map[string][]string `json:"red_flag_ids_by_option"`
	RedFlags           map[string]*RedFlag `json:"red_flags"`

	byID map[string]*Question
}

// QuestionByID looks a question up in the snapshot arena. Parent references
// are resolved through this lookup rather than embedded pointers.
func (s *FormSnapshot) QuestionByID(questionID string) *Question {
	if s.byID == nil {
		s.Index()
	}
	return s.byID[questionID]
}

// Index rebuilds the arena lookup. Called after construction and after the
// snapshot is decoded from cache.
func (s *FormSnapshot) Index() {
	s.byID = make(map[string]*Question, len(s.Questions))
	for _, q := range s.Questions {
		s.byID[q.QuestionID] = q
	}
}

// Validate rejects question trees the evaluator cannot safely walk: parent
// references to questions outside the form and parent cycles. Ingestion runs
// this before writing so evaluation never has to guard against loops.
func (s *FormSnapshot) Validate() error {
	s.Index()
	for _, q := range s.Questions {
		if q.ParentQuestionID == nil {
			continue
		}
		if s.byID[*q.ParentQuestionID] == nil {
			return fmt.Errorf("question %s: parent %s not in form %s", q.QuestionID, *q.ParentQuestionID, s.Form.FormID)
		}
	}
	for _, q := range s.Questions {
		visited := map[string]bool{q.QuestionID: true}
		current := q
		for current.ParentQuestionID != nil {
			parent := s.byID[*current.ParentQuestionID]
			if visited[parent.QuestionID] {
				return fmt.Errorf("question %s: parent cycle through %s", q.QuestionID, parent.QuestionID)
			}
			visited[parent.QuestionID] = true
			current = parent
		}
	}
	return nil
}
