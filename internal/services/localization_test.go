package services

import (
	"testing"

	"intakealert/internal/models"
)

func TestQuestionText_Fallbacks(t *testing.T) {
	q := &models.Question{
		QuestionID: "q_pain",
		Translations: []*models.QuestionTranslation{
			{QuestionID: "q_pain", LanguageCode: "en", QuestionText: "Do you have back pain?"},
			{QuestionID: "q_pain", LanguageCode: "hi", QuestionText: "क्या आपको कमर दर्द है?"},
		},
	}

	if got := QuestionText(q, "hi"); got != "क्या आपको कमर दर्द है?" {
		t.Errorf("expected exact match, got %q", got)
	}
	if got := QuestionText(q, "fr"); got != "Do you have back pain?" {
		t.Errorf("expected English fallback for fr, got %q", got)
	}

	q.Translations = nil
	if got := QuestionText(q, "hi"); got != "q_pain" {
		t.Errorf("expected raw identifier when untranslated, got %q", got)
	}
}

func TestFormName_Fallbacks(t *testing.T) {
	form := &models.Form{
		FormID: "back_pain",
		Translations: []*models.FormTranslation{
			{FormID: "back_pain", LanguageCode: "en", FormName: "Back Pain Intake"},
		},
	}

	if got := FormName(form, "ta"); got != "Back Pain Intake" {
		t.Errorf("expected English fallback, got %q", got)
	}

	form.Translations = nil
	if got := FormName(form, "ta"); got != "back_pain" {
		t.Errorf("expected form id placeholder, got %q", got)
	}
}

func TestOptionText_Fallbacks(t *testing.T) {
	o := &models.QuestionOption{
		OptionID: "opt_pain_yes",
		Translations: []*models.OptionTranslation{
			{OptionID: "opt_pain_yes", LanguageCode: "en", OptionText: "Yes"},
		},
	}

	if got := OptionText(o, "en"); got != "Yes" {
		t.Errorf("expected English text, got %q", got)
	}
	if got := OptionText(o, "hi"); got != "Yes" {
		t.Errorf("expected English fallback, got %q", got)
	}

	o.Translations = nil
	if got := OptionText(o, "en"); got != "opt_pain_yes" {
		t.Errorf("expected option id placeholder, got %q", got)
	}
}

func TestRedFlagText_PerFieldFallback(t *testing.T) {
	flag := &models.RedFlag{
		RedFlagID:              "rf_cauda_equina",
		DefaultPatientResponse: "Please seek urgent care.",
		DoctorAtAGlance:        "Possible cauda equina syndrome.",
		Translations: []*models.RedFlagTranslation{
			// Hindi translated only the patient side
			{RedFlagID: "rf_cauda_equina", LanguageCode: "hi", PatientResponse: "कृपया तुरंत डॉक्टर से मिलें।"},
			{RedFlagID: "rf_cauda_equina", LanguageCode: "en", PatientResponse: "See a doctor immediately.", DoctorAtAGlance: "Rule out cauda equina."},
		},
	}

	if got := RedFlagPatientText(flag, "hi"); got != "कृपया तुरंत डॉक्टर से मिलें।" {
		t.Errorf("expected Hindi patient text, got %q", got)
	}
	// doctor side has no Hindi text, falls through to English independently
	if got := RedFlagDoctorText(flag, "hi"); got != "Rule out cauda equina." {
		t.Errorf("expected English doctor fallback, got %q", got)
	}
}

func TestRedFlagText_BuiltInDefault(t *testing.T) {
	flag := &models.RedFlag{
		RedFlagID:              "rf_infection",
		DefaultPatientResponse: "Please seek urgent care.",
		DoctorAtAGlance:        "Possible spinal infection.",
	}

	if got := RedFlagPatientText(flag, "hi"); got != "Please seek urgent care." {
		t.Errorf("expected built-in patient default, got %q", got)
	}
	if got := RedFlagDoctorText(flag, "hi"); got != "Possible spinal infection." {
		t.Errorf("expected built-in doctor default, got %q", got)
	}
}
