package services

import "intakealert/internal/models"

// Text resolution is three-tiered and applied per field, not per entity:
// exact language match, then English, then a built-in default where the
// entity carries one. Questions, options and forms have no built-in default,
// so an untranslated entity resolves to its raw identifier rather than
// failing the request.

func FormName(form *models.Form, languageCode string) string {
	if t := formTranslation(form, languageCode); t != nil {
		return t.FormName
	}
	if t := formTranslation(form, FALLBACK_LANGUAGE_CODE); t != nil {
		return t.FormName
	}
	return form.FormID
}

func QuestionText(q *models.Question, languageCode string) string {
	if t := questionTranslation(q, languageCode); t != nil {
		return t.QuestionText
	}
	if t := questionTranslation(q, FALLBACK_LANGUAGE_CODE); t != nil {
		return t.QuestionText
	}
	return q.QuestionID
}

func OptionText(o *models.QuestionOption, languageCode string) string {
	if t := optionTranslation(o, languageCode); t != nil {
		return t.OptionText
	}
	if t := optionTranslation(o, FALLBACK_LANGUAGE_CODE); t != nil {
		return t.OptionText
	}
	return o.OptionID
}

func RedFlagPatientText(flag *models.RedFlag, languageCode string) string {
	if t := redFlagTranslation(flag, languageCode); t != nil && t.PatientResponse != "" {
		return t.PatientResponse
	}
	if t := redFlagTranslation(flag, FALLBACK_LANGUAGE_CODE); t != nil && t.PatientResponse != "" {
		return t.PatientResponse
	}
	return flag.DefaultPatientResponse
}

func RedFlagDoctorText(flag *models.RedFlag, languageCode string) string {
	if t := redFlagTranslation(flag, languageCode); t != nil && t.DoctorAtAGlance != "" {
		return t.DoctorAtAGlance
	}
	if t := redFlagTranslation(flag, FALLBACK_LANGUAGE_CODE); t != nil && t.DoctorAtAGlance != "" {
		return t.DoctorAtAGlance
	}
	return flag.DoctorAtAGlance
}

func formTranslation(form *models.Form, languageCode string) *models.FormTranslation {
	for _, t := range form.Translations {
		if t.LanguageCode == languageCode {
			return t
		}
	}
	return nil
}

func questionTranslation(q *models.Question, languageCode string) *models.QuestionTranslation {
	for _, t := range q.Translations {
		if t.LanguageCode == languageCode {
			return t
		}
	}
	return nil
}

func optionTranslation(o *models.QuestionOption, languageCode string) *models.OptionTranslation {
	for _, t := range o.Translations {
		if t.LanguageCode == languageCode {
			return t
		}
	}
	return nil
}

func redFlagTranslation(flag *models.RedFlag, languageCode string) *models.RedFlagTranslation {
	for _, t := range flag.Translations {
		if t.LanguageCode == languageCode {
			return t
		}
	}
	return nil
}
