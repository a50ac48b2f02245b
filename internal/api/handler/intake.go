package handler

import (
	"errors"

	"intakealert/internal/interfaces"
	"intakealert/internal/models"
	"intakealert/internal/services"

	"github.com/go-redis/redis_rate/v10"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupIntake struct {
	container *do.Injector
}

// Context returns everything the patient start page needs for a doctor's
// shareable link: the doctor, the available languages and the form picker
// localized to the requested language.
func (gr *groupIntake) Context(c echo.Context) error {
	serviceDoctor, err := do.Invoke[*services.ServiceDoctor](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	ctx := c.Request().Context()
	doctor, err := serviceDoctor.GetDoctorBySlug(ctx, c.Param("slug"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	languageCode := c.QueryParam("lang")
	if languageCode == "" {
		languageCode = services.FALLBACK_LANGUAGE_CODE
	}

	languages, err := serviceCatalog.GetLanguages(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	forms, err := serviceCatalog.GetForms(ctx)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	formChoices := make([]formChoice, 0, len(forms))
	for _, form := range forms {
		formChoices = append(formChoices, formChoice{
			FormID: form.FormID,
			Name:   services.FormName(form, languageCode),
		})
	}

	result := struct {
		Doctor    *models.Doctor     `json:"doctor"`
		Languages []*models.Language `json:"languages"`
		Forms     []formChoice       `json:"forms"`
	}{
		Doctor:    doctor,
		Languages: languages,
		Forms:     formChoices,
	}

	return httpx.RestAbort(c, result, nil)
}

func (gr *groupIntake) ShowForm(c echo.Context) error {
	serviceDoctor, err := do.Invoke[*services.ServiceDoctor](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	ctx := c.Request().Context()
	doctor, err := serviceDoctor.GetDoctorBySlug(ctx, c.Param("slug"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	languageCode := c.QueryParam("lang")
	if languageCode == "" {
		languageCode = services.FALLBACK_LANGUAGE_CODE
	}
	language, err := serviceCatalog.GetLanguageByCode(ctx, languageCode)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	snapshot, err := serviceCatalog.GetForm(ctx, c.Param("form_id"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	result := struct {
		Doctor    *models.Doctor     `json:"doctor"`
		FormID    string             `json:"form_id"`
		FormName  string             `json:"form_name"`
		Language  *models.Language   `json:"language"`
		Questions []renderedQuestion `json:"questions"`
	}{
		Doctor:    doctor,
		FormID:    snapshot.Form.FormID,
		FormName:  services.FormName(snapshot.Form, language.Code),
		Language:  language,
		Questions: renderQuestions(snapshot, language.Code),
	}

	return httpx.RestAbort(c, result, nil)
}

func (gr *groupIntake) Submit(c echo.Context) error {
	serviceDoctor, err := do.Invoke[*services.ServiceDoctor](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	serviceIntake, err := do.Invoke[*services.ServiceIntake](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	limiter, err := do.Invoke[interfaces.Limiter](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	ctx := c.Request().Context()
	slug := c.Param("slug")

	err = limiter.Allow(ctx, services.LimitKeySubmit(slug), redis_rate.PerMinute(services.SUBMIT_RATE_LIMIT_PER_MINUTE))
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("too many submissions"), errorx.RateLimiting))
	}

	doctor, err := serviceDoctor.GetDoctorBySlug(ctx, slug)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload submitPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	language, err := serviceCatalog.GetLanguageByCode(ctx, payload.Language)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	snapshot, err := serviceCatalog.GetForm(ctx, c.Param("form_id"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	submission, payloads, err := serviceIntake.Submit(ctx, doctor, snapshot, language, payload.PatientName, payload.PatientMobile, payload.Answers)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	flags := make([]patientFlag, 0, len(payloads))
	for _, p := range payloads {
		flags = append(flags, patientFlag{
			RedFlagID: p.RedFlag.RedFlagID,
			Severity:  p.RedFlag.Severity,
			Text:      p.PatientText,
			VideoURL:  p.RedFlag.PatientVideoURL,
		})
	}

	result := struct {
		RecordID string        `json:"record_id"`
		RedFlags []patientFlag `json:"red_flags"`
	}{
		RecordID: submission.RecordID,
		RedFlags: flags,
	}

	return httpx.RestAbort(c, result, nil)
}

type submitPayload struct {
	PatientName   string           `json:"patient_name"`
	PatientMobile string           `json:"patient_mobile"`
	Language      string           `json:"language"`
	Answers       models.AnswerMap `json:"answers"`
}

type formChoice struct {
	FormID string `json:"form_id"`
	Name   string `json:"name"`
}

type patientFlag struct {
	RedFlagID string `json:"red_flag_id"`
	Severity  string `json:"severity"`
	Text      string `json:"text"`
	VideoURL  string `json:"video_url,omitempty"`
}

type renderedOption struct {
	ID             string `json:"id"`
	Text           string `json:"text"`
	ShowsTextField bool   `json:"shows_text_field"`
}

type renderedQuestion struct {
	ID             string              `json:"id"`
	Text           string              `json:"text"`
	Type           models.QuestionType `json:"type"`
	ParentID       *string             `json:"parent_id,omitempty"`
	ShowsTextField bool                `json:"shows_text_field"`
	Conditions     []string            `json:"conditions"`
	Options        []renderedOption    `json:"options"`
}

func renderQuestions(snapshot *models.FormSnapshot, languageCode string) []renderedQuestion {
	rendered := make([]renderedQuestion, 0, len(snapshot.Questions))
	for _, q := range snapshot.Questions {
		options := make([]renderedOption, 0, len(q.Options))
		for _, option := range q.Options {
			options = append(options, renderedOption{
				ID:             option.OptionID,
				Text:           services.OptionText(option, languageCode),
				ShowsTextField: option.ShowsTextField,
			})
		}

		rendered = append(rendered, renderedQuestion{
			ID:             q.QuestionID,
			Text:           services.QuestionText(q, languageCode),
			Type:           q.QuestionType,
			ParentID:       q.ParentQuestionID,
			ShowsTextField: q.ShowsTextField,
			Conditions:     q.TriggerOptionIDs,
			Options:        options,
		})
	}
	return rendered
}
