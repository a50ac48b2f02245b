package services

import (
	"context"
	"database/sql"
	"errors"

	"intakealert/internal/datastore"
	"intakealert/internal/models"
	"intakealert/internal/pkg/caching"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceCatalog struct {
	container *do.Injector
	db        *bun.DB
	cache     caching.Cache
}

func NewServiceCatalog(container *do.Injector) (*ServiceCatalog, error) {
	db, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceCatalog{container, db, cache}, nil
}

// GetForm loads one coherent snapshot of the form's question tree: ordered
// questions with options, trigger conditions, translations and the option to
// red-flag edges. The snapshot is cached whole, so a mid-edit catalog never
// leaks a half-updated view into an in-flight submission.
func (service *ServiceCatalog) GetForm(ctx context.Context, formID string) (*models.FormSnapshot, error) {
	callback := func() (*models.FormSnapshot, error) {
		return service.loadFormSnapshot(ctx, formID)
	}

	snapshot, err := caching.UseCache(ctx, service.cache, DBKeyForm(formID), CACHE_TTL_15_MINS, callback)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errorx.Wrap(errors.New("form not found"), errorx.NotExist)
		}
		return nil, err
	}

	snapshot.Index()
	return snapshot, nil
}

func (service *ServiceCatalog) GetLanguages(ctx context.Context) ([]*models.Language, error) {
	callback := func() ([]*models.Language, error) {
		return datastore.GetLanguages(ctx, service.db)
	}

	return caching.UseCache(ctx, service.cache, DBKeyLanguages(), CACHE_TTL_1_HOUR, callback)
}

func (service *ServiceCatalog) GetLanguageByCode(ctx context.Context, code string) (*models.Language, error) {
	languages, err := service.GetLanguages(ctx)
	if err != nil {
		return nil, err
	}

	for _, language := range languages {
		if language.Code == code {
			return language, nil
		}
	}

	return nil, errorx.Wrap(errors.New("language not found"), errorx.NotExist)
}

// GetForms returns every form with its translations, for the intake start
// page form picker.
func (service *ServiceCatalog) GetForms(ctx context.Context) ([]*models.Form, error) {
	callback := func() ([]*models.Form, error) {
		forms, err := datastore.GetForms(ctx, service.db)
		if err != nil {
			return nil, err
		}

		for _, form := range forms {
			form.Translations, err = datastore.GetFormTranslations(ctx, service.db, form.FormID)
			if err != nil {
				return nil, err
			}
		}

		return forms, nil
	}

	return caching.UseCache(ctx, service.cache, DBKeyForms(), CACHE_TTL_15_MINS, callback)
}

func (service *ServiceCatalog) GetRedFlag(ctx context.Context, redFlagID string) (*models.RedFlag, error) {
	callback := func() (*models.RedFlag, error) {
		flag, err := datastore.GetRedFlag(ctx, service.db, redFlagID)
		if err != nil {
			return nil, err
		}

		flag.Translations, err = datastore.GetRedFlagTranslations(ctx, service.db, []string{redFlagID})
		if err != nil {
			return nil, err
		}

		return flag, nil
	}

	flag, err := caching.UseCache(ctx, service.cache, DBKeyRedFlag(redFlagID), CACHE_TTL_15_MINS, callback)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errorx.Wrap(errors.New("red flag not found"), errorx.NotExist)
		}
		return nil, err
	}

	return flag, nil
}

func (service *ServiceCatalog) loadFormSnapshot(ctx context.Context, formID string) (*models.FormSnapshot, error) {
	form, err := datastore.GetForm(ctx, service.db, formID)
	if err != nil {
		return nil, err
	}

	form.Translations, err = datastore.GetFormTranslations(ctx, service.db, formID)
	if err != nil {
		return nil, err
	}

	questions, err := datastore.GetQuestionsByForm(ctx, service.db, formID)
	if err != nil {
		return nil, err
	}

	questionIDs := make([]string, 0, len(questions))
	for _, q := range questions {
		questionIDs = append(questionIDs, q.QuestionID)
	}

	options, err := datastore.GetOptionsByQuestions(ctx, service.db, questionIDs)
	if err != nil {
		return nil, err
	}

	optionIDs := make([]string, 0, len(options))
	optionsByQuestion := map[string][]*models.QuestionOption{}
	for _, option := range options {
		optionIDs = append(optionIDs, option.OptionID)
		optionsByQuestion[option.QuestionID] = append(optionsByQuestion[option.QuestionID], option)
	}

	optionTranslations, err := datastore.GetOptionTranslations(ctx, service.db, optionIDs)
	if err != nil {
		return nil, err
	}
	for _, t := range optionTranslations {
		for _, option := range options {
			if option.OptionID == t.OptionID {
				option.Translations = append(option.Translations, t)
			}
		}
	}

	questionTranslations, err := datastore.GetQuestionTranslations(ctx, service.db, questionIDs)
	if err != nil {
		return nil, err
	}
	translationsByQuestion := map[string][]*models.QuestionTranslation{}
	for _, t := range questionTranslations {
		translationsByQuestion[t.QuestionID] = append(translationsByQuestion[t.QuestionID], t)
	}

	conditions, err := datastore.GetConditionsByQuestions(ctx, service.db, questionIDs)
	if err != nil {
		return nil, err
	}
	triggersByQuestion := map[string][]string{}
	for _, condition := range conditions {
		triggersByQuestion[condition.QuestionID] = append(triggersByQuestion[condition.QuestionID], condition.TriggerOptionID)
	}

	for _, q := range questions {
		q.Options = optionsByQuestion[q.QuestionID]
		q.Translations = translationsByQuestion[q.QuestionID]
		q.TriggerOptionIDs = triggersByQuestion[q.QuestionID]
	}

	edges, err := datastore.GetOptionRedFlagMaps(ctx, service.db, optionIDs)
	if err != nil {
		return nil, err
	}

	flagIDsByOption := map[string][]string{}
	flagIDSet := map[string]bool{}
	var flagIDs []string
	for _, edge := range edges {
		flagIDsByOption[edge.OptionID] = append(flagIDsByOption[edge.OptionID], edge.RedFlagID)
		if !flagIDSet[edge.RedFlagID] {
			flagIDSet[edge.RedFlagID] = true
			flagIDs = append(flagIDs, edge.RedFlagID)
		}
	}

	flags, err := datastore.GetRedFlags(ctx, service.db, flagIDs)
	if err != nil {
		return nil, err
	}

	flagTranslations, err := datastore.GetRedFlagTranslations(ctx, service.db, flagIDs)
	if err != nil {
		return nil, err
	}

	flagByID := make(map[string]*models.RedFlag, len(flags))
	for _, flag := range flags {
		flagByID[flag.RedFlagID] = flag
	}
	for _, t := range flagTranslations {
		if flag := flagByID[t.RedFlagID]; flag != nil {
			flag.Translations = append(flag.Translations, t)
		}
	}

	snapshot := &models.FormSnapshot{
		Form:               form,
		Questions:          questions,
		RedFlagIDsByOption: flagIDsByOption,
		RedFlags:           flagByID,
	}
	snapshot.Index()
	return snapshot, nil
}
