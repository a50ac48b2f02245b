package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"intakealert/internal/datastore"
	"intakealert/internal/models"

	"github.com/uptrace/bun"
	"github.com/urfave/cli/v2"
)

// The catalog is maintained as a directory of CSV sheets exported from the
// clinical spreadsheet. Every load is an upsert keyed by the natural
// business identifier, so re-running ingest over the same export never
// duplicates rows. Forms and questions carry one extra column per language
// code holding the localized text.
func commandIngest() *cli.Command {
	return &cli.Command{
		Name:  "ingest",
		Usage: "load the form catalog from a directory of CSV files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Value: "./catalog",
				Usage: "directory containing the catalog CSV files",
			},
		},
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				return err
			}

			dir := c.String("dir")

			if err := ingestLanguages(ctx, db, dir); err != nil {
				return err
			}

			languages, err := datastore.GetLanguages(ctx, db)
			if err != nil {
				return err
			}
			codes := make(map[string]bool, len(languages))
			for _, language := range languages {
				codes[language.Code] = true
			}

			if err := ingestForms(ctx, db, dir, codes); err != nil {
				return err
			}
			if err := ingestQuestions(ctx, db, dir, codes); err != nil {
				return err
			}
			if err := ingestOptions(ctx, db, dir); err != nil {
				return err
			}
			if err := ingestOptionTranslations(ctx, db, dir); err != nil {
				return err
			}
			if err := ingestConditions(ctx, db, dir); err != nil {
				return err
			}
			if err := ingestRedFlags(ctx, db, dir); err != nil {
				return err
			}
			if err := ingestRedFlagTranslations(ctx, db, dir); err != nil {
				return err
			}
			if err := ingestOptionRedFlagMap(ctx, db, dir); err != nil {
				return err
			}

			fmt.Println("Ingestion complete")
			return nil
		},
	}
}

// readSheet loads one CSV file as header-keyed rows. A missing sheet is not
// an error; that section of the catalog is simply skipped.
func readSheet(dir, name string) ([]map[string]string, []string, error) {
	file, err := os.Open(filepath.Join(dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := map[string]string{}
		for i, column := range header {
			if i < len(record) {
				row[column] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

func ingestLanguages(ctx context.Context, db *bun.DB, dir string) error {
	rows, _, err := readSheet(dir, "languages.csv")
	if err != nil {
		return err
	}

	for _, row := range rows {
		err = datastore.UpsertLanguage(ctx, db, &models.Language{
			Code: row["language_code"],
			Name: row["language_name"],
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func ingestForms(ctx context.Context, db *bun.DB, dir string, codes map[string]bool) error {
	rows, header, err := readSheet(dir, "forms.csv")
	if err != nil {
		return err
	}

	for _, row := range rows {
		form := &models.Form{
			FormID:      row["form_id"],
			Description: row["description"],
		}
		if err := datastore.UpsertForm(ctx, db, form); err != nil {
			return err
		}

		for _, column := range header {
			if !codes[column] || row[column] == "" {
				continue
			}
			err = datastore.UpsertFormTranslation(ctx, db, &models.FormTranslation{
				FormID:       form.FormID,
				LanguageCode: column,
				FormName:     row[column],
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func ingestQuestions(ctx context.Context, db *bun.DB, dir string, codes map[string]bool) error {
	rows, header, err := readSheet(dir, "questions.csv")
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	questionsByForm := map[string][]*models.Question{}
	for _, row := range rows {
		question := &models.Question{
			QuestionID:     row["question_id"],
			FormID:         row["form_id"],
			SequenceNo:     atoi(row["sequence_no"]),
			QuestionType:   models.QuestionType(row["question_type"]),
			ShowsTextField: parseBool(row["shows_text_field"]),
		}
		if !question.QuestionType.Valid() {
			return fmt.Errorf("question %s: invalid question_type %q", question.QuestionID, row["question_type"])
		}
		if v := row["branching_type"]; v != "" {
			question.BranchingType = &v
		}
		if v := row["parent_question_id"]; v != "" {
			question.ParentQuestionID = &v
		}
		questionsByForm[question.FormID] = append(questionsByForm[question.FormID], question)
	}

	// Reject unwalkable question trees before touching the catalog.
	for formID, questions := range questionsByForm {
		snapshot := &models.FormSnapshot{
			Form:      &models.Form{FormID: formID},
			Questions: questions,
		}
		if err := snapshot.Validate(); err != nil {
			return fmt.Errorf("ingest rejected: %w", err)
		}
	}

	for _, row := range rows {
		var question *models.Question
		for _, q := range questionsByForm[row["form_id"]] {
			if q.QuestionID == row["question_id"] {
				question = q
				break
			}
		}
		if err := datastore.UpsertQuestion(ctx, db, question); err != nil {
			return err
		}

		for _, column := range header {
			if !codes[column] || row[column] == "" {
				continue
			}
			err = datastore.UpsertQuestionTranslation(ctx, db, &models.QuestionTranslation{
				QuestionID:   question.QuestionID,
				LanguageCode: column,
				QuestionText: row[column],
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func ingestOptions(ctx context.Context, db *bun.DB, dir string) error {
	rows, _, err := readSheet(dir, "options.csv")
	if err != nil {
		return err
	}

	for _, row := range rows {
		err = datastore.UpsertQuestionOption(ctx, db, &models.QuestionOption{
			OptionID:        row["option_id"],
			QuestionID:      row["question_id"],
			SequenceNo:      atoi(row["sequence_no"]),
			IsRedFlagOption: parseBool(row["is_red_flag_option"]),
			ShowsTextField:  parseBool(row["shows_text_field"]),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func ingestOptionTranslations(ctx context.Context, db *bun.DB, dir string) error {
	rows, _, err := readSheet(dir, "option_translations.csv")
	if err != nil {
		return err
	}

	for _, row := range rows {
		err = datastore.UpsertOptionTranslation(ctx, db, &models.OptionTranslation{
			OptionID:     row["option_id"],
			LanguageCode: row["language_code"],
			OptionText:   row["option_text"],
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func ingestConditions(ctx context.Context, db *bun.DB, dir string) error {
	rows, _, err := readSheet(dir, "conditions.csv")
	if err != nil {
		return err
	}

	for _, row := range rows {
		// A condition pointing at an option the export never defined is
		// dropped, matching the tolerant source loader.
		_, err := datastore.GetOptionByOptionID(ctx, db, row["trigger_option_id"])
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("skipping condition %s -> %s: unknown option", row["question_id"], row["trigger_option_id"])
			continue
		}
		if err != nil {
			return err
		}

		err = datastore.UpsertQuestionCondition(ctx, db, &models.QuestionCondition{
			QuestionID:      row["question_id"],
			TriggerOptionID: row["trigger_option_id"],
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func ingestRedFlags(ctx context.Context, db *bun.DB, dir string) error {
	rows, _, err := readSheet(dir, "redflags.csv")
	if err != nil {
		return err
	}

	for _, row := range rows {
		err = datastore.UpsertRedFlag(ctx, db, &models.RedFlag{
			RedFlagID:              row["red_flag_id"],
			Severity:               row["severity"],
			DefaultPatientResponse: row["default_patient_response"],
			PatientVideoURL:        row["patient_video_url"],
			DoctorAtAGlance:        row["doctor_at_a_glance"],
			DoctorVideoURL:         row["doctor_video_url"],
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func ingestRedFlagTranslations(ctx context.Context, db *bun.DB, dir string) error {
	rows, _, err := readSheet(dir, "redflag_translations.csv")
	if err != nil {
		return err
	}

	for _, row := range rows {
		err = datastore.UpsertRedFlagTranslation(ctx, db, &models.RedFlagTranslation{
			RedFlagID:       row["red_flag_id"],
			LanguageCode:    row["language_code"],
			PatientResponse: row["patient_response"],
			DoctorAtAGlance: row["doctor_at_a_glance"],
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func ingestOptionRedFlagMap(ctx context.Context, db *bun.DB, dir string) error {
	rows, _, err := readSheet(dir, "option_redflag_map.csv")
	if err != nil {
		return err
	}

	for _, row := range rows {
		_, err := datastore.GetOptionByOptionID(ctx, db, row["option_id"])
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("skipping red flag map %s -> %s: unknown option", row["option_id"], row["red_flag_id"])
			continue
		}
		if err != nil {
			return err
		}

		err = datastore.UpsertOptionRedFlagMap(ctx, db, &models.OptionRedFlagMap{
			OptionID:  row["option_id"],
			RedFlagID: row["red_flag_id"],
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}
