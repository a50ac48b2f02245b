package models

import "github.com/uptrace/bun"

// db
type RedFlag struct {
	bun.BaseModel          `bun:"table:red_flag"`
	ID                     int    `bun:"id,pk,autoincrement" json:"-"`
	RedFlagID              string `bun:"red_flag_id" json:"red_flag_id"`
	Severity               string `bun:"severity" json:"severity"`
	DefaultPatientResponse string `bun:"default_patient_response" json:"default_patient_response,omitempty"`
	PatientVideoURL        string `bun:"patient_video_url" json:"patient_video_url,omitempty"`
	DoctorAtAGlance        string `bun:"doctor_at_a_glance" json:"doctor_at_a_glance,omitempty"`
	DoctorVideoURL         string `bun:"doctor_video_url" json:"doctor_video_url,omitempty"`

	Translations []*RedFlagTranslation `bun:"-" json:"translations,omitempty"`
}

// db
type RedFlagTranslation struct {
	bun.BaseModel   `bun:"table:red_flag_translation"`
	ID              int    `bun:"id,pk,autoincrement" json:"-"`
	RedFlagID       string `bun:"red_flag_id" json:"red_flag_id"`
	LanguageCode    string `bun:"language_code" json:"language_code"`
	PatientResponse string `bun:"patient_response" json:"patient_response"`
	DoctorAtAGlance string `bun:"doctor_at_a_glance" json:"doctor_at_a_glance"`
}

// db
type OptionRedFlagMap struct {
	bun.BaseModel `bun:"table:option_red_flag_map"`
	ID            int    `bun:"id,pk,autoincrement" json:"-"`
	OptionID      string `bun:"option_id" json:"option_id"`
	RedFlagID     string `bun:"red_flag_id" json:"red_flag_id"`
}

// RedFlagPayload carries one triggered flag with its localized texts, ready
// for the notification sink.
type RedFlagPayload struct {
	RedFlag     *RedFlag `json:"red_flag"`
	PatientText string   `json:"patient_text"`
	DoctorText  string   `json:"doctor_text"`
}
