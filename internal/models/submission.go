package models

import (
	"time"

	"github.com/uptrace/bun"
)

// db
type PatientSubmission struct {
	bun.BaseModel `bun:"table:patient_submission"`
	ID            int       `bun:"id,pk,autoincrement" json:"-"`
	RecordID      string    `bun:"record_id" json:"record_id"`
	PatientID     string    `bun:"patient_id" json:"patient_id"`
	DoctorID      int       `bun:"doctor_id" json:"doctor_id"`
	FormID        string    `bun:"form_id" json:"form_id"`
	LanguageCode  string    `bun:"language_code" json:"language_code"`
	Responses     AnswerMap `bun:"responses,type:jsonb" json:"responses"`
	RedFlagIDs    []string  `bun:"red_flag_ids,type:jsonb" json:"red_flag_ids"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:now()" json:"created_at"`
}
