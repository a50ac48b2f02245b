package models

import "github.com/uptrace/bun"

// db
type Form struct {
	bun.BaseModel `bun:"table:form"`
	ID            int    `bun:"id,pk,autoincrement" json:"-"`
	FormID        string `bun:"form_id" json:"form_id"`
	Description   string `bun:"description" json:"description,omitempty"`

	Translations []*FormTranslation `bun:"-" json:"translations,omitempty"`
}

// db
type FormTranslation struct {
	bun.BaseModel `bun:"table:form_translation"`
	ID            int    `bun:"id,pk,autoincrement" json:"-"`
	FormID        string `bun:"form_id" json:"form_id"`
	LanguageCode  string `bun:"language_code" json:"language_code"`
	FormName      string `bun:"form_name" json:"form_name"`
}
