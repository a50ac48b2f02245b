package models

import "github.com/uptrace/bun"

// db
type Language struct {
	bun.BaseModel `bun:"table:language"`
	ID            int    `bun:"id,pk,autoincrement" json:"-"`
	Code          string `bun:"code" json:"code"`
	Name          string `bun:"name" json:"name"`
}
