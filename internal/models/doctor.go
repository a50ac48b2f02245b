package models

import (
	"time"

	"github.com/uptrace/bun"
)

// db
type Doctor struct {
	bun.BaseModel  `bun:"table:doctor"`
	ID             int       `bun:"id,pk,autoincrement" json:"id"`
	Name           string    `bun:"name" json:"name"`
	Email          string    `bun:"email" json:"email"`
	ClinicName     string    `bun:"clinic_name" json:"clinic_name"`
	City           string    `bun:"city" json:"city,omitempty"`
	Specialization string    `bun:"specialization" json:"specialization,omitempty"`
	ShareableSlug  string    `bun:"shareable_slug" json:"shareable_slug"`
	CreatedAt      time.Time `bun:"created_at,nullzero,default:now()" json:"created_at"`
}

// db
type DoctorLink struct {
	bun.BaseModel `bun:"table:doctor_link"`
	ID            int       `bun:"id,pk,autoincrement" json:"-"`
	DoctorID      int       `bun:"doctor_id" json:"doctor_id"`
	Link          string    `bun:"link" json:"link"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:now()" json:"created_at"`
}
