package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Enrollment is the attendee's one-time event registration. It is created by
// an external flow; this service only reads it as a prerequisite for any
// ticket or booking action.
type Enrollment struct {
	bun.BaseModel `bun:"table:enrollments"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	CPF       string    `bun:"cpf,notnull" json:"cpf"`
	UserID    int64     `bun:"user_id,unique,notnull" json:"userId"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}
