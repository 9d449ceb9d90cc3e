package models

import (
	"time"

	"github.com/uptrace/bun"
)

// TicketStatus is the payment state of a ticket. Transitions to PAID happen
// in an external payment flow; this service only reads the status.
type TicketStatus string

const (
	TicketStatusReserved TicketStatus = "RESERVED"
	TicketStatusPaid     TicketStatus = "PAID"
)

// TicketType is immutable reference data describing what a ticket grants.
type TicketType struct {
	bun.BaseModel `bun:"table:ticket_types"`

	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Name          string    `bun:"name,notnull" json:"name"`
	Price         float64   `bun:"price,notnull" json:"price"`
	IsRemote      bool      `bun:"is_remote,notnull" json:"isRemote"`
	IncludesHotel bool      `bun:"includes_hotel,notnull" json:"includesHotel"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

type Ticket struct {
	bun.BaseModel `bun:"table:tickets"`

	ID           int64        `bun:"id,pk,autoincrement" json:"id"`
	TicketTypeID int64        `bun:"ticket_type_id,notnull" json:"ticketTypeId"`
	EnrollmentID int64        `bun:"enrollment_id,notnull" json:"enrollmentId"`
	Status       TicketStatus `bun:"status,notnull" json:"status"`
	CreatedAt    time.Time    `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt    time.Time    `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// TicketWithType joins a ticket with its resolved type for API responses.
type TicketWithType struct {
	Ticket
	TicketType TicketType `json:"TicketType"`
}
