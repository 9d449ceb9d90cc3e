package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Booking binds one user to one room. The user_id unique constraint keeps it
// to at most one live booking per user; room moves go through updates, never
// a second insert.
type Booking struct {
	bun.BaseModel `bun:"table:bookings"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID    int64     `bun:"user_id,unique,notnull" json:"userId"`
	RoomID    int64     `bun:"room_id,notnull" json:"roomId"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// BookingWithRoom is the GET /booking response shape.
type BookingWithRoom struct {
	ID   int64 `json:"id"`
	Room Room  `json:"Room"`
}

type BookingRequest struct {
	RoomID int64 `json:"roomId"`
}

type BookingResponse struct {
	BookingID int64 `json:"bookingId"`
}
