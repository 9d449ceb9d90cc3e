package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Hotel struct {
	bun.BaseModel `bun:"table:hotels"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Image     string    `bun:"image,notnull" json:"image"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`

	Rooms []Room `bun:"rel:has-many,join:id=hotel_id" json:"Rooms,omitempty"`
}

type Room struct {
	bun.BaseModel `bun:"table:rooms"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Capacity  int       `bun:"capacity,notnull" json:"capacity"`
	HotelID   int64     `bun:"hotel_id,notnull" json:"hotelId"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// RoomWithOccupancy carries a room together with its current booking count.
// Occupants is a read-time snapshot; the authoritative ceiling check happens
// in the store's conditional writes.
type RoomWithOccupancy struct {
	Room
	Occupants int `bun:"occupants" json:"occupants"`
}
