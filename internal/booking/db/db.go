package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"ms-hotelbooking/internal/models"
)

// ErrRoomFull is returned when a conditional write finds the destination room
// at capacity at commit time.
var ErrRoomFull = errors.New("room is at capacity")

// ErrAlreadyBooked is returned when an insert hits the one-booking-per-user
// constraint.
var ErrAlreadyBooked = errors.New("user already has a booking")

type DB struct {
	Bun *bun.DB
}

// GetBookingByUserID → the user's booking joined with its room, nil when the
// user has none.
func (d *DB) GetBookingByUserID(ctx context.Context, userID int64) (*models.BookingWithRoom, error) {
	var booking models.Booking
	err := d.Bun.NewSelect().
		Model(&booking).
		Where("user_id = ?", userID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var room models.Room
	err = d.Bun.NewSelect().
		Model(&room).
		Where("id = ?", booking.RoomID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &models.BookingWithRoom{ID: booking.ID, Room: room}, nil
}

// GetRoomWithOccupancy → the room and its current booking count, nil when the
// room does not exist. A positive excludeBookingID leaves that booking out of
// the count, so a mover's own booking does not occupy its destination twice.
// The count is a snapshot; the conditional writes below re-check it under the
// room lock.
func (d *DB) GetRoomWithOccupancy(ctx context.Context, roomID, excludeBookingID int64) (*models.RoomWithOccupancy, error) {
	var room models.Room
	err := d.Bun.NewSelect().
		Model(&room).
		Where("id = ?", roomID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	query := d.Bun.NewSelect().
		Model((*models.Booking)(nil)).
		Where("room_id = ?", roomID)
	if excludeBookingID > 0 {
		query = query.Where("id <> ?", excludeBookingID)
	}
	occupants, err := query.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &models.RoomWithOccupancy{Room: room, Occupants: occupants}, nil
}

// lockRoomRow takes a row lock on the destination room for the duration of
// the transaction. Under READ COMMITTED two concurrent conditional writes
// each snapshot the booking count before the other commits, and neither
// touches the other's rows, so the count alone cannot hold the ceiling; the
// room lock makes the loser wait and recount after the winner commits.
// SQLite admits a single writer per database and has no FOR UPDATE, so the
// lock is skipped there.
func (d *DB) lockRoomRow(ctx context.Context, tx bun.Tx, roomID int64) error {
	if d.Bun.Dialect().Name() != dialect.PG {
		return nil
	}
	_, err := tx.ExecContext(ctx, "SELECT id FROM rooms WHERE id = ? FOR UPDATE", roomID)
	return err
}

// InsertBookingIfCapacity inserts a booking only while the room's occupancy
// is below its capacity. The count and the insert run in one transaction
// behind the room's row lock, so concurrent creates for the last slot cannot
// both pass: one caller gets the row and the rest get ErrRoomFull.
func (d *DB) InsertBookingIfCapacity(ctx context.Context, userID, roomID int64) (int64, error) {
	var id int64
	err := d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := d.lockRoomRow(ctx, tx, roomID); err != nil {
			return err
		}
		return tx.QueryRowContext(ctx, `
		INSERT INTO bookings (user_id, room_id)
		SELECT ?, ?
		WHERE (SELECT COUNT(*) FROM bookings WHERE room_id = ?) < (SELECT capacity FROM rooms WHERE id = ?)
		RETURNING id
	`, userID, roomID, roomID, roomID).Scan(&id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrRoomFull
	}
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrAlreadyBooked
		}
		return 0, err
	}
	return id, nil
}

// UpdateBookingRoomIfCapacity moves a booking to roomID only while the
// destination has a free slot, excluding the booking being moved from the
// destination count. Same-room moves therefore succeed even when the room is
// otherwise full. Runs behind the destination room's row lock like the
// insert.
func (d *DB) UpdateBookingRoomIfCapacity(ctx context.Context, bookingID, roomID int64) error {
	var affected int64
	err := d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := d.lockRoomRow(ctx, tx, roomID); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `
		UPDATE bookings
		SET room_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		AND (SELECT COUNT(*) FROM bookings b WHERE b.room_id = ? AND b.id <> bookings.id) < (SELECT capacity FROM rooms WHERE id = ?)
	`, roomID, bookingID, roomID, roomID)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRoomFull
	}
	return nil
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	// Postgres: "duplicate key value violates unique constraint";
	// SQLite: "UNIQUE constraint failed".
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key")
}
