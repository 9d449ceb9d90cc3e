package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"ms-hotelbooking/internal/apperr"
	"ms-hotelbooking/internal/booking/db"
	"ms-hotelbooking/internal/eligibility"
	"ms-hotelbooking/internal/models"
)

type DBLayer interface {
	GetBookingByUserID(ctx context.Context, userID int64) (*models.BookingWithRoom, error)
	GetRoomWithOccupancy(ctx context.Context, roomID, excludeBookingID int64) (*models.RoomWithOccupancy, error)
	InsertBookingIfCapacity(ctx context.Context, userID, roomID int64) (int64, error)
	UpdateBookingRoomIfCapacity(ctx context.Context, bookingID, roomID int64) error
}

type EligibilityChecker interface {
	CheckHotelEligibility(ctx context.Context, userID int64) (eligibility.Reason, error)
}

// UserLock serializes booking mutations per user so two in-flight operations
// cannot pass their checks against each other's stale state.
type UserLock interface {
	LockUserBooking(ctx context.Context, userID int64, token string) (bool, error)
	UnlockUserBooking(ctx context.Context, userID int64, token string) error
}

type KafkaPublisher interface {
	PublishBookingCreated(booking models.Booking) error
	PublishBookingMoved(booking models.Booking) error
}

// BookingService owns the booking lifecycle: one booking per user, created
// only for eligible users and never above a room's capacity. Capacity is
// enforced by the store's conditional writes, not by the read-side checks.
type BookingService struct {
	DB          DBLayer
	Eligibility EligibilityChecker
	Lock        UserLock
	Kafka       KafkaPublisher
}

func NewBookingService(dbLayer DBLayer, checker EligibilityChecker, lock UserLock, kafka KafkaPublisher) *BookingService {
	return &BookingService{
		DB:          dbLayer,
		Eligibility: checker,
		Lock:        lock,
		Kafka:       kafka,
	}
}

// GetBooking returns the user's booking joined with its room.
func (s *BookingService) GetBooking(ctx context.Context, userID int64) (*models.BookingWithRoom, error) {
	bookingRoom, err := s.DB.GetBookingByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch booking", err)
	}
	if bookingRoom == nil {
		return nil, apperr.NotFound("no booking found for user")
	}
	return bookingRoom, nil
}

// CreateBooking reserves a room for the user. The per-user lock is taken
// before any read, so two in-flight operations by the same user cannot pass
// their checks against each other's stale state. Check order after the lock:
// room existence, capacity snapshot, eligibility, then the conditional
// insert which re-validates capacity at commit time.
func (s *BookingService) CreateBooking(ctx context.Context, userID, roomID int64) (int64, error) {
	token, err := s.lockUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	defer s.unlockUser(ctx, userID, token)

	room, err := s.DB.GetRoomWithOccupancy(ctx, roomID, 0)
	if err != nil {
		return 0, apperr.Internal("failed to fetch room", err)
	}
	if room == nil {
		return 0, apperr.NotFound("room not found")
	}
	if room.Occupants >= room.Capacity {
		return 0, apperr.Forbidden("room is at capacity")
	}

	reason, err := s.Eligibility.CheckHotelEligibility(ctx, userID)
	if err != nil {
		return 0, apperr.Internal("failed to check eligibility", err)
	}
	if reason != eligibility.Eligible {
		return 0, apperr.Forbidden(string(reason))
	}

	bookingID, err := s.DB.InsertBookingIfCapacity(ctx, userID, roomID)
	if errors.Is(err, db.ErrRoomFull) {
		return 0, apperr.Forbidden("room is at capacity")
	}
	if errors.Is(err, db.ErrAlreadyBooked) {
		return 0, apperr.Forbidden("user already has a booking")
	}
	if err != nil {
		return 0, apperr.Internal("failed to create booking", err)
	}

	s.publishCreated(models.Booking{ID: bookingID, UserID: userID, RoomID: roomID})
	return bookingID, nil
}

// UpdateBooking moves the user's booking to another room. Ownership failures
// surface as Forbidden, never NotFound; eligibility is not re-checked on a
// move. The mover's own booking is excluded from the destination count, so
// a same-room move succeeds while the user holds the last slot. Like the
// create path, the per-user lock is taken before the first read.
func (s *BookingService) UpdateBooking(ctx context.Context, userID, bookingID, roomID int64) (int64, error) {
	token, err := s.lockUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	defer s.unlockUser(ctx, userID, token)

	current, err := s.DB.GetBookingByUserID(ctx, userID)
	if err != nil {
		return 0, apperr.Internal("failed to fetch booking", err)
	}
	if current == nil {
		return 0, apperr.Forbidden("user has no booking to update")
	}
	if current.ID != bookingID {
		return 0, apperr.Forbidden("booking does not belong to user")
	}

	room, err := s.DB.GetRoomWithOccupancy(ctx, roomID, current.ID)
	if err != nil {
		return 0, apperr.Internal("failed to fetch room", err)
	}
	if room == nil {
		return 0, apperr.NotFound("room not found")
	}
	if room.Occupants >= room.Capacity {
		return 0, apperr.Forbidden("room is at capacity")
	}

	err = s.DB.UpdateBookingRoomIfCapacity(ctx, current.ID, roomID)
	if errors.Is(err, db.ErrRoomFull) {
		return 0, apperr.Forbidden("room is at capacity")
	}
	if err != nil {
		return 0, apperr.Internal("failed to update booking", err)
	}

	s.publishMoved(models.Booking{ID: current.ID, UserID: userID, RoomID: roomID})
	return current.ID, nil
}

func (s *BookingService) lockUser(ctx context.Context, userID int64) (string, error) {
	if s.Lock == nil {
		return "", nil
	}
	token := uuid.NewString()
	ok, err := s.Lock.LockUserBooking(ctx, userID, token)
	if err != nil {
		return "", apperr.Internal("failed to acquire booking lock", err)
	}
	if !ok {
		return "", apperr.Forbidden("another booking operation is in progress for this user")
	}
	return token, nil
}

func (s *BookingService) unlockUser(ctx context.Context, userID int64, token string) {
	if s.Lock == nil {
		return
	}
	if err := s.Lock.UnlockUserBooking(ctx, userID, token); err != nil {
		fmt.Printf("WARNING: Failed to release booking lock for user %d: %v\n", userID, err)
	}
}

func (s *BookingService) publishCreated(booking models.Booking) {
	if s.Kafka == nil {
		return
	}
	if err := s.Kafka.PublishBookingCreated(booking); err != nil {
		fmt.Printf("WARNING: Failed to publish booking_created event for booking %d: %v\n", booking.ID, err)
	}
}

func (s *BookingService) publishMoved(booking models.Booking) {
	if s.Kafka == nil {
		return
	}
	if err := s.Kafka.PublishBookingMoved(booking); err != nil {
		fmt.Printf("WARNING: Failed to publish booking_moved event for booking %d: %v\n", booking.ID, err)
	}
}
