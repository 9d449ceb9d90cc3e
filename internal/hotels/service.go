package hotels

import (
	"context"
	"strconv"

	"ms-hotelbooking/internal/apperr"
	"ms-hotelbooking/internal/eligibility"
	"ms-hotelbooking/internal/models"
)

type DBLayer interface {
	ListHotels(ctx context.Context) ([]models.Hotel, int, error)
	GetHotelWithRooms(ctx context.Context, hotelID int64) (*models.Hotel, error)
}

type EligibilityChecker interface {
	CheckHotelEligibility(ctx context.Context, userID int64) (eligibility.Reason, error)
}

type Cache interface {
	GetHotels(ctx context.Context) ([]models.Hotel, error)
	SetHotels(ctx context.Context, hotels []models.Hotel) error
}

// HotelService gates hotel browsing on the same eligibility predicate as
// booking, but maps ticket-state failures to PaymentRequired instead of
// Forbidden. Missing enrollment/ticket/type resolve to NotFound.
type HotelService struct {
	DB          DBLayer
	Eligibility EligibilityChecker
	Cache       Cache
}

func NewHotelService(dbLayer DBLayer, checker EligibilityChecker, cache Cache) *HotelService {
	return &HotelService{DB: dbLayer, Eligibility: checker, Cache: cache}
}

// ListHotels returns all hotels for an eligible user. An empty collection is
// NotFound, matching the booking surface's treatment of missing data.
func (s *HotelService) ListHotels(ctx context.Context, userID int64) ([]models.Hotel, error) {
	if err := s.checkAccess(ctx, userID); err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if cached, err := s.Cache.GetHotels(ctx); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	hotels, count, err := s.DB.ListHotels(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list hotels", err)
	}
	if count == 0 {
		return nil, apperr.NotFound("no hotels found")
	}

	if s.Cache != nil {
		_ = s.Cache.SetHotels(ctx, hotels)
	}
	return hotels, nil
}

// GetHotel returns one hotel with its rooms. The id parameter arrives as the
// raw path segment and must be numeric.
func (s *HotelService) GetHotel(ctx context.Context, userID int64, hotelIDParam string) (*models.Hotel, error) {
	hotelID, err := strconv.ParseInt(hotelIDParam, 10, 64)
	if err != nil {
		return nil, apperr.BadRequest("hotelId must be a number")
	}

	if err := s.checkAccess(ctx, userID); err != nil {
		return nil, err
	}

	hotel, err := s.DB.GetHotelWithRooms(ctx, hotelID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch hotel", err)
	}
	if hotel == nil {
		return nil, apperr.NotFound("hotel not found")
	}
	return hotel, nil
}

func (s *HotelService) checkAccess(ctx context.Context, userID int64) error {
	reason, err := s.Eligibility.CheckHotelEligibility(ctx, userID)
	if err != nil {
		return apperr.Internal("failed to check eligibility", err)
	}

	switch reason {
	case eligibility.Eligible:
		return nil
	case eligibility.NoEnrollment, eligibility.NoTicket, eligibility.NoTicketType:
		return apperr.NotFound(string(reason))
	default:
		// Unpaid, remote or hotel-less tickets block browsing with 402.
		return apperr.PaymentRequired(string(reason))
	}
}
