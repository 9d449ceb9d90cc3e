package hotels_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ms-hotelbooking/internal/apperr"
	"ms-hotelbooking/internal/eligibility"
	"ms-hotelbooking/internal/hotels"
	"ms-hotelbooking/internal/models"
)

type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) ListHotels(ctx context.Context) ([]models.Hotel, int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Hotel), args.Int(1), args.Error(2)
}

func (m *MockDBLayer) GetHotelWithRooms(ctx context.Context, hotelID int64) (*models.Hotel, error) {
	args := m.Called(ctx, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Hotel), args.Error(1)
}

type MockEligibilityChecker struct {
	mock.Mock
}

func (m *MockEligibilityChecker) CheckHotelEligibility(ctx context.Context, userID int64) (eligibility.Reason, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(eligibility.Reason), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetHotels(ctx context.Context) ([]models.Hotel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Hotel), args.Error(1)
}

func (m *MockCache) SetHotels(ctx context.Context, hotels []models.Hotel) error {
	args := m.Called(ctx, hotels)
	return args.Error(0)
}

func eligibleChecker(userID int64) *MockEligibilityChecker {
	checker := new(MockEligibilityChecker)
	checker.On("CheckHotelEligibility", mock.Anything, userID).Return(eligibility.Eligible, nil)
	return checker
}

// Tests start here
func TestListHotels(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := hotels.NewHotelService(mockDB, eligibleChecker(1), nil)

	listing := []models.Hotel{
		{ID: 1, Name: "Driven Resort", Image: "https://example.com/resort.png"},
		{ID: 2, Name: "Driven Palace", Image: "https://example.com/palace.png"},
	}
	mockDB.On("ListHotels", mock.Anything).Return(listing, 2, nil)

	result, err := svc.ListHotels(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, 2, len(result))
	assert.Equal(t, "Driven Resort", result[0].Name)
	mockDB.AssertExpectations(t)
}

func TestListHotelsEmpty(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := hotels.NewHotelService(mockDB, eligibleChecker(1), nil)

	mockDB.On("ListHotels", mock.Anything).Return([]models.Hotel{}, 0, nil)

	result, err := svc.ListHotels(context.Background(), 1)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListHotelsAccessMapping(t *testing.T) {
	// Missing prerequisites are NotFound; ticket-state failures demand
	// payment before browsing
	cases := []struct {
		reason eligibility.Reason
		want   apperr.Kind
	}{
		{eligibility.NoEnrollment, apperr.KindNotFound},
		{eligibility.NoTicket, apperr.KindNotFound},
		{eligibility.NoTicketType, apperr.KindNotFound},
		{eligibility.TicketNotPaid, apperr.KindPaymentRequired},
		{eligibility.TicketIsRemote, apperr.KindPaymentRequired},
		{eligibility.TicketExcludesHotel, apperr.KindPaymentRequired},
	}

	for _, tc := range cases {
		t.Run(string(tc.reason), func(t *testing.T) {
			mockDB := new(MockDBLayer)
			checker := new(MockEligibilityChecker)
			checker.On("CheckHotelEligibility", mock.Anything, int64(1)).Return(tc.reason, nil)

			svc := hotels.NewHotelService(mockDB, checker, nil)

			result, err := svc.ListHotels(context.Background(), 1)

			assert.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, tc.want, apperr.KindOf(err))
			mockDB.AssertNotCalled(t, "ListHotels", mock.Anything)
		})
	}
}

func TestListHotelsCacheHit(t *testing.T) {
	mockDB := new(MockDBLayer)
	mockCache := new(MockCache)
	svc := hotels.NewHotelService(mockDB, eligibleChecker(1), mockCache)

	cached := []models.Hotel{{ID: 1, Name: "Driven Resort", Image: "https://example.com/resort.png"}}
	mockCache.On("GetHotels", mock.Anything).Return(cached, nil)

	result, err := svc.ListHotels(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, 1, len(result))
	// A warm cache keeps the listing query off the database
	mockDB.AssertNotCalled(t, "ListHotels", mock.Anything)
}

func TestListHotelsCacheMiss(t *testing.T) {
	mockDB := new(MockDBLayer)
	mockCache := new(MockCache)
	svc := hotels.NewHotelService(mockDB, eligibleChecker(1), mockCache)

	listing := []models.Hotel{{ID: 1, Name: "Driven Resort", Image: "https://example.com/resort.png"}}
	mockCache.On("GetHotels", mock.Anything).Return(nil, nil)
	mockDB.On("ListHotels", mock.Anything).Return(listing, 1, nil)
	mockCache.On("SetHotels", mock.Anything, listing).Return(nil)

	result, err := svc.ListHotels(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, 1, len(result))
	mockCache.AssertExpectations(t)
}

func TestGetHotel(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := hotels.NewHotelService(mockDB, eligibleChecker(1), nil)

	hotel := &models.Hotel{
		ID:    1,
		Name:  "Driven Resort",
		Image: "https://example.com/resort.png",
		Rooms: []models.Room{
			{ID: 7, Name: "101", Capacity: 3, HotelID: 1},
			{ID: 8, Name: "102", Capacity: 2, HotelID: 1},
		},
	}
	mockDB.On("GetHotelWithRooms", mock.Anything, int64(1)).Return(hotel, nil)

	result, err := svc.GetHotel(context.Background(), 1, "1")

	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.ID)
	assert.Equal(t, 2, len(result.Rooms))
	mockDB.AssertExpectations(t)
}

func TestGetHotelNotFound(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := hotels.NewHotelService(mockDB, eligibleChecker(1), nil)

	mockDB.On("GetHotelWithRooms", mock.Anything, int64(999)).Return(nil, nil)

	result, err := svc.GetHotel(context.Background(), 1, "999")

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestGetHotelInvalidID(t *testing.T) {
	mockDB := new(MockDBLayer)
	checker := new(MockEligibilityChecker)
	svc := hotels.NewHotelService(mockDB, checker, nil)

	for _, param := range []string{"abc", "1.5", "", "12abc"} {
		result, err := svc.GetHotel(context.Background(), 1, param)

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
	}

	// A malformed id is rejected before any lookup
	checker.AssertNotCalled(t, "CheckHotelEligibility", mock.Anything, mock.Anything)
	mockDB.AssertNotCalled(t, "GetHotelWithRooms", mock.Anything, mock.Anything)
}
