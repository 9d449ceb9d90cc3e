package eligibility_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ms-hotelbooking/internal/eligibility"
	"ms-hotelbooking/internal/models"
)

type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) GetEnrollmentByUserID(ctx context.Context, userID int64) (*models.Enrollment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Enrollment), args.Error(1)
}

func (m *MockDBLayer) GetTicketByEnrollmentID(ctx context.Context, enrollmentID int64) (*models.Ticket, error) {
	args := m.Called(ctx, enrollmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockDBLayer) GetTicketTypeByID(ctx context.Context, id int64) (*models.TicketType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TicketType), args.Error(1)
}

func hotelTicketFixture(mockDB *MockDBLayer, userID int64, status models.TicketStatus, includesHotel, isRemote bool) {
	mockDB.On("GetEnrollmentByUserID", mock.Anything, userID).
		Return(&models.Enrollment{ID: 10, Name: "Jane Roe", CPF: "12345678901", UserID: userID}, nil)
	mockDB.On("GetTicketByEnrollmentID", mock.Anything, int64(10)).
		Return(&models.Ticket{ID: 20, TicketTypeID: 30, EnrollmentID: 10, Status: status}, nil)
	mockDB.On("GetTicketTypeByID", mock.Anything, int64(30)).
		Return(&models.TicketType{ID: 30, Name: "conference", Price: 250, IncludesHotel: includesHotel, IsRemote: isRemote}, nil)
}

func TestCheckHotelEligibility(t *testing.T) {
	mockDB := new(MockDBLayer)
	checker := eligibility.NewChecker(mockDB)

	hotelTicketFixture(mockDB, 1, models.TicketStatusPaid, true, false)

	reason, err := checker.CheckHotelEligibility(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, eligibility.Eligible, reason)
	mockDB.AssertExpectations(t)
}

func TestCheckHotelEligibilityNoEnrollment(t *testing.T) {
	mockDB := new(MockDBLayer)
	checker := eligibility.NewChecker(mockDB)

	mockDB.On("GetEnrollmentByUserID", mock.Anything, int64(1)).Return(nil, nil)

	reason, err := checker.CheckHotelEligibility(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, eligibility.NoEnrollment, reason)

	// The walk short-circuits, so no ticket lookup happens
	mockDB.AssertNotCalled(t, "GetTicketByEnrollmentID", mock.Anything, mock.Anything)
}

func TestCheckHotelEligibilityNoTicket(t *testing.T) {
	mockDB := new(MockDBLayer)
	checker := eligibility.NewChecker(mockDB)

	mockDB.On("GetEnrollmentByUserID", mock.Anything, int64(1)).
		Return(&models.Enrollment{ID: 10, UserID: 1}, nil)
	mockDB.On("GetTicketByEnrollmentID", mock.Anything, int64(10)).Return(nil, nil)

	reason, err := checker.CheckHotelEligibility(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, eligibility.NoTicket, reason)
	mockDB.AssertNotCalled(t, "GetTicketTypeByID", mock.Anything, mock.Anything)
}

func TestCheckHotelEligibilityTicketStates(t *testing.T) {
	cases := []struct {
		name          string
		status        models.TicketStatus
		includesHotel bool
		isRemote      bool
		want          eligibility.Reason
	}{
		{"hotel excluded", models.TicketStatusPaid, false, false, eligibility.TicketExcludesHotel},
		{"remote ticket", models.TicketStatusPaid, true, true, eligibility.TicketIsRemote},
		{"unpaid ticket", models.TicketStatusReserved, true, false, eligibility.TicketNotPaid},
		// A remote type never includes the hotel in practice, but the hotel
		// check is reported first when both fail
		{"remote without hotel", models.TicketStatusReserved, false, true, eligibility.TicketExcludesHotel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockDB := new(MockDBLayer)
			checker := eligibility.NewChecker(mockDB)

			hotelTicketFixture(mockDB, 1, tc.status, tc.includesHotel, tc.isRemote)

			reason, err := checker.CheckHotelEligibility(context.Background(), 1)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, reason)
		})
	}
}

func TestCheckHotelEligibilityStoreFailure(t *testing.T) {
	mockDB := new(MockDBLayer)
	checker := eligibility.NewChecker(mockDB)

	mockDB.On("GetEnrollmentByUserID", mock.Anything, int64(1)).Return(nil, errors.New("connection refused"))

	_, err := checker.CheckHotelEligibility(context.Background(), 1)
	assert.Error(t, err)
}
