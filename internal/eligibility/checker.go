// Package eligibility decides whether a user qualifies to hold or change a
// hotel booking. The predicate is shared by the booking engine and the hotel
// availability gate; each caller maps the reasons to its own error kinds.
package eligibility

import (
	"context"

	"ms-hotelbooking/internal/models"
)

// Reason explains why a user is not eligible. The zero value means eligible.
type Reason string

const (
	Eligible            Reason = ""
	NoEnrollment        Reason = "user has no enrollment"
	NoTicket            Reason = "enrollment has no ticket"
	NoTicketType        Reason = "ticket type could not be resolved"
	TicketExcludesHotel Reason = "ticket does not include hotel"
	TicketIsRemote      Reason = "ticket is for remote attendance"
	TicketNotPaid       Reason = "ticket has not been paid"
)

type DBLayer interface {
	GetEnrollmentByUserID(ctx context.Context, userID int64) (*models.Enrollment, error)
	GetTicketByEnrollmentID(ctx context.Context, enrollmentID int64) (*models.Ticket, error)
	GetTicketTypeByID(ctx context.Context, id int64) (*models.TicketType, error)
}

type Checker struct {
	DB DBLayer
}

func NewChecker(db DBLayer) *Checker {
	return &Checker{DB: db}
}

// CheckHotelEligibility walks enrollment → ticket → ticket type and returns
// the first failing reason. Pure read, no side effects; a non-nil error is a
// store failure, not an eligibility outcome.
func (c *Checker) CheckHotelEligibility(ctx context.Context, userID int64) (Reason, error) {
	enrollment, err := c.DB.GetEnrollmentByUserID(ctx, userID)
	if err != nil {
		return Eligible, err
	}
	if enrollment == nil {
		return NoEnrollment, nil
	}

	ticket, err := c.DB.GetTicketByEnrollmentID(ctx, enrollment.ID)
	if err != nil {
		return Eligible, err
	}
	if ticket == nil {
		return NoTicket, nil
	}

	ticketType, err := c.DB.GetTicketTypeByID(ctx, ticket.TicketTypeID)
	if err != nil {
		return Eligible, err
	}
	if ticketType == nil {
		return NoTicketType, nil
	}

	if !ticketType.IncludesHotel {
		return TicketExcludesHotel, nil
	}
	if ticketType.IsRemote {
		return TicketIsRemote, nil
	}
	if ticket.Status != models.TicketStatusPaid {
		return TicketNotPaid, nil
	}

	return Eligible, nil
}
